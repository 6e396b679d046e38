package client

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

// Endpoint is a method and a path relative to the API base URL.
type Endpoint struct {
	Method string
	Path   string
}

func signupEndpoint(role models.Role) Endpoint {
	return Endpoint{http.MethodPost, "/api/v1/auth/" + string(role) + "/signup"}
}

func loginEndpoint(role models.Role) Endpoint {
	return Endpoint{http.MethodPost, "/api/v1/auth/" + string(role) + "/login"}
}

var (
	logoutEndpoint          = Endpoint{http.MethodPost, "/api/v1/auth/user/logout"}
	authCheckEndpoint       = Endpoint{http.MethodGet, "/api/v1/auth/user/authCheck"}
	allTicketsEndpoint      = Endpoint{http.MethodGet, "/api/v1/admin/dashboard/all-tickets"}
	userTicketsEndpoint     = Endpoint{http.MethodGet, "/api/v1/dashboard/user"}
	assignedTicketsEndpoint = Endpoint{http.MethodGet, "/api/v1/dashboard/assigned-tickets"}
	createTicketEndpoint    = Endpoint{http.MethodPost, "/api/v1/dashboard/create"}
	assignTicketEndpoint    = Endpoint{http.MethodPatch, "/api/v1/admin/dashboard/assigned-ticket"}
)

func addCommentEndpoint(id string) Endpoint {
	return Endpoint{http.MethodPost, "/api/v1/dashboard/tickets/" + url.PathEscape(id) + "/comments"}
}

func updateStatusEndpoint(id string) Endpoint {
	return Endpoint{http.MethodPatch, "/api/v1/dashboard/" + url.PathEscape(id) + "/status"}
}

func updatePriorityEndpoint(id string) Endpoint {
	return Endpoint{http.MethodPatch, "/api/v1/admin/dashboard/" + url.PathEscape(id) + "/priority"}
}

func deleteTicketEndpoint(id string) Endpoint {
	return Endpoint{http.MethodDelete, "/api/v1/admin/dashboard/delete/" + url.PathEscape(id)}
}

func removeTicketEndpoint(id string) Endpoint {
	return Endpoint{http.MethodDelete, "/api/v1/dashboard/remove-ticket/" + url.PathEscape(id)}
}
