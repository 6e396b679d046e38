package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

// Client is the backend API as seen by the stores.
type Client interface {
	Signup(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error)
	Login(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error)
	Logout(ctx context.Context) error
	AuthCheck(ctx context.Context) (*models.Identity, error)

	FetchAllTickets(ctx context.Context) ([]models.Ticket, error)
	FetchUserTickets(ctx context.Context) ([]models.Ticket, error)
	FetchAssignedTickets(ctx context.Context) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, t models.NewTicket) (*models.Ticket, error)
	AddComment(ctx context.Context, ticketID string, c models.NewComment) (*models.Comment, error)
	UpdateStatus(ctx context.Context, ticketID string, u models.StatusUpdate) (*models.TicketPatch, error)
	UpdatePriority(ctx context.Context, ticketID string, u models.PriorityUpdate) (*models.TicketPatch, error)
	AssignTicket(ctx context.Context, a models.AssignRequest) (*models.UserRef, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	RemoveTicket(ctx context.Context, ticketID string) error

	// Cookies returns the session cookies currently held for the API.
	Cookies() []*http.Cookie
	Close() error
}
