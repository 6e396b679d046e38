// Package testserver runs an in-process fake of the helpdesk backend for
// tests. It implements every endpoint the client calls with the same
// paths, cookie session and response shapes as the real API, keeps its
// state in memory, and can be told to fail the next call to a path.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/common"
)

const (
	CookieName = common.DefaultSessionCookieName
	sessionTTL = 24 * time.Hour
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     models.Role
}

func (u user) identity() map[string]any {
	return map[string]any{"_id": u.ID, "name": u.Name, "email": u.Email, "role": string(u.Role)}
}

func (u user) ref() *models.UserRef {
	return &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

type failure struct {
	status  int
	message string
}

// Request is a recorded inbound request.
type Request struct {
	Method     string
	Path       string
	RequestID  string
	HadSession bool
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	secret   []byte
	mu       sync.Mutex
	users    map[string]user // by email
	tickets  []models.Ticket
	seq      int
	failures map[string]failure
	requests []Request
}

// New starts a fake backend and registers its shutdown with t.
func New(t testing.TB) *Server {
	t.Helper()
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		t.Fatalf("testserver: secret: %v", err)
	}
	s := &Server{
		secret:   []byte(secret),
		users:    make(map[string]user),
		failures: make(map[string]failure),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.injectFailures)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/{role}/signup", s.signup)
		r.Post("/{role}/login", s.login)
		r.Post("/user/logout", s.logout)
		r.With(s.requireSession).Get("/user/authCheck", s.authCheck)
	})

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/user", s.userTickets)
		r.Get("/assigned-tickets", s.assignedTickets)
		r.Post("/create", s.createTicket)
		r.Post("/tickets/{id}/comments", s.addComment)
		r.Patch("/{id}/status", s.updateStatus)
		r.Delete("/remove-ticket/{id}", s.removeTicket)
	})

	r.Route("/api/v1/admin/dashboard", func(r chi.Router) {
		r.Use(s.requireSession, requireAdmin)
		r.Get("/all-tickets", s.allTickets)
		r.Patch("/{id}/priority", s.updatePriority)
		r.Patch("/assigned-ticket", s.assignTicket)
		r.Delete("/delete/{id}", s.deleteTicket)
	})

	return r
}

// AddUser registers an account directly and returns its id.
func (s *Server) AddUser(role models.Role, name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(role, name, email, password).ID
}

func (s *Server) addUserLocked(role models.Role, name, email, password string) user {
	s.seq++
	u := user{ID: fmt.Sprintf("u%d", s.seq), Name: name, Email: email, Password: password, Role: role}
	s.users[email] = u
	return u
}

// Seed appends tickets to the backend state as-is.
func (s *Server) Seed(tickets ...models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tickets {
		s.tickets = append(s.tickets, t.Clone())
	}
}

// Tickets returns a copy of the backend ticket state.
func (s *Server) Tickets() []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Ticket, len(s.tickets))
	for i, t := range s.tickets {
		out[i] = t.Clone()
	}
	return out
}

// FailNext makes the next request matching method and path answer with
// status and a {"message": message} body. An empty message sends an
// empty JSON object instead.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(CookieName)
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:     r.Method,
			Path:       r.URL.Path,
			RequestID:  r.Header.Get(common.RequestIDHeaderName),
			HadSession: err == nil,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.message == "" {
			writeJSON(w, f.status, map[string]any{})
			return
		}
		writeError(w, f.status, f.message)
	})
}
