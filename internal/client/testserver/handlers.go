package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/session"
)

type ctxKey string

const ctxUser ctxKey = "user"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}

func currentUser(r *http.Request) user {
	u, _ := r.Context().Value(ctxUser).(user)
	return u
}

func (s *Server) setSession(w http.ResponseWriter, u user) error {
	tok, err := session.Sign(s.secret, u.ID, string(u.Role), time.Now(), sessionTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || c.Value == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
			return
		}
		claims, err := session.Verify(s.secret, c.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid Token")
			return
		}

		s.mu.Lock()
		var found *user
		for _, u := range s.users {
			if u.ID == claims.UserID {
				found = &u
				break
			}
		}
		s.mu.Unlock()

		if found == nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUser, *found)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "Access denied - Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func roleParam(r *http.Request) (models.Role, bool) {
	switch role := models.Role(chi.URLParam(r, "role")); role {
	case models.RoleUser, models.RoleAdmin:
		return role, true
	}
	return "", false
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	role, ok := roleParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[in.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	u := s.addUserLocked(role, in.Name, in.Email, in.Password)
	s.mu.Unlock()

	if err := s.setSession(w, u); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": u.identity()})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	role, ok := roleParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	u, exists := s.users[in.Email]
	s.mu.Unlock()

	if !exists || u.Password != in.Password || u.Role != role {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := s.setSession(w, u); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u.identity()})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (s *Server) authCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": currentUser(r).identity()})
}

func (s *Server) listWhere(w http.ResponseWriter, keep func(models.Ticket) bool) {
	s.mu.Lock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.TicketsResponse{Tickets: out})
}

func (s *Server) userTickets(w http.ResponseWriter, r *http.Request) {
	uid := currentUser(r).ID
	s.listWhere(w, func(t models.Ticket) bool { return t.CreatedBy != nil && t.CreatedBy.ID == uid })
}

func (s *Server) assignedTickets(w http.ResponseWriter, r *http.Request) {
	uid := currentUser(r).ID
	s.listWhere(w, func(t models.Ticket) bool { return t.AssignedTo != nil && t.AssignedTo.ID == uid })
}

func (s *Server) allTickets(w http.ResponseWriter, r *http.Request) {
	s.listWhere(w, func(models.Ticket) bool { return true })
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var in models.NewTicket
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.seq++
	t := models.Ticket{
		ID:          fmt.Sprintf("t%d", s.seq),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      models.StatusNew,
		CreatedBy:   currentUser(r).ref(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tickets = append(s.tickets, t)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"ticket": t, "message": "Ticket created"})
}

// withTicket runs fn on the ticket named by the {id} URL param while
// holding the lock. fn returns the response body.
func (s *Server) withTicket(w http.ResponseWriter, r *http.Request, id string, fn func(t *models.Ticket) (int, any)) {
	s.mu.Lock()
	var status int
	var body any
	found := false
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			found = true
			status, body = fn(&s.tickets[i])
			break
		}
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	writeJSON(w, status, body)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var in models.NewComment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "Comment text is required")
		return
	}
	author := currentUser(r).ref()

	s.withTicket(w, r, chi.URLParam(r, "id"), func(t *models.Ticket) (int, any) {
		s.seq++
		c := models.Comment{ID: fmt.Sprintf("c%d", s.seq), Text: in.Text, Author: author, CreatedAt: time.Now().UTC()}
		t.Comments = append(t.Comments, c)
		return http.StatusCreated, map[string]any{"comment": c}
	})
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var in models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.withTicket(w, r, chi.URLParam(r, "id"), func(t *models.Ticket) (int, any) {
		t.Status = in.Status
		t.UpdatedAt = time.Now().UTC()
		return http.StatusOK, map[string]any{"_id": t.ID, "status": t.Status, "updatedAt": t.UpdatedAt}
	})
}

func (s *Server) updatePriority(w http.ResponseWriter, r *http.Request) {
	var in models.PriorityUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	s.withTicket(w, r, chi.URLParam(r, "id"), func(t *models.Ticket) (int, any) {
		t.Priority = in.Priority
		t.UpdatedAt = time.Now().UTC()
		return http.StatusOK, map[string]any{"ticket": t.Clone()}
	})
}

func (s *Server) assignTicket(w http.ResponseWriter, r *http.Request) {
	var in models.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeError(w, http.StatusBadRequest, "Ticket id and engineer id are required")
		return
	}

	s.mu.Lock()
	var engineer *user
	for _, u := range s.users {
		if u.ID == in.EngineerID {
			engineer = &u
			break
		}
	}
	s.mu.Unlock()
	if engineer == nil {
		writeError(w, http.StatusNotFound, "Engineer not found")
		return
	}

	s.withTicket(w, r, in.ID, func(t *models.Ticket) (int, any) {
		t.AssignedTo = engineer.ref()
		if t.Status == models.StatusNew {
			t.Status = models.StatusAssigned
		}
		return http.StatusOK, map[string]any{"assignedTo": t.AssignedTo, "message": "Ticket assigned"}
	})
}

func (s *Server) deleteWhere(w http.ResponseWriter, id string, allowed func(models.Ticket) bool) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tickets {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	if !allowed(s.tickets[idx]) {
		s.mu.Unlock()
		writeError(w, http.StatusForbidden, "Not allowed to remove this ticket")
		return
	}
	s.tickets = append(s.tickets[:idx:idx], s.tickets[idx+1:]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"message": "Ticket deleted"})
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	s.deleteWhere(w, chi.URLParam(r, "id"), func(models.Ticket) bool { return true })
}

func (s *Server) removeTicket(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.deleteWhere(w, chi.URLParam(r, "id"), func(t models.Ticket) bool {
		return u.Role == models.RoleAdmin || (t.CreatedBy != nil && t.CreatedBy.ID == u.ID)
	})
}
