package models

import (
	"errors"
	"strings"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrTitleRequired       = errors.New("title is required")
	ErrCommentRequired     = errors.New("comment text is required")
	ErrTicketIDRequired    = errors.New("ticket id is required")
	ErrEngineerIDRequired  = errors.New("engineer id is required")
)

// Credentials is the body of the signup and login endpoints. Name is only
// sent on signup.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// NewTicket is the body of the create endpoint.
type NewTicket struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

func (n NewTicket) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrTitleRequired
	}
	if !n.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

type StatusUpdate struct {
	Status Status `json:"status"`
}

func (s StatusUpdate) Validate() error {
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

type PriorityUpdate struct {
	Priority Priority `json:"priority"`
}

func (p PriorityUpdate) Validate() error {
	if !p.Priority.IsSet() || !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// AssignRequest carries both ids in the body; the assign endpoint has no
// path parameter.
type AssignRequest struct {
	ID         string `json:"id"`
	EngineerID string `json:"engineerId"`
}

func (a AssignRequest) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrTicketIDRequired
	}
	if strings.TrimSpace(a.EngineerID) == "" {
		return ErrEngineerIDRequired
	}
	return nil
}

type NewComment struct {
	Text string `json:"text"`
}

func (n NewComment) Validate() error {
	if strings.TrimSpace(n.Text) == "" {
		return ErrCommentRequired
	}
	return nil
}
