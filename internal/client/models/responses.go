package models

import (
	"errors"
	"fmt"
)

// ErrIncompleteResponse is returned by Validate when a response body
// lacks the member its endpoint promises.
var ErrIncompleteResponse = errors.New("incomplete response")

// AuthResponse is returned by signup, login and the session check.
type AuthResponse struct {
	User *Identity `json:"user"`
}

func (r AuthResponse) Validate() error {
	if r.User == nil {
		return fmt.Errorf("%w: user", ErrIncompleteResponse)
	}
	return nil
}

// TicketsResponse is returned by every list endpoint.
type TicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

func (r TicketsResponse) Validate() error {
	for _, t := range r.Tickets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TicketResponse is returned by create.
type TicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

func (r TicketResponse) Validate() error {
	if r.Ticket == nil {
		return fmt.Errorf("%w: ticket", ErrIncompleteResponse)
	}
	return r.Ticket.Validate()
}

// PatchResponse is returned by the priority update. The ticket is kept as
// a patch so that explicit nulls reach the mirrors.
type PatchResponse struct {
	Ticket *TicketPatch `json:"ticket"`
}

func (r PatchResponse) Validate() error {
	if r.Ticket == nil {
		return fmt.Errorf("%w: ticket", ErrIncompleteResponse)
	}
	return nil
}

type CommentResponse struct {
	Comment *Comment `json:"comment"`
}

func (r CommentResponse) Validate() error {
	if r.Comment == nil {
		return fmt.Errorf("%w: comment", ErrIncompleteResponse)
	}
	return nil
}

// AssignResponse carries the new assignee. A null assignee is accepted and
// mirrored as unassigned.
type AssignResponse struct {
	AssignedTo *UserRef `json:"assignedTo"`
}

// ErrorResponse is the body of any non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
}
