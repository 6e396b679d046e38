// Package models defines the helpdesk records mirrored by the client:
// identities, tickets, comments and the typed request/response bodies
// exchanged with the backend.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrMissingID       = errors.New("missing _id")
)

// Status is the lifecycle state of a ticket. Transitions are owned by the
// server; the client only mirrors them.
type Status string

const (
	StatusNew         Status = "new"
	StatusAssigned    Status = "assigned"
	StatusInProgress  Status = "in_progress"
	StatusResolved    Status = "resolved"
	StatusNotResolved Status = "not_resolved"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{StatusNew, StatusAssigned, StatusInProgress, StatusResolved, StatusNotResolved}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusAssigned, StatusInProgress, StatusResolved, StatusNotResolved:
		return true
	}
	return false
}

// Label renders the status for humans, e.g. "in_progress" -> "In progress".
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusAssigned:
		return "Assigned"
	case StatusInProgress:
		return "In progress"
	case StatusResolved:
		return "Resolved"
	case StatusNotResolved:
		return "Not resolved"
	}
	return string(s)
}

// ParseStatus converts user or wire input into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(b))
	}
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority is the urgency assigned by an administrator. The zero value
// means no priority has been set.
type Priority string

const (
	PriorityNone     Priority = ""
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func (p Priority) IsSet() bool { return p != PriorityNone }

func (p Priority) Label() string {
	if p == PriorityNone {
		return "-"
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePriority converts input into a Priority. Empty input yields
// PriorityNone.
func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, v)
	}
	return p, nil
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = PriorityNone
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, string(b))
	}
	parsed, err := ParsePriority(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UserRef points at a user record. The backend sends either the bare id
// or a populated object, both decode into UserRef.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (u *UserRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*u = UserRef{ID: id}
		return nil
	}
	type plain UserRef
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*u = UserRef(v)
	return nil
}

func (u *UserRef) String() string {
	switch {
	case u == nil:
		return "-"
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	}
	return u.ID
}

func (u *UserRef) clone() *UserRef {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Comment is an append-only note on a ticket.
type Comment struct {
	ID        string    `json:"_id,omitempty"`
	Text      string    `json:"text"`
	Author    *UserRef  `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) Clone() Comment {
	c.Author = c.Author.clone()
	return c
}

// Ticket is the client-side mirror of a server ticket.
type Ticket struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Category    string    `json:"category,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	AssignedTo  *UserRef  `json:"assignedTo,omitempty"`
	CreatedBy   *UserRef  `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Comments    []Comment `json:"comments,omitempty"`
}

// Validate reports whether t carries the fields the client relies on.
func (t Ticket) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("ticket: %w", ErrMissingID)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("ticket %s: %w: %q", t.ID, ErrInvalidStatus, t.Status)
	}
	return nil
}

// Clone returns a deep copy so that callers can never alias store state.
func (t Ticket) Clone() Ticket {
	t.AssignedTo = t.AssignedTo.clone()
	t.CreatedBy = t.CreatedBy.clone()
	if t.Comments != nil {
		comments := make([]Comment, len(t.Comments))
		for i, c := range t.Comments {
			comments[i] = c.Clone()
		}
		t.Comments = comments
	}
	return t
}

// WithComment returns a copy of t with c appended to its comments.
func (t Ticket) WithComment(c Comment) Ticket {
	out := t.Clone()
	out.Comments = append(out.Comments, c.Clone())
	return out
}

// WithAssignee returns a copy of t assigned to ref.
func (t Ticket) WithAssignee(ref *UserRef) Ticket {
	out := t.Clone()
	out.AssignedTo = ref.clone()
	return out
}

// TicketPatch is a partial ticket as returned by the status and priority
// endpoints. Every key present in the body is applied, an explicit null or
// empty value included. The id is never patched.
type TicketPatch struct {
	values Ticket
	keys   map[string]bool
}

// patchKeys lists the ticket members a patch may carry.
var patchKeys = []string{
	"title", "description", "status", "category", "priority",
	"assignedTo", "createdBy", "createdAt", "updatedAt", "comments",
}

func (p *TicketPatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("ticket patch: %w", ErrIncompleteResponse)
	}

	*p = TicketPatch{keys: make(map[string]bool, len(raw))}
	for _, key := range patchKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		p.keys[key] = true
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			// A ticket cannot lose its status.
			if key == "status" {
				return fmt.Errorf("%w: null", ErrInvalidStatus)
			}
			continue
		}
		if err := json.Unmarshal(v, p.values.field(key)); err != nil {
			return fmt.Errorf("ticket patch %s: %w", key, err)
		}
	}
	return nil
}

// Has reports whether the patch body carried key.
func (p TicketPatch) Has(key string) bool { return p.keys[key] }

// Apply returns a copy of t with every present field of p applied.
func (p TicketPatch) Apply(t Ticket) Ticket {
	out := t.Clone()
	src := p.values.Clone()
	for _, key := range patchKeys {
		if !p.keys[key] {
			continue
		}
		switch key {
		case "title":
			out.Title = src.Title
		case "description":
			out.Description = src.Description
		case "status":
			out.Status = src.Status
		case "category":
			out.Category = src.Category
		case "priority":
			out.Priority = src.Priority
		case "assignedTo":
			out.AssignedTo = src.AssignedTo
		case "createdBy":
			out.CreatedBy = src.CreatedBy
		case "createdAt":
			out.CreatedAt = src.CreatedAt
		case "updatedAt":
			out.UpdatedAt = src.UpdatedAt
		case "comments":
			out.Comments = src.Comments
		}
	}
	return out
}

// field returns a pointer to the member of t named by its wire key.
func (t *Ticket) field(key string) any {
	switch key {
	case "title":
		return &t.Title
	case "description":
		return &t.Description
	case "status":
		return &t.Status
	case "category":
		return &t.Category
	case "priority":
		return &t.Priority
	case "assignedTo":
		return &t.AssignedTo
	case "createdBy":
		return &t.CreatedBy
	case "createdAt":
		return &t.CreatedAt
	case "updatedAt":
		return &t.UpdatedAt
	case "comments":
		return &t.Comments
	}
	return nil
}
