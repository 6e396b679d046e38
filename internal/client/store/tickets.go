package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/notify"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

// TicketState is a point-in-time copy of the ticket store. Tickets is the
// user or all-tickets list, depending on which fetch ran last; Assigned is
// the list of tickets assigned to the current user.
type TicketState struct {
	Tickets  []models.Ticket
	Assigned []models.Ticket

	Loading  bool
	Creating bool
	Updating bool
	Deleting bool
	Fetching bool
}

// Find returns the ticket with the given id from either list, preferring
// Tickets.
func (s TicketState) Find(id string) (models.Ticket, bool) {
	for _, list := range [][]models.Ticket{s.Tickets, s.Assigned} {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	return models.Ticket{}, false
}

type TicketStore struct {
	client client.Client
	notify notify.Notifier
	log    logging.Logger

	mu       sync.RWMutex
	tickets  []models.Ticket
	assigned []models.Ticket
	busy     busy
}

func NewTicketStore(c client.Client, n notify.Notifier, log logging.Logger) *TicketStore {
	return &TicketStore{
		client:   c,
		notify:   n,
		log:      log.With("store", "tickets"),
		tickets:  []models.Ticket{},
		assigned: []models.Ticket{},
	}
}

func (s *TicketStore) Snapshot() TicketState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TicketState{
		Tickets:  cloneAll(s.tickets),
		Assigned: cloneAll(s.assigned),
		Loading:  s.busy.category(CategoryLoading),
		Creating: s.busy.category(CategoryCreating),
		Updating: s.busy.category(CategoryUpdating),
		Deleting: s.busy.category(CategoryDeleting),
		Fetching: s.busy.category(CategoryFetching),
	}
}

// Busy reports whether at least one call of op is in flight.
func (s *TicketStore) Busy(op Op) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy.active(op)
}

func (s *TicketStore) FetchAllTickets(ctx context.Context) error {
	return s.fetch(ctx, OpFetchAll, s.client.FetchAllTickets, func(list []models.Ticket) { s.tickets = list })
}

func (s *TicketStore) FetchUserTickets(ctx context.Context) error {
	return s.fetch(ctx, OpFetchUser, s.client.FetchUserTickets, func(list []models.Ticket) { s.tickets = list })
}

func (s *TicketStore) FetchAssignedTickets(ctx context.Context) error {
	return s.fetch(ctx, OpFetchAssigned, s.client.FetchAssignedTickets, func(list []models.Ticket) { s.assigned = list })
}

func (s *TicketStore) fetch(ctx context.Context, op Op, call func(context.Context) ([]models.Ticket, error), set func([]models.Ticket)) error {
	return s.run(ctx, op, "", msgFetchFail, func(ctx context.Context) (func(), error) {
		list, err := call(ctx)
		if err != nil {
			return nil, err
		}
		list = cloneAll(list)
		return func() { set(list) }, nil
	})
}

// CreateTicket submits a new ticket and appends the server's copy to the
// ticket list.
func (s *TicketStore) CreateTicket(ctx context.Context, in models.NewTicket) (*models.Ticket, error) {
	var created models.Ticket
	err := s.run(ctx, OpCreate, msgCreateOK, msgCreateFail, func(ctx context.Context) (func(), error) {
		t, err := s.client.CreateTicket(ctx, in)
		if err != nil {
			return nil, err
		}
		created = t.Clone()
		return func() {
			s.tickets = appendTicket(s.tickets, created.Clone())
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AddComment appends the acknowledged comment to the ticket in both lists.
func (s *TicketStore) AddComment(ctx context.Context, ticketID string, in models.NewComment) error {
	return s.run(ctx, OpAddComment, msgCommentOK, msgCommentFail, func(ctx context.Context) (func(), error) {
		c, err := s.client.AddComment(ctx, ticketID, in)
		if err != nil {
			return nil, err
		}
		comment := c.Clone()
		return func() {
			add := func(t models.Ticket) models.Ticket { return t.WithComment(comment) }
			s.tickets = updateTicket(s.tickets, ticketID, add)
			s.assigned = updateTicket(s.assigned, ticketID, add)
		}, nil
	})
}

// UpdateStatus merges the server's partial ticket into the assigned list.
// The ticket list is left as it is.
func (s *TicketStore) UpdateStatus(ctx context.Context, ticketID string, status models.Status) error {
	return s.run(ctx, OpUpdateStatus, msgStatusOK, msgStatusFail, func(ctx context.Context) (func(), error) {
		patch, err := s.client.UpdateStatus(ctx, ticketID, models.StatusUpdate{Status: status})
		if err != nil {
			return nil, err
		}
		return func() {
			s.assigned = updateTicket(s.assigned, ticketID, patch.Apply)
		}, nil
	})
}

// UpdatePriority applies the returned ticket to the ticket list. The
// assigned list is left as it is.
func (s *TicketStore) UpdatePriority(ctx context.Context, ticketID string, priority models.Priority) error {
	return s.run(ctx, OpUpdatePriority, msgPriorityOK, msgPriorityFail, func(ctx context.Context) (func(), error) {
		patch, err := s.client.UpdatePriority(ctx, ticketID, models.PriorityUpdate{Priority: priority})
		if err != nil {
			return nil, err
		}
		return func() {
			s.tickets = updateTicket(s.tickets, ticketID, patch.Apply)
		}, nil
	})
}

// AssignTicket sets the assignee of the ticket in both lists.
func (s *TicketStore) AssignTicket(ctx context.Context, ticketID, engineerID string) error {
	return s.run(ctx, OpAssign, msgAssignOK, msgAssignFail, func(ctx context.Context) (func(), error) {
		ref, err := s.client.AssignTicket(ctx, models.AssignRequest{ID: ticketID, EngineerID: engineerID})
		if err != nil {
			return nil, err
		}
		return func() {
			assign := func(t models.Ticket) models.Ticket { return t.WithAssignee(ref) }
			s.tickets = updateTicket(s.tickets, ticketID, assign)
			s.assigned = updateTicket(s.assigned, ticketID, assign)
		}, nil
	})
}

// DeleteTicket is the admin delete. It drops the ticket from the ticket
// list only.
func (s *TicketStore) DeleteTicket(ctx context.Context, ticketID string) error {
	return s.run(ctx, OpDelete, msgDeleteOK, msgDeleteFail, func(ctx context.Context) (func(), error) {
		if err := s.client.DeleteTicket(ctx, ticketID); err != nil {
			return nil, err
		}
		return func() {
			s.tickets = removeTicket(s.tickets, ticketID)
		}, nil
	})
}

// RemoveTicket is the owner remove. It drops the ticket from both lists.
func (s *TicketStore) RemoveTicket(ctx context.Context, ticketID string) error {
	return s.run(ctx, OpRemove, msgRemoveOK, msgRemoveFail, func(ctx context.Context) (func(), error) {
		if err := s.client.RemoveTicket(ctx, ticketID); err != nil {
			return nil, err
		}
		return func() {
			s.tickets = removeTicket(s.tickets, ticketID)
			s.assigned = removeTicket(s.assigned, ticketID)
		}, nil
	})
}

// ClearTickets empties the ticket list without contacting the server.
func (s *TicketStore) ClearTickets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = []models.Ticket{}
}

// run marks op busy, performs call without holding the lock and applies
// the returned patch under the lock. The patch sees the state current at
// that moment, not the state when the call started.
func (s *TicketStore) run(ctx context.Context, op Op, okMsg, failMsg string, call func(context.Context) (func(), error)) error {
	s.mu.Lock()
	s.busy.begin(op)
	s.mu.Unlock()

	patch, err := call(ctx)

	s.mu.Lock()
	if err == nil && patch != nil {
		patch()
	}
	s.busy.end(op)
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "ticket operation failed", "op", op.String(), "error", err)
		s.notify.Error(failureMessage(err, failMsg))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info(ctx, "ticket operation done", "op", op.String())
	if okMsg != "" {
		s.notify.Success(okMsg)
	}
	return nil
}
