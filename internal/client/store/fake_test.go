package store

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

/*************
 * Fake client
 *************/

type fakeClient struct {
	mu    sync.Mutex
	calls []string

	// outputs preset
	identity    *models.Identity
	identityErr error
	logoutErr   error

	all         []models.Ticket
	user        []models.Ticket
	assigned    []models.Ticket
	fetchErr    error
	created     *models.Ticket
	createErr   error
	comment     *models.Comment
	commentErr  error
	statusPatch *models.TicketPatch
	statusErr   error
	priorityRes *models.TicketPatch
	priorityErr error
	assignee    *models.UserRef
	assignErr   error
	deleteErr   error
	removeErr   error

	// gates holds calls named by key until the channel is closed. entered
	// receives the name once the call is parked.
	gates   map[string]chan struct{}
	entered chan string
}

func newFakeClient() *fakeClient {
	return &fakeClient{gates: map[string]chan struct{}{}, entered: make(chan string, 16)}
}

// hold parks the next calls of name until the returned func is called.
func (f *fakeClient) hold(name string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[name] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *fakeClient) record(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	gate := f.gates[name]
	f.mu.Unlock()

	if gate != nil {
		f.entered <- name
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Signup(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error) {
	if err := f.record(ctx, "signup:"+string(role)); err != nil {
		return nil, err
	}
	return f.identity, f.identityErr
}

func (f *fakeClient) Login(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error) {
	if err := f.record(ctx, "login:"+string(role)); err != nil {
		return nil, err
	}
	return f.identity, f.identityErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	if err := f.record(ctx, "logout"); err != nil {
		return err
	}
	return f.logoutErr
}

func (f *fakeClient) AuthCheck(ctx context.Context) (*models.Identity, error) {
	if err := f.record(ctx, "authCheck"); err != nil {
		return nil, err
	}
	return f.identity, f.identityErr
}

func (f *fakeClient) FetchAllTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := f.record(ctx, "fetchAll"); err != nil {
		return nil, err
	}
	return f.all, f.fetchErr
}

func (f *fakeClient) FetchUserTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := f.record(ctx, "fetchUser"); err != nil {
		return nil, err
	}
	return f.user, f.fetchErr
}

func (f *fakeClient) FetchAssignedTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := f.record(ctx, "fetchAssigned"); err != nil {
		return nil, err
	}
	return f.assigned, f.fetchErr
}

func (f *fakeClient) CreateTicket(ctx context.Context, t models.NewTicket) (*models.Ticket, error) {
	if err := f.record(ctx, "create"); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return f.created, f.createErr
}

func (f *fakeClient) AddComment(ctx context.Context, ticketID string, c models.NewComment) (*models.Comment, error) {
	if err := f.record(ctx, "comment:"+ticketID); err != nil {
		return nil, err
	}
	return f.comment, f.commentErr
}

func (f *fakeClient) UpdateStatus(ctx context.Context, ticketID string, u models.StatusUpdate) (*models.TicketPatch, error) {
	if err := f.record(ctx, "status:"+ticketID); err != nil {
		return nil, err
	}
	return f.statusPatch, f.statusErr
}

func (f *fakeClient) UpdatePriority(ctx context.Context, ticketID string, u models.PriorityUpdate) (*models.TicketPatch, error) {
	if err := f.record(ctx, "priority:"+ticketID); err != nil {
		return nil, err
	}
	return f.priorityRes, f.priorityErr
}

func (f *fakeClient) AssignTicket(ctx context.Context, a models.AssignRequest) (*models.UserRef, error) {
	if err := f.record(ctx, "assign:"+a.ID); err != nil {
		return nil, err
	}
	return f.assignee, f.assignErr
}

func (f *fakeClient) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := f.record(ctx, "delete:"+ticketID); err != nil {
		return err
	}
	return f.deleteErr
}

func (f *fakeClient) RemoveTicket(ctx context.Context, ticketID string) error {
	if err := f.record(ctx, "remove:"+ticketID); err != nil {
		return err
	}
	return f.removeErr
}

func (f *fakeClient) Cookies() []*http.Cookie { return nil }
func (f *fakeClient) Close() error            { return nil }
