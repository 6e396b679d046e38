package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/testserver"
)

func newTestClient(t *testing.T) (*HTTPClient, *testserver.Server) {
	t.Helper()
	srv := testserver.New(t)
	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func loginAs(t *testing.T, c *HTTPClient, srv *testserver.Server, role models.Role, email string) string {
	t.Helper()
	id := srv.AddUser(role, "Test "+string(role), email, "pw")
	_, err := c.Login(context.Background(), role, models.Credentials{Email: email, Password: "pw"})
	require.NoError(t, err)
	return id
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", time.Second)
	require.Error(t, err)

	_, err = NewHTTPClient("://nope", time.Second)
	require.Error(t, err)
}

func TestHTTPClient_SignupLoginLogout(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	id, err := c.Signup(ctx, models.RoleUser, models.Credentials{Name: "Alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "Alice", id.Name)
	assert.NotEmpty(t, id.Raw)

	require.NotEmpty(t, c.Cookies(), "signup should start a session")

	checked, err := c.AuthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, id.ID, checked.ID)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Cookies())

	_, err = c.AuthCheck(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	seen := map[string]bool{}
	for _, r := range reqs {
		assert.NotEmpty(t, r.RequestID, "%s %s", r.Method, r.Path)
		assert.False(t, seen[r.RequestID], "request id reused")
		seen[r.RequestID] = true
	}
}

func TestHTTPClient_LoginFailureCarriesServerMessage(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddUser(models.RoleUser, "Bob", "bob@example.com", "secret")

	_, err := c.Login(context.Background(), models.RoleUser, models.Credentials{Email: "bob@example.com", Password: "wrong"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Invalid credentials", MessageOrFallback(err, "Login failed"))
}

func TestHTTPClient_ValidationSkipsNetwork(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, models.RoleUser, models.Credentials{Email: "x@y"})
	require.ErrorIs(t, err, models.ErrCredentialsRequired)

	_, err = c.CreateTicket(ctx, models.NewTicket{})
	require.ErrorIs(t, err, models.ErrTitleRequired)

	_, err = c.AddComment(ctx, "t1", models.NewComment{Text: " "})
	require.ErrorIs(t, err, models.ErrCommentRequired)

	err = c.DeleteTicket(ctx, "")
	require.ErrorIs(t, err, models.ErrTicketIDRequired)

	assert.Empty(t, srv.Requests())
}

func TestHTTPClient_TicketLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	engineer := srv.AddUser(models.RoleUser, "Eve", "eve@example.com", "pw")
	loginAs(t, c, srv, models.RoleAdmin, "admin@example.com")

	created, err := c.CreateTicket(ctx, models.NewTicket{Title: "VPN down", Category: "network", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusNew, created.Status)
	assert.Equal(t, models.PriorityHigh, created.Priority)

	all, err := c.FetchAllTickets(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{created.ID}, ticketIDs(all)); diff != "" {
		t.Fatalf("all tickets mismatch (-want +got):\n%s", diff)
	}

	comment, err := c.AddComment(ctx, created.ID, models.NewComment{Text: "looking"})
	require.NoError(t, err)
	assert.Equal(t, "looking", comment.Text)
	assert.NotEmpty(t, comment.ID)

	patch, err := c.UpdateStatus(ctx, created.ID, models.StatusUpdate{Status: models.StatusInProgress})
	require.NoError(t, err)
	assert.True(t, patch.Has("status"))
	assert.True(t, patch.Has("updatedAt"))
	assert.False(t, patch.Has("title"))
	patched := patch.Apply(*created)
	assert.Equal(t, models.StatusInProgress, patched.Status)
	assert.Equal(t, created.Title, patched.Title)

	prio, err := c.UpdatePriority(ctx, created.ID, models.PriorityUpdate{Priority: models.PriorityCritical})
	require.NoError(t, err)
	patched = prio.Apply(*created)
	assert.Equal(t, models.PriorityCritical, patched.Priority)
	assert.Equal(t, created.ID, patched.ID)

	ref, err := c.AssignTicket(ctx, models.AssignRequest{ID: created.ID, EngineerID: engineer})
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, engineer, ref.ID)
	assert.Equal(t, "Eve", ref.Name)

	require.NoError(t, c.DeleteTicket(ctx, created.ID))
	assert.Empty(t, srv.Tickets())

	err = c.DeleteTicket(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Ticket not found", MessageOrFallback(err, "Ticket deletion failed"))
}

func TestHTTPClient_UserAndAssignedLists(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	uid := loginAs(t, c, srv, models.RoleUser, "u@example.com")

	srv.Seed(
		models.Ticket{ID: "a", Title: "mine", Status: models.StatusNew, CreatedBy: &models.UserRef{ID: uid}},
		models.Ticket{ID: "b", Title: "other", Status: models.StatusNew, CreatedBy: &models.UserRef{ID: "zz"}},
		models.Ticket{ID: "c", Title: "assigned", Status: models.StatusAssigned, CreatedBy: &models.UserRef{ID: "zz"}, AssignedTo: &models.UserRef{ID: uid}},
	)

	mine, err := c.FetchUserTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ticketIDs(mine))

	assigned, err := c.FetchAssignedTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ticketIDs(assigned))

	_, err = c.FetchAllTickets(ctx)
	require.ErrorIs(t, err, ErrForbidden)

	err = c.RemoveTicket(ctx, "b")
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, c.RemoveTicket(ctx, "a"))
	assert.Len(t, srv.Tickets(), 2)
}

func TestHTTPClient_EmptyListIsNotNil(t *testing.T) {
	c, srv := newTestClient(t)
	loginAs(t, c, srv, models.RoleUser, "u@example.com")

	got, err := c.FetchUserTickets(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHTTPClient_MalformedResponse(t *testing.T) {
	c, srv := newTestClient(t)
	loginAs(t, c, srv, models.RoleUser, "u@example.com")

	srv.FailNext(http.MethodPost, "/api/v1/dashboard/create", http.StatusOK, "")
	_, err := c.CreateTicket(context.Background(), models.NewTicket{Title: "x"})
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, "Ticket creation failed", MessageOrFallback(err, "Ticket creation failed"))
}

func TestHTTPClient_ErrorWithoutMessage(t *testing.T) {
	c, srv := newTestClient(t)
	loginAs(t, c, srv, models.RoleUser, "u@example.com")

	srv.FailNext(http.MethodGet, "/api/v1/dashboard/user", http.StatusInternalServerError, "")
	_, err := c.FetchUserTickets(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "Failed to fetch tickets", MessageOrFallback(err, "Failed to fetch tickets"))
}

func TestHTTPClient_PathIDsAreEscaped(t *testing.T) {
	c, srv := newTestClient(t)
	loginAs(t, c, srv, models.RoleAdmin, "a@example.com")

	// An unescaped slash would miss the route and get a bare router 404.
	err := c.DeleteTicket(context.Background(), "a/b")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Ticket not found", MessageOrFallback(err, ""))
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := testserver.New(t)
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)
	srv.Close()

	_, err = c.AuthCheck(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Login failed", MessageOrFallback(err, "Login failed"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestHTTPClient_WithTransport(t *testing.T) {
	var seen *http.Request
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return nil, errors.New("no route to host")
	})
	c, err := NewHTTPClient("http://helpdesk.invalid/", time.Second, WithTransport(rt))
	require.NoError(t, err)

	err = c.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)

	require.NotNil(t, seen)
	assert.Equal(t, "http://helpdesk.invalid/api/v1/auth/user/logout", seen.URL.String())
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	assert.NotEmpty(t, seen.Header.Get("X-Request-ID"))
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.AuthCheck(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func ticketIDs(ts []models.Ticket) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}
