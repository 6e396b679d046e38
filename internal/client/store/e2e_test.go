package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/notify"
	"github.com/dmitrijs2005/helpdesk/internal/client/testserver"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

func TestStores_AgainstFakeBackend(t *testing.T) {
	srv := testserver.New(t)
	hc, err := client.NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)

	rec := &notify.Recorder{}
	auth := NewAuthStore(hc, rec, logging.Discard())
	tickets := NewTicketStore(hc, rec, logging.Discard())
	ctx := context.Background()

	// No cookie yet: the silent session check leaves us logged out.
	require.ErrorIs(t, auth.AuthCheck(ctx), client.ErrUnauthorized)
	assert.False(t, auth.IsAuthenticated())
	assert.Empty(t, rec.All())

	engineer := srv.AddUser(models.RoleUser, "Eve", "eve@example.com", "pw")
	require.NoError(t, auth.AdminSignup(ctx, models.Credentials{Name: "Root", Email: "root@example.com", Password: "pw"}))
	require.True(t, auth.IsAuthenticated())

	created, err := tickets.CreateTicket(ctx, models.NewTicket{Title: "Laptop broken", Priority: models.PriorityLow})
	require.NoError(t, err)

	require.NoError(t, tickets.FetchAllTickets(ctx))
	require.Len(t, tickets.Snapshot().Tickets, 1)

	require.NoError(t, tickets.UpdatePriority(ctx, created.ID, models.PriorityHigh))
	require.NoError(t, tickets.AssignTicket(ctx, created.ID, engineer))
	require.NoError(t, tickets.AddComment(ctx, created.ID, models.NewComment{Text: "on it"}))

	st := tickets.Snapshot()
	got := st.Tickets[0]
	assert.Equal(t, models.PriorityHigh, got.Priority)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, engineer, got.AssignedTo.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "on it", got.Comments[0].Text)

	srv.FailNext(http.MethodDelete, "/api/v1/admin/dashboard/delete/"+created.ID, http.StatusInternalServerError, "database down")
	require.Error(t, tickets.DeleteTicket(ctx, created.ID))
	assert.Len(t, tickets.Snapshot().Tickets, 1)

	require.NoError(t, tickets.DeleteTicket(ctx, created.ID))
	assert.Empty(t, tickets.Snapshot().Tickets)

	require.NoError(t, auth.UserLogout(ctx))
	tickets.ClearTickets()
	assert.False(t, auth.IsAuthenticated())

	msgs := make([]string, 0)
	for _, n := range rec.All() {
		msgs = append(msgs, n.Message)
	}
	assert.Equal(t, []string{
		"Admin account created successfully",
		"Ticket created successfully",
		"Priority updated successfully",
		"Ticket assigned successfully",
		"Comment added successfully",
		"database down",
		"Ticket deleted successfully",
		"Logged out successfully",
	}, msgs)
}

func TestStores_UserFlowAgainstFakeBackend(t *testing.T) {
	srv := testserver.New(t)
	hc, err := client.NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)

	rec := &notify.Recorder{}
	auth := NewAuthStore(hc, rec, logging.Discard())
	tickets := NewTicketStore(hc, rec, logging.Discard())
	ctx := context.Background()

	uid := srv.AddUser(models.RoleUser, "Ann", "ann@example.com", "pw")
	require.NoError(t, auth.UserLogin(ctx, models.Credentials{Email: "ann@example.com", Password: "pw"}))
	srv.Seed(models.Ticket{ID: "t1", Title: "mine", Status: models.StatusAssigned,
		CreatedBy: &models.UserRef{ID: uid}, AssignedTo: &models.UserRef{ID: uid}})

	require.NoError(t, tickets.FetchUserTickets(ctx))
	require.NoError(t, tickets.FetchAssignedTickets(ctx))
	require.NoError(t, tickets.UpdateStatus(ctx, "t1", models.StatusInProgress))

	st := tickets.Snapshot()
	assert.Equal(t, models.StatusAssigned, st.Tickets[0].Status, "status updates patch the assigned list only")
	assert.Equal(t, models.StatusInProgress, st.Assigned[0].Status)

	err = tickets.FetchAllTickets(ctx)
	require.ErrorIs(t, err, client.ErrForbidden)
	last, _ := rec.Last()
	assert.Equal(t, "Access denied - Admins only", last.Message)

	require.NoError(t, tickets.RemoveTicket(ctx, "t1"))
	st = tickets.Snapshot()
	assert.Empty(t, st.Tickets)
	assert.Empty(t, st.Assigned)

	require.Error(t, auth.UserLogin(ctx, models.Credentials{Email: "ann@example.com", Password: "bad"}))
	assert.False(t, auth.IsAuthenticated())
	last, _ = rec.Last()
	assert.Equal(t, "Invalid credentials", last.Message)
}
