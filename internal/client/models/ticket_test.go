package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "new", want: StatusNew},
		{in: "assigned", want: StatusAssigned},
		{in: " In_Progress ", want: StatusInProgress},
		{in: "resolved", want: StatusResolved},
		{in: "not_resolved", want: StatusNotResolved},
		{in: "", wantErr: true},
		{in: "closed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Not resolved", StatusNotResolved.Label())
	for _, s := range Statuses {
		assert.NotEmpty(t, s.Label())
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNone, p)
	assert.False(t, p.IsSet())

	p, err = ParsePriority("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)
	assert.Equal(t, "Critical", p.Label())

	_, err = ParsePriority("urgent")
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTicket_UnmarshalJSON(t *testing.T) {
	body := `{
		"_id": "t1",
		"title": "Printer on fire",
		"status": "in_progress",
		"category": "hardware",
		"priority": null,
		"assignedTo": "eng-7",
		"createdBy": {"_id": "u1", "name": "Alice"},
		"createdAt": "2025-01-02T03:04:05Z",
		"comments": [{"_id": "c1", "text": "on it", "author": "eng-7"}]
	}`

	var tk Ticket
	require.NoError(t, json.Unmarshal([]byte(body), &tk))
	require.NoError(t, tk.Validate())

	assert.Equal(t, "t1", tk.ID)
	assert.Equal(t, StatusInProgress, tk.Status)
	assert.Equal(t, PriorityNone, tk.Priority)
	require.NotNil(t, tk.AssignedTo)
	assert.Equal(t, "eng-7", tk.AssignedTo.ID)
	assert.Equal(t, "Alice", tk.CreatedBy.String())
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), tk.CreatedAt)
	require.Len(t, tk.Comments, 1)
	assert.Equal(t, "eng-7", tk.Comments[0].Author.ID)
}

func TestTicket_UnmarshalJSON_RejectsUnknownEnums(t *testing.T) {
	var tk Ticket
	err := json.Unmarshal([]byte(`{"_id":"t1","status":"closed"}`), &tk)
	require.ErrorIs(t, err, ErrInvalidStatus)

	err = json.Unmarshal([]byte(`{"_id":"t1","status":"new","priority":"urgent"}`), &tk)
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTicket_Validate(t *testing.T) {
	require.ErrorIs(t, Ticket{Status: StatusNew}.Validate(), ErrMissingID)
	require.ErrorIs(t, Ticket{ID: "t1"}.Validate(), ErrInvalidStatus)
	require.NoError(t, Ticket{ID: "t1", Status: StatusNew}.Validate())
}

func TestTicket_CloneDoesNotAlias(t *testing.T) {
	orig := Ticket{
		ID:         "t1",
		AssignedTo: &UserRef{ID: "e1"},
		Comments:   []Comment{{Text: "a", Author: &UserRef{ID: "u1"}}},
	}
	c := orig.Clone()
	c.AssignedTo.ID = "e2"
	c.Comments[0].Text = "b"
	c.Comments[0].Author.ID = "u2"

	assert.Equal(t, "e1", orig.AssignedTo.ID)
	assert.Equal(t, "a", orig.Comments[0].Text)
	assert.Equal(t, "u1", orig.Comments[0].Author.ID)
}

func TestTicket_WithComment_NoPriorComments(t *testing.T) {
	orig := Ticket{ID: "t1", Status: StatusNew}
	got := orig.WithComment(Comment{Text: "hello"})

	require.Len(t, got.Comments, 1)
	assert.Equal(t, "hello", got.Comments[0].Text)
	assert.Nil(t, orig.Comments)
}

func TestTicketPatch_AppliesPresentKeysOnly(t *testing.T) {
	var p TicketPatch
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"other","status":"resolved"}`), &p))

	orig := Ticket{ID: "t1", Title: "x", Status: StatusInProgress, Priority: PriorityMedium}
	got := p.Apply(orig)

	assert.Equal(t, StatusResolved, got.Status)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, StatusInProgress, orig.Status)
}

func TestTicketPatch_AppliesNullAndEmpty(t *testing.T) {
	body := `{"priority":null,"assignedTo":null,"description":"","comments":[]}`
	var p TicketPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.True(t, p.Has("assignedTo"))
	assert.False(t, p.Has("title"))

	orig := Ticket{
		ID:          "t1",
		Title:       "x",
		Description: "old",
		Status:      StatusAssigned,
		Priority:    PriorityHigh,
		AssignedTo:  &UserRef{ID: "e1"},
		Comments:    []Comment{{Text: "a"}},
	}
	got := p.Apply(orig)

	assert.Nil(t, got.AssignedTo)
	assert.Equal(t, PriorityNone, got.Priority)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.Comments)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, StatusAssigned, got.Status)

	require.NotNil(t, orig.AssignedTo)
	assert.Equal(t, "old", orig.Description)
}

func TestTicketPatch_ApplyDoesNotAlias(t *testing.T) {
	var p TicketPatch
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo":{"_id":"e2"}}`), &p))

	first := p.Apply(Ticket{ID: "t1"})
	first.AssignedTo.ID = "changed"

	second := p.Apply(Ticket{ID: "t1"})
	assert.Equal(t, "e2", second.AssignedTo.ID)
}

func TestTicketPatch_Rejects(t *testing.T) {
	var p TicketPatch
	require.ErrorIs(t, json.Unmarshal([]byte(`{"status":null}`), &p), ErrInvalidStatus)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"status":"closed"}`), &p), ErrInvalidStatus)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"priority":"urgent"}`), &p), ErrInvalidPriority)
	require.Error(t, json.Unmarshal([]byte(`[1]`), &p))
}

func TestUserRef_String(t *testing.T) {
	var nilRef *UserRef
	assert.Equal(t, "-", nilRef.String())
	assert.Equal(t, "id", (&UserRef{ID: "id"}).String())
	assert.Equal(t, "a@b", (&UserRef{ID: "id", Email: "a@b"}).String())
}
