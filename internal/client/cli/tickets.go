package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/common"
)

// View selects which ticket list a listing command loads and prints.
type View int

const (
	ViewUser View = iota
	ViewAll
	ViewAssigned
)

var errUsage = errors.New("usage")

// needArgs prints usage and returns errUsage when fewer than n args are given.
func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		printlnFn("Usage:", usage)
		return errUsage
	}
	return nil
}

// List fetches the selected list and prints it as a table.
func (a *App) List(ctx context.Context, view View) error {
	var err error
	switch view {
	case ViewAll:
		err = a.tickets.FetchAllTickets(ctx)
	case ViewAssigned:
		err = a.tickets.FetchAssignedTickets(ctx)
	default:
		err = a.tickets.FetchUserTickets(ctx)
	}
	if err != nil {
		return err
	}

	st := a.tickets.Snapshot()
	list := st.Tickets
	if view == ViewAssigned {
		list = st.Assigned
	}
	renderTable(a.out, a.theme, list)
	return nil
}

// Create prompts for the ticket fields and submits the ticket.
func (a *App) Create(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category (optional)", a.out)
	if err != nil {
		return err
	}
	rawPriority, err := getSimpleText(a.reader, "Enter priority: low, medium, high, critical (optional)", a.out)
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(rawPriority)
	if err != nil {
		printlnFn("Invalid priority:", rawPriority)
		return err
	}

	t, err := a.tickets.CreateTicket(ctx, models.NewTicket{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created ticket %s\n", t.ID)
	return nil
}

// Comment adds a comment to a ticket. The text is taken from the
// remaining args, or prompted for when there are none.
func (a *App) Comment(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "comment <id> [text]"); err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Enter comment", a.out); err != nil {
			return err
		}
	}
	return a.tickets.AddComment(ctx, args[0], models.NewComment{Text: text})
}

func (a *App) SetStatus(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "status <id> <new|assigned|in_progress|resolved|not_resolved>"); err != nil {
		return err
	}
	status, err := models.ParseStatus(args[1])
	if err != nil {
		printlnFn("Invalid status:", args[1])
		return err
	}
	return a.tickets.UpdateStatus(ctx, args[0], status)
}

func (a *App) SetPriority(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "priority <id> <low|medium|high|critical>"); err != nil {
		return err
	}
	priority, err := models.ParsePriority(args[1])
	if err != nil || !priority.IsSet() {
		printlnFn("Invalid priority:", args[1])
		return models.ErrInvalidPriority
	}
	return a.tickets.UpdatePriority(ctx, args[0], priority)
}

func (a *App) Assign(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "assign <id> <engineer-id>"); err != nil {
		return err
	}
	return a.tickets.AssignTicket(ctx, args[0], args[1])
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delete <id>"); err != nil {
		return err
	}
	return a.tickets.DeleteTicket(ctx, args[0])
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "remove <id>"); err != nil {
		return err
	}
	return a.tickets.RemoveTicket(ctx, args[0])
}

// Clear forgets the loaded ticket list without contacting the server.
func (a *App) Clear(ctx context.Context) error {
	a.tickets.ClearTickets()
	printlnFn("Ticket list cleared")
	return nil
}

// Show prints one ticket from the loaded lists with its comments.
func (a *App) Show(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "show <id>"); err != nil {
		return err
	}
	t, ok := a.tickets.Snapshot().Find(args[0])
	if !ok {
		printlnFn("Ticket not found:", args[0])
		return common.ErrorNotFound
	}
	renderDetail(a.out, a.theme, t)
	return nil
}
