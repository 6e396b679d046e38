package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Signup(ctx context.Context, role models.Role) error
	Login(ctx context.Context, role models.Role) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, view View) error
	Create(ctx context.Context) error
	Comment(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	SetPriority(ctx context.Context, args []string) error
	Assign(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Show(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: signup, login, admin-signup, admin-login, whoami, exit"
	helpUser  = "Available commands: tickets, assigned, create, comment <id> <text>, status <id> <status>, remove <id>, show <id>, clear, whoami, logout, exit"
	helpAdmin = "Available commands: all, tickets, assigned, create, comment <id> <text>, status <id> <status>, priority <id> <priority>, assign <id> <engineer-id>, delete <id>, remove <id>, show <id>, clear, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the helpdesk CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the handler on 'a'. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                       — show available commands
//	  - signup | admin-signup      — create an account
//	  - login | admin-login        — authenticate
//	  - whoami                     — show the session
//	  - exit | quit                — leave the program
//
//	Logged in:
//	  - tickets                    — list own tickets
//	  - all                        — list every ticket (admin)
//	  - assigned                   — list tickets assigned to me
//	  - create                     — open a ticket (interactive)
//	  - comment <id> [text]        — comment on a ticket
//	  - status <id> <status>       — change a ticket's status
//	  - priority <id> <priority>   — change a ticket's priority (admin)
//	  - assign <id> <engineer-id>  — assign a ticket (admin)
//	  - delete <id>                — delete a ticket (admin)
//	  - remove <id>                — remove an own ticket
//	  - show <id>                  — show a single ticket
//	  - clear                      — forget the loaded ticket list
//	  - logout                     — log out
//
// Errors returned by command handlers are ignored here; the stores already
// notify and log every failed call, so the loop only deals with I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpGuest)
			case a.isAdmin():
				printlnFn(helpAdmin)
			default:
				printlnFn(helpUser)
			}

		case "signup":
			_ = a.Signup(ctx, models.RoleUser)

		case "admin-signup":
			_ = a.Signup(ctx, models.RoleAdmin)

		case "login":
			_ = a.Login(ctx, models.RoleUser)

		case "admin-login":
			_ = a.Login(ctx, models.RoleAdmin)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !a.isLoggedIn() {
				printlnFn("Please log in first (type 'help' for commands)")
				continue
			}
			if !dispatch(ctx, a, cmd, args) {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}

// dispatch runs the commands that need a session. It reports false for an
// unknown command.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var err error
	switch cmd {
	case "tickets", "l", "list":
		err = a.List(ctx, ViewUser)
	case "all":
		err = a.List(ctx, ViewAll)
	case "assigned":
		err = a.List(ctx, ViewAssigned)
	case "create":
		err = a.Create(ctx)
	case "comment":
		err = a.Comment(ctx, args)
	case "status":
		err = a.SetStatus(ctx, args)
	case "priority":
		err = a.SetPriority(ctx, args)
	case "assign":
		err = a.Assign(ctx, args)
	case "delete":
		err = a.Delete(ctx, args)
	case "remove":
		err = a.Remove(ctx, args)
	case "show":
		err = a.Show(ctx, args)
	case "clear":
		err = a.Clear(ctx)
	case "logout":
		err = a.Logout(ctx)
	default:
		return false
	}
	hint(err)
	return true
}

// hint follows a failed command with what the user can do about it. The
// failure itself has already been notified.
func hint(err error) {
	switch {
	case errors.Is(err, client.ErrForbidden):
		printlnFn("This command needs an admin session (use admin-login)")
	case errors.Is(err, client.ErrNotFound):
		printlnFn("The ticket may be gone, reload with 'tickets', 'all' or 'assigned'")
	}
}
