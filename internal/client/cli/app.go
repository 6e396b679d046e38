package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/config"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/notify"
	"github.com/dmitrijs2005/helpdesk/internal/client/store"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

type App struct {
	config  *config.Config
	client  client.Client
	auth    *store.AuthStore
	tickets *store.TicketStore
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	theme   Theme
}

// NewApp builds the REST client and both stores for c. Notifications and
// command output go to stdout.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.APIURL, c.RequestTimeout, client.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, notify.NewTerminal(os.Stdout), log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, apiClient client.Client, n notify.Notifier, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		client:  apiClient,
		auth:    store.NewAuthStore(apiClient, n, log),
		tickets: store.NewTicketStore(apiClient, n, log),
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
		theme:   DefaultTheme(out),
	}
}

// Run restores an existing session if the cookie jar has one, then runs
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Helpdesk CLI (type 'help' for commands)")

	if err := a.auth.AuthCheck(ctx); err == nil {
		_ = a.refresh(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// isAdmin reports whether the dashboard should use the admin views. The
// server role wins; the config flag covers backends that omit it.
func (a *App) isAdmin() bool {
	id := a.auth.Identity()
	if id == nil {
		return false
	}
	if id.Role != "" {
		return models.Role(id.Role) == models.RoleAdmin
	}
	return a.config.Admin
}

func (a *App) getStatus() string {
	st := a.auth.Snapshot()
	if st.Identity == nil {
		return "(guest)"
	}
	parts := []string{st.Identity.String()}
	if a.isAdmin() {
		parts = append(parts, "admin")
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// refresh reloads the lists shown on the dashboard for the current role.
func (a *App) refresh(ctx context.Context) error {
	if a.isAdmin() {
		return a.tickets.FetchAllTickets(ctx)
	}
	if err := a.tickets.FetchUserTickets(ctx); err != nil {
		return err
	}
	return a.tickets.FetchAssignedTickets(ctx)
}
