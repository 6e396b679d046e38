package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/session"
	"github.com/dmitrijs2005/helpdesk/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// nowFn is the clock used for session expiry output.
var nowFn = time.Now

// readCredentials prompts for an email and a password, and for a display
// name when withName is set. The caller must wipe the returned password.
func (a *App) readCredentials(withName bool) (models.Credentials, []byte, error) {
	var creds models.Credentials
	var err error

	if withName {
		if creds.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
			return creds, nil, err
		}
	}
	if creds.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return creds, nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return creds, nil, err
	}
	creds.Password = string(password)
	return creds, password, nil
}

// Signup prompts for name, email and password and creates an account with
// the given role. A successful signup also logs in, so the ticket list is
// loaded right away.
func (a *App) Signup(ctx context.Context, role models.Role) error {
	creds, password, err := a.readCredentials(true)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if role == models.RoleAdmin {
		err = a.auth.AdminSignup(ctx, creds)
	} else {
		err = a.auth.UserSignup(ctx, creds)
	}
	if err != nil {
		return err
	}
	return a.refresh(ctx)
}

// Login prompts for credentials and authenticates with the given role. On
// success the dashboard lists for that role are loaded.
func (a *App) Login(ctx context.Context, role models.Role) error {
	creds, password, err := a.readCredentials(false)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if role == models.RoleAdmin {
		err = a.auth.AdminLogin(ctx, creds)
	} else {
		err = a.auth.UserLogin(ctx, creds)
	}
	if err != nil {
		return err
	}
	return a.refresh(ctx)
}

// Logout ends the session and drops the loaded ticket list.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.UserLogout(ctx)
	a.tickets.ClearTickets()
	return err
}

// WhoAmI prints the identity held by the auth store and what the session
// cookie says about itself.
func (a *App) WhoAmI(ctx context.Context) error {
	id := a.auth.Identity()
	if id == nil {
		fmt.Fprintln(a.out, "Not logged in")
	} else {
		fmt.Fprintf(a.out, "%s <%s> id=%s role=%s\n", id.String(), id.Email, id.ID, orDash(id.Role))
	}

	info, err := session.Inspect(a.client.Cookies(), a.config.SessionCookie)
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(a.out, "No session cookie")
		return nil
	}
	if err != nil {
		a.log.Warn(ctx, "cannot decode session cookie", "error", err)
		fmt.Fprintln(a.out, "Session cookie present but unreadable")
		return err
	}

	now := nowFn()
	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Session does not expire")
	case info.Expired(now):
		fmt.Fprintf(a.out, "Session expired at %s\n", info.ExpiresAt.Local().Format(timeLayout))
	default:
		fmt.Fprintf(a.out, "Session valid until %s (%s left)\n",
			info.ExpiresAt.Local().Format(timeLayout), info.Remaining(now).Truncate(time.Minute))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
