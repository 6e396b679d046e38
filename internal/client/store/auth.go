package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/client/notify"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

// AuthState is a point-in-time copy of the auth store.
type AuthState struct {
	Identity     *models.Identity
	SigningUp    bool
	LoggingIn    bool
	LoggingOut   bool
	CheckingAuth bool
}

func (s AuthState) IsAuthenticated() bool { return s.Identity != nil }

// AuthStore mirrors the authenticated identity. A nil identity means
// logged out.
type AuthStore struct {
	client client.Client
	notify notify.Notifier
	log    logging.Logger

	mu       sync.RWMutex
	identity *models.Identity
	busy     busy
	// checkPending is set until the first session check completes, so the
	// store reports CheckingAuth from construction.
	checkPending bool
}

func NewAuthStore(c client.Client, n notify.Notifier, log logging.Logger) *AuthStore {
	return &AuthStore{
		client:       c,
		notify:       n,
		log:          log.With("store", "auth"),
		checkPending: true,
	}
}

func (s *AuthStore) Snapshot() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AuthState{
		Identity:     s.identity.Clone(),
		SigningUp:    s.busy.active(OpSignup),
		LoggingIn:    s.busy.active(OpLogin),
		LoggingOut:   s.busy.active(OpLogout),
		CheckingAuth: s.checkPending || s.busy.active(OpAuthCheck),
	}
}

func (s *AuthStore) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Clone()
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *AuthStore) UserSignup(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, OpSignup, msgSignupOK, msgSignupFail, func(ctx context.Context) (*models.Identity, error) {
		return s.client.Signup(ctx, models.RoleUser, creds)
	})
}

func (s *AuthStore) AdminSignup(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, OpSignup, msgAdminSignupOK, msgSignupFail, func(ctx context.Context) (*models.Identity, error) {
		return s.client.Signup(ctx, models.RoleAdmin, creds)
	})
}

func (s *AuthStore) UserLogin(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, OpLogin, msgLoginOK, msgLoginFail, func(ctx context.Context) (*models.Identity, error) {
		return s.client.Login(ctx, models.RoleUser, creds)
	})
}

func (s *AuthStore) AdminLogin(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, OpLogin, msgAdminLoginOK, msgLoginFail, func(ctx context.Context) (*models.Identity, error) {
		return s.client.Login(ctx, models.RoleAdmin, creds)
	})
}

// UserLogout ends the session. The identity is cleared whether or not the
// server call succeeds.
func (s *AuthStore) UserLogout(ctx context.Context) error {
	return s.authenticate(ctx, OpLogout, msgLogoutOK, msgLogoutFail, func(ctx context.Context) (*models.Identity, error) {
		return nil, s.client.Logout(ctx)
	})
}

// AuthCheck asks the server whether the session cookie is still valid and
// mirrors the answer. It never notifies.
func (s *AuthStore) AuthCheck(ctx context.Context) error {
	return s.authenticate(ctx, OpAuthCheck, "", "", s.client.AuthCheck)
}

func (s *AuthStore) authenticate(ctx context.Context, op Op, okMsg, failMsg string, call func(context.Context) (*models.Identity, error)) error {
	s.mu.Lock()
	s.busy.begin(op)
	s.mu.Unlock()

	id, err := call(ctx)

	s.mu.Lock()
	if err != nil {
		s.identity = nil
	} else {
		s.identity = id.Clone()
	}
	s.busy.end(op)
	if op == OpAuthCheck {
		s.checkPending = false
	}
	s.mu.Unlock()

	if err != nil {
		if op == OpAuthCheck && errors.Is(err, client.ErrUnauthorized) {
			s.log.Info(ctx, "no active session")
		} else {
			s.log.Error(ctx, "auth operation failed", "op", op.String(), "error", err)
		}
		if failMsg != "" {
			s.notify.Error(failureMessage(err, failMsg))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info(ctx, "auth operation done", "op", op.String(), "user_id", idOf(id))
	if okMsg != "" {
		s.notify.Success(okMsg)
	}
	return nil
}

func idOf(id *models.Identity) string {
	if id == nil {
		return ""
	}
	return id.ID
}
