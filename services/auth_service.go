package services

import (
	"context"
	"sync"

	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountAPI is the slice of the identity provider the auth layer consumes.
type AccountAPI interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) (*store.User, error)
	CreateEmailSession(ctx context.Context, email, password string) (*store.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetAccount(ctx context.Context) (*store.User, error)
	CreateRecovery(ctx context.Context, email, resetURL string) error
	OAuth2URL(provider, successURL, failureURL string) string
}

// SessionFactory builds clients scoped to a session secret: the account view
// of that session plus a data access layer running under its permissions.
type SessionFactory func(secret string) (AccountAPI, *DatabaseService)

type AuthState string

const (
	StateInitializing    AuthState = "initializing"
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticated   AuthState = "authenticated"
)

// AuthContext owns the cached identity for one session. It is the single
// writer of that identity and of the derived onboarding flag; everything else
// reads through its accessors.
type AuthContext struct {
	mu   sync.RWMutex
	base AccountAPI
	bind SessionFactory
	log  *zap.SugaredLogger

	account AccountAPI // session-scoped once authenticated
	db      *DatabaseService
	session *store.Session

	state     AuthState
	user      *models.AuthUser
	lastErr   error
	onboarded bool

	// suppressProbe is set while an onboarding submit is in flight so the
	// completion probe cannot race the wizard's own writes.
	suppressProbe bool
}

func NewAuthContext(base AccountAPI, bind SessionFactory, logger *zap.SugaredLogger) *AuthContext {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AuthContext{
		base:  base,
		bind:  bind,
		log:   logger,
		state: StateInitializing,
	}
}

func cachedUser(u *store.User) *models.AuthUser {
	return &models.AuthUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.Created(),
	}
}

// Resume rebinds the context to an existing session secret without a fresh
// login, then probes it. Used when a request arrives for a session this
// process has not seen (e.g. after a restart).
func (a *AuthContext) Resume(ctx context.Context, secret string) error {
	a.mu.Lock()
	a.lastErr = nil
	a.account, a.db = a.bind(secret)
	a.session = &store.Session{Secret: secret}
	a.mu.Unlock()
	return a.Initialize(ctx)
}

// Initialize probes the current session. Failure is not an error condition:
// it simply lands the context in the unauthenticated state.
func (a *AuthContext) Initialize(ctx context.Context) error {
	a.mu.Lock()
	a.lastErr = nil
	account := a.account
	a.mu.Unlock()

	if account == nil {
		a.mu.Lock()
		a.state = StateUnauthenticated
		a.mu.Unlock()
		return nil
	}

	u, err := account.GetAccount(ctx)
	if err != nil {
		// A failed probe unbinds everything; a dead session must not leave
		// a reachable session-scoped data layer behind.
		a.mu.Lock()
		a.state = StateUnauthenticated
		a.user = nil
		a.account, a.db, a.session = nil, nil, nil
		a.mu.Unlock()
		return nil
	}

	a.mu.Lock()
	a.user = cachedUser(u)
	a.state = StateAuthenticated
	a.mu.Unlock()

	if err := a.CheckOnboardingStatus(ctx); err != nil {
		a.log.Warnw("onboarding status probe failed during init", "error", err)
	}
	return nil
}

// SignIn establishes an email/password session and caches its subject.
func (a *AuthContext) SignIn(ctx context.Context, email, password string) error {
	a.mu.Lock()
	a.lastErr = nil
	a.mu.Unlock()

	sess, err := a.base.CreateEmailSession(ctx, email, password)
	if err != nil {
		return a.fail(&models.RemoteError{Op: "sign in", Err: err})
	}

	account, db := a.bind(sess.Secret)
	u, err := account.GetAccount(ctx)
	if err != nil {
		return a.fail(&models.RemoteError{Op: "sign in", Err: err})
	}

	a.mu.Lock()
	a.account, a.db, a.session = account, db, sess
	a.user = cachedUser(u)
	a.state = StateAuthenticated
	a.mu.Unlock()

	if err := a.CheckOnboardingStatus(ctx); err != nil {
		a.log.Warnw("onboarding status probe failed after sign-in", "error", err)
	}
	return nil
}

// SignUp creates the account and provisions a session in the same call; the
// caller never performs a separate login.
func (a *AuthContext) SignUp(ctx context.Context, email, password, name string) error {
	a.mu.Lock()
	a.lastErr = nil
	a.mu.Unlock()

	if _, err := a.base.CreateAccount(ctx, uuid.NewString(), email, password, name); err != nil {
		return a.fail(&models.RemoteError{Op: "sign up", Err: err})
	}
	if err := a.SignIn(ctx, email, password); err != nil {
		return err
	}

	a.mu.Lock()
	a.onboarded = false
	a.mu.Unlock()
	return nil
}

// SignOut tears the session down. Local state is cleared unconditionally:
// a remote failure is logged but never leaves the context authenticated.
func (a *AuthContext) SignOut(ctx context.Context) {
	a.mu.Lock()
	a.lastErr = nil
	account := a.account
	a.mu.Unlock()

	if account != nil {
		if err := account.DeleteSession(ctx, "current"); err != nil {
			a.log.Warnw("remote session delete failed, clearing local state anyway", "error", err)
		}
	}

	a.mu.Lock()
	a.account, a.db, a.session = nil, nil, nil
	a.user = nil
	a.onboarded = false
	a.state = StateUnauthenticated
	a.mu.Unlock()
}

// CheckOnboardingStatus re-derives the completion flag by probing for a
// profile. The probe is skipped while a wizard submit holds the guard.
func (a *AuthContext) CheckOnboardingStatus(ctx context.Context) error {
	a.mu.RLock()
	suppressed := a.suppressProbe
	user := a.user
	db := a.db
	a.mu.RUnlock()

	if suppressed {
		return nil
	}
	if user == nil || db == nil {
		return models.ErrNotAuthenticated
	}

	profile, err := db.GetUserProfile(ctx, user.ID)
	if err != nil {
		a.mu.Lock()
		a.onboarded = false
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	a.onboarded = profile != nil
	a.mu.Unlock()
	return nil
}

// SuppressOnboardingProbe toggles the re-entrancy guard used by the wizard.
func (a *AuthContext) SuppressOnboardingProbe(on bool) {
	a.mu.Lock()
	a.suppressProbe = on
	a.mu.Unlock()
}

func (a *AuthContext) setOnboarded(v bool) {
	a.mu.Lock()
	a.onboarded = v
	a.mu.Unlock()
}

func (a *AuthContext) fail(err error) error {
	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()
	return err
}

func (a *AuthContext) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *AuthContext) User() *models.AuthUser {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *AuthContext) IsAuthenticated() bool {
	return a.State() == StateAuthenticated
}

func (a *AuthContext) HasCompletedOnboarding() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.onboarded
}

func (a *AuthContext) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

func (a *AuthContext) ClearError() {
	a.mu.Lock()
	a.lastErr = nil
	a.mu.Unlock()
}

// Session returns the live session, nil when unauthenticated.
func (a *AuthContext) Session() *store.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// DB exposes the session-scoped data access layer for the current user.
func (a *AuthContext) DB() *DatabaseService {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.db
}

func (a *AuthContext) CreateRecovery(ctx context.Context, email, resetURL string) error {
	if err := a.base.CreateRecovery(ctx, email, resetURL); err != nil {
		return a.fail(&models.RemoteError{Op: "create password recovery", Err: err})
	}
	return nil
}

func (a *AuthContext) OAuth2URL(provider, successURL, failureURL string) string {
	return a.base.OAuth2URL(provider, successURL, failureURL)
}
