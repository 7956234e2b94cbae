package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/SierraFuelsDev/fuelwarden/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentity is the shared state behind fakeAccountClient views, one per
// bound session secret.
type fakeIdentity struct {
	mu        sync.Mutex
	users     map[string]*store.User // by email
	passwords map[string]string
	sessions  map[string]string // secret -> email
	seq       int

	failDeleteSession bool
	recoveries        []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		users:     make(map[string]*store.User),
		passwords: make(map[string]string),
		sessions:  make(map[string]string),
	}
}

type fakeAccountClient struct {
	id     *fakeIdentity
	secret string
}

func (c *fakeAccountClient) CreateAccount(_ context.Context, userID, email, password, name string) (*store.User, error) {
	c.id.mu.Lock()
	defer c.id.mu.Unlock()
	if _, exists := c.id.users[email]; exists {
		return nil, &store.Error{Code: 409, Type: "user_already_exists", Message: "account already exists"}
	}
	u := &store.User{ID: userID, Email: email, Name: name}
	c.id.users[email] = u
	c.id.passwords[email] = password
	return u, nil
}

func (c *fakeAccountClient) CreateEmailSession(_ context.Context, email, password string) (*store.Session, error) {
	c.id.mu.Lock()
	defer c.id.mu.Unlock()
	u, ok := c.id.users[email]
	if !ok || c.id.passwords[email] != password {
		return nil, &store.Error{Code: 401, Type: "user_invalid_credentials", Message: "invalid credentials"}
	}
	c.id.seq++
	secret := fmt.Sprintf("secret-%d", c.id.seq)
	c.id.sessions[secret] = email
	return &store.Session{ID: fmt.Sprintf("sess-%d", c.id.seq), UserID: u.ID, Secret: secret}, nil
}

func (c *fakeAccountClient) DeleteSession(_ context.Context, _ string) error {
	c.id.mu.Lock()
	defer c.id.mu.Unlock()
	if c.id.failDeleteSession {
		return &store.Error{Code: 500, Type: "general_server_error", Message: "boom"}
	}
	delete(c.id.sessions, c.secret)
	return nil
}

func (c *fakeAccountClient) GetAccount(_ context.Context) (*store.User, error) {
	c.id.mu.Lock()
	defer c.id.mu.Unlock()
	email, ok := c.id.sessions[c.secret]
	if c.secret == "" || !ok {
		return nil, &store.Error{Code: 401, Type: "general_unauthorized_scope", Message: "missing scope"}
	}
	return c.id.users[email], nil
}

func (c *fakeAccountClient) CreateRecovery(_ context.Context, email, _ string) error {
	c.id.mu.Lock()
	defer c.id.mu.Unlock()
	c.id.recoveries = append(c.id.recoveries, email)
	return nil
}

func (c *fakeAccountClient) OAuth2URL(provider, successURL, failureURL string) string {
	return fmt.Sprintf("https://id.example.com/oauth2/%s?success=%s&failure=%s", provider, successURL, failureURL)
}

// authFixture wires an AuthContext against the in-memory identity and store.
func authFixture() (*AuthContext, *fakeIdentity, *fakeStore) {
	id := newFakeIdentity()
	fs := newFakeStore()
	base := &fakeAccountClient{id: id}
	bind := func(secret string) (AccountAPI, *DatabaseService) {
		return &fakeAccountClient{id: id, secret: secret},
			NewDatabaseService(fs, "fuelwarden", nil, nil)
	}
	return NewAuthContext(base, bind, nil), id, fs
}

func TestAuthContextStartsInitializing(t *testing.T) {
	auth, _, _ := authFixture()
	assert.Equal(t, StateInitializing, auth.State())

	require.NoError(t, auth.Initialize(context.Background()))
	assert.Equal(t, StateUnauthenticated, auth.State())
	assert.Nil(t, auth.User())
}

func TestSignUpAutoSignsIn(t *testing.T) {
	auth, _, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	assert.Equal(t, StateAuthenticated, auth.State())
	require.NotNil(t, auth.User())
	assert.Equal(t, "a@b.com", auth.User().Email)
	assert.Equal(t, "Alex", auth.User().Name)
	assert.False(t, auth.HasCompletedOnboarding())
	assert.NotNil(t, auth.Session())
	assert.NotNil(t, auth.DB())
}

func TestSignInWrongPassword(t *testing.T) {
	auth, _, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	auth.SignOut(ctx)

	err := auth.SignIn(ctx, "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, StateUnauthenticated, auth.State())
	assert.Error(t, auth.Err())

	auth.ClearError()
	assert.NoError(t, auth.Err())
}

func TestSignInClearsPreviousError(t *testing.T) {
	auth, _, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	auth.SignOut(ctx)

	require.Error(t, auth.SignIn(ctx, "a@b.com", "wrong"))
	require.Error(t, auth.Err())

	require.NoError(t, auth.SignIn(ctx, "a@b.com", "hunter22"))
	assert.NoError(t, auth.Err(), "a new transition clears the stale error")
}

func TestSignOutClearsLocalOnRemoteFailure(t *testing.T) {
	auth, id, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	id.failDeleteSession = true

	auth.SignOut(ctx)
	assert.Equal(t, StateUnauthenticated, auth.State())
	assert.Nil(t, auth.User())
	assert.Nil(t, auth.DB())
	assert.False(t, auth.HasCompletedOnboarding())
}

func TestCheckOnboardingStatusFlipsWithProfile(t *testing.T) {
	auth, _, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	assert.False(t, auth.HasCompletedOnboarding())

	_, err := auth.DB().CreateUserProfile(ctx, testProfile(auth.User().ID))
	require.NoError(t, err)

	require.NoError(t, auth.CheckOnboardingStatus(ctx))
	assert.True(t, auth.HasCompletedOnboarding())
}

func TestCheckOnboardingStatusSuppressed(t *testing.T) {
	auth, _, _ := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	_, err := auth.DB().CreateUserProfile(ctx, testProfile(auth.User().ID))
	require.NoError(t, err)

	auth.SuppressOnboardingProbe(true)
	require.NoError(t, auth.CheckOnboardingStatus(ctx))
	assert.False(t, auth.HasCompletedOnboarding(), "suppressed probe must not touch the flag")

	auth.SuppressOnboardingProbe(false)
	require.NoError(t, auth.CheckOnboardingStatus(ctx))
	assert.True(t, auth.HasCompletedOnboarding())
}

func TestResumeExistingSession(t *testing.T) {
	auth, id, fs := authFixture()
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "a@b.com", "hunter22", "Alex"))
	secret := auth.Session().Secret

	// A different context, as after a process restart.
	base := &fakeAccountClient{id: id}
	bind := func(s string) (AccountAPI, *DatabaseService) {
		return &fakeAccountClient{id: id, secret: s},
			NewDatabaseService(fs, "fuelwarden", nil, nil)
	}
	resumed := NewAuthContext(base, bind, nil)
	require.NoError(t, resumed.Resume(ctx, secret))
	assert.Equal(t, StateAuthenticated, resumed.State())
	assert.Equal(t, "a@b.com", resumed.User().Email)
}

func TestResumeBadSecret(t *testing.T) {
	auth, _, _ := authFixture()

	require.NoError(t, auth.Resume(context.Background(), "nope"))
	assert.Equal(t, StateUnauthenticated, auth.State())
	assert.Nil(t, auth.User())
	assert.Nil(t, auth.Session(), "a failed probe unbinds the session")
	assert.Nil(t, auth.DB(), "no session-scoped data layer in the unauthenticated state")
}
