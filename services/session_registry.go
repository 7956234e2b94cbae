package services

import (
	"context"
	"sync"
)

// SessionRegistry keeps one AuthContext per live session key. A key that is
// not present (for instance after a restart) gets a fresh context resumed
// from the session secret carried in the bearer token.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*AuthContext
	forms    map[string]*OnboardingForm
	newCtx   func() *AuthContext
}

func NewSessionRegistry(factory func() *AuthContext) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*AuthContext),
		forms:    make(map[string]*OnboardingForm),
		newCtx:   factory,
	}
}

// NewContext builds an unregistered context for a login attempt. It is only
// registered once the sign-in succeeds and a key is issued.
func (r *SessionRegistry) NewContext() *AuthContext {
	return r.newCtx()
}

func (r *SessionRegistry) Put(key string, auth *AuthContext) {
	r.mu.Lock()
	r.sessions[key] = auth
	r.mu.Unlock()
}

func (r *SessionRegistry) Get(key string) *AuthContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[key]
}

// Resume returns the context for key, rebuilding it from the session secret
// when this process has not seen the session before.
func (r *SessionRegistry) Resume(ctx context.Context, key, secret string) (*AuthContext, error) {
	if auth := r.Get(key); auth != nil {
		return auth, nil
	}
	auth := r.newCtx()
	if err := auth.Resume(ctx, secret); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[key] = auth
	r.mu.Unlock()
	return auth, nil
}

// Form returns the onboarding wizard bound to the session, creating it on
// first use. The wizard lives and dies with the session entry.
func (r *SessionRegistry) Form(key string, auth *AuthContext) *OnboardingForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[key]; ok {
		return f
	}
	f := NewOnboardingForm(auth, nil)
	r.forms[key] = f
	return f
}

func (r *SessionRegistry) Delete(key string) {
	r.mu.Lock()
	delete(r.sessions, key)
	delete(r.forms, key)
	r.mu.Unlock()
}
