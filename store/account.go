package store

import (
	"context"
	"net/url"
	"time"
)

// User is the identity provider's account record.
type User struct {
	ID        string `json:"$id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"$createdAt"`
}

// Created parses the provider's creation timestamp; zero time on failure.
func (u *User) Created() time.Time {
	t, _ := time.Parse(time.RFC3339, u.CreatedAt)
	return t
}

// Session is an email/password session. Secret is what scopes subsequent
// store calls to this user.
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) (*User, error) {
	payload := map[string]any{
		"userId":   userID,
		"email":    email,
		"password": password,
	}
	if name != "" {
		payload["name"] = name
	}
	var u User
	if err := c.do(ctx, "POST", "/account", payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]any{"email": email, "password": password}
	var s Session
	if err := c.do(ctx, "POST", "/account/sessions/email", payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session by id; "current" targets the session the
// client itself is bound to.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, "DELETE", "/account/sessions/"+sessionID, nil, nil)
}

// GetAccount returns the session's subject, failing when unauthenticated.
func (c *Client) GetAccount(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, "GET", "/account", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateRecovery(ctx context.Context, email, resetURL string) error {
	return c.do(ctx, "POST", "/account/recovery", map[string]any{"email": email, "url": resetURL}, nil)
}

// OAuth2URL builds the provider redirect URL for the OAuth flow. The browser
// is sent there directly; no request is made from this process.
func (c *Client) OAuth2URL(provider, successURL, failureURL string) string {
	q := url.Values{}
	q.Set("project", c.project)
	q.Set("success", successURL)
	q.Set("failure", failureURL)
	return c.endpoint + "/account/sessions/oauth2/" + url.PathEscape(provider) + "?" + q.Encode()
}
