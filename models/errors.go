package models

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an operation needs a user scope and
// none is available (empty userId, missing session).
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError reports a field that failed a range or enum check. It is
// always raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// PermissionError surfaces the remote store rejecting an operation on a
// document the caller does not own. Ownership is enforced remotely, not here.
type PermissionError struct {
	DocumentID string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for document %s", e.DocumentID)
}

// NotFoundError reports an operation against a nonexistent document id.
type NotFoundError struct {
	Collection string
	DocumentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s not found in %s", e.DocumentID, e.Collection)
}

// DuplicateError is domain-level: creating a singleton entity (profile,
// schedule) when one already exists for the user.
type DuplicateError struct {
	Collection string
	UserID     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a %s document already exists for user %s", e.Collection, e.UserID)
}

// RemoteError wraps a network or unexpected store failure with the attempted
// operation so callers never see a bare transport error.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
