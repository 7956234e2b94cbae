package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the store's decoded error envelope.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("store error %d (%s): %s", e.Code, e.Type, e.Message)
	}
	return fmt.Sprintf("store error %d: %s", e.Code, e.Message)
}

func code(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func IsNotFound(err error) bool     { return code(err) == http.StatusNotFound }
func IsConflict(err error) bool     { return code(err) == http.StatusConflict }
func IsUnauthorized(err error) bool { return code(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return code(err) == http.StatusForbidden }
