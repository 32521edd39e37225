package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the backend rejects a login or
	// registration attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when an operation requires a session and
	// none exists, or the backend rejects the bearer token.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrTokenExpired marks a stored bearer token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrForbidden is returned when the session lacks the rights for an
	// operation (e.g. a client account asking for owner analytics).
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)

// ServerError is a non-2xx response that carries a body. It is surfaced with
// its status code and never retried automatically.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure: timeout, refused connection, or no
// response at all. The request may or may not have reached the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError collects per-field messages from client-side checks. It is
// produced before any network call and blocks submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}
