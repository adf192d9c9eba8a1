package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSecretNotFound   = errors.New("secret not found")
	ErrNotFound         = errors.New("resource not found")
)

// ValidationError reports input rejected before any request was sent.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConnectionFailure covers both a request that never got a response (Status 0)
// and a response whose status differs from the one the endpoint promises.
type ConnectionFailure struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *ConnectionFailure) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: connection failed: %v", e.Method, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

func (e *ConnectionFailure) Unwrap() error {
	return e.Err
}

// Is reports a 404 as ErrNotFound.
func (e *ConnectionFailure) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type EmptyPayloadError struct {
	Method string
	Path   string
	Status int
	Key    string
}

func (e *EmptyPayloadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s %s: status %d with empty body", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d without %q data", e.Method, e.Path, e.Status, e.Key)
}

type AuthError struct {
	Account string
	Status  int
	Err     error
}

func (e *AuthError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "login as %q failed", e.Account)
	if e.Status != 0 {
		fmt.Fprintf(&b, " with status %d", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// BatchFailedError is returned when the server marks a job FAILED.
type BatchFailedError struct {
	Handle JobHandle
	Batch  Batch
}

func (e *BatchFailedError) Error() string {
	msg := fmt.Sprintf("%s %s failed on server", e.Handle.Kind.Label(), e.Handle.ID)
	if e.Batch.Exception != "" {
		msg += ": " + e.Batch.Exception
	}
	return msg
}

// IsTransient reports whether err is worth retrying. A rejected login is
// final even though it carries the failed response.
func IsTransient(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}
	var connErr *ConnectionFailure
	if errors.As(err, &connErr) {
		return true
	}
	var emptyErr *EmptyPayloadError
	return errors.As(err, &emptyErr)
}
