package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "connection failure", err: &ConnectionFailure{Method: "GET", Path: "sequence", Status: 500}, want: true},
		{name: "wrapped empty payload", err: fmt.Errorf("load: %w", &EmptyPayloadError{Key: "payload"}), want: true},
		{name: "validation", err: &ValidationError{Op: "x", Err: errors.New("bad")}},
		{name: "auth", err: &AuthError{Account: "host", Status: 401}},
		{name: "auth wrapping rejected response", err: fmt.Errorf("login: %w", &AuthError{Account: "host", Status: 401, Err: &ConnectionFailure{Method: "POST", Path: "jwt", Status: 401}})},
		{name: "cancelled", err: context.Canceled},
		{name: "expired session", err: ErrSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestConnectionFailureNotFound(t *testing.T) {
	notFound := fmt.Errorf("load sequence: %w", &ConnectionFailure{Method: "GET", Path: "sequence/s-1", Status: 404})
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, &ConnectionFailure{Method: "GET", Path: "sequence/s-1", Status: 500}, ErrNotFound)
	assert.NotErrorIs(t, &ConnectionFailure{Method: "GET", Path: "sequence/s-1"}, ErrNotFound)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "GET sequence: unexpected status 503", (&ConnectionFailure{Method: "GET", Path: "sequence", Status: 503}).Error())
	assert.Equal(t, `login as "host" failed with status 401`, (&AuthError{Account: "host", Status: 401}).Error())

	failed := &BatchFailedError{
		Handle: JobHandle{ID: "a-1", Kind: KindZDna},
		Batch:  Batch{Status: BatchFailed, Exception: "out of memory"},
	}
	assert.Equal(t, "Z-DNA analysis a-1 failed on server: out of memory", failed.Error())
}
