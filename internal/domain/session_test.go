package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionCheck(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session Session
		wantErr error
	}{
		{name: "empty token", session: Session{}, wantErr: ErrNotAuthenticated},
		{name: "expired token", session: Session{Token: "t", ExpiresAt: now.Add(-time.Second)}, wantErr: ErrSessionExpired},
		{name: "expiry equal to now", session: Session{Token: "t", ExpiresAt: now}, wantErr: ErrSessionExpired},
		{name: "valid token", session: Session{Token: "t", ExpiresAt: now.Add(time.Hour)}},
		{name: "token without expiry", session: Session{Token: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Check(now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionIsHost(t *testing.T) {
	assert.True(t, Session{Account: HostAccount}.IsHost())
	assert.False(t, Session{Account: "user@example.com"}.IsHost())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "2026-03-01T10:15:30.123+00:00", want: time.Date(2026, 3, 1, 10, 15, 30, 123_000_000, time.UTC), ok: true},
		{raw: "2026-03-01T10:15:30.123+0000", want: time.Date(2026, 3, 1, 10, 15, 30, 123_000_000, time.UTC), ok: true},
		{raw: "2026-03-01T10:15:30", want: time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC), ok: true},
		{raw: "", ok: false},
		{raw: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestPasswordSecretKeyRoundTrip(t *testing.T) {
	account, ok := ParsePasswordSecretKey(PasswordSecretKey("ada@example.com"))
	assert.True(t, ok)
	assert.Equal(t, "ada@example.com", account)

	for _, key := range []string{"", "dnaa:///password", "dnaa://ada@example.com/token", "other://ada@example.com/password", "ada@example.com"} {
		_, ok := ParsePasswordSecretKey(key)
		assert.False(t, ok, key)
	}
}
