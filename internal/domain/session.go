package domain

import (
	"strings"
	"time"
)

// HostAccount is the anonymous guest login accepted by the server.
const HostAccount = "host"

// Session is the result of a login. It never holds the account secret.
type Session struct {
	Server    string
	Account   string
	Token     string
	ExpiresAt time.Time
	UserID    string
}

func (s Session) IsHost() bool {
	return s.Account == HostAccount
}

// Check reports whether the session may authorize a request at now. A zero
// ExpiresAt means the token carried no expiry.
func (s Session) Check(now time.Time) error {
	if s.Token == "" {
		return ErrNotAuthenticated
	}
	if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}

const (
	passwordKeyScheme = "dnaa://"
	passwordKeySuffix = "/password"
)

// PasswordSecretKey is the secret store key holding an account password.
func PasswordSecretKey(account string) string {
	return passwordKeyScheme + account + passwordKeySuffix
}

// ParsePasswordSecretKey returns the account a password key belongs to.
func ParsePasswordSecretKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, passwordKeyScheme)
	if !ok {
		return "", false
	}
	account, ok := strings.CutSuffix(rest, passwordKeySuffix)
	if !ok || account == "" {
		return "", false
	}
	return account, true
}
