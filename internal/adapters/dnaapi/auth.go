package dnaapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator exchanges account credentials for a session token. Login is
// never retried.
type Authenticator struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type loginBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (a Authenticator) Authenticate(ctx context.Context, account, secret, server string) (domain.Session, error) {
	if err := domain.ValidateLogin(account, secret); err != nil {
		return domain.Session{}, err
	}

	req := Request{
		Method:      http.MethodPost,
		Path:        "jwt",
		ContentType: mimeJSON,
		Accept:      mimeText,
		Expect:      http.StatusCreated,
		Anonymous:   true,
	}
	if account != domain.HostAccount {
		body, err := json.Marshal(loginBody{Login: account, Password: secret})
		if err != nil {
			return domain.Session{}, fmt.Errorf("encode login body: %w", err)
		}
		req.Method = http.MethodPut
		req.Body = body
	}

	client := &Client{
		Session:        domain.Session{Server: server},
		HTTPClient:     a.HTTPClient,
		RequestTimeout: a.RequestTimeout,
	}
	payload, err := client.Call(ctx, req)
	if err != nil {
		var connErr *domain.ConnectionFailure
		if errors.As(err, &connErr) {
			return domain.Session{}, &domain.AuthError{Account: account, Status: connErr.Status, Err: connErr}
		}
		var emptyErr *domain.EmptyPayloadError
		if errors.As(err, &emptyErr) {
			return domain.Session{}, &domain.AuthError{Account: account, Status: emptyErr.Status, Err: errors.New("empty token")}
		}
		return domain.Session{}, err
	}

	token := strings.TrimSpace(payload.Text())
	userID, expiresAt, err := decodeToken(token)
	if err != nil {
		return domain.Session{}, &domain.AuthError{Account: account, Status: payload.Status, Err: err}
	}

	return domain.Session{
		Server:    server,
		Account:   account,
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    userID,
	}, nil
}

// decodeToken reads the id and exp claims. The signature is not checked: the
// token is only forwarded back to the server that issued it.
func decodeToken(token string) (string, time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("decode token: %w", err)
	}

	userID := claimString(claims["id"])
	if userID == "" {
		return "", time.Time{}, errors.New("token has no id claim")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("decode token expiry: %w", err)
	}
	if exp == nil {
		return userID, time.Time{}, nil
	}
	return userID, exp.Time, nil
}

func claimString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
