package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/rs/zerolog/log"
)

// AuthService logs in against the server and keeps the resulting session
// profile on disk. The account secret is never persisted here.
type AuthService struct {
	auth  ports.Authenticator
	repo  ports.SessionRepository
	clock ports.Clock
}

func NewAuthService(auth ports.Authenticator, repo ports.SessionRepository, clock ports.Clock) *AuthService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AuthService{auth: auth, repo: repo, clock: clock}
}

func (s *AuthService) Login(ctx context.Context, account, secret, server string) (domain.Session, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		account = domain.HostAccount
	}
	if err := domain.ValidateLogin(account, secret); err != nil {
		return domain.Session{}, err
	}
	if strings.TrimSpace(server) == "" {
		return domain.Session{}, &domain.ValidationError{Op: "login", Err: errors.New("server is required")}
	}

	session, err := s.auth.Authenticate(ctx, account, secret, server)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login %s: %w", account, err)
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	event := log.Info().Str("account", session.Account).Str("server", session.Server).Str("user_id", session.UserID)
	if !session.ExpiresAt.IsZero() {
		event = event.Time("expires_at", session.ExpiresAt)
	}
	event.Msg("logged in")
	return session, nil
}

// Current restores the stored session. An expired profile is reported as
// domain.ErrSessionExpired and left on disk for whoami to show.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, fmt.Errorf("load session: %w", domain.ErrNotAuthenticated)
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := session.Check(s.clock.Now()); err != nil {
		return session, err
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
