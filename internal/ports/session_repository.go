package ports

import (
	"context"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

type SessionRepository interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, account, secret, server string) (domain.Session, error)
}
