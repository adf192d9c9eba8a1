// Package env reads account passwords from the process environment.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
)

const PasswordVar = "DNAA_PASSWORD"

var ErrReadOnly = errors.New("environment secret store is read-only")

type lookupFunc func(key string) (string, bool)

// Store answers every password key with DNAA_PASSWORD. Other keys are
// never found.
type Store struct {
	lookup lookupFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := domain.ParsePasswordSecretKey(key); !ok {
		return "", fmt.Errorf("env secret %q: %w", key, domain.ErrSecretNotFound)
	}

	value, ok := s.lookup(PasswordVar)
	if !ok || value == "" {
		return "", fmt.Errorf("env secret %q: %s unset: %w", key, PasswordVar, domain.ErrSecretNotFound)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("put %q: %w", key, ErrReadOnly)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("delete %q: %w", key, ErrReadOnly)
}
