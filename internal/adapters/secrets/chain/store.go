package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/dna-analyser-cli/internal/adapters/secrets/env"
	filestore "github.com/bnema/dna-analyser-cli/internal/adapters/secrets/file"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
)

// Store reads from its sources in order and sends every write to a single
// writable store.
type Store struct {
	writer  ports.SecretStore
	sources []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilWriter  = errors.New("writable secret store is nil")
	errNoSources  = errors.New("secret store chain has no sources")
	errNilSources = errors.New("secret store source is nil")
)

func NewStore(writer ports.SecretStore, sources ...ports.SecretStore) (*Store, error) {
	if writer == nil {
		return nil, errNilWriter
	}
	if len(sources) == 0 {
		return nil, errNoSources
	}
	for _, source := range sources {
		if source == nil {
			return nil, errNilSources
		}
	}
	return &Store{writer: writer, sources: sources}, nil
}

// NewPasswordStore resolves DNAA_PASSWORD before the password files under
// fileRoot. Saved passwords go to the files.
func NewPasswordStore(fileRoot string) (*Store, error) {
	files := filestore.NewStore(fileRoot)
	return NewStore(files, envstore.NewStore(), files)
}

// Get returns the first value a source holds. When every source misses the
// error wraps domain.ErrSecretNotFound; any other failure is reported
// instead, so a broken store is not mistaken for a missing password.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var failures []error
	for _, source := range s.sources {
		value, err := source.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		if !errors.Is(err, domain.ErrSecretNotFound) {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return "", fmt.Errorf("get secret %q: %w", key, errors.Join(failures...))
	}
	return "", fmt.Errorf("get secret %q: %w", key, domain.ErrSecretNotFound)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.writer.Put(ctx, key, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.writer.Delete(ctx, key)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
