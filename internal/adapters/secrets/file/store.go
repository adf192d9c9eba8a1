// Package file keeps account passwords in owner-only files, one per account.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
)

const (
	storeDirMode     = 0o700
	passwordFileMode = 0o600
	passwordExt      = ".password"
	tempFilePattern  = ".password-*"
)

var errUnsupportedKey = errors.New("not an account password key")

// Store maps dnaa://<account>/password to root/<account>.password.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.passwordPath(key)
	if err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("store password for %q: password is empty", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return fmt.Errorf("create password directory: %w", err)
	}
	if err := writeAtomic(s.root, path, value); err != nil {
		return fmt.Errorf("store password for %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.passwordPath(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("password file for %q: %w", key, domain.ErrSecretNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read password for %q: %w", key, err)
	}
	return string(data), nil
}

// Delete forgets a stored password. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.passwordPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete password for %q: %w", key, err)
	}
	return nil
}

func (s *Store) passwordPath(key string) (string, error) {
	account, ok := domain.ParsePasswordSecretKey(strings.TrimSpace(key))
	if !ok {
		return "", fmt.Errorf("secret key %q: %w", key, errUnsupportedKey)
	}
	if account == "." || account == ".." || strings.ContainsAny(account, `/\`) {
		return "", fmt.Errorf("secret key %q: invalid account name", key)
	}
	return filepath.Join(s.root, account+passwordExt), nil
}

func writeAtomic(dir, path, value string) error {
	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return err
	}
	tempName := tempFile.Name()
	defer func() { _ = os.Remove(tempName) }()

	if err := tempFile.Chmod(passwordFileMode); err != nil {
		_ = tempFile.Close()
		return err
	}
	if _, err := tempFile.WriteString(value); err != nil {
		_ = tempFile.Close()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempName, path)
}
