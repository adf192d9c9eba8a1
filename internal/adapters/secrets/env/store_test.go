package env

import (
	"context"
	"testing"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLookup(values map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestStoreGetReturnsPasswordVariable(t *testing.T) {
	t.Parallel()

	store := &Store{lookup: fixedLookup(map[string]string{PasswordVar: "pw"})}

	got, err := store.Get(context.Background(), domain.PasswordSecretKey("ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "pw", got)
}

func TestStoreGetMissingVariable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		values map[string]string
		key    string
	}{
		{name: "unset", values: map[string]string{}, key: domain.PasswordSecretKey("ada@example.com")},
		{name: "empty", values: map[string]string{PasswordVar: ""}, key: domain.PasswordSecretKey("ada@example.com")},
		{name: "not a password key", values: map[string]string{PasswordVar: "pw"}, key: "dnaa://ada@example.com/token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &Store{lookup: fixedLookup(tc.values)}
			_, err := store.Get(context.Background(), tc.key)
			require.ErrorIs(t, err, domain.ErrSecretNotFound)
		})
	}
}

func TestStoreIsReadOnly(t *testing.T) {
	t.Parallel()

	store := NewStore()
	require.ErrorIs(t, store.Put(context.Background(), "k", "v"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), "k"), ErrReadOnly)
}

func TestNewStoreReadsProcessEnvironment(t *testing.T) {
	t.Setenv(PasswordVar, "from-process")

	got, err := NewStore().Get(context.Background(), domain.PasswordSecretKey("ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "from-process", got)
}
