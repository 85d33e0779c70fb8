package tokenstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

func TestStores(t *testing.T) {
	stores := map[string]store{
		"bolt":   NewBoltStore(filepath.Join(t.TempDir(), "nested", "session.db")),
		"memory": NewMemoryStore(),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			token, err := s.Load()
			require.NoError(t, err)
			assert.Empty(t, token)

			require.NoError(t, s.Save("first"))
			require.NoError(t, s.Save("second"))
			token, err = s.Load()
			require.NoError(t, err)
			assert.Equal(t, "second", token)

			require.NoError(t, s.Clear())
			token, err = s.Load()
			require.NoError(t, err)
			assert.Empty(t, token)
		})
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	require.NoError(t, NewBoltStore(path).Save("persisted"))

	token, err := NewBoltStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
	assert.NoError(t, NewBoltStore(filepath.Join(t.TempDir(), "missing.db")).Clear())
}
