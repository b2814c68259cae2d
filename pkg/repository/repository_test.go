package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()

	// create temp file for test database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	cfg := Config{
		DSN: "file:" + tmpFile.Name() + "?mode=rwc",
	}

	repos, err = NewRepositories(context.Background(), cfg)
	require.NoError(t, err)

	cleanup = func() {
		repos.Close()
		os.Remove(tmpFile.Name())
	}

	return repos, cleanup
}

func TestNewRepositories_InitSchema(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	var count int
	err := repos.DB.Get(&count, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('suscriptores', 'logs', 'mensajes_especiales')
	`)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepositories_Ping(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, repos.Ping(context.Background()))
}
