package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/contractlens/internal/config"
	"github.com/bryanwahyu/contractlens/internal/infra/db/memory"
	"github.com/bryanwahyu/contractlens/internal/infra/storage"
)

func TestJobs_DefaultsToMemory(t *testing.T) {
	repo, closeFn, err := Jobs(context.Background(), config.Default())
	require.NoError(t, err)
	assert.IsType(t, &memory.JobRepository{}, repo)
	assert.NoError(t, closeFn())
}

func TestJobs_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "oracle"
	_, closeFn, err := Jobs(context.Background(), cfg)
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestStore_Local(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.LocalDir = t.TempDir()
	store, err := Store(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.Local{}, store)
	assert.NoError(t, store.Check(context.Background()))
}

func TestLogger_Levels(t *testing.T) {
	l, err := Logger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))

	l, err = Logger("", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))

	_, err = Logger("loud", false)
	assert.Error(t, err)
}
