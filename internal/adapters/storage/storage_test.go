package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/adapters/storage"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage/disk"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-calm/internal/config"
)

func TestOpenLocalBackends(t *testing.T) {
	ctx := context.Background()

	b, closeFn, err := storage.Open(ctx, &config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, b)
	assert.NoError(t, closeFn())

	b, _, err = storage.Open(ctx, &config.Config{StorageBackend: config.BackendDisk, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &disk.Store{}, b)

	_, _, err = storage.Open(ctx, &config.Config{StorageBackend: "postgres"})
	assert.Error(t, err)
}
