// Package storage selects the record backend named in the configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-calm/internal/adapters/storage/disk"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage/firestore"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-calm/internal/config"
	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// Open returns the configured backend and a func releasing it.
func Open(ctx context.Context, cfg *config.Config) (domain.RecordBackend, func() error, error) {
	log := observability.LoggerFromContext(ctx).With("storage_backend", cfg.StorageBackend)
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Info("using in-memory storage")
		return memory.NewStore(), noop, nil

	case config.BackendDisk:
		log.Info("using disk storage", "data_dir", cfg.DataDir)
		return disk.NewStore(cfg.DataDir), noop, nil

	case config.BackendFirestore:
		fs, err := firestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using firestore storage", "project", cfg.GCPProjectID)
		return fs, fs.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
