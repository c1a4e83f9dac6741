// Package storage elige el SnapshotStore según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invoicer-api/pkg/config"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// Open devuelve el store del driver configurado y la función que libera sus recursos.
// Con el driver postgres crea la tabla invoice_snapshots si no existe.
func Open(ctx context.Context, cfg config.StorageConfig, db config.DBConfig, log *logger.Logger) (repository.SnapshotStore, func(), error) {
	switch cfg.Driver {
	case config.StorageFile, "":
		log.Info().Str("file", cfg.File).Msg("almacenamiento en archivo JSON")
		return filestore.New(cfg.File), func() {}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewSnapshotStore(pool, postgres.DefaultSnapshotKey)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("storage: migración: %w", err)
		}
		log.Info().Msg("almacenamiento en PostgreSQL")
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
