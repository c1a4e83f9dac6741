package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

// DefaultSnapshotKey clave de la fila que guarda la colección de facturas.
const DefaultSnapshotKey = "invoices"

const createSnapshotTable = `
	CREATE TABLE IF NOT EXISTS invoice_snapshots (
		key        TEXT PRIMARY KEY,
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SnapshotStore implementa repository.SnapshotStore como una fila clave-valor:
// el documento JSON completo se reescribe en cada Save.
type SnapshotStore struct {
	q   Querier
	key string
}

// NewSnapshotStore construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotStore(q Querier, key string) *SnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotStore{q: q, key: key}
}

// Migrate crea la tabla si no existe.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, createSnapshotTable); err != nil {
		return fmt.Errorf("crear tabla invoice_snapshots: %w", err)
	}
	return nil
}

// Load devuelve el documento guardado o repository.ErrSnapshotNotFound.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	var doc string
	err := s.q.QueryRow(ctx, `SELECT document::text FROM invoice_snapshots WHERE key = $1`, s.key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("leer snapshot %s: %w", s.key, err)
	}
	return []byte(doc), nil
}

// Save hace upsert del documento completo.
func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO invoice_snapshots (key, document, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := s.q.Exec(ctx, query, s.key, string(data)); err != nil {
		return fmt.Errorf("guardar snapshot %s: %w", s.key, err)
	}
	return nil
}
