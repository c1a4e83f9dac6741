// Package filestore guarda la colección de facturas en un único archivo JSON.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*Store)(nil)

// Store implementa repository.SnapshotStore sobre un archivo local.
// Cada Save reescribe el archivo completo.
type Store struct {
	path string
}

// New construye el store para la ruta indicada.
func New(path string) *Store {
	return &Store{path: path}
}

// Path ruta del archivo de respaldo.
func (s *Store) Path() string { return s.path }

// Load lee el archivo completo. Devuelve repository.ErrSnapshotNotFound si no existe.
func (s *Store) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("filestore: leer %s: %w", s.path, err)
	}
	return data, nil
}

// Save escribe en un temporal del mismo directorio y renombra, para que un fallo
// a mitad de escritura no deje el archivo truncado.
func (s *Store) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: crear directorio %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: cerrar: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: renombrar a %s: %w", s.path, err)
	}
	return nil
}
