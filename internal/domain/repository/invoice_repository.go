package repository

import (
	"context"
	"errors"

	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
// No existe Update ni Delete: una factura es de solo lectura después de emitida.
type InvoiceRepository interface {
	// Append agrega la factura al final de la colección y persiste la colección completa.
	Append(ctx context.Context, invoice *entity.Invoice) error
	// FindAll devuelve todas las facturas en orden de creación.
	FindAll(ctx context.Context) ([]*entity.Invoice, error)
	// FindByID devuelve domain.ErrNotFound si no existe.
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)
}

// ErrSnapshotNotFound lo devuelve SnapshotStore.Load cuando aún no hay nada guardado.
var ErrSnapshotNotFound = errors.New("snapshot inexistente")

// SnapshotStore almacén de respaldo: un único documento que se reescribe completo.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
