// Package snapshot implementa el repositorio de facturas como una colección en
// memoria respaldada por un único documento JSON que se reescribe completo en
// cada mutación (SnapshotStore: archivo o fila en PostgreSQL).
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

// InvoiceRepository colección ordenada de facturas (orden de inserción = orden de creación).
//
// Política de fallos: un documento corrupto al cargar se registra y se arranca
// vacío; un fallo al guardar se registra y no se propaga. La memoria es la
// fuente de verdad mientras viva el proceso.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices []*entity.Invoice
	byID     map[string]int
	store    repository.SnapshotStore
	log      *logger.Logger
}

// NewInvoiceRepository construye el repositorio vacío; llamar Load al arrancar.
func NewInvoiceRepository(store repository.SnapshotStore, log *logger.Logger) *InvoiceRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceRepository{
		byID:  map[string]int{},
		store: store,
		log:   log.Named("invoice_repository"),
	}
}

// Load reemplaza la colección en memoria por el contenido del store.
// Inexistente → vacía. Ilegible o corrupto → se registra el error y queda vacía.
func (r *InvoiceRepository) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invoices = nil
	r.byID = map[string]int{}

	data, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			r.log.Info().Msg("sin facturas guardadas, colección vacía")
			return
		}
		r.log.Error().Err(fmt.Errorf("%w: %w", domain.ErrPersistence, err)).Msg("error cargando facturas, colección vacía")
		return
	}

	var records []invoiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.Error().Err(fmt.Errorf("%w: %w", domain.ErrPersistence, err)).Msg("documento de facturas corrupto, colección vacía")
		return
	}
	for _, rec := range records {
		inv := rec.toEntity()
		r.byID[inv.ID] = len(r.invoices)
		r.invoices = append(r.invoices, inv)
	}
	r.log.Info().Int("count", len(r.invoices)).Msg("facturas cargadas")
}

// Append agrega la factura y reescribe el documento completo dentro de la misma
// sección crítica, para que dos creaciones simultáneas no se pisen.
func (r *InvoiceRepository) Append(ctx context.Context, invoice *entity.Invoice) error {
	if invoice == nil || invoice.ID == "" {
		return fmt.Errorf("%w: factura sin id", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[invoice.ID]; exists {
		return fmt.Errorf("%w: id de factura duplicado %s", domain.ErrInvalidInput, invoice.ID)
	}
	r.byID[invoice.ID] = len(r.invoices)
	r.invoices = append(r.invoices, invoice.Clone())

	if err := r.persistLocked(ctx); err != nil {
		r.log.Error().Err(err).
			Str("invoice_id", invoice.ID).
			Int("count", len(r.invoices)).
			Msg("no se pudo persistir la colección; se conserva en memoria")
	}
	return nil
}

// FindAll devuelve copias en orden de creación.
func (r *InvoiceRepository) FindAll(_ context.Context) ([]*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv.Clone())
	}
	return out, nil
}

// FindByID devuelve una copia o domain.ErrNotFound.
func (r *InvoiceRepository) FindByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return r.invoices[idx].Clone(), nil
}

// persistLocked serializa toda la colección. Requiere r.mu tomado.
func (r *InvoiceRepository) persistLocked(ctx context.Context) error {
	records := make([]invoiceRecord, 0, len(r.invoices))
	for _, inv := range r.invoices {
		records = append(records, toRecord(inv))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializar: %w", domain.ErrPersistence, err)
	}
	if err := r.store.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	r.log.Debug().Int("count", len(records)).Int("bytes", len(data)).Msg("colección persistida")
	return nil
}
