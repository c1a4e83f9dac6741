package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// memStore SnapshotStore en memoria con error de escritura configurable.
type memStore struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	loadErr error
	saves   int
}

func (s *memStore) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.data == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *memStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	return nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice(id string) *entity.Invoice {
	created := time.Date(2024, time.March, 10, 15, 4, 5, 123_000_000, time.UTC)
	return &entity.Invoice{
		ID:            id,
		InvoiceNumber: "INV-1710083045123-" + id,
		Customer: entity.CustomerDetails{
			Name: "Acme", Email: "a@acme.com", Address: "1 Main St", Company: "Acme Inc",
		},
		LineItems: []entity.LineItem{
			{ID: "li-" + id, Description: "Widget", Quantity: d("2"), UnitPrice: d("9.99"), Total: d("19.98")},
		},
		TaxRate:   d("0.1"),
		Subtotal:  d("19.98"),
		TaxAmount: d("1.998"),
		Total:     d("21.978"),
		CreatedAt: created,
		DueDate:   created.Add(30 * 24 * time.Hour),
	}
}

func assertSameInvoice(t *testing.T, want, got *entity.Invoice) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, want.Customer, got.Customer)
	require.Len(t, got.LineItems, len(want.LineItems))
	for i := range want.LineItems {
		assert.Equal(t, want.LineItems[i].ID, got.LineItems[i].ID)
		assert.Equal(t, want.LineItems[i].Description, got.LineItems[i].Description)
		assert.Equal(t, want.LineItems[i].Total.String(), got.LineItems[i].Total.String())
	}
	assert.Equal(t, want.Subtotal.String(), got.Subtotal.String())
	assert.Equal(t, want.TaxAmount.String(), got.TaxAmount.String())
	assert.Equal(t, want.Total.String(), got.Total.String())
	assert.Equal(t, want.TaxRate.String(), got.TaxRate.String())
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.DueDate.Equal(got.DueDate))
}

// ──────────────────────────────────────────────────────────────────────────────
// Load
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_SinDocumentoArrancaVacio(t *testing.T) {
	repo := snapshot.NewInvoiceRepository(&memStore{}, logger.Nop())
	repo.Load(context.Background())

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLoad_DocumentoCorruptoArrancaVacioYRegistra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	store := &memStore{data: []byte("{esto no es json")}

	repo := snapshot.NewInvoiceRepository(store, log)
	repo.Load(context.Background())

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Contains(t, buf.String(), "corrupto")
}

func TestLoad_ErrorDeLecturaArrancaVacio(t *testing.T) {
	repo := snapshot.NewInvoiceRepository(&memStore{loadErr: errors.New("permiso denegado")}, logger.Nop())
	repo.Load(context.Background())

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

// Los campos derivados se restauran tal cual, sin recalcular.
func TestLoad_RehidrataCamposDerivadosVerbatim(t *testing.T) {
	store := &memStore{data: []byte(`[{
		"id": "x1",
		"invoiceNumber": "INV-1-abcdef",
		"customer": {"name": "Acme", "email": "a@acme.com", "address": "1 Main St"},
		"lineItems": [{"id": "l1", "description": "W", "quantity": "2", "unitPrice": "9.99", "total": "999"}],
		"subtotal": "5",
		"taxAmount": "0.5",
		"total": "5.5",
		"taxRate": "0.1",
		"createdAt": "2024-03-10T15:04:05.123Z",
		"dueDate": "2024-04-09T15:04:05.123Z"
	}]`)}

	repo := snapshot.NewInvoiceRepository(store, logger.Nop())
	repo.Load(context.Background())

	inv, err := repo.FindByID(context.Background(), "x1")
	require.NoError(t, err)
	assert.Equal(t, "999", inv.LineItems[0].Total.String())
	assert.Equal(t, "5", inv.Subtotal.String())
	assert.Equal(t, "5.5", inv.Total.String())
	assert.Empty(t, inv.Customer.Phone)
}

// ──────────────────────────────────────────────────────────────────────────────
// Append / FindAll / FindByID
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_IdaYVueltaPorArchivo(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "invoices.json")

	repo := snapshot.NewInvoiceRepository(filestore.New(path), logger.Nop())
	repo.Load(ctx)
	a, b := sampleInvoice("a"), sampleInvoice("b")
	require.NoError(t, repo.Append(ctx, a))
	require.NoError(t, repo.Append(ctx, b))

	reloaded := snapshot.NewInvoiceRepository(filestore.New(path), logger.Nop())
	reloaded.Load(ctx)

	all, err := reloaded.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assertSameInvoice(t, a, all[0])
	assertSameInvoice(t, b, all[1])
}

func TestFindAll_OrdenDeCreacion(t *testing.T) {
	ctx := context.Background()
	repo := snapshot.NewInvoiceRepository(&memStore{}, logger.Nop())
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, sampleInvoice(fmt.Sprintf("id%d", i))))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, inv := range all {
		assert.Equal(t, fmt.Sprintf("id%d", i), inv.ID)
	}
}

func TestFindByID_NoEncontrada(t *testing.T) {
	repo := snapshot.NewInvoiceRepository(&memStore{}, logger.Nop())
	_, err := repo.FindByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByID_DevuelveCopia(t *testing.T) {
	ctx := context.Background()
	repo := snapshot.NewInvoiceRepository(&memStore{}, logger.Nop())
	require.NoError(t, repo.Append(ctx, sampleInvoice("a")))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	got.LineItems[0].Description = "mutada"

	again, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Widget", again.LineItems[0].Description)
}

func TestAppend_Rechazos(t *testing.T) {
	ctx := context.Background()
	repo := snapshot.NewInvoiceRepository(&memStore{}, logger.Nop())

	assert.ErrorIs(t, repo.Append(ctx, nil), domain.ErrInvalidInput)
	require.NoError(t, repo.Append(ctx, sampleInvoice("a")))
	assert.ErrorIs(t, repo.Append(ctx, sampleInvoice("a")), domain.ErrInvalidInput)
}

// Un fallo de escritura se registra pero la factura queda en memoria.
func TestAppend_FalloDePersistenciaNoSePropaga(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	store := &memStore{saveErr: errors.New("disco lleno")}
	repo := snapshot.NewInvoiceRepository(store, log)

	require.NoError(t, repo.Append(context.Background(), sampleInvoice("a")))

	got, err := repo.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Contains(t, buf.String(), "disco lleno")
	assert.Equal(t, 1, store.saves)
}

func TestAppend_ConcurrenteNoPierdeFacturas(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	repo := snapshot.NewInvoiceRepository(store, logger.Nop())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, sampleInvoice(fmt.Sprintf("c%d", i))))
		}(i)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)

	// El último documento escrito contiene todas las facturas.
	reloaded := snapshot.NewInvoiceRepository(store, logger.Nop())
	reloaded.Load(ctx)
	persisted, err := reloaded.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, n)
}
