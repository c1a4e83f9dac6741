package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicer-api/internal/application/billing"
	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
	"github.com/jhoicas/Invoicer-api/internal/domain/pricing"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

// fakeRepo repositorio en memoria con error de escritura configurable.
type fakeRepo struct {
	mu        sync.Mutex
	items     []*entity.Invoice
	appendErr error
}

func (r *fakeRepo) Append(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.items = append(r.items, inv.Clone())
	return nil
}

func (r *fakeRepo) FindAll(context.Context) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(r.items))
	for _, inv := range r.items {
		out = append(out, inv.Clone())
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.items {
		if inv.ID == id {
			return inv.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
}

// MockRenderer doble de billing.InvoiceRenderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, inv *entity.Invoice) ([]byte, error) {
	args := m.Called(ctx, inv)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

var fixedNow = time.Date(2024, time.March, 10, 15, 4, 5, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInvoiceUC(repo *fakeRepo) *billing.InvoiceUseCase {
	model := pricing.NewModel(pricing.WithClock(func() time.Time { return fixedNow }))
	return billing.NewInvoiceUseCase(repo, model, logger.Nop())
}

func acmeRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Customer: dto.CustomerRequest{Name: "Acme", Email: "a@acme.com", Address: "1 Main St"},
		LineItems: []dto.LineItemRequest{
			{Description: "Widget", Quantity: d("2"), UnitPrice: d("9.99")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InvoiceUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_EscenarioAcme(t *testing.T) {
	repo := &fakeRepo{}
	uc := newInvoiceUC(repo)

	res, err := uc.CreateInvoice(context.Background(), acmeRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Regexp(t, `^INV-\d+-[0-9a-f]{6}$`, res.InvoiceNumber)
	assert.Equal(t, "Acme", res.Customer.Name)
	require.Len(t, res.LineItems, 1)
	assert.Equal(t, "19.98", res.LineItems[0].Total.String())
	assert.Equal(t, "19.98", res.Subtotal.String())
	assert.Equal(t, "1.998", res.TaxAmount.String())
	assert.Equal(t, "21.978", res.Total.String())
	assert.True(t, res.TaxRate.Equal(d("0.1")))
	assert.Equal(t, fixedNow.Add(30*24*time.Hour), res.DueDate)

	require.Len(t, repo.items, 1)
	assert.Equal(t, res.ID, repo.items[0].ID)
}

func TestCreateInvoice_TasaExplicita(t *testing.T) {
	uc := newInvoiceUC(&fakeRepo{})
	req := acmeRequest()
	rate := d("0.19")
	req.TaxRate = &rate

	res, err := uc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "3.7962", res.TaxAmount.String())
}

func TestCreateInvoice_ValidacionConCampoUbicado(t *testing.T) {
	uc := newInvoiceUC(&fakeRepo{})
	req := acmeRequest()
	req.LineItems = append(req.LineItems, dto.LineItemRequest{Description: "Malo", Quantity: d("-1"), UnitPrice: d("1")})

	_, err := uc.CreateInvoice(context.Background(), req)
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "lineItems[1].quantity")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateInvoice_SinLineas(t *testing.T) {
	repo := &fakeRepo{}
	uc := newInvoiceUC(repo)
	req := acmeRequest()
	req.LineItems = nil

	_, err := uc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.items)
}

func TestCreateInvoice_ErrorDelRepositorio(t *testing.T) {
	uc := newInvoiceUC(&fakeRepo{appendErr: errors.New("boom")})
	_, err := uc.CreateInvoice(context.Background(), acmeRequest())
	assert.Error(t, err)
}

func TestListInvoices_OrdenDeCreacion(t *testing.T) {
	uc := newInvoiceUC(&fakeRepo{})
	ctx := context.Background()

	first, err := uc.CreateInvoice(ctx, acmeRequest())
	require.NoError(t, err)
	second, err := uc.CreateInvoice(ctx, acmeRequest())
	require.NoError(t, err)

	all, err := uc.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
}

func TestListInvoices_VaciaNoEsNil(t *testing.T) {
	all, err := newInvoiceUC(&fakeRepo{}).ListInvoices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGetInvoice(t *testing.T) {
	uc := newInvoiceUC(&fakeRepo{})
	ctx := context.Background()
	created, err := uc.CreateInvoice(ctx, acmeRequest())
	require.NoError(t, err)

	got, err := uc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = uc.GetInvoice(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDFUseCase
// ──────────────────────────────────────────────────────────────────────────────

func seededRepo(t *testing.T) (*fakeRepo, *dto.InvoiceResponse) {
	t.Helper()
	repo := &fakeRepo{}
	created, err := newInvoiceUC(repo).CreateInvoice(context.Background(), acmeRequest())
	require.NoError(t, err)
	return repo, created
}

func TestDownloadInvoicePDF_NombreDeArchivo(t *testing.T) {
	repo, created := seededRepo(t)
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(inv *entity.Invoice) bool {
		return inv.ID == created.ID
	})).Return([]byte("%PDF-1.3 fake"), nil)

	uc := billing.NewPDFUseCase(repo, renderer, logger.Nop())
	out, name, err := uc.DownloadInvoicePDF(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3 fake"), out)
	assert.Equal(t, "invoice-"+created.InvoiceNumber+".pdf", name)
	renderer.AssertExpectations(t)
}

func TestDownloadInvoicePDF_NoEncontrada(t *testing.T) {
	renderer := new(MockRenderer)
	uc := billing.NewPDFUseCase(&fakeRepo{}, renderer, logger.Nop())

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

// Un fallo de render no se confunde con "no encontrada".
func TestDownloadInvoicePDF_ErrorDeRender(t *testing.T) {
	repo, created := seededRepo(t)
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("fuente inválida"))

	uc := billing.NewPDFUseCase(repo, renderer, logger.Nop())
	_, _, err := uc.DownloadInvoicePDF(context.Background(), created.ID)

	assert.ErrorIs(t, err, domain.ErrRender)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindRender, domain.KindOf(err))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "invoice-INV-1-abcdef.pdf", billing.FileName("INV-1-abcdef"))
}
