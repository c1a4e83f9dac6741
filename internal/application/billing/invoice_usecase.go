package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
	"github.com/jhoicas/Invoicer-api/internal/domain/pricing"
	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// InvoiceUseCase crea y consulta facturas.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	model       *pricing.Model
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, model *pricing.Model, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		model:       model,
		log:         log.Named("invoice_usecase"),
	}
}

// CreateInvoice valora las líneas, arma la factura y la agrega al repositorio.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.LineItems) == 0 {
		return nil, domain.NewValidationError("lineItems", "debe contener al menos una línea")
	}

	items := make([]entity.LineItem, 0, len(in.LineItems))
	for i, li := range in.LineItems {
		item, err := uc.model.PriceLineItem(li.Description, li.Quantity, li.UnitPrice)
		if err != nil {
			return nil, prefixFields(err, fmt.Sprintf("lineItems[%d].", i))
		}
		items = append(items, item)
	}

	inv, err := uc.model.PriceInvoice(toCustomerDetails(in.Customer), items, in.TaxRate)
	if err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.Append(ctx, inv); err != nil {
		return nil, fmt.Errorf("billing: guardar factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Int("line_items", len(inv.LineItems)).
		Str("total", inv.Total.String()).
		Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// ListInvoices devuelve todas las facturas en orden de creación.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	all, err := uc.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing: listar facturas: %w", err)
	}
	out := make([]*dto.InvoiceResponse, 0, len(all))
	for _, inv := range all {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// GetInvoice devuelve la factura o domain.ErrNotFound.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// prefixFields ubica los campos de un ValidationError dentro de la solicitud.
func prefixFields(err error, prefix string) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make(map[string]string, len(verr.Fields))
	for k, v := range verr.Fields {
		fields[prefix+k] = v
	}
	return &domain.ValidationError{Fields: fields}
}
