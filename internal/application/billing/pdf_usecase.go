package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/repository"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// PDFUseCase genera el documento PDF de una factura existente.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	renderer    InvoiceRenderer
	log         *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, renderer InvoiceRenderer, log *logger.Logger) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		log:         log.Named("pdf_usecase"),
	}
}

// DownloadInvoicePDF busca la factura y genera su PDF.
//
// Retorna:
//   - (pdfBytes, "invoice-<invoiceNumber>.pdf", nil) si todo sale bien.
//   - domain.ErrNotFound si la factura no existe.
//   - domain.ErrRender   si la generación falla.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.renderer.Render(ctx, inv)
	if err != nil {
		if !errors.Is(err, domain.ErrRender) {
			err = fmt.Errorf("%w: %w", domain.ErrRender, err)
		}
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("no se pudo generar el PDF")
		return nil, "", err
	}

	return pdfBytes, FileName(inv.InvoiceNumber), nil
}

// FileName nombre del adjunto para un número de factura.
func FileName(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceNumber)
}
