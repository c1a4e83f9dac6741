package billing

import (
	"context"

	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
)

// InvoiceRenderer genera el documento (PDF) de una factura.
// Los fallos internos deben envolver domain.ErrRender.
type InvoiceRenderer interface {
	Render(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
