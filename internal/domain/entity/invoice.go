package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura emitida con sus totales ya calculados.
// Los campos derivados (Subtotal, TaxAmount, Total, DueDate) se fijan al crearla
// y nunca se recalculan: son hechos históricos.
type Invoice struct {
	ID            string
	InvoiceNumber string // INV-<epoch-millis>-<sufijo hex>
	Customer      CustomerDetails
	LineItems     []LineItem // orden de captura
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
	DueDate       time.Time
}

// Clone devuelve una copia independiente (cliente y líneas incluidos).
func (i *Invoice) Clone() *Invoice {
	if i == nil {
		return nil
	}
	out := *i
	out.LineItems = append([]LineItem(nil), i.LineItems...)
	return &out
}
