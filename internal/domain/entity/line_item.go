package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de la factura.
// Total = Quantity * UnitPrice con precisión completa (sin redondeo).
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
