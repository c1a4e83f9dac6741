// Package pricing es el modelo de precios de la factura: convierte líneas y una
// tasa de impuesto en una factura con subtotal, impuesto, total y vencimiento.
//
// Toda la aritmética usa decimal.Decimal y no redondea; el redondeo a 2
// decimales ocurre solo al presentar los montos (PDF, vistas).
package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
)

// DefaultTaxRate tasa aplicada cuando la solicitud no trae taxRate (10%).
var DefaultTaxRate = decimal.New(10, -2)

// PaymentTerm plazo de pago por defecto: vencimiento = creación + 30 días exactos.
const PaymentTerm = 30 * 24 * time.Hour

// Model construye líneas y facturas. No tiene efectos secundarios: persistir es
// responsabilidad del repositorio.
type Model struct {
	now     func() time.Time
	newID   func() string
	numbers *Sequencer
	taxRate decimal.Decimal
	term    time.Duration
}

// Option configura el Model.
type Option func(*Model)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(fn func() string) Option {
	return func(m *Model) { m.newID = fn }
}

// WithSequencer comparte un generador de números de factura.
func WithSequencer(s *Sequencer) Option {
	return func(m *Model) { m.numbers = s }
}

// WithDefaultTaxRate cambia la tasa usada cuando no se indica ninguna.
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(m *Model) {
		if rate.IsPositive() {
			m.taxRate = rate
		}
	}
}

// WithPaymentTerm cambia el plazo de pago.
func WithPaymentTerm(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.term = d
		}
	}
}

// NewModel construye el modelo con reloj UTC, UUID v4 y la tasa por defecto.
func NewModel(opts ...Option) *Model {
	m := &Model{
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
		taxRate: DefaultTaxRate,
		term:    PaymentTerm,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.numbers == nil {
		m.numbers = NewSequencer()
	}
	return m
}

// DefaultRate tasa que se aplica cuando PriceInvoice recibe nil.
func (m *Model) DefaultRate() decimal.Decimal { return m.taxRate }

// PriceLineItem crea una línea con ID nuevo y Total = quantity * unitPrice.
// Cantidad y precio deben ser estrictamente positivos: los valores no positivos
// se rechazan, nunca se ajustan.
func (m *Model) PriceLineItem(description string, quantity, unitPrice decimal.Decimal) (entity.LineItem, error) {
	if !quantity.IsPositive() {
		return entity.LineItem{}, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if !unitPrice.IsPositive() {
		return entity.LineItem{}, domain.NewValidationError("unitPrice", "debe ser mayor que cero")
	}
	return entity.LineItem{
		ID:          m.newID(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       LineTotal(quantity, unitPrice),
	}, nil
}

// PriceInvoice arma la factura a partir de líneas ya valoradas.
// taxRate nil usa la tasa por defecto; si viene debe ser positiva.
func (m *Model) PriceInvoice(customer entity.CustomerDetails, lineItems []entity.LineItem, taxRate *decimal.Decimal) (*entity.Invoice, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if len(lineItems) == 0 {
		return nil, domain.NewValidationError("lineItems", "debe contener al menos una línea")
	}
	rate := m.taxRate
	if taxRate != nil {
		if !taxRate.IsPositive() {
			return nil, domain.NewValidationError("taxRate", "debe ser mayor que cero")
		}
		rate = *taxRate
	}

	// La factura es dueña de sus líneas: se copian para no compartir el arreglo del caller.
	items := make([]entity.LineItem, len(lineItems))
	copy(items, lineItems)

	subtotal := Subtotal(items)
	taxAmount := TaxAmount(subtotal, rate)
	createdAt := m.now()

	return &entity.Invoice{
		ID:            m.newID(),
		InvoiceNumber: m.numbers.Next(createdAt),
		Customer:      customer,
		LineItems:     items,
		TaxRate:       rate,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Total:         subtotal.Add(taxAmount),
		CreatedAt:     createdAt,
		DueDate:       DueDate(createdAt, m.term),
	}, nil
}

// LineTotal = cantidad * precio unitario, sin redondeo.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Subtotal suma exacta de los totales de línea.
func Subtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// TaxAmount = subtotal * tasa.
func TaxAmount(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate)
}

// DueDate = createdAt + term.
func DueDate(createdAt time.Time, term time.Duration) time.Time {
	return createdAt.Add(term)
}

func validateCustomer(c entity.CustomerDetails) error {
	fields := map[string]string{}
	if c.Name == "" {
		fields["customer.name"] = "requerido"
	}
	if c.Email == "" {
		fields["customer.email"] = "requerido"
	}
	if c.Address == "" {
		fields["customer.address"] = "requerido"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
