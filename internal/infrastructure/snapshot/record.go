package snapshot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
)

// invoiceRecord representación almacenada de una factura. Al rehidratar, todos
// los campos (derivados incluidos) se copian tal cual: nunca se recalculan.
type invoiceRecord struct {
	ID            string           `json:"id"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Customer      customerRecord   `json:"customer"`
	LineItems     []lineItemRecord `json:"lineItems"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TaxAmount     decimal.Decimal  `json:"taxAmount"`
	Total         decimal.Decimal  `json:"total"`
	TaxRate       decimal.Decimal  `json:"taxRate"`
	CreatedAt     time.Time        `json:"createdAt"`
	DueDate       time.Time        `json:"dueDate"`
}

type customerRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

type lineItemRecord struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

func toRecord(inv *entity.Invoice) invoiceRecord {
	items := make([]lineItemRecord, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		items = append(items, lineItemRecord{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return invoiceRecord{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Customer: customerRecord{
			Name:    inv.Customer.Name,
			Email:   inv.Customer.Email,
			Address: inv.Customer.Address,
			Phone:   inv.Customer.Phone,
			Company: inv.Customer.Company,
		},
		LineItems: items,
		Subtotal:  inv.Subtotal,
		TaxAmount: inv.TaxAmount,
		Total:     inv.Total,
		TaxRate:   inv.TaxRate,
		CreatedAt: inv.CreatedAt,
		DueDate:   inv.DueDate,
	}
}

func (r invoiceRecord) toEntity() *entity.Invoice {
	items := make([]entity.LineItem, 0, len(r.LineItems))
	for _, it := range r.LineItems {
		items = append(items, entity.LineItem{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return &entity.Invoice{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		Customer: entity.CustomerDetails{
			Name:    r.Customer.Name,
			Email:   r.Customer.Email,
			Address: r.Customer.Address,
			Phone:   r.Customer.Phone,
			Company: r.Customer.Company,
		},
		LineItems: items,
		TaxRate:   r.TaxRate,
		Subtotal:  r.Subtotal,
		TaxAmount: r.TaxAmount,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		DueDate:   r.DueDate,
	}
}
