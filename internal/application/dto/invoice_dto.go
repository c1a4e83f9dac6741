package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /invoices.
// TaxRate opcional: si no viene se aplica la tasa por defecto (0.10).
type CreateInvoiceRequest struct {
	Customer  CustomerRequest   `json:"customer" validate:"required"`
	LineItems []LineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
	TaxRate   *decimal.Decimal  `json:"taxRate,omitempty" validate:"omitempty,gt=0" swaggertype:"number" example:"0.1"`
}

// CustomerRequest datos del cliente a facturar.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required" example:"Acme"`
	Email   string `json:"email" validate:"required,email" example:"a@acme.com"`
	Address string `json:"address" validate:"required" example:"1 Main St"`
	Phone   string `json:"phone,omitempty" example:"555-0100"`
	Company string `json:"company,omitempty" example:"Acme Inc"`
}

// LineItemRequest línea de factura (descripción, cantidad, precio unitario).
type LineItemRequest struct {
	Description string          `json:"description" validate:"required" example:"Widget"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required,gt=0" swaggertype:"number" example:"2"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"required,gt=0" swaggertype:"number" example:"9.99"`
}

// InvoiceResponse factura completa en respuestas.
// Los montos viajan como string decimal exacto (sin redondeo).
type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoiceNumber"`
	Customer      CustomerResponse   `json:"customer"`
	LineItems     []LineItemResponse `json:"lineItems"`
	TaxRate       decimal.Decimal    `json:"taxRate" swaggertype:"string" example:"0.1"`
	Subtotal      decimal.Decimal    `json:"subtotal" swaggertype:"string" example:"19.98"`
	TaxAmount     decimal.Decimal    `json:"taxAmount" swaggertype:"string" example:"1.998"`
	Total         decimal.Decimal    `json:"total" swaggertype:"string" example:"21.978"`
	CreatedAt     time.Time          `json:"createdAt"`
	DueDate       time.Time          `json:"dueDate"`
}

// CustomerResponse cliente embebido en la factura.
type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// LineItemResponse línea de detalle en la respuesta.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string" example:"2"`
	UnitPrice   decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"9.99"`
	Total       decimal.Decimal `json:"total" swaggertype:"string" example:"19.98"`
}
