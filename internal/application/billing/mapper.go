package billing

import (
	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		items = append(items, dto.LineItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Customer: dto.CustomerResponse{
			Name:    inv.Customer.Name,
			Email:   inv.Customer.Email,
			Address: inv.Customer.Address,
			Phone:   inv.Customer.Phone,
			Company: inv.Customer.Company,
		},
		LineItems: items,
		TaxRate:   inv.TaxRate,
		Subtotal:  inv.Subtotal,
		TaxAmount: inv.TaxAmount,
		Total:     inv.Total,
		CreatedAt: inv.CreatedAt,
		DueDate:   inv.DueDate,
	}
}

func toCustomerDetails(in dto.CustomerRequest) entity.CustomerDetails {
	return entity.CustomerDetails{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		Phone:   in.Phone,
		Company: in.Company,
	}
}
