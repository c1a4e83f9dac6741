package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicer-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BasePath   string // prefijo de rutas, ej. /api/v1
	InvoiceUC  *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	Validator  *validator.Validate
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group(deps.BasePath)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF, deps.Validator)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
