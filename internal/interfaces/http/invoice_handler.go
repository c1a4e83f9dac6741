package http

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicer-api/internal/application/billing"
	"github.com/jhoicas/Invoicer-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc       *billing.InvoiceUseCase
	pdf      *billing.PDFUseCase
	validate *validator.Validate
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, validate *validator.Validate) *InvoiceHandler {
	if validate == nil {
		validate = NewValidator()
	}
	return &InvoiceHandler{uc: uc, pdf: pdf, validate: validate}
}

// Create godoc
// @Summary      Crear factura
// @Description  Valora las líneas, calcula subtotal, impuesto (10% por defecto) y total, y guarda la factura.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Cliente, líneas y tasa opcional"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := decodeStrict(c.Body(), &in); err != nil {
		return writeError(c, err, "")
	}
	if err := ValidateRequest(h.validate, &in); err != nil {
		return writeError(c, err, "")
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Description  Todas las facturas en orden de creación.
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListInvoices(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, notFoundMessage(id))
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, notFoundMessage(id))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(pdfBytes)))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Invoice with ID %s not found", id)
}
