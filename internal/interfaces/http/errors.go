package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	"github.com/jhoicas/Invoicer-api/internal/domain"
)

// writeError traduce un error de dominio a la respuesta HTTP correspondiente.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		res := dto.ErrorResponse{
			Code:       string(domain.KindValidation),
			Message:    "datos inválidos",
			StatusCode: fiber.StatusBadRequest,
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			res.Message = verr.Error()
			res.Details = verr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(res)
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:       string(domain.KindNotFound),
			Message:    notFoundMsg,
			StatusCode: fiber.StatusNotFound,
		})
	case domain.KindRender:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:       string(domain.KindRender),
			Message:    "no se pudo generar el PDF de la factura",
			StatusCode: fiber.StatusInternalServerError,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:       string(domain.KindInternal),
			Message:    err.Error(),
			StatusCode: fiber.StatusInternalServerError,
		})
	}
}
