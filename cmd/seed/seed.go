package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Invoicer-api/internal/application/billing"
	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	apphttp "github.com/jhoicas/Invoicer-api/internal/interfaces/http"
)

// readRequests lee un arreglo JSON de solicitudes; rechaza campos desconocidos
// igual que POST /invoices.
func readRequests(r io.Reader) ([]dto.CreateInvoiceRequest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var reqs []dto.CreateInvoiceRequest
	if err := dec.Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decodificar solicitudes: %w", err)
	}
	return reqs, nil
}

// seedInvoices valida todas las solicitudes antes de crear ninguna, y luego las
// crea en orden por el mismo caso de uso que la API.
func seedInvoices(ctx context.Context, uc *billing.InvoiceUseCase, v *validator.Validate, reqs []dto.CreateInvoiceRequest) ([]*dto.InvoiceResponse, error) {
	for i := range reqs {
		if err := apphttp.ValidateRequest(v, &reqs[i]); err != nil {
			return nil, fmt.Errorf("solicitud %d: %w", i, err)
		}
	}
	out := make([]*dto.InvoiceResponse, 0, len(reqs))
	for i, req := range reqs {
		inv, err := uc.CreateInvoice(ctx, req)
		if err != nil {
			return out, fmt.Errorf("solicitud %d: %w", i, err)
		}
		out = append(out, inv)
	}
	return out, nil
}
