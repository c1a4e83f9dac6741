// seed carga facturas de ejemplo en el almacenamiento configurado (STORAGE_DRIVER)
// pasando por el mismo caso de uso que POST /invoices.
//
// Uso: go run ./cmd/seed [ruta/facturas.json]
// Sin argumento usa el conjunto embebido sample_invoices.json.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jhoicas/Invoicer-api/internal/application/billing"
	"github.com/jhoicas/Invoicer-api/internal/domain/pricing"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Invoicer-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicer-api/pkg/config"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

//go:embed sample_invoices.json
var sampleInvoices []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	var src io.Reader = bytes.NewReader(sampleInvoices)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}
	reqs, err := readRequests(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	taxRate, err := cfg.Billing.TaxRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg.Storage, cfg.DB, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	repo := snapshot.NewInvoiceRepository(store, log)
	repo.Load(ctx)

	model := pricing.NewModel(
		pricing.WithDefaultTaxRate(taxRate),
		pricing.WithPaymentTerm(time.Duration(cfg.Billing.PaymentTermDays)*24*time.Hour),
	)
	uc := billing.NewInvoiceUseCase(repo, model, log)

	created, err := seedInvoices(ctx, uc, apphttp.NewValidator(), reqs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar facturas: %v\n", err)
		os.Exit(1)
	}
	for _, inv := range created {
		fmt.Printf("%s  %-24s  total %s\n", inv.InvoiceNumber, inv.Customer.Name, inv.Total.StringFixed(2))
	}
	fmt.Printf("Creadas %d facturas\n", len(created))
}
