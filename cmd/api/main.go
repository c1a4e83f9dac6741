// @title        Invoicer API
// @version      1.0
// @description  API de facturación: crea facturas, calcula totales e impuestos y genera el PDF.
// @BasePath     /api/v1
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Invoicer-api/docs"
	"github.com/jhoicas/Invoicer-api/internal/application/billing"
	"github.com/jhoicas/Invoicer-api/internal/application/dto"
	"github.com/jhoicas/Invoicer-api/internal/domain/pricing"
	infrapdf "github.com/jhoicas/Invoicer-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/Invoicer-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Invoicer-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicer-api/pkg/config"
	"github.com/jhoicas/Invoicer-api/pkg/logger"
	"github.com/jhoicas/Invoicer-api/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Antes de abrir el almacenamiento: Fatal no ejecuta los defer.
	taxRate, err := cfg.Billing.TaxRate()
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de facturación")
	}

	store, closeStore, err := storage.Open(ctx, cfg.Storage, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	// Repositorio: se carga una vez al arrancar y se persiste en cada alta.
	invoiceRepo := snapshot.NewInvoiceRepository(store, log)
	invoiceRepo.Load(ctx)

	model := pricing.NewModel(
		pricing.WithDefaultTaxRate(taxRate),
		pricing.WithPaymentTerm(time.Duration(cfg.Billing.PaymentTermDays)*24*time.Hour),
	)

	renderer := infrapdf.NewMarotoInvoiceRenderer(
		infrapdf.WithCompression(cfg.PDF.Compression),
		infrapdf.WithFormatter(money.NewFormatter(cfg.PDF.Locale, cfg.PDF.CurrencySymbol)),
	)

	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, model, log)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, renderer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.BasePath = cfg.HTTP.BasePath
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BasePath:   cfg.HTTP.BasePath,
		InvoiceUC:  invoiceUC,
		InvoicePDF: invoicePDFUC,
		Validator:  httpRouter.NewValidator(),
	})

	go func() {
		log.Info().
			Str("addr", cfg.HTTP.Addr()).
			Str("api", fmt.Sprintf("http://localhost:%d%s", cfg.HTTP.Port, cfg.HTTP.BasePath)).
			Str("docs", fmt.Sprintf("http://localhost:%d/docs", cfg.HTTP.Port)).
			Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
