package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kits-invoicing/internal/application/auth"
	"github.com/jhoicas/kits-invoicing/internal/application/billing"
	infrapdf "github.com/jhoicas/kits-invoicing/internal/infrastructure/pdf"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/kits-invoicing/internal/interfaces/http"
	"github.com/jhoicas/kits-invoicing/pkg/config"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	invoiceStore, closeStore, err := store.Open(connectCtx, cfg.Store)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("conexión al almacén de facturas")
	}
	defer closeStore()

	verifier, err := auth.NewStaticCredentialVerifier(cfg.Auth.Username, cfg.Auth.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("verificador de credenciales")
	}
	authUC := auth.NewAuthUseCase(verifier, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})

	invoiceUC := billing.NewInvoiceUseCase(invoiceStore, invoiceStore, cfg.Assets.LogoURL(), log)

	// PDF: factura individual (gofpdf con marca de agua) y registro de facturas (Maroto)
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceStore,
		infrapdf.NewCanvasInvoiceGenerator(cfg.Assets.LogoPath(), log),
		infrapdf.NewMarotoRegisterGenerator(),
		cfg.Assets.LogoURL(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewViewEngine(),
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "KITS Invoicing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static("/static", cfg.Assets.StaticDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:     invoiceUC,
		InvoicePDF:    invoicePDFUC,
		AuthUC:        authUC,
		FlashStore:    httpRouter.NewFlashStore(cfg.App.Env == "production"),
		Log:           log,
		SecureCookies: cfg.App.Env == "production",
	})

	go func() {
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
