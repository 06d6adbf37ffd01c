package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/kits-invoicing/internal/application/auth"
	"github.com/jhoicas/kits-invoicing/internal/application/billing"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC     *billing.InvoiceUseCase
	InvoicePDF    *billing.PDFUseCase
	AuthUC        *auth.AuthUseCase
	FlashStore    *session.Store
	Log           *logger.Logger
	SecureCookies bool
}

// Router registra las páginas HTML y la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	web := NewWebHandler(deps.InvoiceUC, deps.InvoicePDF, deps.AuthUC, deps.FlashStore, deps.Log, deps.SecureCookies)

	// Sesión (público)
	app.Get("/login", web.LoginPage)
	app.Post("/login", web.Login)
	app.Get("/logout", web.Logout)
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/invoices") })

	// Páginas protegidas (cookie de sesión)
	requireSession := SessionMiddleware(deps.AuthUC)
	pages := app.Group("/invoices", requireSession)
	pages.Get("/", web.Index)
	pages.Get("/new", web.NewInvoicePage)
	pages.Post("/new", web.CreateInvoice)
	pages.Get("/:id", web.ShowInvoice)
	pages.Post("/:id/delete", web.DeleteInvoice)
	pages.Get("/:id/pdf", web.DownloadInvoicePDF)
	app.Get("/reports/invoices.pdf", requireSession, web.DownloadRegisterPDF)

	// Rutas antiguas (enlaces guardados)
	app.Get("/index", func(c *fiber.Ctx) error { return c.Redirect("/invoices", fiber.StatusMovedPermanently) })
	app.Get("/create", func(c *fiber.Ctx) error { return c.Redirect("/invoices/new", fiber.StatusMovedPermanently) })
	app.Get("/invoice/:id", func(c *fiber.Ctx) error {
		return c.Redirect("/invoices/"+legacyID(c), fiber.StatusMovedPermanently)
	})
	app.Get("/invoice/:id/download_pdf", func(c *fiber.Ctx) error {
		return c.Redirect("/invoices/"+legacyID(c)+"/pdf", fiber.StatusMovedPermanently)
	})
	app.Post("/delete/:id", requireSession, web.DeleteInvoice)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Invoices (protegido, Bearer Token)
	invoices := api.Group("/invoices", AuthMiddleware(deps.AuthUC))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}

// legacyID segmento :id normalizado y escapado para el Location de las redirecciones.
func legacyID(c *fiber.Ctx) string {
	id := c.Params("id")
	if raw, err := url.PathUnescape(id); err == nil {
		id = raw
	}
	return url.PathEscape(id)
}
