package http

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/kits-invoicing/internal/application/auth"
	"github.com/jhoicas/kits-invoicing/internal/application/billing"
	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

// Mensajes visibles para el usuario.
const (
	msgInvalidLogin    = "Invalid username or password!"
	msgNoDepartment    = "Please select at least one department."
	msgClientRequired  = "Client name is required."
	msgInvoiceCreated  = "Invoice %s created successfully!"
	msgInvoiceDeleted  = "Invoice deleted successfully!"
	msgDeleteNotFound  = "Invoice not found."
	msgDeleteFailed    = "Error deleting invoice: %v"
	msgCreateFailed    = "Error creating invoice: %v"
	msgInvoiceNotFound = "Invoice not found"
)

type departmentOption struct {
	Tag   string
	Label string
}

var departmentOptions = []departmentOption{
	{entity.DepartmentRobotics, departmentLabels[entity.DepartmentRobotics]},
	{entity.DepartmentITARVR, departmentLabels[entity.DepartmentITARVR]},
	{entity.Department3DPrinting, departmentLabels[entity.Department3DPrinting]},
}

// WebHandler páginas HTML: login, listado, alta, detalle, borrado y PDF.
type WebHandler struct {
	invoices      *billing.InvoiceUseCase
	pdf           *billing.PDFUseCase
	auth          *auth.AuthUseCase
	flash         *session.Store
	log           *logger.Logger
	secureCookies bool
}

// NewWebHandler construye el handler web.
func NewWebHandler(
	invoices *billing.InvoiceUseCase,
	pdf *billing.PDFUseCase,
	authUC *auth.AuthUseCase,
	flash *session.Store,
	log *logger.Logger,
	secureCookies bool,
) *WebHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WebHandler{
		invoices:      invoices,
		pdf:           pdf,
		auth:          authUC,
		flash:         flash,
		log:           log,
		secureCookies: secureCookies,
	}
}

// render agrega los datos comunes del layout (usuario y flash pendiente).
func (h *WebHandler) render(c *fiber.Ctx, view, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["Username"] = GetUsername(c)
	data["Flash"] = popFlash(c, h.flash)
	return c.Render(view, data, LayoutMain)
}

func (h *WebHandler) redirect(c *fiber.Ctx, to, category, message string) error {
	setFlash(c, h.flash, category, message)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// ── Sesión ───────────────────────────────────────────────────────────────────

// LoginPage GET /login
func (h *WebHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, "login", "Login", nil)
}

// Login POST /login: valida credenciales y deja la cookie de sesión.
func (h *WebHandler) Login(c *fiber.Ctx) error {
	in := dto.LoginRequest{Username: c.FormValue("username"), Password: c.FormValue("password")}
	out, err := h.auth.Login(in)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			h.log.Error().Err(err).Msg("login: emitir token de sesión")
		} else {
			h.log.Warn().Str("username", in.Username).Str("ip", c.IP()).Msg("login fallido")
		}
		return h.redirect(c, "/login", FlashError, msgInvalidLogin)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    out.Token,
		Path:     "/",
		MaxAge:   h.auth.ExpMinutes() * 60,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/invoices", fiber.StatusSeeOther)
}

// Logout GET /logout
func (h *WebHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(SessionCookieName)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// Index GET /invoices?search=
func (h *WebHandler) Index(c *fiber.Ctx) error {
	search := c.Query("search")
	list, err := h.invoices.List(c.UserContext(), search)
	if err != nil {
		return err
	}
	return h.render(c, "invoices/index", "Invoices", fiber.Map{
		"Invoices": list,
		"Search":   search,
	})
}

// NewInvoicePage GET /invoices/new
func (h *WebHandler) NewInvoicePage(c *fiber.Ctx) error {
	now := time.Now()
	return h.render(c, "invoices/new", "New Invoice", fiber.Map{
		"Departments": departmentOptions,
		"Today":       now.Format(billing.DateLayout),
		"DueDate":     now.AddDate(0, 0, 7).Format(billing.DateLayout),
	})
}

// CreateInvoice POST /invoices/new
func (h *WebHandler) CreateInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.Create(c.UserContext(), createInvoiceFromForm(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDepartment):
			return h.redirect(c, "/invoices/new", FlashDanger, msgNoDepartment)
		case errors.Is(err, domain.ErrClientNameRequired):
			return h.redirect(c, "/invoices/new", FlashDanger, msgClientRequired)
		default:
			h.log.Error().Err(err).Msg("crear factura")
			return h.redirect(c, "/invoices/new", FlashError, fmt.Sprintf(msgCreateFailed, err))
		}
	}
	return h.redirect(c, "/invoices/"+url.PathEscape(out.ID), FlashSuccess, fmt.Sprintf(msgInvoiceCreated, out.InvoiceNo))
}

// ShowInvoice GET /invoices/:id
func (h *WebHandler) ShowInvoice(c *fiber.Ctx) error {
	inv, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(msgInvoiceNotFound)
		}
		return err
	}
	return h.render(c, "invoices/show", "Invoice "+inv.InvoiceNo, fiber.Map{"Invoice": inv})
}

// DeleteInvoice POST /invoices/:id/delete
func (h *WebHandler) DeleteInvoice(c *fiber.Ctx) error {
	err := h.invoices.Delete(c.UserContext(), c.Params("id"))
	switch {
	case err == nil:
		return h.redirect(c, "/invoices", FlashSuccess, msgInvoiceDeleted)
	case errors.Is(err, domain.ErrNotFound):
		return h.redirect(c, "/invoices", FlashWarning, msgDeleteNotFound)
	default:
		h.log.Error().Err(err).Str("invoice_id", c.Params("id")).Msg("eliminar factura")
		return h.redirect(c, "/invoices", FlashError, fmt.Sprintf(msgDeleteFailed, err))
	}
}

// DownloadInvoicePDF GET /invoices/:id/pdf
func (h *WebHandler) DownloadInvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(msgInvoiceNotFound)
		}
		return err
	}
	return sendPDF(c, pdfBytes, filename)
}

// DownloadRegisterPDF GET /reports/invoices.pdf?search=
func (h *WebHandler) DownloadRegisterPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadRegisterPDF(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return sendPDF(c, pdfBytes, filename)
}
