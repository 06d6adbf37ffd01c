package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/internal/application/auth"
	"github.com/jhoicas/kits-invoicing/internal/application/billing"
	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/memory"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/kits-invoicing/internal/interfaces/http"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUsername = "kitstechlearning.co.in"
	testPassword = "kits@9876"
	testLogoURL  = "/static/company_logo.jpg"
)

type testEnv struct {
	app       *fiber.App
	authUC    *auth.AuthUseCase
	invoiceUC *billing.InvoiceUseCase
	store     *memory.InvoiceStore
}

// newTestEnv arma la aplicación completa sobre el almacén en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewInvoiceStore()
	verifier, err := auth.NewStaticCredentialVerifier(testUsername, testPassword)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(verifier, auth.SessionConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "kits-test"})
	invoiceUC := billing.NewInvoiceUseCase(store, store, testLogoURL, logger.Nop())
	pdfUC := billing.NewPDFUseCase(store, pdf.NewCanvasInvoiceGenerator("", nil), pdf.NewMarotoRegisterGenerator(), testLogoURL)

	app := fiber.New(fiber.Config{Views: apphttp.NewViewEngine()})
	apphttp.Router(app, apphttp.RouterDeps{
		InvoiceUC:  invoiceUC,
		InvoicePDF: pdfUC,
		AuthUC:     authUC,
		FlashStore: apphttp.NewFlashStore(false),
		Log:        logger.Nop(),
	})
	return &testEnv{app: app, authUC: authUC, invoiceUC: invoiceUC, store: store}
}

// sessionCookie cookie de sesión válida para el usuario de prueba.
func (e *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	out, err := e.authUC.Login(dto.LoginRequest{Username: testUsername, Password: testPassword})
	require.NoError(t, err)
	return &http.Cookie{Name: apphttp.SessionCookieName, Value: out.Token}
}

// bearer header Authorization válido.
func (e *testEnv) bearer(t *testing.T) string {
	return "Bearer " + e.sessionCookie(t).Value
}

func (e *testEnv) do(t *testing.T, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return e.do(t, req, cookies...)
}

// follow sigue una redirección llevando la cookie de flash que dejó la respuesta.
func (e *testEnv) follow(t *testing.T, resp *http.Response, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	for _, ck := range resp.Cookies() {
		if ck.Name == "kits_flash" {
			cookies = append(cookies, ck)
		}
	}
	return e.get(t, resp.Header.Get(fiber.HeaderLocation), cookies...)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func invoiceForm(client string, departments ...string) url.Values {
	form := url.Values{}
	form.Set("client_name", client)
	form.Set("client_email", "billing@example.com")
	form.Set("invoice_date", "2024-05-01")
	form.Set("due_date", "2024-05-08")
	for _, d := range departments {
		form.Add("departments", d)
	}
	form.Add("service_name[]", "Workshop")
	form.Add("quantity[]", "2")
	form.Add("amount[]", "1500.50")
	form.Add("service_name[]", "Broken row")
	form.Add("quantity[]", "x")
	form.Add("amount[]", "10")
	form.Set("cgst", "1")
	form.Set("sgst", "1")
	return form
}
