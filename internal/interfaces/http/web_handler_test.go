package http_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
	apphttp "github.com/jhoicas/kits-invoicing/internal/interfaces/http"
)

func createInvoice(t *testing.T, env *testEnv, client string, departments ...string) *dto.CreateInvoiceResponse {
	t.Helper()
	out, err := env.invoiceUC.Create(context.Background(), dto.CreateInvoiceRequest{
		ClientName:  client,
		Departments: departments,
		Items:       []dto.InvoiceItemRequest{{ServiceName: "Kit", Quantity: "1", Amount: "100"}},
	})
	require.NoError(t, err)
	return out
}

// ── Sesión ───────────────────────────────────────────────────────────────────

func TestInvoices_SinSesionRedirigeALogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/invoices", "/invoices/new", "/invoices/abc", "/reports/invoices.pdf"} {
		resp := env.get(t, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation), path)
	}
}

func TestRoot_RedirigeAInvoices(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/invoices", resp.Header.Get(fiber.HeaderLocation))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/login", url.Values{"username": {testUsername}, "password": {"wrong"}})
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	for _, ck := range resp.Cookies() {
		assert.NotEqual(t, apphttp.SessionCookieName, ck.Name)
	}

	page := env.follow(t, resp)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, readBody(t, page), "Invalid username or password!")
}

func TestLogin_OK_DejaCookieDeSesion(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/login", url.Values{"username": {testUsername}, "password": {testPassword}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/invoices", resp.Header.Get(fiber.HeaderLocation))

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.SessionCookieName {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	list := env.get(t, "/invoices", session)
	assert.Equal(t, http.StatusOK, list.StatusCode)
}

func TestLogout_BorraCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/logout", env.sessionCookie(t))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

// ── Alta ─────────────────────────────────────────────────────────────────────

func TestCreateInvoice_FormularioCompleto(t *testing.T) {
	env := newTestEnv(t)
	session := env.sessionCookie(t)

	resp := env.postForm(t, "/invoices/new", invoiceForm("Acme Labs", "robotics", "3dprinting"), session)
	location := resp.Header.Get(fiber.HeaderLocation)
	require.True(t, strings.HasPrefix(location, "/invoices/"), location)

	page := env.follow(t, resp, session)
	require.Equal(t, http.StatusOK, page.StatusCode)
	body := readBody(t, page)
	assert.Contains(t, body, "Invoice KITS-ROB-001 created successfully!")
	assert.Contains(t, body, invoicing.CompanyNameRobotics)
	assert.Contains(t, body, "CGST + SGST")
	assert.Contains(t, body, "3,541.18") // 3001 + 18% GST
	assert.Contains(t, body, testLogoURL)
	assert.NotContains(t, body, "Broken row")

	all, err := env.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"robotics", "3dprinting"}, all[0].Departments)
	assert.Equal(t, "2024-05-01", all[0].InvoiceDate)
}

func TestCreateInvoice_SinDepartamento(t *testing.T) {
	env := newTestEnv(t)
	session := env.sessionCookie(t)

	resp := env.postForm(t, "/invoices/new", invoiceForm("Acme Labs"), session)
	assert.Equal(t, "/invoices/new", resp.Header.Get(fiber.HeaderLocation))

	page := env.follow(t, resp, session)
	assert.Contains(t, readBody(t, page), "Please select at least one department.")

	all, err := env.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ── Consulta ─────────────────────────────────────────────────────────────────

func TestShowInvoice_NoExiste(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/invoices/no-existe", env.sessionCookie(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice not found", readBody(t, resp))
}

func TestShowInvoice_EmpresaPorDepartamento(t *testing.T) {
	env := newTestEnv(t)
	it := createInvoice(t, env, "Beta Corp", "robotics", "it_arvr")
	gen := createInvoice(t, env, "Gamma", "drones")

	body := readBody(t, env.get(t, "/invoices/"+it.ID, env.sessionCookie(t)))
	assert.Contains(t, body, invoicing.CompanyNameIT)
	assert.Contains(t, body, "None")

	body = readBody(t, env.get(t, "/invoices/"+gen.ID, env.sessionCookie(t)))
	assert.Contains(t, body, invoicing.CompanyNameDefault)
	assert.Contains(t, body, "KITS-GEN-001")
}

func TestIndex_Busqueda(t *testing.T) {
	env := newTestEnv(t)
	createInvoice(t, env, "Acme Labs", "robotics")
	createInvoice(t, env, "Beta Corp", "it_arvr")

	body := readBody(t, env.get(t, "/invoices?search=ACME", env.sessionCookie(t)))
	assert.Contains(t, body, "Acme Labs")
	assert.NotContains(t, body, "Beta Corp")

	body = readBody(t, env.get(t, "/invoices", env.sessionCookie(t)))
	assert.Contains(t, body, "Acme Labs")
	assert.Contains(t, body, "Beta Corp")
}

// ── Borrado ──────────────────────────────────────────────────────────────────

func TestDeleteInvoice(t *testing.T) {
	env := newTestEnv(t)
	session := env.sessionCookie(t)
	out := createInvoice(t, env, "Acme Labs", "robotics")

	resp := env.postForm(t, "/invoices/"+out.ID+"/delete", url.Values{}, session)
	assert.Equal(t, "/invoices", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, readBody(t, env.follow(t, resp, session)), "Invoice deleted successfully!")

	resp = env.postForm(t, "/invoices/"+out.ID+"/delete", url.Values{}, session)
	assert.Contains(t, readBody(t, env.follow(t, resp, session)), "Invoice not found.")
}

// ── PDF ──────────────────────────────────────────────────────────────────────

func TestDownloadInvoicePDF(t *testing.T) {
	env := newTestEnv(t)
	out := createInvoice(t, env, "Acme Labs", "it_arvr")

	resp := env.get(t, "/invoices/"+out.ID+"/pdf", env.sessionCookie(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="invoice_KITS-IT-001.pdf"`)
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))

	resp = env.get(t, "/invoices/no-existe/pdf", env.sessionCookie(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice not found", readBody(t, resp))
}

func TestDownloadRegisterPDF(t *testing.T) {
	env := newTestEnv(t)
	createInvoice(t, env, "Acme Labs", "robotics")

	resp := env.get(t, "/reports/invoices.pdf?search=acme", env.sessionCookie(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "invoices_register.pdf")
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}

func TestRutasAntiguas(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/invoice/abc/download_pdf")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/invoices/abc/pdf", resp.Header.Get(fiber.HeaderLocation))

	resp = env.get(t, "/create")
	assert.Equal(t, "/invoices/new", resp.Header.Get(fiber.HeaderLocation))
}

func TestRutasAntiguas_IDEscapado(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/invoice/a%20b%3Fx")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/invoices/a%20b%3Fx", resp.Header.Get(fiber.HeaderLocation))

	resp = env.get(t, "/invoice/a%2Fb/download_pdf")
	assert.Equal(t, "/invoices/a%2Fb/pdf", resp.Header.Get(fiber.HeaderLocation))
}
