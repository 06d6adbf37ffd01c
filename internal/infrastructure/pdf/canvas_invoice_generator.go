package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

// Geometría de la página en puntos (A4 = 595.28 × 841.89).
const (
	pageMargin    = 40.0
	watermarkSize = 300.0
	watermarkAlfa = 0.08
)

// Offsets verticales (desde arriba) del encabezado centrado.
var headerOffsets = [4]float64{150, 165, 180, 195}

// Anchos de columna de la tabla de líneas; suman el ancho útil (515 pt).
var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 30, "C"},
	{"Service", 245, "L"},
	{"Qty", 50, "C"},
	{"Amount", 90, "R"},
	{"Total", 100, "R"},
}

// CanvasInvoiceGenerator implementa billing.InvoicePDFGenerator dibujando sobre gofpdf.
type CanvasInvoiceGenerator struct {
	logoPath string
	log      *logger.Logger
}

// NewCanvasInvoiceGenerator construye el generador; logoPath puede no existir (sin marca de agua).
func NewCanvasInvoiceGenerator(logoPath string, log *logger.Logger) *CanvasInvoiceGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &CanvasInvoiceGenerator{logoPath: logoPath, log: log}
}

// GenerateInvoicePDF dibuja la factura en A4 y devuelve los bytes del PDF.
func (g *CanvasInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company entity.CompanyInfo,
) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Invoice "+invoice.InvoiceNo, true)
	pdf.SetAuthor(company.Name, true)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	logo := g.registerLogo(pdf)
	pdf.SetHeaderFunc(func() {
		if logo != "" {
			drawWatermark(pdf, logo)
		}
	})
	pdf.AddPage()

	drawHeader(pdf, tr, company)
	y := drawMeta(pdf, tr, invoice, headerOffsets[3]+25)
	y = drawItems(pdf, tr, invoice, y+15)
	drawTotals(pdf, invoice, y+10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return buf.Bytes(), nil
}

// registerLogo carga el logo una vez; devuelve el nombre registrado o "" si no hay logo usable.
func (g *CanvasInvoiceGenerator) registerLogo(pdf *gofpdf.Fpdf) string {
	if g.logoPath == "" {
		return ""
	}
	if _, err := os.Stat(g.logoPath); err != nil {
		return ""
	}
	pdf.RegisterImageOptions(g.logoPath, gofpdf.ImageOptions{ReadDpi: false})
	if !pdf.Ok() {
		g.log.Warn().Err(pdf.Error()).Str("logo", g.logoPath).Msg("logo ilegible, PDF sin marca de agua")
		pdf.ClearError()
		return ""
	}
	return g.logoPath
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func drawWatermark(pdf *gofpdf.Fpdf, logo string) {
	w, h := pdf.GetPageSize()
	pdf.SetAlpha(watermarkAlfa, "Normal")
	pdf.ImageOptions(logo, (w-watermarkSize)/2, (h-watermarkSize)/2, watermarkSize, watermarkSize,
		false, gofpdf.ImageOptions{}, 0, "")
	pdf.SetAlpha(1, "Normal")
}

// drawHeader: nombre, dirección, contacto y web centrados a offsets fijos.
func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, company entity.CompanyInfo) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 77, 77)
	centerText(pdf, headerOffsets[0], tr(company.Name))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, headerOffsets[1], tr(company.Address))
	centerText(pdf, headerOffsets[2], tr(fmt.Sprintf("Email: %s | Phone: %s", company.Email, company.Phone)))
	centerText(pdf, headerOffsets[3], tr("Website: "+company.Website))
}

// drawMeta: número y fechas (der) y datos del cliente (izq). Devuelve la Y final.
func drawMeta(pdf *gofpdf.Fpdf, tr func(string) string, inv *entity.Invoice, top float64) float64 {
	w, _ := pdf.GetPageSize()
	pdf.SetDrawColor(0, 77, 77)
	pdf.Line(pageMargin, top-10, w-pageMargin, top-10)

	right := []string{
		"Invoice No: " + inv.InvoiceNo,
		"Invoice Date: " + inv.InvoiceDate,
		"Due Date: " + inv.DueDate,
	}
	left := []string{inv.ClientName, inv.ClientAddress, inv.ClientEmail, inv.ClientPhone}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pageMargin, top+5, "Bill To:")
	pdf.SetFont("Helvetica", "", 10)
	y := top + 20
	for _, s := range left {
		if strings.TrimSpace(s) == "" {
			continue
		}
		pdf.Text(pageMargin, y, tr(s))
		y += 14
	}

	ry := top + 5
	for _, s := range right {
		rightText(pdf, tr, w-pageMargin, ry, s)
		ry += 14
	}

	if d := strings.TrimSpace(inv.Description); d != "" {
		y += 4
		pdf.SetXY(pageMargin, y)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(w-2*pageMargin, 12, tr(d), "", "L", false)
		y = pdf.GetY()
	}
	return max(y, ry)
}

// drawItems: tabla # | Service | Qty | Amount | Total. Devuelve la Y final.
func drawItems(pdf *gofpdf.Fpdf, tr func(string) string, inv *entity.Invoice, top float64) float64 {
	pdf.SetXY(pageMargin, top)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 77, 77)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range itemColumns {
		pdf.CellFormat(c.width, 18, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, it := range inv.Items {
		pdf.SetX(pageMargin)
		cells := []string{
			fmt.Sprintf("%d", i+1),
			tr(it.ServiceName),
			fmt.Sprintf("%d", it.Quantity),
			invoicing.FormatAmount(it.Amount),
			invoicing.FormatAmount(it.Total),
		}
		for j, c := range itemColumns {
			pdf.CellFormat(c.width, 16, cells[j], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.GetY()
}

// drawTotals: Subtotal / GST (tasa%) / Final Total alineados a la derecha.
func drawTotals(pdf *gofpdf.Fpdf, inv *entity.Invoice, top float64) {
	w, _ := pdf.GetPageSize()
	labelW, valueW := 120.0, 100.0
	x := w - pageMargin - labelW - valueW

	lines := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal:", invoicing.FormatAmount(inv.Subtotal), false},
		{fmt.Sprintf("GST (%d%%):", inv.GSTRate), invoicing.FormatAmount(inv.GSTAmount), false},
		{"Final Total:", "Rs. " + invoicing.FormatAmount(inv.FinalTotal), true},
	}
	pdf.SetXY(x, top)
	for _, l := range lines {
		style := ""
		if l.bold {
			style = "B"
			pdf.SetTextColor(0, 77, 77)
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(x)
		pdf.CellFormat(labelW, 16, l.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 16, l.value, "", 1, "R", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func centerText(pdf *gofpdf.Fpdf, y float64, s string) {
	w, _ := pdf.GetPageSize()
	pdf.Text((w-pdf.GetStringWidth(s))/2, y, s)
}

// rightText alinea s a la derecha de right; mide el texto ya traducido a cp1252.
func rightText(pdf *gofpdf.Fpdf, tr func(string) string, right, y float64, s string) float64 {
	line := tr(s)
	x := right - pdf.GetStringWidth(line)
	pdf.Text(x, y, line)
	return x
}
