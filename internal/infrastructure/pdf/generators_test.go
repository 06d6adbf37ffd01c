package pdf_test

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/pdf"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

func sampleInvoice() *entity.Invoice {
	totals := invoicing.ComputeTotals([]invoicing.RawItem{
		{ServiceName: "Robotics workshop – level 1", Quantity: "2", Amount: "1500.50"},
		{ServiceName: "Arduino kit", Quantity: "3", Amount: "999"},
	}, true, false)
	return &entity.Invoice{
		ID:             "abc",
		InvoiceNo:      "KITS-ROB-001",
		ClientName:     "Acme Labs",
		ClientEmail:    "billing@acme.test",
		ClientAddress:  "12 MG Road, Bengaluru",
		Description:    "Term 1 programme",
		InvoiceDate:    "2024-05-01",
		DueDate:        "2024-05-08",
		Departments:    []string{entity.DepartmentRobotics},
		DepartmentCode: entity.DepartmentCodeRobotics,
		Items:          totals.Items,
		Subtotal:       totals.Subtotal,
		GSTRate:        totals.GSTRate,
		GSTAmount:      totals.GSTAmount,
		FinalTotal:     totals.FinalTotal,
		CreatedAt:      time.Now(),
	}
}

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 77, B: 77, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "company_logo.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func TestCanvasInvoiceGenerator_SinLogo(t *testing.T) {
	inv := sampleInvoice()
	gen := pdf.NewCanvasInvoiceGenerator(filepath.Join(t.TempDir(), "no-existe.jpg"), logger.Nop())

	data, err := gen.GenerateInvoicePDF(context.Background(), inv, invoicing.CompanyInfoFor(inv, ""))
	require.NoError(t, err)
	assert.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestCanvasInvoiceGenerator_ConMarcaDeAgua(t *testing.T) {
	inv := sampleInvoice()
	plain, err := pdf.NewCanvasInvoiceGenerator("", nil).
		GenerateInvoicePDF(context.Background(), inv, invoicing.CompanyInfoFor(inv, ""))
	require.NoError(t, err)

	withLogo, err := pdf.NewCanvasInvoiceGenerator(writeLogo(t), logger.Nop()).
		GenerateInvoicePDF(context.Background(), inv, invoicing.CompanyInfoFor(inv, ""))
	require.NoError(t, err)

	assert.Equal(t, "%PDF", string(withLogo[:4]))
	assert.Greater(t, len(withLogo), len(plain))
	assert.Contains(t, string(withLogo), "/ExtGState")
}

func TestCanvasInvoiceGenerator_LogoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company_logo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("no es una imagen"), 0o600))
	inv := sampleInvoice()

	data, err := pdf.NewCanvasInvoiceGenerator(path, logger.Nop()).
		GenerateInvoicePDF(context.Background(), inv, invoicing.CompanyInfoFor(inv, ""))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestMarotoRegisterGenerator(t *testing.T) {
	a := sampleInvoice()
	b := sampleInvoice()
	b.InvoiceNo = "KITS-ROB-002"
	b.FinalTotal = decimal.RequireFromString("100")

	data, err := pdf.NewMarotoRegisterGenerator().
		GenerateRegisterPDF(context.Background(), []*entity.Invoice{a, b}, "acme")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	empty, err := pdf.NewMarotoRegisterGenerator().GenerateRegisterPDF(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(empty[:4]))
}

func TestRightText_MideTextoTraducido(t *testing.T) {
	x, cp1252Width, rawWidth := pdf.RightTextX(555, "Client: Müller € GmbH")

	assert.InDelta(t, 555-cp1252Width, x, 1e-9)
	assert.NotEqual(t, rawWidth, cp1252Width)
}
