// Package pdf implementa la generación de PDF de facturas KITS.
//
// Dos generadores:
//   - CanvasInvoiceGenerator (gofpdf): factura individual con marca de agua del logo.
//   - MarotoRegisterGenerator (Maroto v2): listado de facturas con total general.
//
// Layout del registro (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título   │  Fecha de generación + filtro  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° Factura | Cliente | Fecha | Dept | GST | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: cantidad de facturas / total general               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 77, Blue: 77}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRegisterGenerator implementa billing.RegisterPDFGenerator usando Maroto v2.
type MarotoRegisterGenerator struct {
	now func() time.Time
}

// NewMarotoRegisterGenerator construye el generador.
func NewMarotoRegisterGenerator() *MarotoRegisterGenerator {
	return &MarotoRegisterGenerator{now: time.Now}
}

// GenerateRegisterPDF genera el listado y devuelve sus bytes.
func (g *MarotoRegisterGenerator) GenerateRegisterPDF(
	_ context.Context,
	invoices []*entity.Invoice,
	search string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("KITS Invoice Register", true).
		WithAuthor(invoicing.CompanyNameDefault, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.now(), search))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(invoices)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoices))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar registro: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y fecha de generación + filtro (der).
func headerRow(now time.Time, search string) core.Row {
	filter := "All invoices"
	if s := strings.TrimSpace(search); s != "" {
		filter = fmt.Sprintf("Filter: %q", s)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(invoicing.CompanyNameDefault, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Invoice Register", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generated: "+now.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(filter, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Invoice No", 2, align.Left),
		h("Client", 3, align.Left),
		h("Date", 2, align.Center),
		h("Dept", 1, align.Center),
		h("GST", 1, align.Center),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por factura.
func tableRows(invoices []*entity.Invoice) []core.Row {
	result := make([]core.Row, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(inv.InvoiceNo, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(inv.ClientName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(inv.InvoiceDate, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(inv.DepartmentCode, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d%%", inv.GSTRate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(invoicing.FormatAmount(inv.FinalTotal), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: cantidad de facturas y suma de final_total.
func totalsRow(invoices []*entity.Invoice) core.Row {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.FinalTotal)
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Invoices: %d", len(invoices)), props.Text{
			Size: 9, Top: 2, Color: colorGray,
		})),
		col.New(3).Add(text.New("Grand Total:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("Rs. "+invoicing.FormatAmount(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}
