// Package invoicing contiene la lógica de dominio pura de la facturación KITS:
// cálculo de totales y GST, numeración por departamento y resolución de empresa.
package invoicing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// Tasas GST posibles (porcentaje).
const (
	GSTRateNone   = 0
	GSTRateSingle = 9
	GSTRateBoth   = 18
)

var hundred = decimal.NewFromInt(100)

// RawItem línea tal como llega del formulario, sin validar.
type RawItem struct {
	ServiceName string
	Quantity    string
	Amount      string
}

// Totals resultado de ComputeTotals.
type Totals struct {
	Items      []entity.InvoiceItem
	Subtotal   decimal.Decimal
	GSTRate    int
	GSTAmount  decimal.Decimal
	FinalTotal decimal.Decimal
	Dropped    int // líneas descartadas por cantidad o monto no numéricos
}

// GSTRate devuelve 18 si ambos impuestos están marcados, 9 si sólo uno, 0 si ninguno.
func GSTRate(cgst, sgst bool) int {
	switch {
	case cgst && sgst:
		return GSTRateBoth
	case cgst || sgst:
		return GSTRateSingle
	default:
		return GSTRateNone
	}
}

// ComputeTotals parsea las líneas, descarta las inválidas y calcula subtotal, GST y total.
// Una línea con cantidad no entera o monto no decimal se omite sin error.
//
//	GSTAmount  = round(Subtotal × GSTRate / 100, 2)
//	FinalTotal = round(Subtotal + GSTAmount, 2)
func ComputeTotals(raw []RawItem, cgst, sgst bool) Totals {
	out := Totals{Items: make([]entity.InvoiceItem, 0, len(raw))}
	subtotal := decimal.Zero
	for _, r := range raw {
		item, ok := parseItem(r)
		if !ok {
			out.Dropped++
			continue
		}
		out.Items = append(out.Items, item)
		subtotal = subtotal.Add(item.Total)
	}

	out.Subtotal = subtotal
	out.GSTRate = GSTRate(cgst, sgst)
	out.GSTAmount = subtotal.Mul(decimal.NewFromInt(int64(out.GSTRate))).Div(hundred).Round(2)
	out.FinalTotal = subtotal.Add(out.GSTAmount).Round(2)
	return out
}

func parseItem(r RawItem) (entity.InvoiceItem, bool) {
	qty, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	if err != nil {
		return entity.InvoiceItem{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return entity.InvoiceItem{}, false
	}
	return entity.InvoiceItem{
		ServiceName: r.ServiceName,
		Quantity:    qty,
		Amount:      amount,
		Total:       amount.Mul(decimal.NewFromInt(int64(qty))),
	}, true
}

// ZipItems arma las líneas a partir de las tres listas paralelas del formulario.
// Se corta en la lista más corta.
func ZipItems(names, quantities, amounts []string) []RawItem {
	n := min(len(names), len(quantities), len(amounts))
	items := make([]RawItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, RawItem{ServiceName: names[i], Quantity: quantities[i], Amount: amounts[i]})
	}
	return items
}
