package invoicing

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// Matches indica si la factura coincide con la búsqueda: subcadena sin distinguir
// mayúsculas en el nombre del cliente o en el número de factura.
// Búsqueda vacía (o sólo espacios) coincide con todo.
func Matches(inv *entity.Invoice, search string) bool {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(fold.String(inv.ClientName), q) ||
		strings.Contains(fold.String(inv.InvoiceNo), q)
}

// Filter aplica Matches sobre la lista conservando el orden.
func Filter(invoices []*entity.Invoice, search string) []*entity.Invoice {
	if strings.TrimSpace(search) == "" {
		return invoices
	}
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if Matches(inv, search) {
			out = append(out, inv)
		}
	}
	return out
}
