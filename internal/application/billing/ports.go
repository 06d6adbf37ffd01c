package billing

import (
	"context"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// InvoicePDFGenerator genera el PDF de una factura individual.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company entity.CompanyInfo) ([]byte, error)
}

// RegisterPDFGenerator genera el listado (registro) de facturas en PDF.
// search es el filtro aplicado, sólo informativo para el encabezado.
type RegisterPDFGenerator interface {
	GenerateRegisterPDF(ctx context.Context, invoices []*entity.Invoice, search string) ([]byte, error)
}
