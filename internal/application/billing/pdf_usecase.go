package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
)

// RegisterFilename nombre del PDF con el listado de facturas.
const RegisterFilename = "invoices_register.pdf"

// PDFUseCase genera la representación en PDF de una factura y del registro de facturas.
type PDFUseCase struct {
	store    repository.InvoiceStore
	invoice  InvoicePDFGenerator
	register RegisterPDFGenerator
	logoURL  string
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	store repository.InvoiceStore,
	invoice InvoicePDFGenerator,
	register RegisterPDFGenerator,
	logoURL string,
) *PDFUseCase {
	return &PDFUseCase{
		store:    store,
		invoice:  invoice,
		register: register,
		logoURL:  logoURL,
	}
}

// DownloadInvoicePDF carga la factura, resuelve la empresa emisora y genera el PDF.
//
// Retorna:
//   - (pdfBytes, "invoice_<invoice_no>.pdf", nil) si todo sale bien.
//   - domain.ErrNotFound si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.store.Get(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Generar PDF ────────────────────────────────────────────────────────
	company := invoicing.CompanyInfoFor(inv, uc.logoURL)
	pdfBytes, err = uc.invoice.GenerateInvoicePDF(ctx, inv, company)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNo)
	return pdfBytes, filename, nil
}

// DownloadRegisterPDF genera el listado de facturas, aplicando el mismo filtro que /invoices.
func (uc *PDFUseCase) DownloadRegisterPDF(ctx context.Context, search string) (pdfBytes []byte, filename string, err error) {
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar facturas: %w", err)
	}
	pdfBytes, err = uc.register.GenerateRegisterPDF(ctx, invoicing.Filter(all, search), search)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, RegisterFilename, nil
}
