package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

// DateLayout formato de invoice_date y due_date.
const DateLayout = "2006-01-02"

// defaultDueDays días entre la fecha de factura por defecto y el vencimiento.
const defaultDueDays = 7

// InvoiceUseCase fachada sobre el almacén de facturas: alta, consulta, listado y borrado.
type InvoiceUseCase struct {
	store   repository.InvoiceStore
	seq     repository.SequenceStore
	logoURL string
	log     *logger.Logger
	now     func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. logoURL es la ruta pública del logo para el bloque de empresa.
func NewInvoiceUseCase(
	store repository.InvoiceStore,
	seq repository.SequenceStore,
	logoURL string,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{store: store, seq: seq, logoURL: logoURL, log: log, now: time.Now}
}

// Create valida la entrada, numera la factura, calcula totales y la persiste.
//
// Retorna:
//   - domain.ErrClientNameRequired / domain.ErrNoDepartment (ambos envuelven domain.ErrInvalidInput).
//   - domain.ErrStore si falla el almacén.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	// ── 1. Validar ────────────────────────────────────────────────────────────
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return nil, domain.ErrClientNameRequired
	}
	departments := make([]string, 0, len(in.Departments))
	for _, d := range in.Departments {
		if d = strings.TrimSpace(d); d != "" {
			departments = append(departments, d)
		}
	}
	if len(departments) == 0 {
		return nil, domain.ErrNoDepartment
	}

	// ── 2. Fechas por defecto ────────────────────────────────────────────────
	now := uc.now()
	invoiceDate := strings.TrimSpace(in.InvoiceDate)
	if invoiceDate == "" {
		invoiceDate = now.Format(DateLayout)
	}
	dueDate := strings.TrimSpace(in.DueDate)
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, defaultDueDays).Format(DateLayout)
	}

	// ── 3. Totales (líneas inválidas se descartan) ───────────────────────────
	raw := make([]invoicing.RawItem, 0, len(in.Items))
	for _, it := range in.Items {
		raw = append(raw, invoicing.RawItem{ServiceName: it.ServiceName, Quantity: it.Quantity, Amount: it.Amount})
	}
	totals := invoicing.ComputeTotals(raw, in.CGST, in.SGST)
	if totals.Dropped > 0 {
		uc.log.Warn().
			Int("dropped", totals.Dropped).
			Int("received", len(in.Items)).
			Str("client_name", clientName).
			Msg("líneas de factura descartadas por cantidad o monto inválidos")
	}

	// ── 4. Numeración atómica por departamento ───────────────────────────────
	code := invoicing.DepartmentCodeFor(departments)
	seq, err := uc.seq.NextSequence(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("billing: numerar factura: %w", err)
	}
	invoiceNo := invoicing.ComputeNextInvoiceNumber(code, seq-1)

	// ── 5. Persistir ─────────────────────────────────────────────────────────
	inv := &entity.Invoice{
		InvoiceNo:      invoiceNo,
		ClientName:     clientName,
		ClientEmail:    strings.TrimSpace(in.ClientEmail),
		ClientPhone:    strings.TrimSpace(in.ClientPhone),
		ClientAddress:  strings.TrimSpace(in.ClientAddress),
		Description:    strings.TrimSpace(in.Description),
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		Departments:    departments,
		DepartmentCode: code,
		Items:          totals.Items,
		Subtotal:       totals.Subtotal,
		GSTRate:        totals.GSTRate,
		GSTAmount:      totals.GSTAmount,
		FinalTotal:     totals.FinalTotal,
		CreatedAt:      now.UTC(),
	}
	id, err := uc.store.Add(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("billing: guardar factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", id).
		Str("invoice_no", invoiceNo).
		Str("final_total", inv.FinalTotal.StringFixed(2)).
		Msg("factura creada")
	return &dto.CreateInvoiceResponse{ID: id, InvoiceNo: invoiceNo}, nil
}

// Get obtiene una factura con su bloque de empresa; domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(inv), nil
}

// List devuelve todas las facturas (más recientes primero) filtradas por nombre de cliente
// o número de factura, sin distinguir mayúsculas. search vacío no filtra.
func (uc *InvoiceUseCase) List(ctx context.Context, search string) ([]*dto.InvoiceResponse, error) {
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing: listar facturas: %w", err)
	}
	filtered := invoicing.Filter(all, search)
	out := make([]*dto.InvoiceResponse, 0, len(filtered))
	for _, inv := range filtered {
		out = append(out, uc.toResponse(inv))
	}
	return out, nil
}

// Delete elimina una factura; domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
			Total:       it.Total,
		})
	}
	company := invoicing.CompanyInfoFor(inv, uc.logoURL)
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		InvoiceNo:      inv.InvoiceNo,
		ClientName:     inv.ClientName,
		ClientEmail:    inv.ClientEmail,
		ClientPhone:    inv.ClientPhone,
		ClientAddress:  inv.ClientAddress,
		Description:    inv.Description,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Departments:    inv.Departments,
		DepartmentCode: inv.DepartmentCode,
		Items:          items,
		Subtotal:       inv.Subtotal,
		GSTRate:        inv.GSTRate,
		GSTAmount:      inv.GSTAmount,
		FinalTotal:     inv.FinalTotal,
		CreatedAt:      inv.CreatedAt,
		Company: dto.CompanyInfoResponse{
			Name:    company.Name,
			Address: company.Address,
			Email:   company.Email,
			Phone:   company.Phone,
			Website: company.Website,
			Logo:    company.Logo,
			GSTType: company.GSTType,
		},
	}
}
