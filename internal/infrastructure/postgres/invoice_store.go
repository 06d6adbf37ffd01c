package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
)

var (
	_ repository.InvoiceStore  = (*InvoiceStore)(nil)
	_ repository.SequenceStore = (*InvoiceStore)(nil)
)

// InvoiceStore almacén de documentos de factura sobre PostgreSQL (JSONB).
type InvoiceStore struct {
	q Querier
}

// NewInvoiceStore construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceStore(q Querier) *InvoiceStore {
	return &InvoiceStore{q: q}
}

// invoiceDoc forma JSON del documento guardado en la columna doc.
type invoiceDoc struct {
	InvoiceNo      string          `json:"invoice_no"`
	ClientName     string          `json:"client_name"`
	ClientEmail    string          `json:"client_email"`
	ClientPhone    string          `json:"client_phone"`
	ClientAddress  string          `json:"client_address"`
	Description    string          `json:"description"`
	InvoiceDate    string          `json:"invoice_date"`
	DueDate        string          `json:"due_date"`
	Departments    []string        `json:"departments"`
	DepartmentCode string          `json:"department_code"`
	Items          []itemDoc       `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	GSTRate        int             `json:"gst_rate"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	CreatedAt      time.Time       `json:"created_at"`
}

type itemDoc struct {
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Total       decimal.Decimal `json:"total"`
}

// Add inserta el documento con un UUID nuevo.
func (s *InvoiceStore) Add(ctx context.Context, invoice *entity.Invoice) (string, error) {
	id := uuid.New().String()
	doc, err := json.Marshal(toDoc(invoice))
	if err != nil {
		return "", fmt.Errorf("marshal invoice: %w", err)
	}
	query := `
		INSERT INTO invoices (id, invoice_no, department_code, client_name, final_total, created_at, doc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = s.q.Exec(ctx, query,
		id, invoice.InvoiceNo, invoice.DepartmentCode, invoice.ClientName,
		invoice.FinalTotal, invoice.CreatedAt, doc,
	)
	if err != nil {
		return "", storeErr("insert invoice", err)
	}
	return id, nil
}

// Get obtiene una factura por ID; (nil, nil) si no existe.
func (s *InvoiceStore) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	if !validID(id) {
		return nil, nil
	}
	var raw []byte
	err := s.q.QueryRow(ctx, `SELECT doc FROM invoices WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get invoice", err)
	}
	return fromRaw(id, raw)
}

// Delete elimina por ID; domain.ErrNotFound si no había fila.
func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := s.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las facturas, más recientes primero.
func (s *InvoiceStore) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := s.q.Query(ctx, `SELECT id::text, doc FROM invoices ORDER BY created_at DESC, invoice_no DESC`)
	if err != nil {
		return nil, storeErr("list invoices", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, storeErr("scan invoice", err)
		}
		inv, err := fromRaw(id, raw)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list invoices", err)
	}
	return list, nil
}

// CountByDepartmentCode cuenta facturas por código de departamento.
func (s *InvoiceStore) CountByDepartmentCode(ctx context.Context, code string) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `SELECT count(*) FROM invoices WHERE department_code = $1`, code).Scan(&n)
	if err != nil {
		return 0, storeErr("count invoices", err)
	}
	return n, nil
}

// NextSequence incrementa el contador en una sola sentencia (upsert atómico).
// Si el contador no existe se siembra con el conteo de facturas del departamento.
func (s *InvoiceStore) NextSequence(ctx context.Context, departmentCode string) (int, error) {
	query := `
		INSERT INTO invoice_sequences (department_code, last_value)
		VALUES ($1, (SELECT count(*) FROM invoices WHERE department_code = $1) + 1)
		ON CONFLICT (department_code)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var next int
	if err := s.q.QueryRow(ctx, query, departmentCode).Scan(&next); err != nil {
		return 0, storeErr("next invoice sequence", err)
	}
	return next, nil
}

func toDoc(inv *entity.Invoice) invoiceDoc {
	items := make([]itemDoc, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, itemDoc{
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
			Total:       it.Total,
		})
	}
	return invoiceDoc{
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
	}
}

func fromRaw(id string, raw []byte) (*entity.Invoice, error) {
	var d invoiceDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal invoice %s: %w", id, err)
	}
	items := make([]entity.InvoiceItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.InvoiceItem{
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
			Total:       it.Total,
		})
	}
	return &entity.Invoice{
		ID:             id,
		InvoiceNo:      d.InvoiceNo,
		ClientName:     d.ClientName,
		ClientEmail:    d.ClientEmail,
		ClientPhone:    d.ClientPhone,
		ClientAddress:  d.ClientAddress,
		Description:    d.Description,
		InvoiceDate:    d.InvoiceDate,
		DueDate:        d.DueDate,
		Departments:    d.Departments,
		DepartmentCode: d.DepartmentCode,
		Items:          items,
		Subtotal:       d.Subtotal,
		GSTRate:        d.GSTRate,
		GSTAmount:      d.GSTAmount,
		FinalTotal:     d.FinalTotal,
		CreatedAt:      d.CreatedAt,
	}, nil
}
