package repository

import (
	"context"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// InvoiceStore define el puerto del almacén de documentos para la colección "invoices".
// Las implementaciones envuelven los fallos del driver con domain.ErrStore.
type InvoiceStore interface {
	// Add persiste el documento y devuelve el ID asignado por el almacén.
	Add(ctx context.Context, invoice *entity.Invoice) (string, error)
	// Get devuelve (nil, nil) si el documento no existe.
	Get(ctx context.Context, id string) (*entity.Invoice, error)
	// Delete devuelve domain.ErrNotFound si el documento no existe.
	Delete(ctx context.Context, id string) error
	// List devuelve todas las facturas, más recientes primero.
	List(ctx context.Context) ([]*entity.Invoice, error)
	// CountByDepartmentCode cuenta las facturas con department_code igual al dado.
	CountByDepartmentCode(ctx context.Context, code string) (int, error)
}

// SequenceStore contador monotónico por código de departamento.
// NextSequence incrementa de forma atómica y devuelve el nuevo valor (1, 2, 3...).
// La primera vez que se usa un código, el contador parte del número de facturas ya guardadas con ese código.
type SequenceStore interface {
	NextSequence(ctx context.Context, departmentCode string) (int, error)
}
