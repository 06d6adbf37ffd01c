// Package memory implementa el almacén de facturas en memoria (desarrollo y tests).
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
)

var (
	_ repository.InvoiceStore  = (*InvoiceStore)(nil)
	_ repository.SequenceStore = (*InvoiceStore)(nil)
)

// InvoiceStore guarda copias de las facturas en un mapa protegido por mutex.
type InvoiceStore struct {
	mu        sync.RWMutex
	invoices  map[string]entity.Invoice
	sequences map[string]int
}

// NewInvoiceStore construye un almacén vacío.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{
		invoices:  make(map[string]entity.Invoice),
		sequences: make(map[string]int),
	}
}

// Add asigna un UUID y guarda una copia.
func (s *InvoiceStore) Add(ctx context.Context, invoice *entity.Invoice) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.New().String()
	doc := clone(invoice)
	doc.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[id] = doc
	return id, nil
}

// Get devuelve (nil, nil) si no existe.
func (s *InvoiceStore) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	out := clone(&doc)
	return &out, nil
}

// Delete elimina por ID.
func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

// List devuelve todas las facturas ordenadas por CreatedAt descendente.
func (s *InvoiceStore) List(ctx context.Context) ([]*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]*entity.Invoice, 0, len(s.invoices))
	for _, doc := range s.invoices {
		c := clone(&doc)
		out = append(out, &c)
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *entity.Invoice) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		// mismo instante: desempate por número para un orden estable
		return cmp.Compare(b.InvoiceNo, a.InvoiceNo)
	})
	return out, nil
}

// CountByDepartmentCode cuenta por igualdad exacta.
func (s *InvoiceStore) CountByDepartmentCode(ctx context.Context, code string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(code), nil
}

// NextSequence incrementa el contador del departamento bajo el mismo lock de escritura.
func (s *InvoiceStore) NextSequence(ctx context.Context, departmentCode string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sequences[departmentCode]
	if !ok {
		current = s.countLocked(departmentCode)
	}
	current++
	s.sequences[departmentCode] = current
	return current, nil
}

func (s *InvoiceStore) countLocked(code string) int {
	n := 0
	for _, doc := range s.invoices {
		if doc.DepartmentCode == code {
			n++
		}
	}
	return n
}

func clone(in *entity.Invoice) entity.Invoice {
	out := *in
	out.Departments = slices.Clone(in.Departments)
	out.Items = slices.Clone(in.Items)
	return out
}
