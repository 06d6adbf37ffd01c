package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/kits-invoicing/internal/domain"
)

// storeErr envuelve el error del driver con domain.ErrStore conservando la causa.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}

// validID evita enviar a PostgreSQL IDs que no son UUID (el cast fallaría con error 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
