package postgres

import (
	"encoding/json"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// RoundTripDoc pasa la factura por el documento JSONB tal como se guarda y se lee.
func RoundTripDoc(id string, inv *entity.Invoice) (*entity.Invoice, error) {
	raw, err := json.Marshal(toDoc(inv))
	if err != nil {
		return nil, err
	}
	return fromRaw(id, raw)
}
