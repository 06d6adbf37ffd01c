package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// RoundTripDoc pasa la factura por el documento BSON tal como se guarda y se lee.
func RoundTripDoc(id primitive.ObjectID, inv *entity.Invoice) (*entity.Invoice, error) {
	doc, err := toDoc(inv)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out invoiceDoc
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return fromDoc(&out)
}
