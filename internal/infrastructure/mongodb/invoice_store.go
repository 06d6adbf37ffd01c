// Package mongodb implementa el almacén de documentos de factura sobre MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/kits-invoicing/internal/domain"
	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
)

// Nombres de colecciones.
const (
	CollectionInvoices  = "invoices"
	CollectionSequences = "invoice_sequences"
)

var (
	_ repository.InvoiceStore  = (*InvoiceStore)(nil)
	_ repository.SequenceStore = (*InvoiceStore)(nil)
)

// Connect abre el cliente y verifica la conexión con un ping al primario.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// InvoiceStore adaptador de InvoiceStore y SequenceStore para MongoDB.
type InvoiceStore struct {
	invoices  *mongo.Collection
	sequences *mongo.Collection
}

// NewInvoiceStore construye el adaptador sobre la base indicada.
func NewInvoiceStore(db *mongo.Database) *InvoiceStore {
	return &InvoiceStore{
		invoices:  db.Collection(CollectionInvoices),
		sequences: db.Collection(CollectionSequences),
	}
}

// EnsureIndexes crea el índice por department_code (conteo y numeración).
func (s *InvoiceStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.invoices.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "department_code", Value: 1}},
	})
	if err != nil {
		return storeErr("create index", err)
	}
	return nil
}

type invoiceDoc struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	InvoiceNo      string               `bson:"invoice_no"`
	ClientName     string               `bson:"client_name"`
	ClientEmail    string               `bson:"client_email"`
	ClientPhone    string               `bson:"client_phone"`
	ClientAddress  string               `bson:"client_address"`
	Description    string               `bson:"description"`
	InvoiceDate    string               `bson:"invoice_date"`
	DueDate        string               `bson:"due_date"`
	Departments    []string             `bson:"departments"`
	DepartmentCode string               `bson:"department_code"`
	Items          []itemDoc            `bson:"items"`
	Subtotal       primitive.Decimal128 `bson:"subtotal"`
	GSTRate        int                  `bson:"gst_rate"`
	GSTAmount      primitive.Decimal128 `bson:"gst_amount"`
	FinalTotal     primitive.Decimal128 `bson:"final_total"`
	CreatedAt      time.Time            `bson:"created_at"`
}

type itemDoc struct {
	ServiceName string               `bson:"service_name"`
	Quantity    int                  `bson:"quantity"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Total       primitive.Decimal128 `bson:"total"`
}

type sequenceDoc struct {
	ID    string `bson:"_id"`
	Value int    `bson:"seq"`
}

// Add inserta el documento; el ID es el ObjectID en hexadecimal.
func (s *InvoiceStore) Add(ctx context.Context, invoice *entity.Invoice) (string, error) {
	doc, err := toDoc(invoice)
	if err != nil {
		return "", err
	}
	res, err := s.invoices.InsertOne(ctx, doc)
	if err != nil {
		return "", storeErr("insert invoice", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert invoice: id inesperado %v", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Get devuelve (nil, nil) si el ID no es un ObjectID válido o no existe.
func (s *InvoiceStore) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc invoiceDoc
	if err := s.invoices.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("get invoice", err)
	}
	return fromDoc(&doc)
}

// Delete elimina por ID; domain.ErrNotFound si no se borró nada.
func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := s.invoices.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete invoice", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List recorre toda la colección ordenada por created_at descendente.
func (s *InvoiceStore) List(ctx context.Context) ([]*entity.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "invoice_no", Value: -1}})
	cur, err := s.invoices.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list invoices", err)
	}
	defer cur.Close(ctx)

	var list []*entity.Invoice
	for cur.Next(ctx) {
		var doc invoiceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode invoice", err)
		}
		inv, err := fromDoc(&doc)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list invoices", err)
	}
	return list, nil
}

// CountByDepartmentCode cuenta por igualdad en department_code.
func (s *InvoiceStore) CountByDepartmentCode(ctx context.Context, code string) (int, error) {
	n, err := s.invoices.CountDocuments(ctx, bson.M{"department_code": code})
	if err != nil {
		return 0, storeErr("count invoices", err)
	}
	return int(n), nil
}

// NextSequence siembra el contador con $max (idempotente) y luego incrementa con $inc.
// El $inc sobre un único documento es atómico, así que dos llamadas concurrentes
// nunca devuelven el mismo valor.
func (s *InvoiceStore) NextSequence(ctx context.Context, departmentCode string) (int, error) {
	count, err := s.CountByDepartmentCode(ctx, departmentCode)
	if err != nil {
		return 0, err
	}
	filter := bson.M{"_id": departmentCode}
	seed := bson.M{"$max": bson.M{"seq": count}}
	if _, err := s.sequences.UpdateOne(ctx, filter, seed, options.Update().SetUpsert(true)); err != nil {
		// dos upserts simultáneos del mismo _id: uno pierde con E11000 y el documento ya existe
		if !mongo.IsDuplicateKeyError(err) {
			return 0, storeErr("seed invoice sequence", err)
		}
	}

	var doc sequenceDoc
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = s.sequences.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&doc)
	if err != nil {
		return 0, storeErr("next invoice sequence", err)
	}
	return doc.Value, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

func toDoc(inv *entity.Invoice) (*invoiceDoc, error) {
	items := make([]itemDoc, 0, len(inv.Items))
	for _, it := range inv.Items {
		amount, err := toDecimal128(it.Amount)
		if err != nil {
			return nil, err
		}
		total, err := toDecimal128(it.Total)
		if err != nil {
			return nil, err
		}
		items = append(items, itemDoc{ServiceName: it.ServiceName, Quantity: it.Quantity, Amount: amount, Total: total})
	}
	subtotal, err := toDecimal128(inv.Subtotal)
	if err != nil {
		return nil, err
	}
	gst, err := toDecimal128(inv.GSTAmount)
	if err != nil {
		return nil, err
	}
	final, err := toDecimal128(inv.FinalTotal)
	if err != nil {
		return nil, err
	}
	return &invoiceDoc{
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
		Subtotal:       subtotal,
		GSTRate:        inv.GSTRate,
		GSTAmount:      gst,
		FinalTotal:     final,
		CreatedAt:      inv.CreatedAt,
	}, nil
}

func fromDoc(d *invoiceDoc) (*entity.Invoice, error) {
	items := make([]entity.InvoiceItem, 0, len(d.Items))
	for _, it := range d.Items {
		amount, err := fromDecimal128(it.Amount)
		if err != nil {
			return nil, err
		}
		total, err := fromDecimal128(it.Total)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.InvoiceItem{ServiceName: it.ServiceName, Quantity: it.Quantity, Amount: amount, Total: total})
	}
	subtotal, err := fromDecimal128(d.Subtotal)
	if err != nil {
		return nil, err
	}
	gst, err := fromDecimal128(d.GSTAmount)
	if err != nil {
		return nil, err
	}
	final, err := fromDecimal128(d.FinalTotal)
	if err != nil {
		return nil, err
	}
	return &entity.Invoice{
		ID:             d.ID.Hex(),
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
		Subtotal:       subtotal,
		GSTRate:        d.GSTRate,
		GSTAmount:      gst,
		FinalTotal:     final,
		CreatedAt:      d.CreatedAt,
	}, nil
}
