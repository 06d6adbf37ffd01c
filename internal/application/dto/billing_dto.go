package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices y formulario de /invoices/new.
// Cantidad y monto viajan como texto: las filas que no se puedan convertir se descartan.
type CreateInvoiceRequest struct {
	ClientName    string               `json:"client_name"`
	ClientEmail   string               `json:"client_email,omitempty"`
	ClientPhone   string               `json:"client_phone,omitempty"`
	ClientAddress string               `json:"client_address,omitempty"`
	Description   string               `json:"description,omitempty"`
	InvoiceDate   string               `json:"invoice_date,omitempty"` // YYYY-MM-DD; hoy si va vacío
	DueDate       string               `json:"due_date,omitempty"`     // YYYY-MM-DD; hoy + 7 días si va vacío
	Departments   []string             `json:"departments"`
	Items         []InvoiceItemRequest `json:"items"`
	CGST          bool                 `json:"cgst"`
	SGST          bool                 `json:"sgst"`
}

// InvoiceItemRequest línea de servicio tal como llega del cliente.
type InvoiceItemRequest struct {
	ServiceName string `json:"service_name"`
	Quantity    string `json:"quantity"`
	Amount      string `json:"amount"`
}

// CreateInvoiceResponse respuesta de creación.
type CreateInvoiceResponse struct {
	ID        string `json:"id"`
	InvoiceNo string `json:"invoice_no"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id y la vista de detalle.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	InvoiceNo      string                `json:"invoice_no"`
	ClientName     string                `json:"client_name"`
	ClientEmail    string                `json:"client_email"`
	ClientPhone    string                `json:"client_phone"`
	ClientAddress  string                `json:"client_address"`
	Description    string                `json:"description"`
	InvoiceDate    string                `json:"invoice_date"`
	DueDate        string                `json:"due_date"`
	Departments    []string              `json:"departments"`
	DepartmentCode string                `json:"department_code"`
	Items          []InvoiceItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	GSTRate        int                   `json:"gst_rate"`
	GSTAmount      decimal.Decimal       `json:"gst_amount"`
	FinalTotal     decimal.Decimal       `json:"final_total"`
	CreatedAt      time.Time             `json:"created_at"`
	Company        CompanyInfoResponse   `json:"company"`
}

// InvoiceItemResponse línea de servicio en la respuesta.
type InvoiceItemResponse struct {
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Total       decimal.Decimal `json:"total"`
}
