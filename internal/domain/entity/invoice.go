package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de departamento aceptadas por el formulario.
const (
	DepartmentRobotics   = "robotics"
	DepartmentITARVR     = "it_arvr"
	Department3DPrinting = "3dprinting"
)

// Códigos cortos de departamento usados como prefijo del número de factura.
const (
	DepartmentCodeRobotics   = "ROB"
	DepartmentCodeIT         = "IT"
	DepartmentCode3DPrinting = "3DP"
	DepartmentCodeGeneric    = "GEN"
)

// Invoice es el documento de factura tal como se guarda en el almacén.
// Se crea una sola vez y nunca se actualiza.
type Invoice struct {
	ID             string // asignado por el almacén
	InvoiceNo      string // KITS-<DEPT>-<NNN>
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	ClientAddress  string
	Description    string
	InvoiceDate    string // YYYY-MM-DD
	DueDate        string // YYYY-MM-DD
	Departments    []string
	DepartmentCode string // derivado del primer departamento
	Items          []InvoiceItem
	Subtotal       decimal.Decimal
	GSTRate        int // 0, 9 o 18
	GSTAmount      decimal.Decimal
	FinalTotal     decimal.Decimal
	CreatedAt      time.Time
}

// InvoiceItem es una línea de servicio ya validada.
type InvoiceItem struct {
	ServiceName string
	Quantity    int
	Amount      decimal.Decimal
	Total       decimal.Decimal // Quantity × Amount
}
