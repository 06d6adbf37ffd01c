package invoicing

import (
	"fmt"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// InvoicePrefix prefijo fijo de todos los números de factura.
const InvoicePrefix = "KITS"

var departmentCodes = map[string]string{
	entity.DepartmentRobotics:   entity.DepartmentCodeRobotics,
	entity.DepartmentITARVR:     entity.DepartmentCodeIT,
	entity.Department3DPrinting: entity.DepartmentCode3DPrinting,
}

// DepartmentCode traduce una etiqueta de departamento a su código corto; GEN si no se reconoce.
func DepartmentCode(tag string) string {
	if code, ok := departmentCodes[tag]; ok {
		return code
	}
	return entity.DepartmentCodeGeneric
}

// DepartmentCodeFor usa el primer departamento seleccionado. Lista vacía → GEN.
func DepartmentCodeFor(departments []string) string {
	if len(departments) == 0 {
		return entity.DepartmentCodeGeneric
	}
	return DepartmentCode(departments[0])
}

// ComputeNextInvoiceNumber formatea KITS-<code>-<existingCount+1 con 3 dígitos>.
// Ej: ("ROB", 0) → "KITS-ROB-001".
func ComputeNextInvoiceNumber(departmentCode string, existingCount int) string {
	return fmt.Sprintf("%s-%s-%03d", InvoicePrefix, departmentCode, existingCount+1)
}
