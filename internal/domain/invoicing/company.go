package invoicing

import (
	"slices"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
)

// Datos fijos de la empresa emisora.
const (
	CompanyNameIT         = "KITS Software Solution Pvt Ltd"
	CompanyNameRobotics   = "KITS Robotics and Automation Pvt Ltd"
	CompanyName3DPrinting = "KITS 3D Printing Pvt Ltd"
	CompanyNameDefault    = "KITS Innovation and Technical Solutions Pvt Ltd"

	CompanyAddress = "KITS, 1st Floor, Mukta Plaza, KITS Square, Income Tax Chowk, Akola"
	CompanyEmail   = "info@kitstechlearning.co.in"
	CompanyPhone   = "9226983129 / 7385582242"
	CompanyWebsite = "www.kitstechlearning.co.in"
)

// Etiquetas del tipo de impuesto según la tasa GST.
const (
	GSTTypeBoth   = "CGST + SGST"
	GSTTypeSingle = "CGST or SGST"
	GSTTypeNone   = "None"
)

// ResolveCompanyName elige la razón social por precedencia it_arvr > robotics > 3dprinting,
// sin importar el orden de la lista.
func ResolveCompanyName(departments []string) string {
	switch {
	case slices.Contains(departments, entity.DepartmentITARVR):
		return CompanyNameIT
	case slices.Contains(departments, entity.DepartmentRobotics):
		return CompanyNameRobotics
	case slices.Contains(departments, entity.Department3DPrinting):
		return CompanyName3DPrinting
	default:
		return CompanyNameDefault
	}
}

// GSTTypeLabel etiqueta legible de la tasa GST.
func GSTTypeLabel(rate int) string {
	switch rate {
	case GSTRateBoth:
		return GSTTypeBoth
	case GSTRateSingle:
		return GSTTypeSingle
	default:
		return GSTTypeNone
	}
}

// CompanyInfoFor arma el bloque de empresa para una factura.
func CompanyInfoFor(inv *entity.Invoice, logoURL string) entity.CompanyInfo {
	return entity.CompanyInfo{
		Name:    ResolveCompanyName(inv.Departments),
		Address: CompanyAddress,
		Email:   CompanyEmail,
		Phone:   CompanyPhone,
		Website: CompanyWebsite,
		Logo:    logoURL,
		GSTType: GSTTypeLabel(inv.GSTRate),
	}
}
