package entity

// CompanyInfo bloque de datos de la empresa emisora que se muestra en la vista y en el PDF.
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
	Website string
	Logo    string // ruta pública del logo, ej. /static/company_logo.jpg
	GSTType string // etiqueta derivada de la tasa GST
}
