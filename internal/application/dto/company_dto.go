package dto

// CompanyInfoResponse bloque de la empresa emisora para la vista de detalle.
type CompanyInfoResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
	GSTType string `json:"gst_type"`
}
