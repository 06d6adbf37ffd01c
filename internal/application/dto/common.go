package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo para operaciones sin payload (ej. DELETE).
type MessageResponse struct {
	Message string `json:"message"`
}
