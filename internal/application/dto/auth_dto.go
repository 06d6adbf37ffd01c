package dto

// LoginRequest entrada para login (formulario o JSON).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse salida con token JWT de sesión.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
