package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser usuario autenticado visible para el cliente.
type SessionUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResponse token emitido junto con los datos de sesión.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
