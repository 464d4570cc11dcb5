package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema. El username es único y se normaliza
// a mayúsculas antes de cualquier búsqueda. La contraseña se compara en texto
// plano por contrato con el backend actual; el proveedor de sesión aísla esto
// para poder sustituir un esquema con hash sin tocar a los llamadores.
type User struct {
	Username  string
	Name      string
	Password  string
	Role      string // admin, user
	CreatedAt time.Time
}
