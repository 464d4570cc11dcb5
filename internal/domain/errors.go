package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Autenticación: UserNotFound/WrongPassword solo salen de la tabla local de
// respaldo; el backend remoto responde con InvalidCredentials sin distinguir
// el caso (cero filas para el par username+password).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrWrongPassword      = errors.New("contraseña incorrecta")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrConnection         = errors.New("error de conexión")

	ErrBackendUnavailable  = errors.New("backend de persistencia no disponible")
	ErrConstraintViolation = errors.New("violación de restricción")
	ErrDuplicate           = errors.New("recurso duplicado")

	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
