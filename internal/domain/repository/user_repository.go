package repository

import "github.com/ehr051/task-manager-api/internal/domain/entity"

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	// GetByCredentials busca por match exacto de username+password (texto
	// plano, contrato del backend actual). Devuelve nil sin error si no hay
	// coincidencia.
	GetByCredentials(username, password string) (*entity.User, error)
	List() ([]*entity.User, error)
}
