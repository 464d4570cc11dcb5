package usecase

import (
	"fmt"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

// UserUseCase expone el directorio de usuarios (para asignar tareas y
// administrar membresías). Nunca expone contraseñas.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase crea el caso de uso del directorio de usuarios.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// List devuelve todos los usuarios como registros de sesión (sin contraseña).
func (uc *UserUseCase) List() ([]dto.SessionUser, error) {
	users, err := uc.users.List()
	if err != nil {
		return nil, fmt.Errorf("listando usuarios: %w", err)
	}
	out := make([]dto.SessionUser, 0, len(users))
	for _, u := range users {
		out = append(out, dto.SessionUser{Username: u.Username, Name: u.Name, Role: u.Role})
	}
	return out, nil
}
