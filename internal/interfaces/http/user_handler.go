package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/usecase"
)

// UserHandler expone el directorio de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Directorio de usuarios (sin contraseñas)
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.SessionUser
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(users)
}
