package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/domain"
)

// ProjectHandler maneja proyectos y membresías.
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler de proyectos.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// List godoc
// @Summary      Proyectos visibles para el usuario
// @Tags         projects
// @Produce      json
// @Success      200  {array}  entity.Project
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.uc.Load(GetUsername(c), GetRole(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(projects)
}

// GetByID godoc
// @Summary      Proyecto por ID
// @Tags         projects
// @Produce      json
// @Success      200  {object}  entity.Project
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "proyecto no encontrado")
		}
		return internalError(c, err)
	}
	return c.JSON(p)
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, description, repoUrl"
// @Success      201   {object}  entity.Project
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.Create(GetUsername(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "name es requerido")
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el proyecto ya existe"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update godoc
// @Summary      Editar proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.Project
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "proyecto no encontrado")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "name es requerido")
		}
		return internalError(c, err)
	}
	return c.JSON(p)
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Tags         projects
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "proyecto no encontrado")
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Members godoc
// @Summary      Miembros del proyecto
// @Tags         projects
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/projects/{id}/members [get]
func (h *ProjectHandler) Members(c *fiber.Ctx) error {
	members, err := h.uc.Members(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(members)
}

// AddMember godoc
// @Summary      Agregar miembro al proyecto
// @Tags         projects
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	var in dto.MemberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.AddMember(c.Params("id"), in.Username); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "username es requerido")
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Quitar miembro del proyecto
// @Tags         projects
// @Success      204
// @Router       /api/projects/{id}/members/{username} [delete]
func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(c.Params("id"), c.Params("username")); err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
