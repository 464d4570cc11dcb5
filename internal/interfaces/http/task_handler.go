package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/domain"
)

// TaskHandler maneja tareas, comentarios e historial de actividad.
type TaskHandler struct {
	tasks    *usecase.TaskUseCase
	comments *usecase.CommentUseCase
	activity *usecase.ActivityLogger
}

// NewTaskHandler construye el handler de tareas.
func NewTaskHandler(tasks *usecase.TaskUseCase, comments *usecase.CommentUseCase, activity *usecase.ActivityLogger) *TaskHandler {
	return &TaskHandler{tasks: tasks, comments: comments, activity: activity}
}

func taskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// Board godoc
// @Summary      Tablero: proyecto + tareas por columna
// @Tags         tasks
// @Produce      json
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/board [get]
func (h *TaskHandler) Board(c *fiber.Ctx) error {
	p, tasks, err := h.tasks.LoadBoard(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "proyecto no encontrado")
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"project": p, "tasks": tasks})
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaskRequest  true  "projectId, title, status, priority, ..."
// @Success      201   {object}  entity.Task
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.tasks.Create(GetUsername(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "projectId y title son requeridos; status y priority deben ser válidos")
		}
		if errors.Is(err, domain.ErrConstraintViolation) {
			return validationError(c, "el proyecto no existe")
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// Update godoc
// @Summary      Editar tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.Task
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.tasks.Update(GetUsername(c), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "tarea no encontrada")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "title, status y priority deben ser válidos")
		}
		return internalError(c, err)
	}
	return c.JSON(t)
}

// UpdateStatus godoc
// @Summary      Mover tarea de columna
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  entity.Task
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.tasks.UpdateStatus(GetUsername(c), id, in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "status no reconocido")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "tarea no encontrada")
		}
		return internalError(c, err)
	}
	return c.JSON(t)
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	if err := h.tasks.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "tarea no encontrada")
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MyTasks godoc
// @Summary      Tareas asignadas al usuario en proyectos visibles
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  entity.Task
// @Router       /api/tasks/mine [get]
func (h *TaskHandler) MyTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.MyTasks(GetUsername(c), GetRole(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(tasks)
}

// Comments godoc
// @Summary      Comentarios de una tarea
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  entity.Comment
// @Router       /api/tasks/{id}/comments [get]
func (h *TaskHandler) Comments(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	comments, err := h.comments.List(id)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(comments)
}

// AddComment godoc
// @Summary      Comentar una tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommentRequest  true  "content"
// @Success      200   {array}  entity.Comment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	comments, err := h.comments.Add(GetUsername(c), id, in.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "content es requerido")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "tarea no encontrada")
		}
		return internalError(c, err)
	}
	return c.JSON(comments)
}

// History godoc
// @Summary      Historial de actividad de una tarea
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  entity.ActivityEntry
// @Router       /api/tasks/{id}/history [get]
func (h *TaskHandler) History(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return validationError(c, "id inválido")
	}
	entries, err := h.activity.History(id)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(entries)
}

// ProjectHistory godoc
// @Summary      Historial de actividad de un proyecto
// @Tags         projects
// @Produce      json
// @Success      200  {array}  entity.ActivityEntry
// @Router       /api/projects/{id}/history [get]
func (h *TaskHandler) ProjectHistory(c *fiber.Ctx) error {
	entries, err := h.activity.ProjectHistory(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(entries)
}
