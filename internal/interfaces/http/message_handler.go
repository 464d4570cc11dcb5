package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/domain"
)

// MessageHandler maneja mensajes directos.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler construye el handler de mensajes.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Inbox godoc
// @Summary      Mensajes del usuario (enviados y recibidos)
// @Tags         messages
// @Produce      json
// @Success      200  {array}  entity.Message
// @Router       /api/messages [get]
func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	messages, err := h.uc.Inbox(GetUsername(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(messages)
}

// Send godoc
// @Summary      Enviar mensaje directo
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMessageRequest  true  "receiver, content"
// @Success      201   {object}  entity.Message
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.Send(GetUsername(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validationError(c, "receiver y content son requeridos")
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// MarkRead godoc
// @Summary      Marcar mensaje como leído
// @Tags         messages
// @Success      204
// @Router       /api/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return validationError(c, "id inválido")
	}
	if err := h.uc.MarkRead(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "mensaje no encontrado")
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
