package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// MessageUseCase gestiona mensajes directos entre usuarios.
type MessageUseCase struct {
	store repository.Store
	state *state.AppState
	log   *logger.Logger
}

// NewMessageUseCase crea el caso de uso de mensajes.
func NewMessageUseCase(store repository.Store, st *state.AppState, log *logger.Logger) *MessageUseCase {
	return &MessageUseCase{store: store, state: st, log: log}
}

// Send envía un mensaje de sender al receptor indicado.
func (uc *MessageUseCase) Send(sender string, in dto.SendMessageRequest) (*entity.Message, error) {
	receiver := strings.ToUpper(strings.TrimSpace(in.Receiver))
	content := strings.TrimSpace(in.Content)
	if receiver == "" || content == "" {
		return nil, domain.ErrInvalidInput
	}

	m := &entity.Message{
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: time.Now(),
	}
	persisted, err := uc.store.Messages().Create(m)
	if err != nil {
		return nil, fmt.Errorf("enviando mensaje: %w", err)
	}

	uc.state.AddMessageFront(persisted)
	return persisted, nil
}

// Inbox devuelve los mensajes del usuario (enviados y recibidos, más
// recientes primero) y los espeja en memoria.
func (uc *MessageUseCase) Inbox(username string) ([]*entity.Message, error) {
	messages, err := uc.store.Messages().ListForUser(username)
	if err != nil {
		return nil, fmt.Errorf("listando mensajes: %w", err)
	}
	uc.state.SetMessages(messages)
	return messages, nil
}

// MarkRead marca un mensaje como leído.
func (uc *MessageUseCase) MarkRead(id int64) error {
	if err := uc.store.Messages().MarkRead(id); err != nil {
		return fmt.Errorf("marcando mensaje %d: %w", id, err)
	}
	uc.state.MarkMessageRead(id)
	return nil
}
