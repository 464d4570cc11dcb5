package repository

import "github.com/ehr051/task-manager-api/internal/domain/entity"

// MessageRepository puerto para mensajes directos entre usuarios.
type MessageRepository interface {
	Create(m *entity.Message) (*entity.Message, error)
	// ListForUser devuelve los mensajes enviados o recibidos por el usuario,
	// más recientes primero.
	ListForUser(username string) ([]*entity.Message, error)
	MarkRead(id int64) error
}
