package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación del puerto MessageRepository sobre PostgreSQL.
type MessageRepo struct {
	pool *pgxpool.Pool
}

// NewMessageRepository construye el adaptador de mensajes.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Create inserta un mensaje y devuelve la fila resultante.
func (r *MessageRepo) Create(m *entity.Message) (*entity.Message, error) {
	query := `
		INSERT INTO messages (sender, receiver, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender, receiver, content, read, created_at`
	var out entity.Message
	err := r.pool.QueryRow(context.Background(), query,
		m.Sender, m.Receiver, m.Content, m.Read, m.CreatedAt,
	).Scan(&out.ID, &out.Sender, &out.Receiver, &out.Content, &out.Read, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &out, nil
}

// ListForUser devuelve mensajes enviados o recibidos por el usuario, más recientes primero.
func (r *MessageRepo) ListForUser(username string) ([]*entity.Message, error) {
	query := `
		SELECT id, sender, receiver, content, read, created_at
		FROM messages WHERE sender = $1 OR receiver = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, username)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MarkRead marca un mensaje como leído.
func (r *MessageRepo) MarkRead(id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
