package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo implementación del puerto CommentRepository sobre PostgreSQL.
type CommentRepo struct {
	pool *pgxpool.Pool
}

// NewCommentRepository construye el adaptador de comentarios.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// ListByTask devuelve los comentarios de la tarea, más antiguos primero.
func (r *CommentRepo) ListByTask(taskID int64) ([]*entity.Comment, error) {
	query := `
		SELECT id, task_id, username, content, created_at
		FROM task_comments WHERE task_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(context.Background(), query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create inserta un comentario y devuelve la fila resultante.
func (r *CommentRepo) Create(c *entity.Comment) (*entity.Comment, error) {
	query := `
		INSERT INTO task_comments (task_id, username, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, task_id, username, content, created_at`
	var out entity.Comment
	err := r.pool.QueryRow(context.Background(), query,
		c.TaskID, c.Username, c.Content, c.CreatedAt,
	).Scan(&out.ID, &out.TaskID, &out.Username, &out.Content, &out.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrConstraintViolation
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &out, nil
}
