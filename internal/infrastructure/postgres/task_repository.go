package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	pool *pgxpool.Pool
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, project_id, title, status, priority, tags, assigned_to, due_date, notes, created_at, updated_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.Priority,
		&t.Tags, &t.AssignedTo, &t.DueDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject devuelve las tareas del proyecto, created_at ascendente.
func (r *TaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID devuelve la tarea, o nil sin error si no existe.
func (r *TaskRepo) GetByID(id int64) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return t, nil
}

// Create inserta la tarea; el backend asigna el ID y se devuelve la fila resultante.
func (r *TaskRepo) Create(t *entity.Task) (*entity.Task, error) {
	query := `
		INSERT INTO tasks (project_id, title, status, priority, tags, assigned_to, due_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns
	out, err := scanTask(r.pool.QueryRow(context.Background(), query,
		t.ProjectID, t.Title, t.Status, t.Priority, t.Tags, t.AssignedTo, t.DueDate, t.Notes,
		t.CreatedAt, t.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrConstraintViolation
		}
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return out, nil
}

// Update reemplaza los campos editables de la tarea.
func (r *TaskRepo) Update(t *entity.Task) error {
	query := `
		UPDATE tasks SET title = $2, status = $3, priority = $4, tags = $5,
			assigned_to = $6, due_date = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		t.ID, t.Title, t.Status, t.Priority, t.Tags, t.AssignedTo, t.DueDate, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado (movimiento entre columnas).
func (r *TaskRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TaskRepo) Delete(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListAssigned devuelve las tareas cuyo conjunto de asignados contiene al usuario.
func (r *TaskRepo) ListAssigned(username string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to @> ARRAY[$1]::text[] ORDER BY created_at ASC`
	rows, err := r.pool.Query(context.Background(), query, username)
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
