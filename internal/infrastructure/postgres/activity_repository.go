package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
// Solo Append y lecturas: el historial es append-only.
type ActivityRepo struct {
	pool *pgxpool.Pool
}

// NewActivityRepository construye el adaptador del historial.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// Append inserta una entrada de historial.
func (r *ActivityRepo) Append(e *entity.ActivityEntry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	query := `
		INSERT INTO activity_log (project_id, task_id, username, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.pool.Exec(context.Background(), query,
		e.ProjectID, e.TaskID, e.Username, e.Action, details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByTask devuelve el historial de una tarea, más reciente primero.
func (r *ActivityRepo) ListByTask(taskID int64) ([]*entity.ActivityEntry, error) {
	query := `
		SELECT id, project_id, task_id, username, action, details, created_at
		FROM activity_log WHERE task_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	return scanActivityRows(rows)
}

// ListByProject devuelve el historial de un proyecto, más reciente primero.
func (r *ActivityRepo) ListByProject(projectID string) ([]*entity.ActivityEntry, error) {
	query := `
		SELECT id, project_id, task_id, username, action, details, created_at
		FROM activity_log WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	return scanActivityRows(rows)
}

func scanActivityRows(rows pgx.Rows) ([]*entity.ActivityEntry, error) {
	var list []*entity.ActivityEntry
	for rows.Next() {
		var e entity.ActivityEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.TaskID, &e.Username, &e.Action, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
