package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
// Los stats desnormalizados NO se persisten en remoto: leídos de aquí no son
// confiables y el caso de uso los recalcula desde la lista de tareas.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

// Create persiste el proyecto y devuelve la fila tal como quedó en el backend.
func (r *ProjectRepo) Create(p *entity.Project) (*entity.Project, error) {
	query := `
		INSERT INTO projects (id, name, description, repo_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, repo_url, created_by, created_at, updated_at`
	var out entity.Project
	err := r.pool.QueryRow(context.Background(), query,
		p.ID, p.Name, p.Description, p.RepoURL, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&out.ID, &out.Name, &out.Description, &out.RepoURL, &out.CreatedBy, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return &out, nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `
		SELECT id, name, description, repo_url, created_by, created_at, updated_at
		FROM projects WHERE id = $1`
	var p entity.Project
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.RepoURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &p, nil
}

// List devuelve todos los proyectos, más recientes primero.
func (r *ProjectRepo) List() ([]*entity.Project, error) {
	query := `
		SELECT id, name, description, repo_url, created_by, created_at, updated_at
		FROM projects ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.RepoURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza name, description y repo_url del proyecto.
func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, description = $3, repo_url = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.RepoURL, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proyecto; las tareas y membresías caen por cascada.
func (r *ProjectRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación del puerto MemberRepository sobre PostgreSQL.
type MemberRepo struct {
	pool *pgxpool.Pool
}

// NewMemberRepository construye el adaptador de membresías.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// ListByProject devuelve los usernames con membresía en el proyecto.
func (r *MemberRepo) ListByProject(projectID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT username FROM project_members WHERE project_id = $1 ORDER BY username`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ProjectIDs devuelve los IDs de proyecto visibles para el usuario.
func (r *MemberRepo) ProjectIDs(username string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT project_id FROM project_members WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("list project ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add registra una membresía (idempotente).
func (r *MemberRepo) Add(m entity.ProjectMember) error {
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO project_members (project_id, username) VALUES ($1, $2)
		 ON CONFLICT (project_id, username) DO NOTHING`,
		m.ProjectID, m.Username)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// Remove borra una membresía.
func (r *MemberRepo) Remove(projectID, username string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM project_members WHERE project_id = $1 AND username = $2`,
		projectID, username)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
