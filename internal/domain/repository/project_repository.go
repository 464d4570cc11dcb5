package repository

import "github.com/ehr051/task-manager-api/internal/domain/entity"

// ProjectRepository puerto de persistencia para Project.
type ProjectRepository interface {
	// Create persiste el proyecto y devuelve la fila tal como quedó en el
	// backend; el manager adopta el valor devuelto.
	Create(p *entity.Project) (*entity.Project, error)
	GetByID(id string) (*entity.Project, error)
	// List devuelve todos los proyectos, más recientes primero.
	List() ([]*entity.Project, error)
	Update(p *entity.Project) error
	Delete(id string) error
}

// MemberRepository puerto para las membresías proyecto×usuario.
type MemberRepository interface {
	ListByProject(projectID string) ([]string, error)
	// ProjectIDs devuelve los IDs de proyecto visibles para el usuario.
	ProjectIDs(username string) ([]string, error)
	Add(m entity.ProjectMember) error
	Remove(projectID, username string) error
}
