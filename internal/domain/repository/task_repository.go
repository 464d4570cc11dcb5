package repository

import "github.com/ehr051/task-manager-api/internal/domain/entity"

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	// ListByProject devuelve las tareas del proyecto ordenadas por
	// created_at ascendente.
	ListByProject(projectID string) ([]*entity.Task, error)
	// GetByID devuelve la tarea, o nil sin error si no existe.
	GetByID(id int64) (*entity.Task, error)
	// Create persiste la tarea y devuelve la fila resultante (el backend
	// remoto asigna su propio ID y el manager adopta el valor devuelto).
	Create(t *entity.Task) (*entity.Task, error)
	Update(t *entity.Task) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	// ListAssigned devuelve las tareas cuyo conjunto de asignados contiene
	// al usuario, en todos los proyectos; el caso de uso las recorta a los
	// proyectos visibles.
	ListAssigned(username string) ([]*entity.Task, error)
}

// CommentRepository puerto para comentarios de tareas.
type CommentRepository interface {
	ListByTask(taskID int64) ([]*entity.Comment, error)
	Create(c *entity.Comment) (*entity.Comment, error)
}

// ActivityRepository puerto del historial de actividad. Append-only.
type ActivityRepository interface {
	Append(e *entity.ActivityEntry) error
	// ListByTask devuelve el historial de una tarea, más reciente primero.
	ListByTask(taskID int64) ([]*entity.ActivityEntry, error)
	ListByProject(projectID string) ([]*entity.ActivityEntry, error)
}
