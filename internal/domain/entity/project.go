package entity

import "time"

// TaskStats conteo de tareas por estado, desnormalizado sobre el proyecto.
// En modo local se recalcula tras cada mutación; leído del remoto no se confía
// en él y se recalcula a partir de la lista de tareas.
type TaskStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Testing    int `json:"testing"`
	Production int `json:"production"`
	Completed  int `json:"completed"`
}

// Project representa un proyecto (tablero) con sus stats agregados.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	RepoURL     string    `json:"repo_url,omitempty"`
	CreatedBy   string    `json:"created_by"`
	Stats       TaskStats `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectMember otorga visibilidad de un proyecto a un usuario no-admin.
type ProjectMember struct {
	ProjectID string `json:"project_id"`
	Username  string `json:"username"`
}

// ComputeStats recalcula los conteos por estado a partir de la lista viva de tareas.
func ComputeStats(tasks []*Task) TaskStats {
	var s TaskStats
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusTesting:
			s.Testing++
		case StatusProduction:
			s.Production++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}
