package entity

import "time"

// Estados válidos de una tarea (columnas del tablero).
// Un valor no reconocido que llegue del backend es solo de lectura: se muestra
// pero nunca se escribe de vuelta.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusTesting    = "testing"
	StatusProduction = "production"
	StatusCompleted  = "completed"
)

// Prioridades válidas de una tarea.
const (
	PriorityAlta  = "alta"
	PriorityMedia = "media"
	PriorityBaja  = "baja"
)

// Task representa una tarea dentro de un proyecto.
// En modo local el ID se deriva del reloj (milisegundos), monotónico dentro
// del proceso pero sin garantía de unicidad global entre sesiones offline
// largas; el backend remoto asigna el suyo y el manager lo adopta.
type Task struct {
	ID         int64     `json:"id"`
	ProjectID  string    `json:"project_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	Tags       []string  `json:"tags"`
	AssignedTo []string  `json:"assigned_to"`
	DueDate    string    `json:"due_date,omitempty"` // YYYY-MM-DD
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidStatus indica si s es uno de los cinco estados escribibles.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusTesting, StatusProduction, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority indica si p es una prioridad reconocida.
func ValidPriority(p string) bool {
	switch p {
	case PriorityAlta, PriorityMedia, PriorityBaja:
		return true
	}
	return false
}

// Assigned indica si la tarea está asignada al usuario dado.
func (t *Task) Assigned(username string) bool {
	for _, a := range t.AssignedTo {
		if a == username {
			return true
		}
	}
	return false
}

// Clone devuelve una copia profunda de la tarea (los slices no se comparten).
func (t *Task) Clone() *Task {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.AssignedTo = append([]string(nil), t.AssignedTo...)
	return &c
}
