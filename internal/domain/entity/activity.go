package entity

import "time"

// Acciones registradas en el historial de actividad.
const (
	ActionCreacion     = "creacion"
	ActionCambioEstado = "cambio_estado"
	ActionComentario   = "comentario"
)

// ActivityEntry entrada del historial de un proyecto (append-only: el core
// nunca muta ni borra entradas). Su persistencia es best-effort: un fallo se
// registra en el log de diagnóstico y no se propaga ni revierte la mutación
// principal.
type ActivityEntry struct {
	ID        int64             `json:"id"`
	ProjectID string            `json:"project_id"`
	TaskID    *int64            `json:"task_id,omitempty"`
	Username  string            `json:"username"`
	Action    string            `json:"action"`
	Details   map[string]string `json:"details"`
	CreatedAt time.Time         `json:"created_at"`
}
