package usecase

import (
	"time"

	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// ActivityLogger agrega entradas al historial de actividad en modo
// best-effort: un fallo termina en el log de diagnóstico y nunca se propaga
// al llamador ni revierte la mutación que lo originó.
type ActivityLogger struct {
	activity repository.ActivityRepository
	log      *logger.Logger
}

// NewActivityLogger crea el escritor best-effort del historial.
func NewActivityLogger(activity repository.ActivityRepository, log *logger.Logger) *ActivityLogger {
	return &ActivityLogger{activity: activity, log: log}
}

// Record intenta registrar una entrada de actividad.
func (a *ActivityLogger) Record(projectID string, taskID *int64, username, action string, details map[string]string) {
	entry := &entity.ActivityEntry{
		ProjectID: projectID,
		TaskID:    taskID,
		Username:  username,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := a.activity.Append(entry); err != nil {
		a.log.Warn().Err(err).
			Str("project_id", projectID).
			Str("action", action).
			Msg("no se pudo registrar actividad")
	}
}

// History devuelve el historial de una tarea, más reciente primero.
func (a *ActivityLogger) History(taskID int64) ([]*entity.ActivityEntry, error) {
	return a.activity.ListByTask(taskID)
}

// ProjectHistory devuelve el historial completo de un proyecto.
func (a *ActivityLogger) ProjectHistory(projectID string) ([]*entity.ActivityEntry, error) {
	return a.activity.ListByProject(projectID)
}
