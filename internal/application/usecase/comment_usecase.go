package usecase

import (
	"strings"
	"time"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/internal/events"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// CommentUseCase gestiona comentarios de tareas. Los comentarios son
// best-effort: un fallo de persistencia se registra en el log de diagnóstico
// y no se propaga al llamador ni altera el resto del estado.
type CommentUseCase struct {
	store    repository.Store
	state    *state.AppState
	bus      *events.Bus
	activity *ActivityLogger
	log      *logger.Logger
}

// NewCommentUseCase crea el caso de uso de comentarios.
func NewCommentUseCase(store repository.Store, st *state.AppState, bus *events.Bus, activity *ActivityLogger, log *logger.Logger) *CommentUseCase {
	return &CommentUseCase{store: store, state: st, bus: bus, activity: activity, log: log}
}

// List devuelve los comentarios de una tarea, más antiguos primero.
func (uc *CommentUseCase) List(taskID int64) ([]*entity.Comment, error) {
	return uc.store.Comments().ListByTask(taskID)
}

// Add registra un comentario. Valida la entrada, pero un fallo del backend
// no se devuelve: se loguea y la lista se devuelve tal como quedó.
func (uc *CommentUseCase) Add(username string, taskID int64, content string) ([]*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	t := uc.state.Task(taskID)
	if t == nil {
		// La tarea puede existir en el backend sin estar en el espejo todavía
		// (por ejemplo, en un proceso recién arrancado). Igual que los proyectos,
		// se resuelve contra el almacén antes de dar por perdida la tarea.
		stored, err := uc.store.Tasks().GetByID(taskID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, domain.ErrNotFound
		}
		t = stored
	}

	c := &entity.Comment{
		TaskID:    taskID,
		Username:  username,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if _, err := uc.store.Comments().Create(c); err != nil {
		uc.log.Warn().Err(err).Int64("task_id", taskID).Msg("no se pudo guardar el comentario")
	} else {
		uc.activity.Record(t.ProjectID, &taskID, username, entity.ActionComentario,
			map[string]string{"comentario": content})
		uc.bus.Publish(events.Event{Type: events.TypeUpdated, Entity: "comment", ProjectID: t.ProjectID})
	}

	return uc.store.Comments().ListByTask(taskID)
}
