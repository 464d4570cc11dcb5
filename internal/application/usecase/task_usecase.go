package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/internal/events"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// TaskUseCase gestiona tareas con mutación optimista: el espejo en memoria se
// actualiza primero, el backend después, y un fallo de persistencia revierte
// el espejo al valor capturado antes de la mutación.
type TaskUseCase struct {
	store    repository.Store
	remote   bool
	state    *state.AppState
	bus      *events.Bus
	activity *ActivityLogger
	log      *logger.Logger

	idMu   sync.Mutex
	lastID int64
}

// NewTaskUseCase crea el caso de uso de tareas.
func NewTaskUseCase(store repository.Store, remote bool, st *state.AppState, bus *events.Bus, activity *ActivityLogger, log *logger.Logger) *TaskUseCase {
	return &TaskUseCase{store: store, remote: remote, state: st, bus: bus, activity: activity, log: log}
}

// provisionalID deriva un ID del reloj en milisegundos, con guarda monotónica
// para mutaciones dentro del mismo milisegundo. En modo local el backend
// conserva este ID; en remoto la base asigna el suyo y se adopta el devuelto.
func (uc *TaskUseCase) provisionalID() int64 {
	uc.idMu.Lock()
	defer uc.idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= uc.lastID {
		id = uc.lastID + 1
	}
	uc.lastID = id
	return id
}

// LoadBoard carga el proyecto y sus tareas, espeja ambos en memoria y
// recalcula los stats a partir de la lista viva.
func (uc *TaskUseCase) LoadBoard(projectID string) (*entity.Project, []*entity.Task, error) {
	p, err := uc.store.Projects().GetByID(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargando proyecto %s: %w", projectID, err)
	}
	if p == nil {
		return nil, nil, domain.ErrNotFound
	}

	tasks, err := uc.store.Tasks().ListByProject(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargando tareas de %s: %w", projectID, err)
	}

	p.Stats = entity.ComputeStats(tasks)
	if uc.state.Project(projectID) == nil {
		// Entrada directa al tablero sin pasar por el dashboard.
		uc.state.AddProjectFront(p)
	} else {
		uc.state.ReplaceProject(p)
	}
	uc.state.SetTasks(projectID, tasks)
	return p, tasks, nil
}

// Create crea una tarea. El espejo recibe primero la tarea con un ID
// provisional; si el backend asigna otro ID, se adopta la fila devuelta. Si
// la persistencia falla, la inserción optimista se retira del espejo.
func (uc *TaskUseCase) Create(username string, in dto.CreateTaskRequest) (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedia
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	t := &entity.Task{
		ID:         uc.provisionalID(),
		ProjectID:  in.ProjectID,
		Title:      title,
		Status:     status,
		Priority:   priority,
		Tags:       in.Tags,
		AssignedTo: in.AssignedTo,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	uc.state.AppendTask(t)
	uc.state.RecomputeProjectStats(t.ProjectID)

	persisted, err := uc.store.Tasks().Create(t)
	if err != nil {
		uc.state.RemoveTask(t.ID)
		uc.state.RecomputeProjectStats(t.ProjectID)
		uc.bus.Publish(events.Event{Type: events.TypeReverted, Entity: "task", ProjectID: t.ProjectID})
		return nil, fmt.Errorf("creando tarea: %w", err)
	}

	if persisted.ID != t.ID {
		uc.state.RemoveTask(t.ID)
		uc.state.AppendTask(persisted)
	} else {
		uc.state.ReplaceTask(persisted)
	}
	uc.state.RecomputeProjectStats(persisted.ProjectID)

	uc.activity.Record(persisted.ProjectID, &persisted.ID, username, entity.ActionCreacion,
		map[string]string{"titulo": persisted.Title})
	uc.bus.Publish(events.Event{Type: events.TypeCreated, Entity: "task", ProjectID: persisted.ProjectID, Payload: persisted})

	uc.log.Info().Int64("task_id", persisted.ID).Str("project_id", persisted.ProjectID).Msg("tarea creada")
	return persisted, nil
}

// UpdateStatus mueve una tarea de columna con confirmación diferida: el
// espejo cambia primero, y si el backend rechaza la escritura se restaura el
// estado capturado antes de la mutación y se emite la señal de reversión.
func (uc *TaskUseCase) UpdateStatus(username string, id int64, newStatus string) (*entity.Task, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	prior, ok := uc.state.SetTaskStatus(id, newStatus)
	if !ok {
		return nil, domain.ErrNotFound
	}
	t := uc.state.Task(id)
	uc.state.RecomputeProjectStats(t.ProjectID)

	if err := uc.store.Tasks().UpdateStatus(id, newStatus); err != nil {
		uc.state.SetTaskStatus(id, prior)
		uc.state.RecomputeProjectStats(t.ProjectID)
		uc.bus.Publish(events.Event{Type: events.TypeReverted, Entity: "task", ProjectID: t.ProjectID})
		return nil, fmt.Errorf("cambiando estado de tarea %d: %w", id, err)
	}

	uc.activity.Record(t.ProjectID, &id, username, entity.ActionCambioEstado,
		map[string]string{"de": prior, "a": newStatus})
	uc.bus.Publish(events.Event{Type: events.TypeStatusChanged, Entity: "task", ProjectID: t.ProjectID, Payload: t})
	return t, nil
}

// Update edita una tarea completa. Se captura la versión previa del espejo
// para poder revertir si la persistencia falla.
func (uc *TaskUseCase) Update(username string, id int64, in dto.UpdateTaskRequest) (*entity.Task, error) {
	old := uc.state.Task(id)
	if old == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Title) == "" || !entity.ValidStatus(in.Status) || !entity.ValidPriority(in.Priority) {
		return nil, domain.ErrInvalidInput
	}

	updated := old.Clone()
	updated.Title = strings.TrimSpace(in.Title)
	updated.Status = in.Status
	updated.Priority = in.Priority
	updated.Tags = in.Tags
	updated.AssignedTo = in.AssignedTo
	updated.DueDate = in.DueDate
	updated.Notes = in.Notes
	updated.UpdatedAt = time.Now()

	uc.state.ReplaceTask(updated)
	uc.state.RecomputeProjectStats(updated.ProjectID)

	if err := uc.store.Tasks().Update(updated); err != nil {
		uc.state.ReplaceTask(old)
		uc.state.RecomputeProjectStats(old.ProjectID)
		uc.bus.Publish(events.Event{Type: events.TypeReverted, Entity: "task", ProjectID: old.ProjectID})
		return nil, fmt.Errorf("actualizando tarea %d: %w", id, err)
	}

	if updated.Status != old.Status {
		uc.activity.Record(updated.ProjectID, &id, username, entity.ActionCambioEstado,
			map[string]string{"de": old.Status, "a": updated.Status})
	}
	uc.bus.Publish(events.Event{Type: events.TypeUpdated, Entity: "task", ProjectID: updated.ProjectID, Payload: updated})
	return updated, nil
}

// Delete elimina una tarea. La tarea se retira del espejo antes de persistir
// y se reinserta si el backend falla.
func (uc *TaskUseCase) Delete(id int64) error {
	old := uc.state.Task(id)
	if old == nil {
		return domain.ErrNotFound
	}

	uc.state.RemoveTask(id)
	uc.state.RecomputeProjectStats(old.ProjectID)

	if err := uc.store.Tasks().Delete(id); err != nil {
		uc.state.AppendTask(old)
		uc.state.RecomputeProjectStats(old.ProjectID)
		uc.bus.Publish(events.Event{Type: events.TypeReverted, Entity: "task", ProjectID: old.ProjectID})
		return fmt.Errorf("eliminando tarea %d: %w", id, err)
	}

	uc.bus.Publish(events.Event{Type: events.TypeDeleted, Entity: "task", ProjectID: old.ProjectID})
	return nil
}

// MyTasks devuelve las tareas asignadas al usuario, recortadas a los
// proyectos que puede ver.
func (uc *TaskUseCase) MyTasks(username, role string) ([]*entity.Task, error) {
	assigned, err := uc.store.Tasks().ListAssigned(username)
	if err != nil {
		return nil, fmt.Errorf("listando tareas asignadas: %w", err)
	}
	if role == entity.RoleAdmin {
		return assigned, nil
	}

	ids, err := uc.store.Members().ProjectIDs(username)
	if err != nil {
		return nil, fmt.Errorf("listando membresías: %w", err)
	}
	visible := make(map[string]bool, len(ids))
	for _, id := range ids {
		visible[id] = true
	}

	out := assigned[:0]
	for _, t := range assigned {
		if visible[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out, nil
}
