package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/internal/events"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// ProjectUseCase gestiona proyectos y membresías sobre el backend elegido,
// manteniendo el espejo en memoria como fuente de lectura rápida.
type ProjectUseCase struct {
	store  repository.Store
	remote bool
	state  *state.AppState
	bus    *events.Bus
	log    *logger.Logger
}

// NewProjectUseCase crea el caso de uso de proyectos.
func NewProjectUseCase(store repository.Store, remote bool, st *state.AppState, bus *events.Bus, log *logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{store: store, remote: remote, state: st, bus: bus, log: log}
}

// NewProjectID genera un ID de proyecto del lado del cliente:
// "proj_" + reloj en base36 + sufijo aleatorio. El ID se genera antes de
// persistir para que la inserción optimista tenga identidad estable.
func NewProjectID() string {
	return fmt.Sprintf("proj_%s_%s",
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
}

// Load carga los proyectos visibles para el usuario y los espeja en memoria.
//
// Visibilidad: admin ve todos los proyectos; un usuario normal ve exactamente
// aquellos donde figura como miembro. Los stats leídos del remoto no se
// consideran confiables y se recalculan desde la lista viva de tareas.
func (uc *ProjectUseCase) Load(username, role string) ([]*entity.Project, error) {
	projects, err := uc.store.Projects().List()
	if err != nil {
		return nil, fmt.Errorf("listando proyectos: %w", err)
	}

	if role != entity.RoleAdmin {
		ids, err := uc.store.Members().ProjectIDs(username)
		if err != nil {
			return nil, fmt.Errorf("listando membresías: %w", err)
		}
		visible := make(map[string]bool, len(ids))
		for _, id := range ids {
			visible[id] = true
		}
		filtered := projects[:0]
		for _, p := range projects {
			if visible[p.ID] {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	if uc.remote {
		for _, p := range projects {
			tasks, err := uc.store.Tasks().ListByProject(p.ID)
			if err != nil {
				uc.log.Warn().Err(err).Str("project_id", p.ID).Msg("no se pudieron recalcular stats")
				continue
			}
			p.Stats = entity.ComputeStats(tasks)
		}
	}

	uc.state.SetProjects(projects)
	return projects, nil
}

// Get devuelve un proyecto por ID (espejo primero, backend como respaldo).
func (uc *ProjectUseCase) Get(id string) (*entity.Project, error) {
	if p := uc.state.Project(id); p != nil {
		return p, nil
	}
	p, err := uc.store.Projects().GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Create crea un proyecto con mutación optimista: se inserta al frente del
// espejo antes de persistir y, si el backend falla, se retira y se notifica
// la reversión.
func (uc *ProjectUseCase) Create(username string, in dto.CreateProjectRequest) (*entity.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Project{
		ID:          NewProjectID(),
		Name:        name,
		Description: in.Description,
		RepoURL:     in.RepoURL,
		CreatedBy:   username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uc.state.AddProjectFront(p)

	persisted, err := uc.store.Projects().Create(p)
	if err != nil {
		uc.state.RemoveProject(p.ID)
		uc.bus.Publish(events.Event{Type: events.TypeReverted, Entity: "project", ProjectID: p.ID})
		return nil, fmt.Errorf("creando proyecto: %w", err)
	}

	// Adoptar la fila tal como quedó en el backend.
	uc.state.ReplaceProject(persisted)
	uc.bus.Publish(events.Event{Type: events.TypeCreated, Entity: "project", ProjectID: persisted.ID, Payload: persisted})

	uc.log.Info().Str("project_id", persisted.ID).Str("username", username).Msg("proyecto creado")
	return persisted, nil
}

// Update edita los campos de un proyecto.
func (uc *ProjectUseCase) Update(id string, in dto.UpdateProjectRequest) (*entity.Project, error) {
	p, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	// Copia de trabajo: el espejo solo cambia si el backend acepta.
	updated := *p
	updated.Name = strings.TrimSpace(in.Name)
	updated.Description = in.Description
	updated.RepoURL = in.RepoURL
	updated.UpdatedAt = time.Now()

	if err := uc.store.Projects().Update(&updated); err != nil {
		return nil, fmt.Errorf("actualizando proyecto %s: %w", id, err)
	}
	uc.state.ReplaceProject(&updated)
	uc.bus.Publish(events.Event{Type: events.TypeUpdated, Entity: "project", ProjectID: id, Payload: &updated})
	return &updated, nil
}

// Delete elimina un proyecto y lo retira del espejo.
func (uc *ProjectUseCase) Delete(id string) error {
	if err := uc.store.Projects().Delete(id); err != nil {
		return fmt.Errorf("eliminando proyecto %s: %w", id, err)
	}
	uc.state.RemoveProject(id)
	uc.bus.Publish(events.Event{Type: events.TypeDeleted, Entity: "project", ProjectID: id})
	return nil
}

// Members devuelve los usernames con visibilidad sobre el proyecto.
func (uc *ProjectUseCase) Members(projectID string) ([]string, error) {
	return uc.store.Members().ListByProject(projectID)
}

// AddMember otorga visibilidad del proyecto a un usuario.
func (uc *ProjectUseCase) AddMember(projectID, username string) error {
	username = strings.ToUpper(strings.TrimSpace(username))
	if username == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.store.Members().Add(entity.ProjectMember{ProjectID: projectID, Username: username}); err != nil {
		return fmt.Errorf("agregando miembro: %w", err)
	}
	uc.bus.Publish(events.Event{Type: events.TypeUpdated, Entity: "member", ProjectID: projectID})
	return nil
}

// RemoveMember retira la visibilidad del proyecto a un usuario.
func (uc *ProjectUseCase) RemoveMember(projectID, username string) error {
	if err := uc.store.Members().Remove(projectID, strings.ToUpper(strings.TrimSpace(username))); err != nil {
		return fmt.Errorf("quitando miembro: %w", err)
	}
	uc.bus.Publish(events.Event{Type: events.TypeUpdated, Entity: "member", ProjectID: projectID})
	return nil
}
