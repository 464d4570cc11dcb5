package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/events"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

func newProjectFixture(t *testing.T) (*fakeStore, *state.AppState, *usecase.ProjectUseCase) {
	t.Helper()
	store := newFakeStore()
	appState := state.New()
	uc := usecase.NewProjectUseCase(store, true, appState, events.NewBus(), logger.Nop())
	return store, appState, uc
}

// Visibilidad: un usuario normal ve exactamente los proyectos donde es
// miembro; admin los ve todos.
func TestLoad_FiltraPorMembresia(t *testing.T) {
	store, _, uc := newProjectFixture(t)
	now := time.Now()
	store.projects = []*entity.Project{
		{ID: "p2", Name: "Dos", CreatedBy: "EHR051", CreatedAt: now, UpdatedAt: now},
		{ID: "p1", Name: "Uno", CreatedBy: "EHR051", CreatedAt: now, UpdatedAt: now},
	}
	store.members["p1"] = []string{"ALICE"}

	visible, err := uc.Load("ALICE", entity.RoleUser)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "p1", visible[0].ID)

	all, err := uc.Load("EHR051", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Los stats leídos del remoto no se confían: Load los recalcula desde la
// lista viva de tareas.
func TestLoad_RecalculaStats(t *testing.T) {
	store, _, uc := newProjectFixture(t)
	now := time.Now()
	store.projects = []*entity.Project{{
		ID: "p1", Name: "Uno", CreatedBy: "EHR051",
		Stats:     entity.TaskStats{Pending: 99}, // valor desnormalizado obsoleto
		CreatedAt: now, UpdatedAt: now,
	}}
	store.tasks["p1"] = []*entity.Task{
		{ID: 1, ProjectID: "p1", Title: "a", Status: entity.StatusPending},
		{ID: 2, ProjectID: "p1", Title: "b", Status: entity.StatusCompleted},
	}

	projects, err := uc.Load("EHR051", entity.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, projects[0].Stats.Pending)
	assert.Equal(t, 1, projects[0].Stats.Completed)
}

// El ID se genera del lado del cliente antes de persistir.
func TestCrearProyecto_GeneraID(t *testing.T) {
	_, appState, uc := newProjectFixture(t)

	p, err := uc.Create("EHR051", dto.CreateProjectRequest{Name: "Nuevo"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "proj_"))
	assert.Equal(t, "EHR051", p.CreatedBy)
	assert.NotNil(t, appState.Project(p.ID), "queda espejado en memoria")
}

// Si el backend rechaza la creación, la inserción optimista se retira del espejo.
func TestCrearProyecto_FalloRevierteEspejo(t *testing.T) {
	store, appState, uc := newProjectFixture(t)
	store.failCreateProject = true

	_, err := uc.Create("EHR051", dto.CreateProjectRequest{Name: "Fallido"})
	require.Error(t, err)
	assert.Empty(t, appState.Projects(), "el espejo no conserva el proyecto fallido")
}

// Nombre vacío se rechaza sin tocar espejo ni backend.
func TestCrearProyecto_NombreRequerido(t *testing.T) {
	store, appState, uc := newProjectFixture(t)

	_, err := uc.Create("EHR051", dto.CreateProjectRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, appState.Projects())
	assert.Empty(t, store.projects)
}

// Membresías: alta normaliza el username.
func TestMiembros_AltaNormalizada(t *testing.T) {
	store, _, uc := newProjectFixture(t)
	now := time.Now()
	store.projects = []*entity.Project{{ID: "p1", Name: "Uno", CreatedBy: "EHR051", CreatedAt: now, UpdatedAt: now}}

	require.NoError(t, uc.AddMember("p1", "  fgr134 "))
	members, err := uc.Members("p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"FGR134"}, members)
}
