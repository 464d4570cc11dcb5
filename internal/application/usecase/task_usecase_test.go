package usecase_test

import (
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

type taskFixture struct {
	store *fakeStore
	state *state.AppState
	uc    *usecase.TaskUseCase
}

// newTaskFixture monta el caso de uso de tareas sobre el fake y siembra un
// proyecto con una tarea ya espejada (como tras cargar el tablero).
func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	store := newFakeStore()
	appState := state.New()
	bus := events.NewBus()
	activity := usecase.NewActivityLogger(store.Activity(), logger.Nop())
	uc := usecase.NewTaskUseCase(store, true, appState, bus, activity, logger.Nop())

	now := time.Now()
	store.projects = []*entity.Project{{ID: "proj_a", Name: "A", CreatedBy: "EHR051", CreatedAt: now, UpdatedAt: now}}
	seeded := &entity.Task{ID: 1, ProjectID: "proj_a", Title: "existente", Status: entity.StatusPending, Priority: entity.PriorityMedia, CreatedAt: now, UpdatedAt: now}
	store.tasks["proj_a"] = []*entity.Task{seeded}

	_, _, err := uc.LoadBoard("proj_a")
	require.NoError(t, err)
	return &taskFixture{store: store, state: appState, uc: uc}
}

// Crear adopta el ID asignado por el backend, no el provisional del espejo.
func TestCrearTarea_AdoptaIDDelBackend(t *testing.T) {
	fx := newTaskFixture(t)

	created, err := fx.uc.Create("EHR051", dto.CreateTaskRequest{ProjectID: "proj_a", Title: "nueva"})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), created.ID)
	assert.Equal(t, entity.StatusPending, created.Status, "status por defecto")
	assert.Equal(t, entity.PriorityMedia, created.Priority, "prioridad por defecto")

	// El espejo contiene la tarea bajo el ID adoptado, no el provisional.
	assert.NotNil(t, fx.state.Task(1001))
	assert.Len(t, fx.state.Tasks("proj_a"), 2)

	// Creación registrada en el historial.
	entries, err := fx.store.Activity().ListByTask(1001)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionCreacion, entries[0].Action)
}

// Si el backend rechaza la creación, la inserción optimista se retira.
func TestCrearTarea_FalloRevierteEspejo(t *testing.T) {
	fx := newTaskFixture(t)
	fx.store.failCreateTask = true

	_, err := fx.uc.Create("EHR051", dto.CreateTaskRequest{ProjectID: "proj_a", Title: "fallida"})
	require.Error(t, err)
	assert.Len(t, fx.state.Tasks("proj_a"), 1, "el espejo vuelve al estado previo")
	assert.Equal(t, 1, fx.state.Project("proj_a").Stats.Pending)
}

// Cambio de estado confirmado: espejo y backend quedan alineados y los stats
// siguen a la lista viva.
func TestCambioEstado_Confirmado(t *testing.T) {
	fx := newTaskFixture(t)

	updated, err := fx.uc.UpdateStatus("EHR051", 1, entity.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, updated.Status)
	assert.Equal(t, entity.StatusInProgress, fx.store.tasks["proj_a"][0].Status)

	stats := fx.state.Project("proj_a").Stats
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)

	entries, err := fx.store.Activity().ListByTask(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionCambioEstado, entries[0].Action)
	assert.Equal(t, entity.StatusPending, entries[0].Details["de"])
	assert.Equal(t, entity.StatusInProgress, entries[0].Details["a"])
}

// Cambio de estado rechazado: el espejo se restaura al valor capturado antes
// de la mutación optimista.
func TestCambioEstado_FalloRestauraPrevio(t *testing.T) {
	fx := newTaskFixture(t)
	fx.store.failUpdateStatus = true

	_, err := fx.uc.UpdateStatus("EHR051", 1, entity.StatusCompleted)
	require.Error(t, err)
	assert.Equal(t, entity.StatusPending, fx.state.Task(1).Status)
	assert.Equal(t, 1, fx.state.Project("proj_a").Stats.Pending)
	assert.Equal(t, 0, fx.state.Project("proj_a").Stats.Completed)
}

// Dos cambios de estado en vuelo sobre la misma tarea: B confirma mientras A
// sigue esperando al backend; cuando A finalmente falla, su reversión
// restaura el valor que A capturó antes de mutar. La última respuesta en
// llegar decide lo que queda en el espejo.
func TestCambioEstado_ConcurrenciaUltimaRespuesta(t *testing.T) {
	fx := newTaskFixture(t)

	aInFlight := make(chan struct{})
	release := make(chan struct{})
	fx.store.statusHook = func(id int64, status string) error {
		if status != entity.StatusTesting {
			return nil
		}
		close(aInFlight)
		<-release
		return domain.ErrBackendUnavailable
	}

	errc := make(chan error, 1)
	go func() {
		_, err := fx.uc.UpdateStatus("EHR051", 1, entity.StatusTesting)
		errc <- err
	}()

	// A ya aplicó su mutación optimista y quedó esperando al backend.
	<-aInFlight

	_, err := fx.uc.UpdateStatus("EHR051", 1, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, fx.state.Task(1).Status)

	// El backend rechaza la escritura de A; su reversión pisa lo de B.
	close(release)
	require.Error(t, <-errc)

	assert.Equal(t, entity.StatusPending, fx.state.Task(1).Status,
		"queda el valor capturado por A antes de su mutación")
	stats := fx.state.Project("proj_a").Stats
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Completed)
}

// Un status no reconocido nunca se escribe, ni siquiera en el espejo.
func TestCambioEstado_StatusNoReconocido(t *testing.T) {
	fx := newTaskFixture(t)

	_, err := fx.uc.UpdateStatus("EHR051", 1, "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.StatusPending, fx.state.Task(1).Status)
}

// Edición completa rechazada por el backend: vuelve la versión previa.
func TestEditarTarea_FalloRevierte(t *testing.T) {
	fx := newTaskFixture(t)
	fx.store.failUpdateTask = true

	_, err := fx.uc.Update("EHR051", 1, dto.UpdateTaskRequest{
		Title: "editada", Status: entity.StatusTesting, Priority: entity.PriorityAlta,
	})
	require.Error(t, err)
	prev := fx.state.Task(1)
	assert.Equal(t, "existente", prev.Title)
	assert.Equal(t, entity.StatusPending, prev.Status)
}

// Borrado rechazado: la tarea vuelve al espejo.
func TestEliminarTarea_FalloReinserta(t *testing.T) {
	fx := newTaskFixture(t)
	fx.store.failDeleteTask = true

	err := fx.uc.Delete(1)
	require.Error(t, err)
	assert.NotNil(t, fx.state.Task(1))
	assert.Len(t, fx.state.Tasks("proj_a"), 1)
}

// El fallo del historial de actividad es best-effort: no bloquea la mutación.
func TestActividad_FalloNoBloqueaMutacion(t *testing.T) {
	fx := newTaskFixture(t)
	fx.store.failActivity = true

	updated, err := fx.uc.UpdateStatus("EHR051", 1, entity.StatusTesting)
	require.NoError(t, err, "el cambio de estado se confirma aunque el historial falle")
	assert.Equal(t, entity.StatusTesting, updated.Status)
}

// MyTasks recorta las tareas asignadas a los proyectos visibles del usuario.
func TestMyTasks_RecortaAProyectosVisibles(t *testing.T) {
	fx := newTaskFixture(t)
	now := time.Now()
	fx.store.projects = append(fx.store.projects, &entity.Project{ID: "proj_b", Name: "B", CreatedBy: "EHR051", CreatedAt: now, UpdatedAt: now})
	fx.store.tasks["proj_a"][0].AssignedTo = []string{"FGR134"}
	fx.store.tasks["proj_b"] = []*entity.Task{{ID: 2, ProjectID: "proj_b", Title: "oculta", Status: entity.StatusPending, Priority: entity.PriorityBaja, AssignedTo: []string{"FGR134"}}}
	fx.store.members["proj_a"] = []string{"FGR134"}

	mine, err := fx.uc.MyTasks("FGR134", entity.RoleUser)
	require.NoError(t, err)
	require.Len(t, mine, 1, "solo la tarea del proyecto visible")
	assert.Equal(t, "proj_a", mine[0].ProjectID)

	all, err := fx.uc.MyTasks("FGR134", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2, "admin ve todos los proyectos")
}
