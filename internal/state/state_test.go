package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/state"
)

func seedState() *state.AppState {
	s := state.New()
	s.SetProjects([]*entity.Project{{ID: "p1", Name: "Uno"}})
	s.SetTasks("p1", []*entity.Task{
		{ID: 1, ProjectID: "p1", Title: "a", Status: entity.StatusPending},
		{ID: 2, ProjectID: "p1", Title: "b", Status: entity.StatusInProgress},
	})
	return s
}

// SetTaskStatus devuelve el estado previo capturado, que es lo que la
// reversión restaura si el backend rechaza la escritura.
func TestSetTaskStatus_CapturaPrevio(t *testing.T) {
	s := seedState()

	prior, ok := s.SetTaskStatus(1, entity.StatusCompleted)
	require.True(t, ok)
	assert.Equal(t, entity.StatusPending, prior)
	assert.Equal(t, entity.StatusCompleted, s.Task(1).Status)

	// Revertir con el valor capturado.
	_, ok = s.SetTaskStatus(1, prior)
	require.True(t, ok)
	assert.Equal(t, entity.StatusPending, s.Task(1).Status)

	_, ok = s.SetTaskStatus(404, entity.StatusPending)
	assert.False(t, ok, "tarea inexistente")
}

// Los stats del proyecto espejado siguen a la lista viva de tareas.
func TestRecomputeProjectStats(t *testing.T) {
	s := seedState()

	stats := s.RecomputeProjectStats("p1")
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)

	s.SetTaskStatus(1, entity.StatusInProgress)
	stats = s.RecomputeProjectStats("p1")
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, stats, s.Project("p1").Stats)
}

// El espejo guarda copias: mutar lo devuelto no altera el estado interno.
func TestTasks_DevuelveCopias(t *testing.T) {
	s := seedState()

	got := s.Task(1)
	got.Status = entity.StatusCompleted
	assert.Equal(t, entity.StatusPending, s.Task(1).Status)

	list := s.Tasks("p1")
	list[0].Title = "mutada"
	assert.Equal(t, "a", s.Task(1).Title)
}

// RemoveTask y AppendTask son el par de reversión de un alta optimista.
func TestAppendRemoveTask(t *testing.T) {
	s := seedState()

	s.AppendTask(&entity.Task{ID: 3, ProjectID: "p1", Title: "c", Status: entity.StatusPending})
	assert.Len(t, s.Tasks("p1"), 3)

	require.True(t, s.RemoveTask(3))
	assert.Len(t, s.Tasks("p1"), 2)
	assert.False(t, s.RemoveTask(3))
}
