package events_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr051/task-manager-api/internal/events"
)

// Los eventos llegan solo a los suscriptores del proyecto publicado.
func TestBus_EntregaPorProyecto(t *testing.T) {
	bus := events.NewBus()

	chA, cancelA := bus.Subscribe("proj_a")
	defer cancelA()
	chB, cancelB := bus.Subscribe("proj_b")
	defer cancelB()

	bus.Publish(events.Event{Type: events.TypeStatusChanged, Entity: "task", ProjectID: "proj_a"})

	select {
	case raw := <-chA:
		var ev events.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, events.TypeStatusChanged, ev.Type)
		assert.Equal(t, "proj_a", ev.ProjectID)
	default:
		t.Fatal("el suscriptor de proj_a debía recibir el evento")
	}

	select {
	case <-chB:
		t.Fatal("proj_b no debía recibir eventos de proj_a")
	default:
	}
}

// Un suscriptor con el buffer lleno pierde eventos en vez de bloquear.
func TestBus_SuscriptorLentoNoBloquea(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe("proj_a")
	defer cancel()

	for i := 0; i < 100; i++ {
		bus.Publish(events.Event{Type: events.TypeUpdated, ProjectID: "proj_a"})
	}
	assert.Equal(t, 16, len(ch), "se conserva solo lo que cabe en el buffer")
}

// Tras darse de baja no llegan más eventos.
func TestBus_CancelCierraCanal(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe("proj_a")
	cancel()

	bus.Publish(events.Event{Type: events.TypeDeleted, ProjectID: "proj_a"})
	_, open := <-ch
	assert.False(t, open, "el canal queda cerrado")
}
