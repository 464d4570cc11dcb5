package events

import (
	"encoding/json"
	"sync"
)

// Tipos de evento publicados tras cada mutación confirmada o revertida.
// Son la señal de re-render: el cliente que los recibe vuelve a pedir el
// estado y redibuja (el render es idempotente y sin efectos para el core).
const (
	TypeCreated       = "created"
	TypeUpdated       = "updated"
	TypeStatusChanged = "status_changed"
	TypeDeleted       = "deleted"
	TypeReverted      = "reverted"
)

// Event notificación de cambio sobre un proyecto.
type Event struct {
	Type      string `json:"type"`
	Entity    string `json:"entity,omitempty"`
	ProjectID string `json:"project_id"`
	Payload   any    `json:"payload,omitempty"`
}

// Bus reparte eventos por proyecto a los suscriptores (SSE). Suscriptores
// lentos pierden eventos en vez de bloquear al publicador.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

// NewBus construye un bus vacío.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[chan []byte]struct{})}
}

// Subscribe registra un suscriptor para el proyecto y devuelve su canal junto
// con la función de baja.
func (b *Bus) Subscribe(projectID string) (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[projectID] == nil {
		b.subs[projectID] = make(map[chan []byte]struct{})
	}
	b.subs[projectID][ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		if subs, ok := b.subs[projectID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, projectID)
			}
		}
		b.mu.Unlock()
		close(ch)
	}
}

// Publish serializa el evento y lo entrega a los suscriptores del proyecto.
func (b *Bus) Publish(ev Event) {
	data, _ := json.Marshal(ev)
	b.mu.RLock()
	for ch := range b.subs[ev.ProjectID] {
		select {
		case ch <- data:
		default: // descartar si el suscriptor va lento
		}
	}
	b.mu.RUnlock()
}
