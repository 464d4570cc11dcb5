package http

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/ehr051/task-manager-api/internal/events"
)

// pingInterval frecuencia del heartbeat SSE. Mantiene viva la conexión a
// través de proxies y hace que una conexión muerta falle la escritura, lo
// que libera el goroutine del stream y su suscripción al bus.
const pingInterval = 25 * time.Second

// EventsHandler expone el flujo SSE de señales de re-render por proyecto.
type EventsHandler struct {
	bus *events.Bus
}

// NewEventsHandler construye el handler de eventos.
func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream godoc
// @Summary      Eventos de un proyecto (Server-Sent Events)
// @Tags         events
// @Produce      text/event-stream
// @Router       /api/projects/{id}/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	projectID := c.Params("id")

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch, cancel := h.bus.Subscribe(projectID)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		_ = streamEvents(w, ch, ticker.C)
	}))
	return nil
}

// streamEvents escribe la conexión SSE: un comentario inicial que abre el
// stream de inmediato, cada evento como data y heartbeats periódicos.
// Retorna en cuanto una escritura falla (cliente desconectado) o el canal
// del bus se cierra.
func streamEvents(w *bufio.Writer, ch <-chan []byte, ping <-chan time.Time) error {
	// Comentario inicial: el cliente recibe bytes aunque el tablero esté quieto.
	if err := writeFlush(w, ": connected\n\n"); err != nil {
		return err
	}
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeFlush(w, "data: "+string(msg)+"\n\n"); err != nil {
				return err
			}
		case <-ping:
			if err := writeFlush(w, ": ping\n\n"); err != nil {
				return err
			}
		}
	}
}

func writeFlush(w *bufio.Writer, s string) error {
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	return w.Flush()
}
