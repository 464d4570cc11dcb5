package http

import (
	"bufio"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenWriter simula un cliente desconectado: toda escritura falla.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("conexión cerrada")
}

// Al conectar llega de inmediato el comentario inicial, aunque no haya
// eventos: un tablero quieto no deja al cliente esperando bytes.
func TestStreamEvents_ComentarioInicialInmediato(t *testing.T) {
	var buf bytes.Buffer
	ch := make(chan []byte)
	close(ch)

	err := streamEvents(bufio.NewWriter(&buf), ch, nil)
	require.NoError(t, err)
	assert.Equal(t, ": connected\n\n", buf.String())
}

// Cada evento del bus sale como bloque data y el cierre del canal termina
// el stream de forma limpia.
func TestStreamEvents_EntregaEventos(t *testing.T) {
	var buf bytes.Buffer
	ch := make(chan []byte, 2)
	ch <- []byte(`{"type":"status_changed"}`)
	ch <- []byte(`{"type":"deleted"}`)
	close(ch)

	err := streamEvents(bufio.NewWriter(&buf), ch, nil)
	require.NoError(t, err)
	assert.Equal(t,
		": connected\n\n"+
			"data: {\"type\":\"status_changed\"}\n\n"+
			"data: {\"type\":\"deleted\"}\n\n",
		buf.String())
}

// El heartbeat escribe un comentario ping; con él, una conexión muerta
// falla la escritura aunque el proyecto no emita eventos.
func TestStreamEvents_Heartbeat(t *testing.T) {
	var buf bytes.Buffer
	ch := make(chan []byte)
	ping := make(chan time.Time, 1)
	ping <- time.Now()

	done := make(chan error, 1)
	go func() {
		done <- streamEvents(bufio.NewWriter(&buf), ch, ping)
	}()

	// Tras consumir el ping, cerrar el canal termina el stream.
	time.Sleep(10 * time.Millisecond)
	close(ch)
	require.NoError(t, <-done)
	assert.Equal(t, ": connected\n\n: ping\n\n", buf.String())
}

// Una escritura fallida (cliente desconectado) sale del loop con error en
// vez de quedarse bloqueada; el handler entonces cancela la suscripción.
func TestStreamEvents_EscrituraFallidaTermina(t *testing.T) {
	ch := make(chan []byte)
	err := streamEvents(bufio.NewWriterSize(brokenWriter{}, 8), ch, nil)
	assert.Error(t, err, "el comentario inicial ya detecta la desconexión")
}
