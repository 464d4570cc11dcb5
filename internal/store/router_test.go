package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr051/task-manager-api/internal/infrastructure/localstore"
	"github.com/ehr051/task-manager-api/internal/store"
	"github.com/ehr051/task-manager-api/pkg/config"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

func newLocal(t *testing.T) *localstore.Store {
	t.Helper()
	kv, err := localstore.OpenKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return localstore.NewStore(kv, logger.Nop())
}

// Con el placeholder del repo recién clonado no hay remoto declarado: la
// decisión cae en modo local y vale para toda la vida del proceso.
func TestRouter_PlaceholderEligeLocal(t *testing.T) {
	local := newLocal(t)
	cfg := &config.Config{
		DB: config.DBConfig{DatabaseURL: config.PlaceholderDatabaseURL},
	}

	r := store.NewRouter(context.Background(), cfg, local, logger.Nop())
	defer r.Close()

	assert.False(t, r.RemoteAvailable())
	assert.Equal(t, local, r.Backend())
}

// DATABASE_URL vacío y sin DB_HOST tampoco declara remoto.
func TestRouter_SinConfiguracionEligeLocal(t *testing.T) {
	local := newLocal(t)
	cfg := &config.Config{DB: config.DBConfig{}}

	r := store.NewRouter(context.Background(), cfg, local, logger.Nop())
	defer r.Close()

	assert.False(t, r.RemoteAvailable())
}

// NewLocalRouter fija el backend local directamente (atajo para tests y
// herramientas).
func TestRouter_LocalDirecto(t *testing.T) {
	local := newLocal(t)
	r := store.NewLocalRouter(local)
	defer r.Close()

	assert.False(t, r.RemoteAvailable())
	assert.Equal(t, local, r.Backend())
}
