package store

import (
	"context"

	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/internal/infrastructure/postgres"
	"github.com/ehr051/task-manager-api/pkg/config"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// Router selecciona el backend de persistencia una única vez por sesión de
// proceso. Si el remoto está configurado y el cliente se construye (pool +
// ping + esquema), el remoto queda como única fuente de verdad: sus errores
// se propagan tal cual y NO hay fallback al local a mitad de sesión. Una
// credencial placeholder, malformada, o un fallo de construcción dejan el
// modo local de forma permanente para la sesión (sin reintentos).
type Router struct {
	backend repository.Store
	remote  bool
	closeFn func()
}

// NewRouter realiza el paso único de inicialización contra las credenciales
// configuradas y devuelve el router con el backend ya decidido.
func NewRouter(ctx context.Context, cfg *config.Config, local repository.Store, log *logger.Logger) *Router {
	if !cfg.DB.Configured() {
		log.Info().Msg("backend remoto no configurado, usando almacenamiento local")
		return &Router{backend: local}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Msg("backend remoto inalcanzable, usando almacenamiento local para esta sesión")
		return &Router{backend: local}
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Warn().Err(err).Msg("no se pudo preparar el esquema remoto, usando almacenamiento local para esta sesión")
		pool.Close()
		return &Router{backend: local}
	}

	log.Info().Msg("backend remoto disponible, usándolo como fuente de verdad")
	return &Router{backend: postgres.NewStore(pool), remote: true, closeFn: pool.Close}
}

// NewLocalRouter construye un router fijado al backend local (para tests y
// herramientas que no deben tocar red).
func NewLocalRouter(local repository.Store) *Router {
	return &Router{backend: local}
}

// RemoteAvailable indica si la sesión quedó fijada al backend remoto.
func (r *Router) RemoteAvailable() bool {
	return r.remote
}

// Backend devuelve el store elegido para toda la sesión.
func (r *Router) Backend() repository.Store {
	return r.backend
}

// Close libera los recursos del backend remoto si lo hay.
func (r *Router) Close() {
	if r.closeFn != nil {
		r.closeFn()
	}
}
