package session

import "sync"

// Record registro de sesión de un usuario autenticado.
type Record struct {
	Username string
	Name     string
	Role     string
}

// Store almacén transitorio de sesiones en memoria, indexado por token.
// Las sesiones no sobreviven reinicios del proceso: al cerrar la app la
// sesión se pierde y el usuario debe autenticarse de nuevo.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Record
}

// NewStore crea un almacén de sesiones vacío.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Record)}
}

// Put registra la sesión asociada al token.
func (s *Store) Put(token string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = rec
}

// Get devuelve el registro de sesión del token, si existe.
func (s *Store) Get(token string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[token]
	return rec, ok
}

// Delete elimina la sesión del token. Es idempotente: borrar una sesión
// inexistente no es un error.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
