package state

import (
	"sync"

	"github.com/ehr051/task-manager-api/internal/domain/entity"
)

// AppState es el objeto de estado de la aplicación: las colecciones en memoria
// que los entity managers mutan de forma optimista y espejan contra el backend
// elegido. Sustituye a colecciones globales sueltas; todo acceso pasa por sus
// métodos. Las tareas se guardan y devuelven clonadas para que un revert pueda
// restaurar el valor capturado sin compartir slices con los llamadores.
type AppState struct {
	mu       sync.RWMutex
	projects []*entity.Project
	tasks    map[string][]*entity.Task
	messages []*entity.Message
}

// New construye un estado vacío.
func New() *AppState {
	return &AppState{tasks: make(map[string][]*entity.Task)}
}

// ── Proyectos ────────────────────────────────────────────────────────────────

// SetProjects reemplaza la colección de proyectos visibles (última lectura).
func (s *AppState) SetProjects(projects []*entity.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]*entity.Project(nil), projects...)
}

// Projects devuelve los proyectos de la última lectura espejada.
func (s *AppState) Projects() []*entity.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.Project(nil), s.projects...)
}

// Project devuelve el proyecto con el ID dado, o nil.
func (s *AppState) Project(id string) *entity.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddProjectFront inserta un proyecto al frente (más reciente primero).
func (s *AppState) AddProjectFront(p *entity.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]*entity.Project{p}, s.projects...)
}

// RemoveProject descarta el proyecto y sus tareas espejadas.
func (s *AppState) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	delete(s.tasks, id)
}

// ReplaceProject sustituye el proyecto con el mismo ID, si está espejado.
func (s *AppState) ReplaceProject(p *entity.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.projects {
		if existing.ID == p.ID {
			s.projects[i] = p
			return
		}
	}
}

// ── Tareas ───────────────────────────────────────────────────────────────────

// SetTasks reemplaza el espejo de tareas del proyecto.
func (s *AppState) SetTasks(projectID string, tasks []*entity.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := make([]*entity.Task, 0, len(tasks))
	for _, t := range tasks {
		cloned = append(cloned, t.Clone())
	}
	s.tasks[projectID] = cloned
}

// Tasks devuelve las tareas espejadas del proyecto (clonadas).
func (s *AppState) Tasks(projectID string) []*entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Task, 0, len(s.tasks[projectID]))
	for _, t := range s.tasks[projectID] {
		list = append(list, t.Clone())
	}
	return list
}

// Task busca una tarea por ID entre los proyectos espejados.
func (s *AppState) Task(id int64) *entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.find(id); t != nil {
		return t.Clone()
	}
	return nil
}

func (s *AppState) find(id int64) *entity.Task {
	for _, list := range s.tasks {
		for _, t := range list {
			if t.ID == id {
				return t
			}
		}
	}
	return nil
}

// AppendTask añade la tarea al espejo de su proyecto.
func (s *AppState) AppendTask(t *entity.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ProjectID] = append(s.tasks[t.ProjectID], t.Clone())
}

// RemoveTask elimina la tarea del espejo. Devuelve false si no estaba.
func (s *AppState) RemoveTask(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for projectID, list := range s.tasks {
		for i, t := range list {
			if t.ID == id {
				s.tasks[projectID] = append(list[:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ReplaceTask sustituye la tarea con el mismo ID. Devuelve false si no estaba.
func (s *AppState) ReplaceTask(t *entity.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.tasks {
		for i, existing := range list {
			if existing.ID == t.ID {
				list[i] = t.Clone()
				return true
			}
		}
	}
	return false
}

// SetTaskStatus aplica el cambio de estado optimista y devuelve el estado
// previo capturado, para que un fallo de persistencia pueda revertirlo
// restaurando exactamente ese valor (no recalculando).
func (s *AppState) SetTaskStatus(id int64, status string) (prior string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(id)
	if t == nil {
		return "", false
	}
	prior = t.Status
	t.Status = status
	return prior, true
}

// RecomputeProjectStats actualiza los stats del proyecto espejado a partir de
// su lista viva de tareas, de modo que un render inmediato no vea caché viejo.
func (s *AppState) RecomputeProjectStats(projectID string) entity.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := entity.ComputeStats(s.tasks[projectID])
	for _, p := range s.projects {
		if p.ID == projectID {
			p.Stats = stats
			break
		}
	}
	return stats
}

// ── Mensajes ─────────────────────────────────────────────────────────────────

// SetMessages reemplaza el espejo de mensajes del usuario actual.
func (s *AppState) SetMessages(messages []*entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]*entity.Message(nil), messages...)
}

// Messages devuelve el espejo de mensajes.
func (s *AppState) Messages() []*entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.Message(nil), s.messages...)
}

// AddMessageFront inserta un mensaje al frente (más reciente primero).
func (s *AppState) AddMessageFront(m *entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]*entity.Message{m}, s.messages...)
}

// MarkMessageRead marca como leído el mensaje espejado.
func (s *AppState) MarkMessageRead(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id {
			m.Read = true
			return
		}
	}
}
