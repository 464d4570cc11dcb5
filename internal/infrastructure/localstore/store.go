package localstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// Claves del KV. El snapshot de cada clave se reemplaza al completo en cada
// escritura (last-write-wins a granularidad de la lista completa).
const (
	keyProjects    = "taskManager_projects"
	keyUsers       = "taskManager_users"
	keyMessages    = "taskManager_messages"
	keyActivity    = "taskManager_activity"
	prefixTasks    = "taskManager_tasks_"    // + projectID
	prefixComments = "taskManager_comments_" // + taskID
	prefixMembers  = "taskManager_members_"  // + projectID
)

var _ repository.Store = (*Store)(nil)

// Store implementación local de repository.Store: espejo completo en memoria
// volcado al KV persistente tras cada mutación. Es el respaldo cuando el
// backend remoto no está configurado o no fue alcanzable al arrancar.
type Store struct {
	kv  *KV
	log *logger.Logger

	mu             sync.Mutex
	projects       []*entity.Project
	projectsLoaded bool
	tasks          map[string][]*entity.Task
	comments       map[int64][]*entity.Comment
	members        map[string][]string
	activity       []*entity.ActivityEntry
	activityLoaded bool
	users          []*entity.User
	usersLoaded    bool
	messages       []*entity.Message
	messagesLoaded bool
	lastID         int64
}

// NewStore construye el adaptador local sobre el KV dado.
func NewStore(kv *KV, log *logger.Logger) *Store {
	return &Store{
		kv:       kv,
		log:      log,
		tasks:    make(map[string][]*entity.Task),
		comments: make(map[int64][]*entity.Comment),
		members:  make(map[string][]string),
	}
}

func (s *Store) Users() repository.UserRepository        { return &localUserRepo{s} }
func (s *Store) Projects() repository.ProjectRepository  { return &localProjectRepo{s} }
func (s *Store) Members() repository.MemberRepository    { return &localMemberRepo{s} }
func (s *Store) Tasks() repository.TaskRepository        { return &localTaskRepo{s} }
func (s *Store) Comments() repository.CommentRepository  { return &localCommentRepo{s} }
func (s *Store) Activity() repository.ActivityRepository { return &localActivityRepo{s} }
func (s *Store) Messages() repository.MessageRepository  { return &localMessageRepo{s} }

// nextID deriva un ID del reloj (milisegundos), monotónico dentro del proceso.
// No se garantiza unicidad global entre sesiones offline largas. Llamar con
// s.mu tomado.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// load deserializa la clave en v. Devuelve false si la clave no existe.
func (s *Store) load(key string, v any) (bool, error) {
	raw, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decodificar %s: %w", key, err)
	}
	return true, nil
}

// save serializa v y reemplaza el snapshot de la clave al completo.
func (s *Store) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	return s.kv.Set(key, string(raw))
}

func (s *Store) ensureProjects() error {
	if s.projectsLoaded {
		return nil
	}
	found, err := s.load(keyProjects, &s.projects)
	if err != nil {
		return err
	}
	if !found {
		s.projects = defaultProjects()
	}
	s.projectsLoaded = true
	return nil
}

func (s *Store) ensureTasks(projectID string) error {
	if _, ok := s.tasks[projectID]; ok {
		return nil
	}
	var list []*entity.Task
	found, err := s.load(prefixTasks+projectID, &list)
	if err != nil {
		return err
	}
	if !found && projectID == seedProjectID {
		// Primera carga del proyecto de ejemplo: sembrar y persistir.
		list = defaultTasks()
		if err := s.save(prefixTasks+projectID, list); err != nil {
			return err
		}
	}
	s.tasks[projectID] = list
	return nil
}

// recomputeStats recalcula los conteos desnormalizados del proyecto a partir
// de la lista viva de tareas y persiste la lista de proyectos. Se invoca tras
// cada mutación de tareas para mantener el invariante local.
func (s *Store) recomputeStats(projectID string) error {
	if err := s.ensureProjects(); err != nil {
		return err
	}
	for _, p := range s.projects {
		if p.ID == projectID {
			p.Stats = entity.ComputeStats(s.tasks[projectID])
			break
		}
	}
	return s.save(keyProjects, s.projects)
}

// ── Proyectos ────────────────────────────────────────────────────────────────

type localProjectRepo struct{ s *Store }

func (r *localProjectRepo) List() ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	return append([]*entity.Project(nil), r.s.projects...), nil
}

func (r *localProjectRepo) GetByID(id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	for _, p := range r.s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *localProjectRepo) Create(p *entity.Project) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	for _, existing := range r.s.projects {
		if existing.ID == p.ID {
			return nil, domain.ErrDuplicate
		}
	}
	// Más reciente primero, como el listado.
	r.s.projects = append([]*entity.Project{p}, r.s.projects...)
	if err := r.s.save(keyProjects, r.s.projects); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *localProjectRepo) Update(p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return err
	}
	for i, existing := range r.s.projects {
		if existing.ID == p.ID {
			r.s.projects[i] = p
			return r.s.save(keyProjects, r.s.projects)
		}
	}
	return domain.ErrNotFound
}

func (r *localProjectRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return err
	}
	kept := r.s.projects[:0]
	for _, p := range r.s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.s.projects = kept
	delete(r.s.tasks, id)
	delete(r.s.members, id)
	if err := r.s.kv.Remove(prefixTasks + id); err != nil {
		return err
	}
	if err := r.s.kv.Remove(prefixMembers + id); err != nil {
		return err
	}
	return r.s.save(keyProjects, r.s.projects)
}

// ── Membresías ───────────────────────────────────────────────────────────────

type localMemberRepo struct{ s *Store }

func (r *localMemberRepo) ensure(projectID string) error {
	if _, ok := r.s.members[projectID]; ok {
		return nil
	}
	var list []string
	if _, err := r.s.load(prefixMembers+projectID, &list); err != nil {
		return err
	}
	r.s.members[projectID] = list
	return nil
}

func (r *localMemberRepo) ListByProject(projectID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(projectID); err != nil {
		return nil, err
	}
	return append([]string(nil), r.s.members[projectID]...), nil
}

func (r *localMemberRepo) ProjectIDs(username string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	var ids []string
	for _, p := range r.s.projects {
		if err := r.ensure(p.ID); err != nil {
			return nil, err
		}
		for _, m := range r.s.members[p.ID] {
			if m == username {
				ids = append(ids, p.ID)
				break
			}
		}
	}
	return ids, nil
}

func (r *localMemberRepo) Add(m entity.ProjectMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(m.ProjectID); err != nil {
		return err
	}
	for _, existing := range r.s.members[m.ProjectID] {
		if existing == m.Username {
			return nil // idempotente
		}
	}
	r.s.members[m.ProjectID] = append(r.s.members[m.ProjectID], m.Username)
	return r.s.save(prefixMembers+m.ProjectID, r.s.members[m.ProjectID])
}

func (r *localMemberRepo) Remove(projectID, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(projectID); err != nil {
		return err
	}
	kept := r.s.members[projectID][:0]
	for _, m := range r.s.members[projectID] {
		if m != username {
			kept = append(kept, m)
		}
	}
	r.s.members[projectID] = kept
	return r.s.save(prefixMembers+projectID, r.s.members[projectID])
}

// ── Tareas ───────────────────────────────────────────────────────────────────

type localTaskRepo struct{ s *Store }

func (r *localTaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureTasks(projectID); err != nil {
		return nil, err
	}
	return append([]*entity.Task(nil), r.s.tasks[projectID]...), nil
}

func (r *localTaskRepo) Create(t *entity.Task) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	exists := false
	for _, p := range r.s.projects {
		if p.ID == t.ProjectID {
			exists = true
			break
		}
	}
	if !exists {
		// Task.project_id debe referenciar un proyecto existente.
		return nil, domain.ErrConstraintViolation
	}
	if err := r.s.ensureTasks(t.ProjectID); err != nil {
		return nil, err
	}
	if t.ID == 0 {
		t.ID = r.s.nextID()
	}
	r.s.tasks[t.ProjectID] = append(r.s.tasks[t.ProjectID], t)
	if err := r.s.save(prefixTasks+t.ProjectID, r.s.tasks[t.ProjectID]); err != nil {
		return nil, err
	}
	if err := r.s.recomputeStats(t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *localTaskRepo) GetByID(id int64) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findTask(id)
}

// findTask localiza una tarea por ID recorriendo los proyectos. Llamar con mu tomado.
func (r *localTaskRepo) findTask(id int64) (*entity.Task, error) {
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	for _, p := range r.s.projects {
		if err := r.s.ensureTasks(p.ID); err != nil {
			return nil, err
		}
		for _, t := range r.s.tasks[p.ID] {
			if t.ID == id {
				return t, nil
			}
		}
	}
	return nil, nil
}

func (r *localTaskRepo) Update(t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureTasks(t.ProjectID); err != nil {
		return err
	}
	for i, existing := range r.s.tasks[t.ProjectID] {
		if existing.ID == t.ID {
			r.s.tasks[t.ProjectID][i] = t
			if err := r.s.save(prefixTasks+t.ProjectID, r.s.tasks[t.ProjectID]); err != nil {
				return err
			}
			return r.s.recomputeStats(t.ProjectID)
		}
	}
	return domain.ErrNotFound
}

func (r *localTaskRepo) UpdateStatus(id int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, err := r.findTask(id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	if err := r.s.save(prefixTasks+t.ProjectID, r.s.tasks[t.ProjectID]); err != nil {
		return err
	}
	return r.s.recomputeStats(t.ProjectID)
}

func (r *localTaskRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, err := r.findTask(id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	kept := r.s.tasks[t.ProjectID][:0]
	for _, existing := range r.s.tasks[t.ProjectID] {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	r.s.tasks[t.ProjectID] = kept
	if err := r.s.save(prefixTasks+t.ProjectID, r.s.tasks[t.ProjectID]); err != nil {
		return err
	}
	return r.s.recomputeStats(t.ProjectID)
}

func (r *localTaskRepo) ListAssigned(username string) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.ensureProjects(); err != nil {
		return nil, err
	}
	var list []*entity.Task
	for _, p := range r.s.projects {
		if err := r.s.ensureTasks(p.ID); err != nil {
			return nil, err
		}
		for _, t := range r.s.tasks[p.ID] {
			if t.Assigned(username) {
				list = append(list, t)
			}
		}
	}
	return list, nil
}

// ── Comentarios ──────────────────────────────────────────────────────────────

type localCommentRepo struct{ s *Store }

func (r *localCommentRepo) ensure(taskID int64) error {
	if _, ok := r.s.comments[taskID]; ok {
		return nil
	}
	var list []*entity.Comment
	if _, err := r.s.load(fmt.Sprintf("%s%d", prefixComments, taskID), &list); err != nil {
		return err
	}
	r.s.comments[taskID] = list
	return nil
}

func (r *localCommentRepo) ListByTask(taskID int64) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(taskID); err != nil {
		return nil, err
	}
	return append([]*entity.Comment(nil), r.s.comments[taskID]...), nil
}

func (r *localCommentRepo) Create(c *entity.Comment) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(c.TaskID); err != nil {
		return nil, err
	}
	if c.ID == 0 {
		c.ID = r.s.nextID()
	}
	r.s.comments[c.TaskID] = append(r.s.comments[c.TaskID], c)
	if err := r.s.save(fmt.Sprintf("%s%d", prefixComments, c.TaskID), r.s.comments[c.TaskID]); err != nil {
		return nil, err
	}
	return c, nil
}

// ── Historial ────────────────────────────────────────────────────────────────

type localActivityRepo struct{ s *Store }

func (r *localActivityRepo) ensure() error {
	if r.s.activityLoaded {
		return nil
	}
	if _, err := r.s.load(keyActivity, &r.s.activity); err != nil {
		return err
	}
	r.s.activityLoaded = true
	return nil
}

func (r *localActivityRepo) Append(e *entity.ActivityEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return err
	}
	if e.ID == 0 {
		e.ID = r.s.nextID()
	}
	// Append-only: nunca se muta ni borra una entrada existente.
	r.s.activity = append(r.s.activity, e)
	return r.s.save(keyActivity, r.s.activity)
}

func (r *localActivityRepo) ListByTask(taskID int64) ([]*entity.ActivityEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	var list []*entity.ActivityEntry
	for i := len(r.s.activity) - 1; i >= 0; i-- {
		e := r.s.activity[i]
		if e.TaskID != nil && *e.TaskID == taskID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *localActivityRepo) ListByProject(projectID string) ([]*entity.ActivityEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	var list []*entity.ActivityEntry
	for i := len(r.s.activity) - 1; i >= 0; i-- {
		if r.s.activity[i].ProjectID == projectID {
			list = append(list, r.s.activity[i])
		}
	}
	return list, nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type localUserRepo struct{ s *Store }

func (r *localUserRepo) ensure() error {
	if r.s.usersLoaded {
		return nil
	}
	found, err := r.s.load(keyUsers, &r.s.users)
	if err != nil {
		return err
	}
	if !found {
		r.s.users = defaultUsers()
	}
	r.s.usersLoaded = true
	return nil
}

func (r *localUserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users = append(r.s.users, user)
	return r.s.save(keyUsers, r.s.users)
}

func (r *localUserRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *localUserRepo) GetByCredentials(username, password string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, nil
}

func (r *localUserRepo) List() ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	return append([]*entity.User(nil), r.s.users...), nil
}

// ── Mensajes ─────────────────────────────────────────────────────────────────

type localMessageRepo struct{ s *Store }

func (r *localMessageRepo) ensure() error {
	if r.s.messagesLoaded {
		return nil
	}
	if _, err := r.s.load(keyMessages, &r.s.messages); err != nil {
		return err
	}
	r.s.messagesLoaded = true
	return nil
}

func (r *localMessageRepo) Create(m *entity.Message) (*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	if m.ID == 0 {
		m.ID = r.s.nextID()
	}
	r.s.messages = append(r.s.messages, m)
	if err := r.s.save(keyMessages, r.s.messages); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *localMessageRepo) ListForUser(username string) ([]*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	var list []*entity.Message
	for i := len(r.s.messages) - 1; i >= 0; i-- {
		m := r.s.messages[i]
		if m.Sender == username || m.Receiver == username {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *localMessageRepo) MarkRead(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.ensure(); err != nil {
		return err
	}
	for _, m := range r.s.messages {
		if m.ID == id {
			m.Read = true
			return r.s.save(keyMessages, r.s.messages)
		}
	}
	return domain.ErrNotFound
}
