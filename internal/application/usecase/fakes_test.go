package usecase_test

import (
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

// fakeStore backend en memoria con inyección de fallos para simular un
// backend remoto que rechaza escrituras.
type fakeStore struct {
	projects []*entity.Project
	members  map[string][]string
	tasks    map[string][]*entity.Task
	comments map[int64][]*entity.Comment
	activity []*entity.ActivityEntry
	messages []*entity.Message
	users    []*entity.User

	// El backend asigna sus propios IDs de tarea, distintos del provisional.
	nextTaskID int64

	failCreateProject bool
	failCreateTask    bool
	failUpdateTask    bool
	failUpdateStatus  bool
	failDeleteTask    bool
	failComment       bool
	failActivity      bool

	// statusHook intercepta UpdateStatus antes de aplicar; permite simular
	// interleavings de escrituras concurrentes. Un error devuelto se propaga.
	statusHook func(id int64, status string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:    make(map[string][]string),
		tasks:      make(map[string][]*entity.Task),
		comments:   make(map[int64][]*entity.Comment),
		nextTaskID: 1000,
	}
}

var _ repository.Store = (*fakeStore)(nil)

func (f *fakeStore) Users() repository.UserRepository        { return &fakeUsers{f} }
func (f *fakeStore) Projects() repository.ProjectRepository  { return &fakeProjects{f} }
func (f *fakeStore) Members() repository.MemberRepository    { return &fakeMembers{f} }
func (f *fakeStore) Tasks() repository.TaskRepository        { return &fakeTasks{f} }
func (f *fakeStore) Comments() repository.CommentRepository  { return &fakeComments{f} }
func (f *fakeStore) Activity() repository.ActivityRepository { return &fakeActivity{f} }
func (f *fakeStore) Messages() repository.MessageRepository  { return &fakeMessages{f} }

type fakeProjects struct{ f *fakeStore }

func (r *fakeProjects) Create(p *entity.Project) (*entity.Project, error) {
	if r.f.failCreateProject {
		return nil, domain.ErrBackendUnavailable
	}
	r.f.projects = append([]*entity.Project{p}, r.f.projects...)
	return p, nil
}

func (r *fakeProjects) GetByID(id string) (*entity.Project, error) {
	for _, p := range r.f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjects) List() ([]*entity.Project, error) {
	return append([]*entity.Project(nil), r.f.projects...), nil
}

func (r *fakeProjects) Update(p *entity.Project) error {
	for i, existing := range r.f.projects {
		if existing.ID == p.ID {
			r.f.projects[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProjects) Delete(id string) error {
	kept := r.f.projects[:0]
	for _, p := range r.f.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.f.projects = kept
	return nil
}

type fakeMembers struct{ f *fakeStore }

func (r *fakeMembers) ListByProject(projectID string) ([]string, error) {
	return r.f.members[projectID], nil
}

func (r *fakeMembers) ProjectIDs(username string) ([]string, error) {
	var ids []string
	for projectID, usernames := range r.f.members {
		for _, u := range usernames {
			if u == username {
				ids = append(ids, projectID)
			}
		}
	}
	return ids, nil
}

func (r *fakeMembers) Add(m entity.ProjectMember) error {
	r.f.members[m.ProjectID] = append(r.f.members[m.ProjectID], m.Username)
	return nil
}

func (r *fakeMembers) Remove(projectID, username string) error {
	kept := r.f.members[projectID][:0]
	for _, u := range r.f.members[projectID] {
		if u != username {
			kept = append(kept, u)
		}
	}
	r.f.members[projectID] = kept
	return nil
}

type fakeTasks struct{ f *fakeStore }

func (r *fakeTasks) ListByProject(projectID string) ([]*entity.Task, error) {
	return append([]*entity.Task(nil), r.f.tasks[projectID]...), nil
}

func (r *fakeTasks) Create(t *entity.Task) (*entity.Task, error) {
	if r.f.failCreateTask {
		return nil, domain.ErrBackendUnavailable
	}
	persisted := t.Clone()
	r.f.nextTaskID++
	persisted.ID = r.f.nextTaskID
	r.f.tasks[t.ProjectID] = append(r.f.tasks[t.ProjectID], persisted)
	return persisted, nil
}

func (r *fakeTasks) Update(t *entity.Task) error {
	if r.f.failUpdateTask {
		return domain.ErrBackendUnavailable
	}
	for i, existing := range r.f.tasks[t.ProjectID] {
		if existing.ID == t.ID {
			r.f.tasks[t.ProjectID][i] = t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTasks) GetByID(id int64) (*entity.Task, error) {
	for _, tasks := range r.f.tasks {
		for _, t := range tasks {
			if t.ID == id {
				return t, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeTasks) UpdateStatus(id int64, status string) error {
	if r.f.statusHook != nil {
		if err := r.f.statusHook(id, status); err != nil {
			return err
		}
	}
	if r.f.failUpdateStatus {
		return domain.ErrBackendUnavailable
	}
	for _, tasks := range r.f.tasks {
		for _, t := range tasks {
			if t.ID == id {
				t.Status = status
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTasks) Delete(id int64) error {
	if r.f.failDeleteTask {
		return domain.ErrBackendUnavailable
	}
	for projectID, tasks := range r.f.tasks {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		r.f.tasks[projectID] = kept
	}
	return nil
}

func (r *fakeTasks) ListAssigned(username string) ([]*entity.Task, error) {
	var list []*entity.Task
	for _, tasks := range r.f.tasks {
		for _, t := range tasks {
			if t.Assigned(username) {
				list = append(list, t)
			}
		}
	}
	return list, nil
}

type fakeComments struct{ f *fakeStore }

func (r *fakeComments) ListByTask(taskID int64) ([]*entity.Comment, error) {
	return r.f.comments[taskID], nil
}

func (r *fakeComments) Create(c *entity.Comment) (*entity.Comment, error) {
	if r.f.failComment {
		return nil, domain.ErrBackendUnavailable
	}
	c.ID = int64(len(r.f.comments[c.TaskID]) + 1)
	r.f.comments[c.TaskID] = append(r.f.comments[c.TaskID], c)
	return c, nil
}

type fakeActivity struct{ f *fakeStore }

func (r *fakeActivity) Append(e *entity.ActivityEntry) error {
	if r.f.failActivity {
		return domain.ErrBackendUnavailable
	}
	r.f.activity = append(r.f.activity, e)
	return nil
}

func (r *fakeActivity) ListByTask(taskID int64) ([]*entity.ActivityEntry, error) {
	var list []*entity.ActivityEntry
	for i := len(r.f.activity) - 1; i >= 0; i-- {
		if e := r.f.activity[i]; e.TaskID != nil && *e.TaskID == taskID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *fakeActivity) ListByProject(projectID string) ([]*entity.ActivityEntry, error) {
	var list []*entity.ActivityEntry
	for i := len(r.f.activity) - 1; i >= 0; i-- {
		if r.f.activity[i].ProjectID == projectID {
			list = append(list, r.f.activity[i])
		}
	}
	return list, nil
}

type fakeMessages struct{ f *fakeStore }

func (r *fakeMessages) Create(m *entity.Message) (*entity.Message, error) {
	m.ID = int64(len(r.f.messages) + 1)
	r.f.messages = append([]*entity.Message{m}, r.f.messages...)
	return m, nil
}

func (r *fakeMessages) ListForUser(username string) ([]*entity.Message, error) {
	var list []*entity.Message
	for _, m := range r.f.messages {
		if m.Sender == username || m.Receiver == username {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMessages) MarkRead(id int64) error {
	for _, m := range r.f.messages {
		if m.ID == id {
			m.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUsers struct{ f *fakeStore }

func (r *fakeUsers) Create(u *entity.User) error {
	r.f.users = append(r.f.users, u)
	return nil
}

func (r *fakeUsers) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) GetByCredentials(username, password string) (*entity.User, error) {
	for _, u := range r.f.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) List() ([]*entity.User, error) {
	return append([]*entity.User(nil), r.f.users...), nil
}
