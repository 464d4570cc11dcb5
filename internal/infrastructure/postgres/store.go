package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implementación remota de repository.Store sobre PostgreSQL.
// Una vez elegido por el router, sus errores se propagan tal cual al llamador:
// no hay fallback al adaptador local a mitad de sesión.
type Store struct {
	users    *UserRepo
	projects *ProjectRepo
	members  *MemberRepo
	tasks    *TaskRepo
	comments *CommentRepo
	activity *ActivityRepo
	messages *MessageRepo
}

// NewStore construye el adaptador remoto con el pool dado.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		users:    NewUserRepository(pool),
		projects: NewProjectRepository(pool),
		members:  NewMemberRepository(pool),
		tasks:    NewTaskRepository(pool),
		comments: NewCommentRepository(pool),
		activity: NewActivityRepository(pool),
		messages: NewMessageRepository(pool),
	}
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Projects() repository.ProjectRepository   { return s.projects }
func (s *Store) Members() repository.MemberRepository     { return s.members }
func (s *Store) Tasks() repository.TaskRepository         { return s.tasks }
func (s *Store) Comments() repository.CommentRepository   { return s.comments }
func (s *Store) Activity() repository.ActivityRepository  { return s.activity }
func (s *Store) Messages() repository.MessageRepository   { return s.messages }
