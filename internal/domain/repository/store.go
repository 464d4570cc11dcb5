package repository

// Store agrupa los puertos de persistencia de todas las entidades.
// Hay dos implementaciones: el adaptador remoto (PostgreSQL) y el adaptador
// local de respaldo (espejo en memoria volcado a un KV SQLite). El router de
// persistencia elige una de las dos al arrancar y los llamadores solo dependen
// de esta interfaz.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Members() MemberRepository
	Tasks() TaskRepository
	Comments() CommentRepository
	Activity() ActivityRepository
	Messages() MessageRepository
}
