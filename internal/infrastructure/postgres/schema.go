package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username    TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	password    TEXT NOT NULL,
	role        TEXT NOT NULL DEFAULT 'user',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	repo_url    TEXT NOT NULL DEFAULT '',
	created_by  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id          BIGSERIAL PRIMARY KEY,
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	priority    TEXT NOT NULL DEFAULT 'media',
	tags        TEXT[] NOT NULL DEFAULT '{}',
	assigned_to TEXT[] NOT NULL DEFAULT '{}',
	due_date    TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);

CREATE TABLE IF NOT EXISTS task_comments (
	id          BIGSERIAL PRIMARY KEY,
	task_id     BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	username    TEXT NOT NULL,
	content     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS activity_log (
	id          BIGSERIAL PRIMARY KEY,
	project_id  TEXT NOT NULL,
	task_id     BIGINT,
	username    TEXT NOT NULL,
	action      TEXT NOT NULL,
	details     JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_activity_task ON activity_log(task_id);

CREATE TABLE IF NOT EXISTS messages (
	id          BIGSERIAL PRIMARY KEY,
	sender      TEXT NOT NULL,
	receiver    TEXT NOT NULL,
	content     TEXT NOT NULL,
	read        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS project_members (
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	username    TEXT NOT NULL,
	PRIMARY KEY (project_id, username)
);
`

// EnsureSchema crea las tablas si no existen. Idempotente; se ejecuta una vez
// al arrancar cuando el backend remoto está disponible.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
