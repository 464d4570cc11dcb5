package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (username, name, password, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		user.Username, user.Name, user.Password, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername obtiene un usuario por username (ya normalizado a mayúsculas).
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `
		SELECT username, name, password, role, created_at
		FROM users WHERE username = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, username).Scan(
		&u.Username, &u.Name, &u.Password, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// GetByCredentials busca por match exacto username+password. Cero filas => nil.
func (r *UserRepo) GetByCredentials(username, password string) (*entity.User, error) {
	query := `
		SELECT username, name, password, role, created_at
		FROM users WHERE username = $1 AND password = $2`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, username, password).Scan(
		&u.Username, &u.Name, &u.Password, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by credentials: %w", err)
	}
	return &u, nil
}

// List devuelve todos los usuarios.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `
		SELECT username, name, password, role, created_at
		FROM users ORDER BY username`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Username, &u.Name, &u.Password, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
