package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/model"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user and returns the persisted record. A username
// collision surfaces the constraint violation as ErrUserAlreadyExists;
// the single INSERT guarantees no partial record is left behind.
func (r *UserRepository) Create(ctx context.Context, username string, passwordHash string, hasAccess bool, isAdmin bool) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, has_access, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, password_hash, has_access, is_admin, created_at`,
		strings.TrimSpace(username), passwordHash, hasAccess, isAdmin).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.User{}, model.ErrUserAlreadyExists
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, has_access, is_admin, created_at
		 FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, has_access, is_admin, created_at
		 FROM users WHERE username = $1`, strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// SetAccess flips the access gate and returns the updated record. An
// unknown id is reported as ErrUserNotFound rather than a silent no-op.
func (r *UserRepository) SetAccess(ctx context.Context, id int64, hasAccess bool) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET has_access = $2 WHERE id = $1
		 RETURNING id, username, password_hash, has_access, is_admin, created_at`,
		id, hasAccess).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("set user access: %w", err)
	}
	return u, nil
}

// UpsertAdmin inserts or refreshes the seeded administrator. Upsert
// semantics keep the operation idempotent across restarts.
func (r *UserRepository) UpsertAdmin(ctx context.Context, username string, passwordHash string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, has_access, is_admin)
		 VALUES ($1, $2, TRUE, TRUE)
		 ON CONFLICT (username) DO UPDATE
		 SET password_hash = EXCLUDED.password_hash, has_access = TRUE, is_admin = TRUE
		 RETURNING id, username, password_hash, has_access, is_admin, created_at`,
		strings.TrimSpace(username), passwordHash).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("upsert admin: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password_hash, has_access, is_admin, created_at
		 FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HasAccess, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
