package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// userColumns is the shared list of columns for user queries.
var userColumns = []string{
	"id", "name", "email", "role", "is_active", "created_at", "updated_at",
}

// UserRepository handles database operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// scanUser scans a single row into a User struct.
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// GetActiveByID retrieves a user by ID, excluding deactivated users.
// Both absent and deactivated users resolve as ErrUserNotFound.
func (r *UserRepository) GetActiveByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetActiveByID query for user %s: %w", userID, err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// ExistsByEmail reports whether any user, active or not, holds the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email existence: %w", err)
	}
	return exists, nil
}

// Create creates a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psql.
		Insert("users").
		Columns("name", "email", "role").
		Values(user.Name, user.Email, user.Role).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for user: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// List retrieves users, optionally filtered by role, optionally including
// deactivated ones.
func (r *UserRepository) List(ctx context.Context, role *domain.UserRole, activeOnly bool) ([]*domain.User, error) {
	qb := psql.Select(userColumns...).From("users").OrderBy("name ASC")
	if role != nil {
		qb = qb.Where(sq.Eq{"role": *role})
	}
	if activeOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for users: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return users, nil
}

// Update writes a user's name and role. Deactivated users cannot be updated.
func (r *UserRepository) Update(ctx context.Context, userID, name string, role domain.UserRole) (*domain.User, error) {
	query, args, err := psql.
		Update("users").
		Set("name", name).
		Set("role", role).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID, "is_active": true}).
		Suffix("RETURNING id, name, email, role, is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for user %s: %w", userID, err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// Deactivate soft-deletes a user. The row is retained so historical task
// references stay resolvable.
func (r *UserRepository) Deactivate(ctx context.Context, userID string) error {
	query, args, err := psql.
		Update("users").
		Set("is_active", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Deactivate query for user %s: %w", userID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
