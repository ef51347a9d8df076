// internal/repository/postgres/admin_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/swayamn72/Aegis2.0/internal/domain/admin"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, username, email, password, role, permissions, is_active,
       last_login, login_attempts, lock_until, created_at, updated_at`

func scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	var permissions []byte
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.Password, &a.Role, &permissions, &a.IsActive,
		&a.LastLogin, &a.LoginAttempts, &a.LockUntil, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &a.Permissions); err != nil {
			return nil, fmt.Errorf("failed to decode admin permissions: %w", err)
		}
	}
	return &a, nil
}

// FindByEmail retrieves an admin by email, case-insensitively.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = LOWER($1)`
	return scanAdmin(r.db.QueryRow(ctx, query, email))
}

// FindByID retrieves an admin by id.
func (r *AdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return scanAdmin(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new admin row.
func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	permissions, err := json.Marshal(a.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode admin permissions: %w", err)
	}

	query := `
		INSERT INTO admins (id, username, email, password, role, permissions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		a.ID, a.Username, a.Email, a.Password, a.Role, permissions, a.IsActive,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// IncrementLoginAttempts bumps the consecutive-failure counter and sets
// lock_until one hour out once the counter reaches maxAttempts. Runs as a
// single conditional update so concurrent failures don't lose increments.
func (r *AdminRepository) IncrementLoginAttempts(ctx context.Context, id uuid.UUID, maxAttempts int) error {
	query := `
		UPDATE admins
		SET login_attempts = login_attempts + 1,
		    lock_until = CASE WHEN login_attempts + 1 >= $2
		                      THEN now() + interval '1 hour'
		                      ELSE lock_until END,
		    updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id, maxAttempts); err != nil {
		return fmt.Errorf("failed to increment login attempts: %w", err)
	}
	return nil
}

// ResetLoginAttempts clears the failure counter and lock after a successful
// login, and records the login time.
func (r *AdminRepository) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE admins
		SET login_attempts = 0, lock_until = NULL, last_login = now(), updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}

// UpdatePassword replaces the admin's password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE admins SET password = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return false, fmt.Errorf("failed to update admin password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
