// internal/repository/postgres/player_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/swayamn72/Aegis2.0/internal/domain/player"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, username, in_game_name, email, password, verified,
       country, bio, aegis_rating, created_at, updated_at`

func scanPlayer(row pgx.Row) (*player.Player, error) {
	var p player.Player
	err := row.Scan(
		&p.ID, &p.Username, &p.InGameName, &p.Email, &p.Password, &p.Verified,
		&p.Country, &p.Bio, &p.AegisRating, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}

// FindByEmail retrieves a player by email, case-insensitively.
func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (*player.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE LOWER(email) = LOWER($1)`
	return scanPlayer(r.db.QueryRow(ctx, query, email))
}

// FindByUsername retrieves a player by username.
func (r *PlayerRepository) FindByUsername(ctx context.Context, username string) (*player.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE username = $1`
	return scanPlayer(r.db.QueryRow(ctx, query, username))
}

// FindByID retrieves a player by id.
func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new player row.
func (r *PlayerRepository) Create(ctx context.Context, p *player.Player) error {
	query := `
		INSERT INTO players (id, username, email, password, verified, bio, aegis_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.ID, p.Username, p.Email, p.Password, p.Verified, p.Bio, p.AegisRating,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// UpdatePassword replaces the player's password hash.
func (r *PlayerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET password = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return false, fmt.Errorf("failed to update player password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetVerified marks the player's email as verified.
func (r *PlayerRepository) SetVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET verified = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to verify player: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
