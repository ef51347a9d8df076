// internal/domain/player/entity.go
package player

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Player is the player credential principal plus the slice of profile data
// the auth flows surface. Email and username are unique within the players
// table only; an organization may share the same email.
type Player struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Username    string         `json:"username" db:"username"`
	InGameName  sql.NullString `json:"in_game_name" db:"in_game_name"`
	Email       string         `json:"email" db:"email"`
	Password    string         `json:"-" db:"password"`
	Verified    bool           `json:"verified" db:"verified"`
	Country     sql.NullString `json:"country" db:"country"`
	Bio         string         `json:"bio" db:"bio"`
	AegisRating int            `json:"aegis_rating" db:"aegis_rating"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
