// internal/service/player/player.go
package player

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/player"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/password"
	"github.com/swayamn72/Aegis2.0/internal/pkg/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the persistence contract for players. Implemented by
// postgres.PlayerRepository.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*player.Player, error)
	FindByUsername(ctx context.Context, username string) (*player.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (*player.Player, error)
	Create(ctx context.Context, p *player.Player) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo   Repository
	hasher *password.Hasher
	logger *zap.Logger
}

func NewService(repo Repository, hasher *password.Hasher, logger *zap.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate returns the player iff the email exists and the password
// matches; (nil, nil) otherwise. The caller decides how to report no-match.
func (s *Service) Authenticate(ctx context.Context, email, plainPassword string) (*player.Player, error) {
	p, err := s.repo.FindByEmail(ctx, email)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(plainPassword, p.Password) {
		return nil, nil
	}
	return p, nil
}

// Create registers a new player. Email and username must be unique among
// players; collisions return Validation errors with user-facing messages.
func (s *Service) Create(ctx context.Context, username, email, plainPassword string) (*player.Player, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Username(username); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, xerrors.Validation("Email already exists")
	}
	if existing, err := s.repo.FindByUsername(ctx, username); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, xerrors.Validation("Username already exists")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	p := &player.Player{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		zap.String("player_id", p.ID.String()),
		zap.String("username", username))
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*player.Player, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdatePassword hashes and stores a new password for the player.
func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, plainPassword string) error {
	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return err
	}
	updated, err := s.repo.UpdatePassword(ctx, id, hash)
	if err != nil {
		return err
	}
	if !updated {
		return xerrors.ErrNotFound
	}
	return nil
}

// VerifyEmail flips the verified flag. Idempotent.
func (s *Service) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	updated, err := s.repo.SetVerified(ctx, id)
	if err != nil {
		return err
	}
	if !updated {
		return xerrors.ErrNotFound
	}
	return nil
}
