// internal/service/admin/admin.go
package admin

import (
	"context"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/admin"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxLoginAttempts is the consecutive-failure threshold before an admin
// account is locked for an hour. This is per-account bookkeeping, separate
// from the per-IP rate limiter.
const maxLoginAttempts = 5

// Repository is the persistence contract for admins. Implemented by
// postgres.AdminRepository.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*admin.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error)
	Create(ctx context.Context, a *admin.Admin) error
	IncrementLoginAttempts(ctx context.Context, id uuid.UUID, maxAttempts int) error
	ResetLoginAttempts(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error)
}

type Service struct {
	repo   Repository
	hasher *password.Hasher
	logger *zap.Logger
}

func NewService(repo Repository, hasher *password.Hasher, logger *zap.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate returns the admin iff the email exists, the account is
// active and unlocked, and the password matches; (nil, nil) otherwise.
// Wrong passwords advance the consecutive-failure counter and may lock the
// account; a correct password clears it and stamps last_login.
func (s *Service) Authenticate(ctx context.Context, email, plainPassword string) (*admin.Admin, error) {
	a, err := s.repo.FindByEmail(ctx, email)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !a.IsActive || a.Locked(now) {
		return nil, nil
	}

	if !s.hasher.Verify(plainPassword, a.Password) {
		if err := s.repo.IncrementLoginAttempts(ctx, a.ID, maxLoginAttempts); err != nil {
			s.logger.Warn("failed to record admin login failure",
				zap.String("admin_id", a.ID.String()), zap.Error(err))
		}
		return nil, nil
	}

	if err := s.repo.ResetLoginAttempts(ctx, a.ID); err != nil {
		s.logger.Warn("failed to reset admin login attempts",
			zap.String("admin_id", a.ID.String()), zap.Error(err))
	}
	return a, nil
}

// Create provisions a new admin account with the given role.
func (s *Service) Create(ctx context.Context, username, email, plainPassword, role string) (*admin.Admin, error) {
	if existing, err := s.repo.FindByEmail(ctx, email); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, xerrors.Validation("Email already exists")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	a := &admin.Admin{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("admin created",
		zap.String("admin_id", a.ID.String()),
		zap.String("role", role))
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return s.repo.FindByEmail(ctx, email)
}

// HasPermission checks the admin's permissions map. Unknown admins deny
// rather than error.
func (s *Service) HasPermission(ctx context.Context, id uuid.UUID, permission string) (bool, error) {
	a, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.HasPermission(permission), nil
}

// UpdatePassword hashes and stores a new password for the admin.
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
