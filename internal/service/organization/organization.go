// internal/service/organization/organization.go
package organization

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/password"
	"github.com/swayamn72/Aegis2.0/internal/pkg/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the persistence contract for organizations. Implemented by
// postgres.OrganizationRepository.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*organization.Organization, error)
	FindByOrgName(ctx context.Context, orgName string) (*organization.Organization, error)
	FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
	Create(ctx context.Context, o *organization.Organization) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateApproval(ctx context.Context, id, adminID uuid.UUID, status, reason string) (bool, error)
}

type Service struct {
	repo   Repository
	hasher *password.Hasher
	logger *zap.Logger
}

func NewService(repo Repository, hasher *password.Hasher, logger *zap.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate returns the organization iff the email exists and the
// password matches; (nil, nil) otherwise. Pending approval does not block
// login, it only gates the organization-scoped routes.
func (s *Service) Authenticate(ctx context.Context, email, plainPassword string) (*organization.Organization, error) {
	o, err := s.repo.FindByEmail(ctx, email)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(plainPassword, o.Password) {
		return nil, nil
	}
	return o, nil
}

// Create registers a new organization in pending approval state.
func (s *Service) Create(ctx context.Context, orgName, ownerName, email, plainPassword, country, description string) (*organization.Organization, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, xerrors.Validation("Email already exists")
	}
	if existing, err := s.repo.FindByOrgName(ctx, orgName); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, xerrors.Validation("Organization name already exists")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	o := &organization.Organization{
		ID:             uuid.New(),
		OrgName:        orgName,
		OwnerName:      ownerName,
		Email:          email,
		Password:       hash,
		Country:        country,
		Description:    description,
		ApprovalStatus: organization.ApprovalPending,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("organization registered",
		zap.String("organization_id", o.ID.String()),
		zap.String("org_name", orgName))
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*organization.Organization, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdatePassword hashes and stores a new password for the organization.
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

// VerifyEmail flips the email_verified flag. Idempotent.
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

// Approve marks the organization approved by the given admin.
func (s *Service) Approve(ctx context.Context, id, adminID uuid.UUID) error {
	updated, err := s.repo.UpdateApproval(ctx, id, adminID, organization.ApprovalApproved, "")
	if err != nil {
		return err
	}
	if !updated {
		return xerrors.ErrNotFound
	}
	s.logger.Info("organization approved",
		zap.String("organization_id", id.String()),
		zap.String("admin_id", adminID.String()))
	return nil
}

// Reject marks the organization rejected with a reason.
func (s *Service) Reject(ctx context.Context, id, adminID uuid.UUID, reason string) error {
	updated, err := s.repo.UpdateApproval(ctx, id, adminID, organization.ApprovalRejected, reason)
	if err != nil {
		return err
	}
	if !updated {
		return xerrors.ErrNotFound
	}
	s.logger.Info("organization rejected",
		zap.String("organization_id", id.String()),
		zap.String("admin_id", adminID.String()))
	return nil
}
