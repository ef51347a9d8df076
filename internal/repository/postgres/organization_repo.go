// internal/repository/postgres/organization_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationRepository struct {
	db *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

const organizationColumns = `id, org_name, owner_name, email, password, country, description,
       approval_status, approved_by, approval_date, rejection_reason, email_verified,
       created_at, updated_at`

func scanOrganization(row pgx.Row) (*organization.Organization, error) {
	var o organization.Organization
	err := row.Scan(
		&o.ID, &o.OrgName, &o.OwnerName, &o.Email, &o.Password, &o.Country, &o.Description,
		&o.ApprovalStatus, &o.ApprovedBy, &o.ApprovalDate, &o.RejectionReason, &o.EmailVerified,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan organization: %w", err)
	}
	return &o, nil
}

// FindByEmail retrieves an organization by email, case-insensitively.
func (r *OrganizationRepository) FindByEmail(ctx context.Context, email string) (*organization.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE LOWER(email) = LOWER($1)`
	return scanOrganization(r.db.QueryRow(ctx, query, email))
}

// FindByOrgName retrieves an organization by its unique name.
func (r *OrganizationRepository) FindByOrgName(ctx context.Context, orgName string) (*organization.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE org_name = $1`
	return scanOrganization(r.db.QueryRow(ctx, query, orgName))
}

// FindByID retrieves an organization by id.
func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return scanOrganization(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new organization row.
func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) error {
	query := `
		INSERT INTO organizations (id, org_name, owner_name, email, password, country,
		                           description, approval_status, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		o.ID, o.OrgName, o.OwnerName, o.Email, o.Password, o.Country,
		o.Description, o.ApprovalStatus, o.EmailVerified,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// UpdatePassword replaces the organization's password hash.
func (r *OrganizationRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE organizations SET password = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return false, fmt.Errorf("failed to update organization password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetVerified marks the organization's email as verified.
func (r *OrganizationRepository) SetVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE organizations SET email_verified = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to verify organization: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateApproval records an admin's approve/reject decision.
func (r *OrganizationRepository) UpdateApproval(ctx context.Context, id, adminID uuid.UUID, status, reason string) (bool, error) {
	query := `
		UPDATE organizations
		SET approval_status = $2,
		    approved_by = $3,
		    approval_date = now(),
		    rejection_reason = NULLIF($4, ''),
		    updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, status, adminID, reason)
	if err != nil {
		return false, fmt.Errorf("failed to update approval status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
