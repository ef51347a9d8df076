// internal/service/auth/resolver.go
package auth

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/admin"
	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	"github.com/swayamn72/Aegis2.0/internal/domain/player"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
)

// principalView is the resolved, sanitized slice of a principal that the
// orchestrator carries through session and token issuance.
type principalView struct {
	Info auth.UserInfo
	Role string
	Name string
}

func playerView(p *player.Player) *principalView {
	return &principalView{
		Info: auth.UserInfo{
			ID:       p.ID,
			Email:    p.Email,
			Username: p.Username,
			UserType: auth.UserTypePlayer,
			Verified: p.Verified,
		},
		Name: p.Username,
	}
}

func adminView(a *admin.Admin) *principalView {
	status := "active"
	if !a.IsActive {
		status = "inactive"
	}
	return &principalView{
		Info: auth.UserInfo{
			ID:             a.ID,
			Email:          a.Email,
			Username:       a.Username,
			UserType:       auth.UserTypeAdmin,
			Verified:       true,
			ApprovalStatus: status,
		},
		Role: a.Role,
		Name: a.Username,
	}
}

func orgView(org *organization.Organization) *principalView {
	return &principalView{
		Info: auth.UserInfo{
			ID:             org.ID,
			Email:          org.Email,
			OrgName:        org.OrgName,
			UserType:       auth.UserTypeOrganization,
			Verified:       org.EmailVerified,
			ApprovalStatus: org.ApprovalStatus,
		},
		Name: org.OwnerName,
	}
}

// resolveCredentials tries the principal types in fixed priority order:
// player, then admin, then organization. The first credential match wins.
// A player and an organization may share an email across collections; the
// order decides which one a login resolves to. Returns (nil, nil) when no
// principal matches.
func (o *Orchestrator) resolveCredentials(ctx context.Context, email, password string) (*principalView, error) {
	p, err := o.players.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return playerView(p), nil
	}

	a, err := o.admins.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if a != nil {
		return adminView(a), nil
	}

	org, err := o.orgs.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if org != nil {
		return orgView(org), nil
	}

	return nil, nil
}

// resolveByID fetches the principal owning a session by its stored type
// tag. Returns (nil, nil) when the principal no longer exists.
func (o *Orchestrator) resolveByID(ctx context.Context, id uuid.UUID, userType string) (*principalView, error) {
	switch userType {
	case auth.UserTypePlayer:
		p, err := o.players.GetByID(ctx, id)
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return playerView(p), nil
	case auth.UserTypeAdmin:
		a, err := o.admins.GetByID(ctx, id)
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return adminView(a), nil
	case auth.UserTypeOrganization:
		org, err := o.orgs.GetByID(ctx, id)
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return orgView(org), nil
	}
	return nil, nil
}

// resolveByEmail looks the email up across the principal types in the same
// priority order, without a password check. Used by forgot-password; only
// the first match receives a reset token.
func (o *Orchestrator) resolveByEmail(ctx context.Context, email string) (*principalView, error) {
	p, err := o.players.GetByEmail(ctx, email)
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if p != nil {
		return playerView(p), nil
	}

	a, err := o.admins.GetByEmail(ctx, email)
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if a != nil {
		return adminView(a), nil
	}

	org, err := o.orgs.GetByEmail(ctx, email)
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if org != nil {
		return orgView(org), nil
	}

	return nil, nil
}
