// internal/service/auth/register.go
package auth

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"

	"go.uber.org/zap"
)

// Register creates a new player or organization account. The IP budget is
// spent before any other work, so even doomed registrations count. Admins
// are provisioned out of band, never through this endpoint.
func (o *Orchestrator) Register(ctx context.Context, req auth.RegisterRequest, client ClientInfo) (*auth.AuthResponse, error) {
	if client.IP != "" {
		if err := o.limiter.CheckAndIncrement(ctx, client.IP, ratelimit.IdentifierIP, "register", o.policies.Register); err != nil {
			return nil, err
		}
	}

	switch req.UserType {
	case auth.UserTypePlayer:
		return o.registerPlayer(ctx, req, client)
	case auth.UserTypeOrganization:
		return o.registerOrganization(ctx, req, client)
	default:
		return nil, xerrors.Validation("Invalid user type")
	}
}

func (o *Orchestrator) registerPlayer(ctx context.Context, req auth.RegisterRequest, client ClientInfo) (*auth.AuthResponse, error) {
	if req.Username == "" {
		return nil, xerrors.Validation("Username required for player registration")
	}

	p, err := o.players.Create(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	resp, err := o.issueSession(ctx, playerView(p), "register", client)
	if err != nil {
		return nil, err
	}

	o.sendVerification(p.ID.String(), auth.UserTypePlayer, p.Email, p.Username)
	return resp, nil
}

func (o *Orchestrator) registerOrganization(ctx context.Context, req auth.RegisterRequest, client ClientInfo) (*auth.AuthResponse, error) {
	if req.OrgName == "" {
		return nil, xerrors.Validation("Organization name required")
	}
	if req.OwnerName == "" {
		return nil, xerrors.Validation("Owner name required")
	}
	if req.Country == "" {
		return nil, xerrors.Validation("Country required")
	}
	if req.Description == "" {
		return nil, xerrors.Validation("Description required")
	}

	org, err := o.orgs.Create(ctx, req.OrgName, req.OwnerName, req.Email, req.Password, req.Country, req.Description)
	if err != nil {
		return nil, err
	}

	resp, err := o.issueSession(ctx, orgView(org), "register", client)
	if err != nil {
		return nil, err
	}

	o.sendVerification(org.ID.String(), auth.UserTypeOrganization, org.Email, org.OwnerName)
	return resp, nil
}

// sendVerification mints a 24-hour verify-email token and hands it to the
// mailer. Best-effort: registration already succeeded by the time this
// runs, so failures are only logged.
func (o *Orchestrator) sendVerification(userID, userType, email, name string) {
	verifyToken, err := o.codec.SignTemp(userID, userType, token.PurposeVerifyEmail, 24)
	if err != nil {
		o.logger.Error("failed to mint verification token",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	o.mailer.SendVerificationEmail(email, name, verifyToken)
}
