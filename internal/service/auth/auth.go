// internal/service/auth/auth.go
package auth

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/admin"
	"github.com/swayamn72/Aegis2.0/internal/domain/audit"
	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	"github.com/swayamn72/Aegis2.0/internal/domain/organization"
	"github.com/swayamn72/Aegis2.0/internal/domain/player"
	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"
	"github.com/swayamn72/Aegis2.0/internal/domain/session"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlayerService is the slice of the player service the orchestrator needs.
type PlayerService interface {
	Authenticate(ctx context.Context, email, password string) (*player.Player, error)
	Create(ctx context.Context, username, email, password string) (*player.Player, error)
	GetByID(ctx context.Context, id uuid.UUID) (*player.Player, error)
	GetByEmail(ctx context.Context, email string) (*player.Player, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
}

// AdminService is the slice of the admin service the orchestrator needs.
type AdminService interface {
	Authenticate(ctx context.Context, email, password string) (*admin.Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error)
	GetByEmail(ctx context.Context, email string) (*admin.Admin, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
}

// OrganizationService is the slice of the organization service the
// orchestrator needs.
type OrganizationService interface {
	Authenticate(ctx context.Context, email, password string) (*organization.Organization, error)
	Create(ctx context.Context, orgName, ownerName, email, password, country, description string) (*organization.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
	GetByEmail(ctx context.Context, email string) (*organization.Organization, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
}

// SessionManager is the session store surface used for issue, validate,
// rotate and revoke.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID, userType, ip, userAgent string) (*session.Session, error)
	Validate(ctx context.Context, sessionID uuid.UUID) (*session.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*session.Session, error)
	Revoke(ctx context.Context, sessionID uuid.UUID, reason string) error
	RevokeAll(ctx context.Context, userID uuid.UUID, reason string) error
}

// RateLimiter is the sliding-window limiter surface.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, identifier, identifierType, action string, p ratelimit.Policy) error
	IsBlocked(ctx context.Context, identifier, identifierType, action string) (bool, error)
}

// Auditor records security events best-effort.
type Auditor interface {
	LogAction(ctx context.Context, action string, success bool, failureReason string, ev audit.Event)
	LogAuthAttempt(ctx context.Context, action string, success bool, failureReason string, ev audit.Event)
}

// Mailer sends auth notification emails fire-and-forget.
type Mailer interface {
	SendVerificationEmail(to, name, token string)
	SendPasswordResetEmail(to, name, token string)
}

// Policies carries the per-action rate-limit budgets.
type Policies struct {
	Login    ratelimit.Policy
	Register ratelimit.Policy
}

// ClientInfo is the request-scoped caller context threaded through auth
// operations for sessions and audit entries.
type ClientInfo struct {
	IP        string
	UserAgent string
	RequestID string
}

// Orchestrator ties credentials, sessions, tokens, rate limits and audit
// together. One instance serves all three principal types.
type Orchestrator struct {
	players  PlayerService
	admins   AdminService
	orgs     OrganizationService
	sessions SessionManager
	limiter  RateLimiter
	codec    *token.Codec
	audits   Auditor
	mailer   Mailer
	policies Policies
	logger   *zap.Logger
}

func NewOrchestrator(
	players PlayerService,
	admins AdminService,
	orgs OrganizationService,
	sessions SessionManager,
	limiter RateLimiter,
	codec *token.Codec,
	audits Auditor,
	mailer Mailer,
	policies Policies,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		players:  players,
		admins:   admins,
		orgs:     orgs,
		sessions: sessions,
		limiter:  limiter,
		codec:    codec,
		audits:   audits,
		mailer:   mailer,
		policies: policies,
		logger:   logger,
	}
}

// Login authenticates one of the three principal types by email and
// password. Blocked IPs are rejected before any credential work and the
// failed-attempt counter only advances when no principal matches, so a
// blocked limiter never leaks whether the email exists.
func (o *Orchestrator) Login(ctx context.Context, req auth.LoginRequest, client ClientInfo) (*auth.AuthResponse, error) {
	if client.IP != "" {
		blocked, err := o.limiter.IsBlocked(ctx, client.IP, ratelimit.IdentifierIP, "login")
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, xerrors.ErrRateLimited
		}
	}

	view, err := o.resolveCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if view == nil {
		if client.IP != "" {
			// The increment may itself trip the limit; either way the
			// caller sees the same generic Unauthorized.
			if err := o.limiter.CheckAndIncrement(ctx, client.IP, ratelimit.IdentifierIP, "login", o.policies.Login); err != nil && !xerrors.Is(err, xerrors.ErrRateLimited) {
				o.logger.Warn("failed to record login attempt", zap.Error(err))
			}
		}
		o.audits.LogAuthAttempt(ctx, "login", false, "Invalid credentials", audit.Event{
			IPAddress: client.IP,
			UserAgent: client.UserAgent,
			RequestID: client.RequestID,
		})
		return nil, xerrors.ErrUnauthorized
	}

	return o.issueSession(ctx, view, "login", client)
}

// issueSession creates a session for the resolved principal, mints the
// access token bound to it and writes the success audit entry.
func (o *Orchestrator) issueSession(ctx context.Context, view *principalView, action string, client ClientInfo) (*auth.AuthResponse, error) {
	sess, err := o.sessions.Create(ctx, view.Info.ID, view.Info.UserType, client.IP, client.UserAgent)
	if err != nil {
		return nil, err
	}

	accessToken, _, err := o.codec.SignAccess(view.Info.ID.String(), view.Info.UserType, view.Role, sess.ID.String())
	if err != nil {
		return nil, err
	}

	userID := view.Info.ID
	o.audits.LogAuthAttempt(ctx, action, true, "", audit.Event{
		UserID:     &userID,
		UserType:   view.Info.UserType,
		SessionID:  &sess.ID,
		ResourceID: userID.String(),
		IPAddress:  client.IP,
		UserAgent:  client.UserAgent,
		RequestID:  client.RequestID,
	})

	return &auth.AuthResponse{
		Message:      authMessage(view.Info.UserType, action),
		Token:        accessToken,
		RefreshToken: sess.RefreshToken,
		SessionID:    sess.ID.String(),
		User:         view.Info,
	}, nil
}

func authMessage(userType, action string) string {
	if action == "register" {
		switch userType {
		case auth.UserTypePlayer:
			return "Player registration successful. Please verify your email."
		case auth.UserTypeOrganization:
			return "Organization registration successful. Pending admin approval."
		}
	}
	switch userType {
	case auth.UserTypePlayer:
		return "Player login successful."
	case auth.UserTypeAdmin:
		return "Admin login successful."
	case auth.UserTypeOrganization:
		return "Organization login successful."
	}
	return "Authentication successful."
}

// RefreshToken rotates the session behind refreshToken and mints a fresh
// access token. The owning principal is re-fetched so role and status
// changes since the original login are reflected in the new token.
func (o *Orchestrator) RefreshToken(ctx context.Context, refreshToken string, client ClientInfo) (*auth.TokenResponse, error) {
	sess, err := o.sessions.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, xerrors.ErrUnauthorized
	}

	view, err := o.resolveByID(ctx, sess.UserID, sess.UserType)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, xerrors.ErrUnauthorized
	}

	accessToken, _, err := o.codec.SignAccess(sess.UserID.String(), sess.UserType, view.Role, sess.ID.String())
	if err != nil {
		return nil, err
	}

	userID := sess.UserID
	o.audits.LogAction(ctx, "refresh_token", true, "", audit.Event{
		UserID:     &userID,
		UserType:   sess.UserType,
		SessionID:  &sess.ID,
		Resource:   "session",
		ResourceID: sess.ID.String(),
		IPAddress:  client.IP,
		UserAgent:  client.UserAgent,
		RequestID:  client.RequestID,
	})

	return &auth.TokenResponse{
		Token:        accessToken,
		RefreshToken: sess.RefreshToken,
		SessionID:    sess.ID.String(),
	}, nil
}

// Logout revokes the caller's current session. Revocation is idempotent,
// so logging out an already-revoked session still succeeds.
func (o *Orchestrator) Logout(ctx context.Context, claims *token.AccessClaims) error {
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return xerrors.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return xerrors.ErrUnauthorized
	}

	if err := o.sessions.Revoke(ctx, sessionID, "logout"); err != nil {
		return err
	}

	o.audits.LogAction(ctx, "logout", true, "", audit.Event{
		UserID:     &userID,
		UserType:   claims.UserType,
		SessionID:  &sessionID,
		Resource:   "session",
		ResourceID: sessionID.String(),
	})
	return nil
}

// RevokeAllSessions revokes every session owned by the caller, across all
// devices.
func (o *Orchestrator) RevokeAllSessions(ctx context.Context, claims *token.AccessClaims) error {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return xerrors.ErrUnauthorized
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return xerrors.ErrUnauthorized
	}

	if err := o.sessions.RevokeAll(ctx, userID, "revoke_all"); err != nil {
		return err
	}

	o.audits.LogAction(ctx, "revoke_all_sessions", true, "", audit.Event{
		UserID:     &userID,
		UserType:   claims.UserType,
		SessionID:  &sessionID,
		Resource:   "session",
		ResourceID: userID.String(),
	})
	return nil
}

// ValidateToken checks an access token against the live session it
// references. A revoked or expired session invalidates the token even
// before the token's own expiry.
func (o *Orchestrator) ValidateToken(ctx context.Context, tokenStr string) (*token.AccessClaims, error) {
	claims, err := o.codec.VerifyAccess(tokenStr)
	if err != nil {
		return nil, err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	sess, err := o.sessions.Validate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID.String() != claims.Subject {
		return nil, xerrors.ErrUnauthorized
	}
	return claims, nil
}
