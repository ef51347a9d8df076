// internal/service/auth/password.go
package auth

import (
	"context"

	"github.com/swayamn72/Aegis2.0/internal/domain/audit"
	"github.com/swayamn72/Aegis2.0/internal/domain/auth"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"

	"github.com/google/uuid"
)

// ResetRequestedMessage is returned from ForgotPassword whether or not the
// email matched anything. Anti-enumeration: the response never changes.
const ResetRequestedMessage = "If an account with that email exists, a password reset link has been sent."

// ForgotPassword mints a one-hour reset token for the first principal
// matching the email (player, then admin, then organization) and mails it.
// The caller always receives the same generic message.
func (o *Orchestrator) ForgotPassword(ctx context.Context, email string) (string, error) {
	view, err := o.resolveByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if view != nil {
		resetToken, err := o.codec.SignTemp(view.Info.ID.String(), view.Info.UserType, token.PurposeResetPassword, 1)
		if err != nil {
			return "", err
		}
		o.mailer.SendPasswordResetEmail(view.Info.Email, view.Name, resetToken)

		userID := view.Info.ID
		o.audits.LogAction(ctx, "forgot_password", true, "", audit.Event{
			UserID:   &userID,
			UserType: view.Info.UserType,
			Resource: "auth",
		})
	}

	return ResetRequestedMessage, nil
}

// ResetPassword verifies a reset_password temp token and stores the new
// password for the owning principal.
func (o *Orchestrator) ResetPassword(ctx context.Context, tempToken, newPassword string) error {
	claims, err := o.codec.VerifyTemp(tempToken)
	if err != nil {
		return err
	}
	if claims.TokenType != token.PurposeResetPassword {
		return xerrors.Validation("Invalid token type")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return xerrors.Validation("Invalid or expired reset token")
	}

	switch claims.UserType {
	case auth.UserTypePlayer:
		err = o.players.UpdatePassword(ctx, userID, newPassword)
	case auth.UserTypeAdmin:
		err = o.admins.UpdatePassword(ctx, userID, newPassword)
	case auth.UserTypeOrganization:
		err = o.orgs.UpdatePassword(ctx, userID, newPassword)
	default:
		return xerrors.Validation("Invalid or expired reset token")
	}
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.Validation("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	o.audits.LogAction(ctx, "reset_password", true, "", audit.Event{
		UserID:   &userID,
		UserType: claims.UserType,
		Resource: "auth",
	})
	return nil
}

// VerifyEmail verifies a verify_email temp token and flips the principal's
// verified flag. Admins are verified by definition, so the admin branch is
// a successful no-op.
func (o *Orchestrator) VerifyEmail(ctx context.Context, tempToken string) error {
	claims, err := o.codec.VerifyTemp(tempToken)
	if err != nil {
		return err
	}
	if claims.TokenType != token.PurposeVerifyEmail {
		return xerrors.Validation("Invalid token type")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return xerrors.Validation("Invalid verification token")
	}

	switch claims.UserType {
	case auth.UserTypePlayer:
		err = o.players.VerifyEmail(ctx, userID)
	case auth.UserTypeAdmin:
		err = nil
	case auth.UserTypeOrganization:
		err = o.orgs.VerifyEmail(ctx, userID)
	default:
		return xerrors.Validation("Invalid verification token")
	}
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.Validation("Invalid verification token")
	}
	if err != nil {
		return err
	}

	o.audits.LogAction(ctx, "verify_email", true, "", audit.Event{
		UserID:   &userID,
		UserType: claims.UserType,
		Resource: "auth",
	})
	return nil
}

// ResendVerification mints a fresh 24-hour verify-email token for the
// authenticated caller and mails it.
func (o *Orchestrator) ResendVerification(ctx context.Context, claims *token.AccessClaims) error {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return xerrors.ErrUnauthorized
	}

	view, err := o.resolveByID(ctx, userID, claims.UserType)
	if err != nil {
		return err
	}
	if view == nil {
		return xerrors.ErrNotFound
	}

	o.sendVerification(view.Info.ID.String(), view.Info.UserType, view.Info.Email, view.Name)
	return nil
}
