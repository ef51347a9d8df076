// internal/service/auth/password_test.go
package auth_test

import (
	"context"
	"testing"

	"github.com/swayamn72/Aegis2.0/internal/service/auth"

	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("same message for existing and unknown emails", func(t *testing.T) {
		env := newTestEnv(t)
		env.players.add("real@example.com", "real", "Abcdef1!")

		msgReal, err := env.orch.ForgotPassword(ctx, "real@example.com")
		require.NoError(t, err)
		msgFake, err := env.orch.ForgotPassword(ctx, "nonexistent@example.com")
		require.NoError(t, err)

		assert.Equal(t, msgReal, msgFake)
		assert.Equal(t, auth.ResetRequestedMessage, msgReal)

		// Only the real account got mail.
		require.Len(t, env.mailer.sent, 1)
		assert.Equal(t, "reset", env.mailer.sent[0].Kind)
		assert.Equal(t, "real@example.com", env.mailer.sent[0].To)
	})

	t.Run("reset token carries the reset purpose", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("real@example.com", "real", "Abcdef1!")

		_, err := env.orch.ForgotPassword(ctx, "real@example.com")
		require.NoError(t, err)

		require.Len(t, env.mailer.sent, 1)
		claims, err := env.codec.VerifyTemp(env.mailer.sent[0].Token)
		require.NoError(t, err)
		assert.Equal(t, token.PurposeResetPassword, claims.TokenType)
		assert.Equal(t, p.ID.String(), claims.Subject)
	})

	t.Run("first matching principal type wins", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("shared@example.com", "shared", "Abcdef1!")
		env.orgs.add("shared@example.com", "Shared Org", "Abcdef1!")

		_, err := env.orch.ForgotPassword(ctx, "shared@example.com")
		require.NoError(t, err)

		require.Len(t, env.mailer.sent, 1)
		claims, err := env.codec.VerifyTemp(env.mailer.sent[0].Token)
		require.NoError(t, err)
		assert.Equal(t, "player", claims.UserType)
		assert.Equal(t, p.ID.String(), claims.Subject)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token updates the password", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("alice@example.com", "alice", "Oldpass1!")

		resetToken, err := env.codec.SignTemp(p.ID.String(), "player", token.PurposeResetPassword, 1)
		require.NoError(t, err)

		require.NoError(t, env.orch.ResetPassword(ctx, resetToken, "Newpass1!"))
		assert.Equal(t, "Newpass1!", env.players.passwords["alice@example.com"])
	})

	t.Run("verify token presented for reset fails with purpose error", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("alice@example.com", "alice", "Oldpass1!")

		wrongPurpose, err := env.codec.SignTemp(p.ID.String(), "player", token.PurposeVerifyEmail, 24)
		require.NoError(t, err)

		err = env.orch.ResetPassword(ctx, wrongPurpose, "Newpass1!")
		require.Error(t, err)
		msg, ok := xerrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid token type", msg)
	})

	t.Run("expired token fails", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("alice@example.com", "alice", "Oldpass1!")

		expired, err := env.codec.SignTemp(p.ID.String(), "player", token.PurposeResetPassword, -1)
		require.NoError(t, err)

		err = env.orch.ResetPassword(ctx, expired, "Newpass1!")
		require.Error(t, err)
		msg, ok := xerrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid or expired token", msg)
	})

	t.Run("token for a deleted principal fails", func(t *testing.T) {
		env := newTestEnv(t)

		ghost, err := env.codec.SignTemp("0e3a59f4-58a0-4e79-9496-30f7a3b4f5ac", "player", token.PurposeResetPassword, 1)
		require.NoError(t, err)

		err = env.orch.ResetPassword(ctx, ghost, "Newpass1!")
		require.Error(t, err)
		msg, ok := xerrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid or expired reset token", msg)
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("player verification flips the flag", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("alice@example.com", "alice", "Abcdef1!")
		require.False(t, p.Verified)

		verifyToken, err := env.codec.SignTemp(p.ID.String(), "player", token.PurposeVerifyEmail, 24)
		require.NoError(t, err)

		require.NoError(t, env.orch.VerifyEmail(ctx, verifyToken))
		assert.True(t, p.Verified)
	})

	t.Run("organization verification flips the flag", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.orgs.add("org@example.com", "Org", "Abcdef1!")

		verifyToken, err := env.codec.SignTemp(o.ID.String(), "organization", token.PurposeVerifyEmail, 24)
		require.NoError(t, err)

		require.NoError(t, env.orch.VerifyEmail(ctx, verifyToken))
		assert.True(t, o.EmailVerified)
	})

	t.Run("admins verify as a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.admins.add("mod@example.com", "mod", "Abcdef1!", "moderator", true)

		verifyToken, err := env.codec.SignTemp(a.ID.String(), "admin", token.PurposeVerifyEmail, 24)
		require.NoError(t, err)

		assert.NoError(t, env.orch.VerifyEmail(ctx, verifyToken))
	})

	t.Run("reset token presented for verification fails with purpose error", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.players.add("alice@example.com", "alice", "Abcdef1!")

		resetToken, err := env.codec.SignTemp(p.ID.String(), "player", token.PurposeResetPassword, 1)
		require.NoError(t, err)

		err = env.orch.VerifyEmail(ctx, resetToken)
		require.Error(t, err)
		msg, ok := xerrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid token type", msg)
	})
}
