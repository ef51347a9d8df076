// internal/pkg/token/codec.go
package token

import (
	"fmt"
	"time"

	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Codec signs and verifies the two token kinds with a symmetric secret
// shared by the deployment. Verification is pure: no store lookup happens
// here, revocability comes from the session id embedded in access claims.
type Codec struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

func NewCodec(secret []byte, issuer string, accessTTL time.Duration) *Codec {
	return &Codec{
		secret:    secret,
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// SignAccess mints an access token for the given principal and session.
// Returns the signed token and its jti.
func (c *Codec) SignAccess(userID, userType, role, sessionID string) (string, string, error) {
	now := time.Now()
	jti := ulid.Make().String()

	claims := &AccessClaims{
		UserType:  userType,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, jti, nil
}

// VerifyAccess checks signature and expiry. No leeway is granted: a token
// one second past exp is rejected.
func (c *Codec) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	return claims, nil
}

// SignTemp mints a purpose-scoped temporary token with an expiry measured
// in hours.
func (c *Codec) SignTemp(userID, userType, purpose string, ttlHours int) (string, error) {
	now := time.Now()

	claims := &TempClaims{
		UserType:  userType,
		TokenType: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign temp token: %w", err)
	}
	return signed, nil
}

// VerifyTemp checks signature and expiry of a temporary token. Purpose
// matching is the caller's job since it depends on the operation invoked.
func (c *Codec) VerifyTemp(tokenStr string) (*TempClaims, error) {
	claims := &TempClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, xerrors.Validation("Invalid or expired token")
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	return c.secret, nil
}
