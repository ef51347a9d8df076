// internal/service/session/store.go
package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/session"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL is the fixed session horizon.
const DefaultTTL = 30 * 24 * time.Hour

// Repository is the persistence contract for sessions. Implemented by
// postgres.SessionRepository.
type Repository interface {
	Create(ctx context.Context, s *session.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
	RevokeByRefreshToken(ctx context.Context, refreshToken, reason string) (*session.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, reason string) error
	RevokeAll(ctx context.Context, userID uuid.UUID, reason string) ([]uuid.UUID, error)
	TouchActivity(ctx context.Context, id uuid.UUID) error
}

// Store owns the session lifecycle. PostgreSQL is the source of truth; the
// optional Redis cache only short-circuits validate reads and is invalidated
// on every revocation.
type Store struct {
	repo   Repository
	cache  *Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(repo Repository, cache *Cache, logger *zap.Logger) *Store {
	return &Store{
		repo:   repo,
		cache:  cache,
		ttl:    DefaultTTL,
		logger: logger,
	}
}

// Create issues a new session for the principal with fresh opaque session
// and refresh tokens and a 30-day expiry.
func (s *Store) Create(ctx context.Context, userID uuid.UUID, userType, ip, userAgent string) (*session.Session, error) {
	now := time.Now()
	sess := &session.Session{
		ID:           uuid.New(),
		UserID:       userID,
		UserType:     userType,
		SessionToken: uuid.NewString(),
		RefreshToken: uuid.NewString(),
		IPAddress:    sql.NullString{String: ip, Valid: ip != ""},
		UserAgent:    sql.NullString{String: userAgent, Valid: userAgent != ""},
		ExpiresAt:    now.Add(s.ttl),
		Revoked:      false,
		LastActivity: now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, sess)
	return sess, nil
}

// Validate returns the session iff it exists, is not revoked and is not
// expired; otherwise nil with no error. Callers map nil to Unauthorized.
func (s *Store) Validate(ctx context.Context, sessionID uuid.UUID) (*session.Session, error) {
	if cached, ok := s.cacheGet(ctx, sessionID); ok {
		if !cached.Valid(time.Now()) {
			return nil, nil
		}
		go s.touch(sessionID)
		return cached, nil
	}

	sess, err := s.repo.FindByID(ctx, sessionID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sess.Valid(time.Now()) {
		return nil, nil
	}

	s.cacheSet(ctx, sess)
	go s.touch(sessionID)
	return sess, nil
}

// Refresh rotates the session identified by refreshToken: the old session
// is revoked and a new one created for the same principal, ip and
// user-agent. Returns nil if the token matches no live session — a replayed
// refresh token never resurrects a revoked session. The revocation is a
// conditional update, so of two concurrent calls with the same token exactly
// one receives the new session.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	old, err := s.repo.RevokeByRefreshToken(ctx, refreshToken, "refreshed")
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheDel(ctx, old.ID)

	return s.Create(ctx, old.UserID, old.UserType, old.IPAddress.String, old.UserAgent.String)
}

// Revoke marks one session revoked. Idempotent: revoking an already-revoked
// session succeeds without effect.
func (s *Store) Revoke(ctx context.Context, sessionID uuid.UUID, reason string) error {
	if err := s.repo.Revoke(ctx, sessionID, reason); err != nil {
		return err
	}
	s.cacheDel(ctx, sessionID)
	return nil
}

// RevokeAll revokes every live session owned by the principal.
func (s *Store) RevokeAll(ctx context.Context, userID uuid.UUID, reason string) error {
	ids, err := s.repo.RevokeAll(ctx, userID, reason)
	if err != nil {
		return err
	}
	s.cacheDel(ctx, ids...)
	return nil
}

func (s *Store) touch(sessionID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.TouchActivity(ctx, sessionID); err != nil {
		s.logger.Warn("failed to update session activity",
			zap.String("session_id", sessionID.String()), zap.Error(err))
	}
}

func (s *Store) cacheGet(ctx context.Context, sessionID uuid.UUID) (*session.Session, bool) {
	if s.cache == nil {
		return nil, false
	}
	sess, ok, err := s.cache.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("session cache read failed, falling back to database", zap.Error(err))
		return nil, false
	}
	return sess, ok
}

func (s *Store) cacheSet(ctx context.Context, sess *session.Session) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, sess); err != nil {
		s.logger.Warn("session cache write failed", zap.Error(err))
	}
}

func (s *Store) cacheDel(ctx context.Context, ids ...uuid.UUID) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Del(ctx, ids...); err != nil {
		s.logger.Warn("session cache invalidation failed", zap.Error(err))
	}
}
