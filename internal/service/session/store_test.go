// internal/service/session/store_test.go
package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/swayamn72/Aegis2.0/internal/domain/session"
	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	sessionsvc "github.com/swayamn72/Aegis2.0/internal/service/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory session repository with the same conditional
// update semantics as the postgres implementation.
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (r *fakeRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) RevokeByRefreshToken(_ context.Context, refreshToken, reason string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.sessions {
		if s.RefreshToken == refreshToken && !s.Revoked && s.ExpiresAt.After(now) {
			s.Revoked = true
			cp := *s
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *fakeRepo) Revoke(_ context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Revoked = true
	}
	return nil
}

func (r *fakeRepo) RevokeAll(_ context.Context, userID uuid.UUID, reason string) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var revoked []uuid.UUID
	for _, s := range r.sessions {
		if s.UserID == userID && !s.Revoked {
			s.Revoked = true
			revoked = append(revoked, s.ID)
		}
	}
	return revoked, nil
}

func (r *fakeRepo) TouchActivity(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.LastActivity = time.Now()
	}
	return nil
}

func newStore(t *testing.T) (*sessionsvc.Store, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return sessionsvc.NewStore(repo, nil, zap.NewNop()), repo
}

func TestCreate(t *testing.T) {
	store, _ := newStore(t)
	userID := uuid.New()

	sess, err := store.Create(context.Background(), userID, "player", "10.0.0.1", "test-agent")
	require.NoError(t, err)

	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "player", sess.UserType)
	assert.NotEmpty(t, sess.SessionToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.NotEqual(t, sess.SessionToken, sess.RefreshToken)
	assert.False(t, sess.Revoked)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sess.ExpiresAt, time.Minute)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("live session validates", func(t *testing.T) {
		store, _ := newStore(t)
		sess, err := store.Create(ctx, uuid.New(), "player", "", "")
		require.NoError(t, err)

		got, err := store.Validate(ctx, sess.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, sess.ID, got.ID)
	})

	t.Run("unknown session returns nil", func(t *testing.T) {
		store, _ := newStore(t)
		got, err := store.Validate(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("revoked session returns nil", func(t *testing.T) {
		store, _ := newStore(t)
		sess, err := store.Create(ctx, uuid.New(), "player", "", "")
		require.NoError(t, err)
		require.NoError(t, store.Revoke(ctx, sess.ID, "test"))

		got, err := store.Validate(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired session returns nil", func(t *testing.T) {
		store, repo := newStore(t)
		sess, err := store.Create(ctx, uuid.New(), "player", "", "")
		require.NoError(t, err)

		repo.mu.Lock()
		repo.sessions[sess.ID].ExpiresAt = time.Now().Add(-time.Minute)
		repo.mu.Unlock()

		got, err := store.Validate(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation revokes the old session", func(t *testing.T) {
		store, _ := newStore(t)
		old, err := store.Create(ctx, uuid.New(), "organization", "10.0.0.2", "agent")
		require.NoError(t, err)

		fresh, err := store.Refresh(ctx, old.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, fresh)

		assert.NotEqual(t, old.ID, fresh.ID)
		assert.NotEqual(t, old.RefreshToken, fresh.RefreshToken)
		assert.Equal(t, old.UserID, fresh.UserID)
		assert.Equal(t, old.UserType, fresh.UserType)
		assert.Equal(t, old.IPAddress, fresh.IPAddress)

		got, err := store.Validate(ctx, old.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "old session must be revoked after rotation")
	})

	t.Run("replayed refresh token yields nil", func(t *testing.T) {
		store, _ := newStore(t)
		old, err := store.Create(ctx, uuid.New(), "player", "", "")
		require.NoError(t, err)

		first, err := store.Refresh(ctx, old.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, first)

		replay, err := store.Refresh(ctx, old.RefreshToken)
		require.NoError(t, err)
		assert.Nil(t, replay, "a consumed refresh token must not resurrect a session")
	})

	t.Run("unknown refresh token yields nil", func(t *testing.T) {
		store, _ := newStore(t)
		got, err := store.Refresh(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("concurrent refreshes produce exactly one winner", func(t *testing.T) {
		store, _ := newStore(t)
		old, err := store.Create(ctx, uuid.New(), "player", "", "")
		require.NoError(t, err)

		const callers = 8
		results := make(chan *domain.Session, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess, err := store.Refresh(ctx, old.RefreshToken)
				require.NoError(t, err)
				results <- sess
			}()
		}
		wg.Wait()
		close(results)

		winners := 0
		for sess := range results {
			if sess != nil {
				winners++
			}
		}
		assert.Equal(t, 1, winners)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoke is idempotent", func(t *testing.T) {
		store, _ := newStore(t)
		sess, err := store.Create(ctx, uuid.New(), "admin", "", "")
		require.NoError(t, err)

		require.NoError(t, store.Revoke(ctx, sess.ID, "logout"))
		require.NoError(t, store.Revoke(ctx, sess.ID, "logout"))
	})

	t.Run("revoke all covers every session of the principal", func(t *testing.T) {
		store, _ := newStore(t)
		userID := uuid.New()
		other := uuid.New()

		s1, err := store.Create(ctx, userID, "player", "", "")
		require.NoError(t, err)
		s2, err := store.Create(ctx, userID, "player", "", "")
		require.NoError(t, err)
		s3, err := store.Create(ctx, other, "player", "", "")
		require.NoError(t, err)

		require.NoError(t, store.RevokeAll(ctx, userID, "password change"))

		for _, id := range []uuid.UUID{s1.ID, s2.ID} {
			got, err := store.Validate(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, got)
		}

		got, err := store.Validate(ctx, s3.ID)
		require.NoError(t, err)
		assert.NotNil(t, got, "other principals keep their sessions")
	})
}
