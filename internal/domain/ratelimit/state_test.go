// internal/domain/ratelimit/state_test.go
package ratelimit_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policy = ratelimit.Policy{MaxAttempts: 5, WindowMinutes: 60}

func TestAdvanceFresh(t *testing.T) {
	now := time.Now()

	next, allowed, dirty := ratelimit.Advance(nil, now, policy)
	assert.True(t, allowed)
	assert.True(t, dirty)
	assert.Equal(t, 1, next.Attempts)
	assert.Equal(t, now, next.WindowStart)
	assert.False(t, next.BlockedUntil.Valid)
}

func TestAdvanceBudget(t *testing.T) {
	now := time.Now()

	// Five attempts pass, the sixth trips the block, and only then does
	// Blocked become true.
	var rec *ratelimit.Record
	for i := 1; i <= 5; i++ {
		next, allowed, dirty := ratelimit.Advance(rec, now, policy)
		require.True(t, allowed, "attempt %d should be allowed", i)
		require.True(t, dirty)
		assert.Equal(t, i, next.Attempts)
		assert.False(t, ratelimit.Blocked(&next, now))
		rec = &next
	}

	next, allowed, dirty := ratelimit.Advance(rec, now, policy)
	assert.False(t, allowed)
	assert.True(t, dirty)
	assert.Equal(t, 5, next.Attempts)
	require.True(t, next.BlockedUntil.Valid)
	assert.Equal(t, now.Add(60*time.Minute), next.BlockedUntil.Time)
	assert.True(t, ratelimit.Blocked(&next, now))
}

func TestAdvanceActiveBlock(t *testing.T) {
	now := time.Now()
	rec := &ratelimit.Record{
		Attempts:     5,
		WindowStart:  now.Add(-10 * time.Minute),
		BlockedUntil: sql.NullTime{Time: now.Add(30 * time.Minute), Valid: true},
	}

	next, allowed, dirty := ratelimit.Advance(rec, now, policy)
	assert.False(t, allowed)
	assert.False(t, dirty, "an active block must not mutate the record")
	assert.Equal(t, rec.Attempts, next.Attempts)
}

func TestAdvanceWindowReset(t *testing.T) {
	now := time.Now()

	t.Run("stale window resets the counter", func(t *testing.T) {
		rec := &ratelimit.Record{
			Attempts:    5,
			WindowStart: now.Add(-2 * time.Hour),
		}

		next, allowed, dirty := ratelimit.Advance(rec, now, policy)
		assert.True(t, allowed)
		assert.True(t, dirty)
		assert.Equal(t, 1, next.Attempts)
		assert.Equal(t, now, next.WindowStart)
		assert.False(t, next.BlockedUntil.Valid)
	})

	t.Run("expired block with stale window resets", func(t *testing.T) {
		rec := &ratelimit.Record{
			Attempts:     5,
			WindowStart:  now.Add(-3 * time.Hour),
			BlockedUntil: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
		}

		next, allowed, dirty := ratelimit.Advance(rec, now, policy)
		assert.True(t, allowed)
		assert.True(t, dirty)
		assert.Equal(t, 1, next.Attempts)
		assert.False(t, next.BlockedUntil.Valid)
		assert.False(t, ratelimit.Blocked(&next, now))
	})
}

func TestBlocked(t *testing.T) {
	now := time.Now()

	assert.False(t, ratelimit.Blocked(nil, now))
	assert.False(t, ratelimit.Blocked(&ratelimit.Record{Attempts: 5}, now))
	assert.True(t, ratelimit.Blocked(&ratelimit.Record{
		BlockedUntil: sql.NullTime{Time: now.Add(time.Minute), Valid: true},
	}, now))
	assert.False(t, ratelimit.Blocked(&ratelimit.Record{
		BlockedUntil: sql.NullTime{Time: now.Add(-time.Minute), Valid: true},
	}, now))
}
