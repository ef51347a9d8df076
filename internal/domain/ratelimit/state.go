// internal/domain/ratelimit/state.go
package ratelimit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Advance applies one attempt to the counter state and returns the next
// state. rec may be nil (first attempt for this key). allowed reports
// whether the attempt may proceed; dirty reports whether next differs from
// rec and needs persisting.
//
// States: fresh (no record) -> accumulating (within window, under limit)
// -> blocked (at limit, blocked_until set) -> accumulating again once the
// window elapses.
func Advance(rec *Record, now time.Time, p Policy) (next Record, allowed, dirty bool) {
	window := time.Duration(p.WindowMinutes) * time.Minute

	if rec == nil {
		next = Record{
			ID:          uuid.New(),
			Attempts:    1,
			WindowStart: now,
		}
		return next, true, true
	}

	next = *rec

	// An active block rejects without touching the counter.
	if rec.BlockedUntil.Valid && rec.BlockedUntil.Time.After(now) {
		return next, false, false
	}

	if rec.WindowStart.After(now.Add(-window)) {
		if rec.Attempts >= p.MaxAttempts {
			next.BlockedUntil = sql.NullTime{Time: now.Add(window), Valid: true}
			return next, false, true
		}
		next.Attempts = rec.Attempts + 1
		return next, true, true
	}

	// Window elapsed: reset.
	next.Attempts = 1
	next.WindowStart = now
	next.BlockedUntil = sql.NullTime{}
	return next, true, true
}

// Blocked reports whether the record currently rejects attempts outright.
func Blocked(rec *Record, now time.Time) bool {
	return rec != nil && rec.BlockedUntil.Valid && rec.BlockedUntil.Time.After(now)
}
