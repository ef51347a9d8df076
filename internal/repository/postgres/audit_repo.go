// internal/repository/postgres/audit_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/audit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, e *audit.Entry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, user_id, user_type, session_id, action, resource,
		                        resource_id, ip_address, user_agent, success,
		                        failure_reason, request_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`
	err = r.db.QueryRow(ctx, query,
		e.ID, e.UserID, e.UserType, e.SessionID, e.Action, e.Resource,
		e.ResourceID, e.IPAddress, e.UserAgent, e.Success,
		e.FailureReason, e.RequestID, details,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListByUser returns the most recent entries for one principal.
func (r *AuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*audit.Entry, error) {
	query := `
		SELECT id, user_id, user_type, session_id, action, resource, resource_id,
		       ip_address, user_agent, success, failure_reason, request_id, details, created_at
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()
	return collectAuditEntries(rows)
}

// ListFailuresSince returns failed entries newer than the cutoff, newest
// first. Used for the security-events view.
func (r *AuditRepository) ListFailuresSince(ctx context.Context, since time.Time) ([]*audit.Entry, error) {
	query := `
		SELECT id, user_id, user_type, session_id, action, resource, resource_id,
		       ip_address, user_agent, success, failure_reason, request_id, details, created_at
		FROM audit_logs
		WHERE created_at >= $1 AND success = false
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit failures: %w", err)
	}
	defer rows.Close()
	return collectAuditEntries(rows)
}

func collectAuditEntries(rows pgx.Rows) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		var details []byte
		err := rows.Scan(
			&e.ID, &e.UserID, &e.UserType, &e.SessionID, &e.Action, &e.Resource, &e.ResourceID,
			&e.IPAddress, &e.UserAgent, &e.Success, &e.FailureReason, &e.RequestID, &details, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("failed to decode audit details: %w", err)
			}
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
