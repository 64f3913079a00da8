package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"scanstation/internal/domain"
	"scanstation/internal/port"
)

type scanAuditRepo struct {
	db *sqlx.DB
}

// NewScanAuditRepo creates a new PostgreSQL-backed ScanAuditRepository.
func NewScanAuditRepo(db *sqlx.DB) port.ScanAuditRepository {
	return &scanAuditRepo{db: db}
}

func (r *scanAuditRepo) Create(ctx context.Context, entry *domain.ScanAuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scan_audit_log (id, session_id, action, doc_type, category, destination, unverified, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.SessionID, entry.Action, entry.DocType, entry.Category,
		entry.Destination, entry.Unverified, entry.Payload)
	if err != nil {
		return fmt.Errorf("scanAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *scanAuditRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM scan_audit_log WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("scanAuditRepo.ListBySession count: %w", err)
	}

	var entries []domain.ScanAuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM scan_audit_log
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		sessionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanAuditRepo.ListBySession: %w", err)
	}
	return entries, total, nil
}
