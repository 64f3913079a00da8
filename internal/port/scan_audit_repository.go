package port

import (
	"context"

	"github.com/google/uuid"

	"scanstation/internal/domain"
)

// ScanAuditRepository persists pipeline events for auditability.
type ScanAuditRepository interface {
	Create(ctx context.Context, entry *domain.ScanAuditEntry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error)
}
