package port

import (
	"context"

	"scanstation/internal/domain"
)

// LedgerClient submits confirmed records to a persistence destination.
// Destination is the endpoint identifier resolved by the category router.
type LedgerClient interface {
	Commit(ctx context.Context, destination string, payload domain.CommitPayload) error
}
