package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanstation/internal/domain"
)

// MockScanAuditRepo is a mock implementation of port.ScanAuditRepository.
type MockScanAuditRepo struct {
	mock.Mock
}

func (m *MockScanAuditRepo) Create(ctx context.Context, entry *domain.ScanAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockScanAuditRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error) {
	args := m.Called(ctx, sessionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ScanAuditEntry), args.Int(1), args.Error(2)
}
