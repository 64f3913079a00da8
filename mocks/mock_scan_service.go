package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanstation/internal/domain"
	"scanstation/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) StartScan(ctx context.Context, input service.CaptureInput) (*service.SessionSnapshot, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionSnapshot), args.Error(1)
}

func (m *MockScanService) Session() *service.SessionSnapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.SessionSnapshot)
}

func (m *MockScanService) UpdateStaged(ctx context.Context, input service.UpdateStagedInput) (*domain.EditableRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EditableRecord), args.Error(1)
}

func (m *MockScanService) Commit(ctx context.Context) (*service.CommitResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommitResult), args.Error(1)
}

func (m *MockScanService) Cancel(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScanService) Recent() []domain.RecentScanEntry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.RecentScanEntry)
}

func (m *MockScanService) AuditTrail(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error) {
	args := m.Called(ctx, sessionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ScanAuditEntry), args.Int(1), args.Error(2)
}
