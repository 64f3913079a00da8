package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scanstation/internal/domain"
)

// MockLedgerClient is a mock implementation of port.LedgerClient.
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) Commit(ctx context.Context, destination string, payload domain.CommitPayload) error {
	args := m.Called(ctx, destination, payload)
	return args.Error(0)
}
