package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scanstation/internal/domain"
)

// MockRecognizer is a mock implementation of port.Recognizer.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRecognizer) Recognize(ctx context.Context, doc domain.CapturedDocument) (*domain.RecognitionOutcome, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecognitionOutcome), args.Error(1)
}

// MockSynthesizer is a mock implementation of port.Synthesizer.
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(method domain.CaptureMethod) *domain.RecognitionOutcome {
	args := m.Called(method)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.RecognitionOutcome)
}
