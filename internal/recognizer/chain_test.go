package recognizer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scanstation/internal/domain"
	"scanstation/internal/recognizer"
	"scanstation/mocks"
)

func testDoc() domain.CapturedDocument {
	return domain.CapturedDocument{
		Data:        []byte("image bytes"),
		ContentType: "image/jpeg",
		FileName:    "receipt.jpg",
		Method:      domain.CaptureCamera,
	}
}

func TestChain_FirstPassMatchShortCircuits(t *testing.T) {
	first := new(mocks.MockRecognizer)
	second := new(mocks.MockRecognizer)

	outcome := &domain.RecognitionOutcome{Kind: domain.OutcomeFuel, Fuel: &domain.FuelFields{FuelType: "レギュラー"}}
	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(outcome, nil)

	chain := recognizer.NewChain(time.Second, first, second)
	got, err := chain.Recognize(context.Background(), testDoc())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFuel, got.Kind)
	second.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestChain_NoMatchFallsThrough(t *testing.T) {
	first := new(mocks.MockRecognizer)
	second := new(mocks.MockRecognizer)

	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(nil, domain.ErrNoMatch)

	outcome := &domain.RecognitionOutcome{Kind: domain.OutcomeGeneric, Generic: &domain.GenericFields{}}
	second.On("Name").Return("generic").Maybe()
	second.On("Recognize", mock.Anything, mock.Anything).Return(outcome, nil)

	chain := recognizer.NewChain(time.Second, first, second)
	got, err := chain.Recognize(context.Background(), testDoc())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeGeneric, got.Kind)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestChain_HardFailureStillTriesNextPass(t *testing.T) {
	first := new(mocks.MockRecognizer)
	second := new(mocks.MockRecognizer)

	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	outcome := &domain.RecognitionOutcome{Kind: domain.OutcomeGeneric, Generic: &domain.GenericFields{}}
	second.On("Name").Return("generic").Maybe()
	second.On("Recognize", mock.Anything, mock.Anything).Return(outcome, nil)

	chain := recognizer.NewChain(time.Second, first, second)
	got, err := chain.Recognize(context.Background(), testDoc())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeGeneric, got.Kind)
}

func TestChain_AllFail_ReportsUnavailable(t *testing.T) {
	first := new(mocks.MockRecognizer)
	second := new(mocks.MockRecognizer)

	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	second.On("Name").Return("generic").Maybe()
	second.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("500"))

	chain := recognizer.NewChain(time.Second, first, second)
	_, err := chain.Recognize(context.Background(), testDoc())

	assert.ErrorIs(t, err, domain.ErrRecognitionUnavailable)
}

func TestChain_AllDecline_ReportsUnavailable(t *testing.T) {
	first := new(mocks.MockRecognizer)
	second := new(mocks.MockRecognizer)

	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(nil, domain.ErrNoMatch)
	second.On("Name").Return("generic").Maybe()
	second.On("Recognize", mock.Anything, mock.Anything).Return(nil, domain.ErrNoMatch)

	chain := recognizer.NewChain(time.Second, first, second)
	_, err := chain.Recognize(context.Background(), testDoc())

	assert.ErrorIs(t, err, domain.ErrRecognitionUnavailable)
}

func TestChain_ParentContextCancellation(t *testing.T) {
	first := new(mocks.MockRecognizer)
	first.On("Name").Return("fuel").Maybe()
	first.On("Recognize", mock.Anything, mock.Anything).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := recognizer.NewChain(time.Second, first)
	_, err := chain.Recognize(ctx, testDoc())

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrRecognitionUnavailable)
}
