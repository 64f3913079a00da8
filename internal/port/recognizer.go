package port

import (
	"context"

	"scanstation/internal/domain"
)

// Recognizer is one strategy in the ordered recognition chain. A pass that
// completed but decided the document is not its kind returns
// domain.ErrNoMatch so the chain can move on; any other error counts toward
// recognition being unavailable.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, doc domain.CapturedDocument) (*domain.RecognitionOutcome, error)
}

// Synthesizer fabricates a representative outcome when recognition is
// unavailable.
type Synthesizer interface {
	Synthesize(method domain.CaptureMethod) *domain.RecognitionOutcome
}
