// Package recognizer implements the ordered recognition chain: each pass is
// a port.Recognizer strategy, tried in order, first success wins.
package recognizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"scanstation/internal/domain"
	"scanstation/internal/port"
)

const defaultPassTimeout = 20 * time.Second

// Chain runs recognizer passes in strict order. A pass returning
// domain.ErrNoMatch hands off to the next pass; the first structured outcome
// short-circuits the rest. When every pass fails or declines, the chain
// reports domain.ErrRecognitionUnavailable.
type Chain struct {
	recognizers []port.Recognizer
	passTimeout time.Duration
}

// NewChain creates a Chain with a bounded per-pass timeout. A zero timeout
// falls back to the default.
func NewChain(passTimeout time.Duration, recognizers ...port.Recognizer) *Chain {
	if passTimeout <= 0 {
		passTimeout = defaultPassTimeout
	}
	return &Chain{recognizers: recognizers, passTimeout: passTimeout}
}

// Name implements port.Recognizer.
func (c *Chain) Name() string { return "chain" }

// Recognize implements port.Recognizer over the ordered pass list.
func (c *Chain) Recognize(ctx context.Context, doc domain.CapturedDocument) (*domain.RecognitionOutcome, error) {
	var lastErr error

	for _, r := range c.recognizers {
		passCtx, cancel := context.WithTimeout(ctx, c.passTimeout)
		out, err := r.Recognize(passCtx, doc)
		cancel()

		if err == nil {
			log.Printf("recognizer.Chain: %s pass matched (kind=%s)", r.Name(), out.Kind)
			return out, nil
		}
		if errors.Is(err, domain.ErrNoMatch) {
			log.Printf("recognizer.Chain: %s pass declined, trying next", r.Name())
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Printf("recognizer.Chain: %s pass failed: %v", r.Name(), err)
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionUnavailable, lastErr)
	}
	return nil, domain.ErrRecognitionUnavailable
}
