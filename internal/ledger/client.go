// Package ledger implements the HTTP client for the per-category persistence
// destinations. Commits run through a circuit breaker so a failing ledger
// backend degrades to fast retryable failures instead of piling up timeouts.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"scanstation/internal/config"
	"scanstation/internal/domain"
)

// Client posts confirmed records to ledger destinations. It implements
// port.LedgerClient.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[any]
}

// New creates a ledger client from config.
func New(cfg *config.LedgerConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	failureRatio := cfg.BreakerFailureRatio
	if failureRatio <= 0 {
		failureRatio = 0.6
	}
	openTimeout := time.Duration(cfg.BreakerOpenTimeoutSecs) * time.Second
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	halfOpenMax := cfg.BreakerHalfOpenMaxCalls
	if halfOpenMax == 0 {
		halfOpenMax = 2
	}

	settings := gobreaker.Settings{
		Name:        "ledger",
		MaxRequests: halfOpenMax,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && ratio >= failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("ledger.Client: breaker %s -> %s", from, to)
		},
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Commit implements port.LedgerClient.
func (c *Client) Commit(ctx context.Context, destination string, payload domain.CommitPayload) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.post(ctx, destination, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("ledger destination %s unavailable: %w", destination, err)
		}
		return err
	}
	return nil
}

// commitResponse models the destination acknowledgment; only the ok flag is
// consumed.
type commitResponse struct {
	OK bool `json:"ok"`
}

func (c *Client) post(ctx context.Context, destination string, payload domain.CommitPayload) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling commit payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/ledger/%s", c.baseURL, destination)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling ledger destination %s: %w", destination, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ledger destination %s error (status %d): %s", destination, resp.StatusCode, string(respBody))
	}

	var ack commitResponse
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return fmt.Errorf("decoding ledger response: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("ledger destination %s rejected the record", destination)
	}
	return nil
}
