// Package fuel implements the fuel-receipt recognition pass.
package fuel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"scanstation/internal/config"
	"scanstation/internal/domain"
)

// Recognizer submits captured documents to the fuel-receipt recognition
// service. A successful response counts as a positive fuel match only when
// the service sets the isFuelReceipt flag or returns a non-empty fuel type;
// some responses omit the flag but still carry fuel fields, hence the OR.
type Recognizer struct {
	endpoint string
	client   *http.Client
}

// New creates a fuel-receipt recognizer from config.
func New(cfg *config.RecognizerConfig) *Recognizer {
	return NewWithEndpoint(cfg.FuelURL, cfg.PassTimeout())
}

// NewWithEndpoint creates a recognizer pointing at a custom endpoint (for testing).
func NewWithEndpoint(endpoint string, timeout time.Duration) *Recognizer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Recognizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name implements port.Recognizer.
func (r *Recognizer) Name() string { return "fuel" }

// apiResponse models the fuel recognition service response.
type apiResponse struct {
	Success       bool      `json:"success"`
	IsFuelReceipt bool      `json:"isFuelReceipt"`
	Confidence    float64   `json:"confidence"`
	Data          *fuelData `json:"data"`
}

type fuelData struct {
	FuelType      string        `json:"fuelType"`
	Quantity      domain.Amount `json:"quantity"`
	UnitPrice     domain.Amount `json:"unitPrice"`
	TotalAmount   domain.Amount `json:"totalAmount"`
	VehicleNumber string        `json:"vehicleNumber"`
	Date          string        `json:"date"`
	StoreName     string        `json:"storeName"`
}

// Recognize implements port.Recognizer.
func (r *Recognizer) Recognize(ctx context.Context, doc domain.CapturedDocument) (*domain.RecognitionOutcome, error) {
	body, contentType, err := buildMultipart(doc)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling fuel recognizer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fuel recognizer error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding fuel recognizer response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("fuel recognizer reported failure")
	}

	fuelType := ""
	if parsed.Data != nil {
		fuelType = parsed.Data.FuelType
	}
	if !parsed.IsFuelReceipt && fuelType == "" {
		return nil, domain.ErrNoMatch
	}

	fields := &domain.FuelFields{FuelType: fuelType}
	if parsed.Data != nil {
		fields.QuantityLiters = parsed.Data.Quantity.Float()
		fields.UnitPrice = parsed.Data.UnitPrice.Float()
		fields.TotalAmount = parsed.Data.TotalAmount.Float()
		fields.VehicleNumber = parsed.Data.VehicleNumber
		fields.Date = parsed.Data.Date
		fields.StoreName = parsed.Data.StoreName
	}

	return &domain.RecognitionOutcome{
		Kind:       domain.OutcomeFuel,
		Confidence: parsed.Confidence,
		Fuel:       fields,
	}, nil
}

func buildMultipart(doc domain.CapturedDocument) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	name := doc.FileName
	if name == "" {
		name = "capture.jpg"
	}
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
