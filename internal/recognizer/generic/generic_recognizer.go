// Package generic implements the generic document recognition pass.
package generic

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

// Recognizer submits captured documents to the generic document recognition
// service along with the declared capture method.
type Recognizer struct {
	endpoint string
	client   *http.Client
}

// New creates a generic document recognizer from config.
func New(cfg *config.RecognizerConfig) *Recognizer {
	return NewWithEndpoint(cfg.GenericURL, cfg.PassTimeout())
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
func (r *Recognizer) Name() string { return "generic" }

// apiResponse models the generic recognition service response.
type apiResponse struct {
	Success    bool         `json:"success"`
	Confidence float64      `json:"confidence"`
	Data       *genericData `json:"data"`
}

type genericData struct {
	VendorName   string        `json:"vendorName"`
	CompanyName  string        `json:"companyName"`
	Items        []genericItem `json:"items"`
	TotalAmount  domain.Amount `json:"totalAmount"`
	SlipTypeHint string        `json:"slipTypeHint"`
	Description  string        `json:"description"`
}

type genericItem struct {
	Name   string        `json:"name"`
	Amount domain.Amount `json:"amount"`
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
		return nil, fmt.Errorf("calling generic recognizer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generic recognizer error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding generic recognizer response: %w", err)
	}
	if !parsed.Success || parsed.Data == nil {
		return nil, fmt.Errorf("generic recognizer reported failure")
	}

	fields := &domain.GenericFields{
		VendorName:   parsed.Data.VendorName,
		CompanyName:  parsed.Data.CompanyName,
		TotalAmount:  parsed.Data.TotalAmount.Float(),
		SlipTypeHint: parsed.Data.SlipTypeHint,
		Description:  parsed.Data.Description,
	}
	for _, it := range parsed.Data.Items {
		fields.Items = append(fields.Items, domain.GenericItem{
			Name:   it.Name,
			Amount: it.Amount.Float(),
		})
	}

	return &domain.RecognitionOutcome{
		Kind:       domain.OutcomeGeneric,
		Confidence: parsed.Confidence,
		Generic:    fields,
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
	if err := w.WriteField("method", string(doc.Method)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
