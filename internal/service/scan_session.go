package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanstation/internal/config"
	"scanstation/internal/domain"
	"scanstation/internal/normalize"
	"scanstation/internal/port"
	"scanstation/internal/route"
)

// CaptureInput is the DTO for starting a scan session.
type CaptureInput struct {
	Data        []byte
	ContentType string
	FileName    string
	Method      domain.CaptureMethod
}

// UpdateStagedInput carries user corrections to the staged record. Nil
// fields are left untouched. Setting DocType re-derives the default
// category; setting Category in the same call overrides that default.
type UpdateStagedInput struct {
	Vendor      *string
	ItemName    *string
	Price       *float64
	Unit        *string
	DeliveryFee *float64
	ProjectRef  *string
	DocType     *domain.DocumentType
	Category    *domain.Category
}

// SessionSnapshot is a point-in-time view of the scan session.
type SessionSnapshot struct {
	SessionID uuid.UUID              `json:"session_id"`
	State     domain.SessionState    `json:"state"`
	Record    *domain.EditableRecord `json:"record,omitempty"`
}

// CommitResult reports a successful commit.
type CommitResult struct {
	Destination string                 `json:"destination"`
	Entry       domain.RecentScanEntry `json:"entry"`
}

// ScanService orchestrates one capture event at a time: recognize, stage,
// correct, commit, record.
type ScanService interface {
	StartScan(ctx context.Context, input CaptureInput) (*SessionSnapshot, error)
	Session() *SessionSnapshot
	UpdateStaged(ctx context.Context, input UpdateStagedInput) (*domain.EditableRecord, error)
	Commit(ctx context.Context) (*CommitResult, error)
	Cancel(ctx context.Context) error
	Recent() []domain.RecentScanEntry
	AuditTrail(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error)
}

type scanService struct {
	mu         sync.Mutex
	state      domain.SessionState
	sessionID  uuid.UUID
	staged     *domain.EditableRecord
	archiveKey string

	recognizer port.Recognizer
	synth      port.Synthesizer
	ledger     port.LedgerClient
	storage    port.ObjectStorage
	auditRepo  port.ScanAuditRepository
	history    *RecentHistory
	s3cfg      *config.S3Config
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	recognizer port.Recognizer,
	synth port.Synthesizer,
	ledger port.LedgerClient,
	storage port.ObjectStorage,
	auditRepo port.ScanAuditRepository,
	history *RecentHistory,
	s3cfg *config.S3Config,
) ScanService {
	return &scanService{
		state:      domain.SessionIdle,
		recognizer: recognizer,
		synth:      synth,
		ledger:     ledger,
		storage:    storage,
		auditRepo:  auditRepo,
		history:    history,
		s3cfg:      s3cfg,
	}
}

func (s *scanService) StartScan(ctx context.Context, input CaptureInput) (*SessionSnapshot, error) {
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if !domain.ValidCaptureMethods[input.Method] {
		return nil, domain.ErrUnsupportedCaptureMethod
	}
	if max := s.s3cfg.MaxFileSizeMB * 1024 * 1024; max > 0 && int64(len(input.Data)) > max {
		return nil, domain.ErrDocumentTooLarge
	}

	s.mu.Lock()
	if s.state != domain.SessionIdle {
		s.mu.Unlock()
		return nil, domain.ErrSessionBusy
	}
	s.state = domain.SessionCapturing
	s.sessionID = uuid.New()
	sessionID := s.sessionID
	s.mu.Unlock()

	doc := domain.CapturedDocument{
		Data:        input.Data,
		ContentType: input.ContentType,
		FileName:    input.FileName,
		Method:      input.Method,
	}

	s.archiveCapture(ctx, sessionID, doc)

	s.setState(domain.SessionRecognizing)
	log.Printf("scanService.StartScan: session %s recognizing (%d bytes, method=%s)",
		sessionID, len(doc.Data), doc.Method)

	outcome, err := s.recognizer.Recognize(ctx, doc)
	if err != nil {
		if ctx.Err() != nil {
			s.reset()
			return nil, ctx.Err()
		}
		// Recognition being down is masked from the user: stage a
		// synthesized record and let the audit trail carry the flag.
		log.Printf("scanService.StartScan: session %s recognition failed, synthesizing: %v", sessionID, err)
		outcome = s.synth.Synthesize(input.Method)
	}

	record := normalize.Record(outcome)

	s.mu.Lock()
	s.staged = &record
	s.state = domain.SessionStaged
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.audit(ctx, sessionID, domain.AuditStaged, record, "")
	return snap, nil
}

func (s *scanService) Session() *SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *scanService) UpdateStaged(ctx context.Context, input UpdateStagedInput) (*domain.EditableRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case domain.SessionStaged, domain.SessionFailed:
	case domain.SessionIdle:
		return nil, domain.ErrNoStagedRecord
	default:
		return nil, domain.ErrSessionBusy
	}

	rec := s.staged
	if input.Vendor != nil {
		rec.Vendor = *input.Vendor
	}
	if input.ItemName != nil {
		rec.ItemName = *input.ItemName
	}
	if input.Price != nil {
		rec.Price = clampAmount(*input.Price)
	}
	if input.Unit != nil {
		rec.Unit = *input.Unit
	}
	if input.DeliveryFee != nil {
		rec.DeliveryFee = clampAmount(*input.DeliveryFee)
	}
	if input.ProjectRef != nil {
		rec.ProjectRef = *input.ProjectRef
	}
	if input.DocType != nil {
		if !domain.ValidDocumentTypes[*input.DocType] {
			return nil, domain.ErrUnknownDocumentType
		}
		rec.DocType = *input.DocType
		rec.Category = route.CategoryFor(rec.DocType)
	}
	if input.Category != nil {
		if !domain.ValidCategories[*input.Category] {
			return nil, domain.ErrUnknownCategory
		}
		rec.Category = *input.Category
	}

	// Edits after a failed commit put the record back up for retry.
	s.state = domain.SessionStaged

	out := *rec
	return &out, nil
}

func (s *scanService) Commit(ctx context.Context) (*CommitResult, error) {
	s.mu.Lock()
	switch s.state {
	case domain.SessionStaged, domain.SessionFailed:
	case domain.SessionIdle:
		s.mu.Unlock()
		return nil, domain.ErrNoStagedRecord
	default:
		s.mu.Unlock()
		return nil, domain.ErrSessionBusy
	}
	record := *s.staged
	sessionID := s.sessionID
	s.state = domain.SessionCommitting
	s.mu.Unlock()

	destination := route.Route(&record)
	payload := buildCommitPayload(record, time.Now())

	log.Printf("scanService.Commit: session %s committing %s record to %s",
		sessionID, record.DocType, destination)

	if err := s.ledger.Commit(ctx, destination, payload); err != nil {
		log.Printf("scanService.Commit: session %s commit failed: %v", sessionID, err)
		s.setState(domain.SessionFailed)
		s.audit(ctx, sessionID, domain.AuditCommitFailed, record, destination)
		return nil, fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}

	entry := domain.RecentScanEntry{
		ID:             uuid.New(),
		DisplayType:    domain.DocumentTypeLabels[record.DocType],
		Icon:           domain.DocumentTypeIcons[record.DocType],
		Name:           record.Vendor + " - " + record.ItemName,
		TimestampLabel: time.Now().Format("1/2 15:04"),
	}
	s.history.Append(entry)
	s.audit(ctx, sessionID, domain.AuditCommitted, record, destination)

	s.mu.Lock()
	s.staged = nil
	s.archiveKey = ""
	s.state = domain.SessionIdle
	s.mu.Unlock()

	return &CommitResult{Destination: destination, Entry: entry}, nil
}

func (s *scanService) Cancel(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case domain.SessionStaged, domain.SessionFailed:
	case domain.SessionIdle:
		s.mu.Unlock()
		return domain.ErrNoStagedRecord
	default:
		s.mu.Unlock()
		return domain.ErrSessionBusy
	}
	record := *s.staged
	sessionID := s.sessionID
	archiveKey := s.archiveKey
	s.staged = nil
	s.archiveKey = ""
	s.state = domain.SessionIdle
	s.mu.Unlock()

	// Canceling has no persistent side effects; the archived capture is
	// removed since the record it belonged to was never committed.
	if archiveKey != "" {
		if err := s.storage.Delete(context.WithoutCancel(ctx), s.s3cfg.Bucket, archiveKey); err != nil {
			log.Printf("scanService.Cancel: session %s archive cleanup failed: %v", sessionID, err)
		}
	}
	s.audit(ctx, sessionID, domain.AuditCanceled, record, "")
	return nil
}

func (s *scanService) Recent() []domain.RecentScanEntry {
	return s.history.Entries()
}

func (s *scanService) AuditTrail(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ScanAuditEntry, int, error) {
	return s.auditRepo.ListBySession(ctx, sessionID, offset, limit)
}

// archiveCapture uploads the raw capture to object storage. Archival is a
// side concern: failure never blocks the pipeline.
func (s *scanService) archiveCapture(ctx context.Context, sessionID uuid.UUID, doc domain.CapturedDocument) {
	name := doc.FileName
	if name == "" {
		name = "capture.jpg"
	}
	key := fmt.Sprintf("scans/%s/%s", sessionID, name)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Data),
		ContentType: doc.ContentType,
		Size:        int64(len(doc.Data)),
	})
	if err != nil {
		log.Printf("scanService.archiveCapture: session %s archive failed: %v", sessionID, err)
		return
	}

	s.mu.Lock()
	s.archiveKey = key
	s.mu.Unlock()
}

// audit writes a pipeline event best-effort; the pipeline never fails on an
// audit error.
func (s *scanService) audit(ctx context.Context, sessionID uuid.UUID, action domain.AuditAction, record domain.EditableRecord, destination string) {
	payload, err := json.Marshal(record)
	if err != nil {
		payload = []byte("{}")
	}
	entry := &domain.ScanAuditEntry{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Action:      action,
		DocType:     record.DocType,
		Category:    record.Category,
		Destination: destination,
		Unverified:  record.Unverified,
		Payload:     payload,
	}
	if err := s.auditRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("scanService.audit: failed to record %s for session %s: %v", action, sessionID, err)
	}
}

func (s *scanService) setState(state domain.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *scanService) reset() {
	s.mu.Lock()
	s.staged = nil
	s.archiveKey = ""
	s.state = domain.SessionIdle
	s.mu.Unlock()
}

func (s *scanService) snapshotLocked() *SessionSnapshot {
	snap := &SessionSnapshot{SessionID: s.sessionID, State: s.state}
	if s.staged != nil {
		rec := *s.staged
		snap.Record = &rec
	}
	return snap
}

// buildCommitPayload shapes the destination payload. Fuel records carry
// their amount in the fuel detail, so the payload price substitutes the
// fuel total for the unused flat price.
func buildCommitPayload(rec domain.EditableRecord, now time.Time) domain.CommitPayload {
	price := rec.Price
	if rec.DocType == domain.DocTypeFuel && rec.Fuel != nil {
		price = rec.Fuel.TotalAmount
	}
	return domain.CommitPayload{
		Vendor:      rec.Vendor,
		ItemName:    rec.ItemName,
		Price:       price,
		Unit:        rec.Unit,
		DeliveryFee: rec.DeliveryFee,
		ProjectRef:  rec.ProjectRef,
		Category:    rec.Category,
		DocType:     rec.DocType,
		CreatedAt:   now,
	}
}

func clampAmount(f float64) float64 {
	if f < 0 || f != f {
		return 0
	}
	return f
}
