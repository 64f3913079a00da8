package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CapturedDocument is the raw capture input. It is immutable and discarded
// once recognition completes; the payload is archived to object storage as a
// side concern only.
type CapturedDocument struct {
	Data        []byte
	ContentType string
	FileName    string
	Method      CaptureMethod
}

// OutcomeKind discriminates the RecognitionOutcome variants.
type OutcomeKind string

const (
	OutcomeFuel      OutcomeKind = "fuel"
	OutcomeGeneric   OutcomeKind = "generic"
	OutcomeSynthetic OutcomeKind = "synthetic"
)

// FuelFields is the structured result of the fuel-receipt recognizer.
type FuelFields struct {
	FuelType       string
	QuantityLiters float64
	UnitPrice      float64
	TotalAmount    float64
	VehicleNumber  string
	Date           string
	StoreName      string
}

// GenericItem is one line item from the generic document recognizer.
type GenericItem struct {
	Name   string
	Amount float64
}

// GenericFields is the structured result of the generic document recognizer.
type GenericFields struct {
	VendorName   string
	CompanyName  string
	Items        []GenericItem
	TotalAmount  float64
	SlipTypeHint string
	Description  string
}

// SyntheticFields is a fabricated representative field set produced when
// recognition is unavailable.
type SyntheticFields struct {
	DocType     DocumentType
	Vendor      string
	ItemName    string
	Price       float64
	Unit        string
	DeliveryFee float64
}

// RecognitionOutcome is the tagged result of one recognition pass. Exactly
// one variant pointer is non-nil, matching Kind.
type RecognitionOutcome struct {
	Kind       OutcomeKind
	Confidence float64
	Fuel       *FuelFields
	Generic    *GenericFields
	Synthetic  *SyntheticFields
}

// FuelDetail carries fuel-receipt specifics on an editable record.
type FuelDetail struct {
	FuelType       string  `json:"fuel_type"`
	QuantityLiters float64 `json:"quantity_liters"`
	UnitPrice      float64 `json:"unit_price"`
	TotalAmount    float64 `json:"total_amount"`
	VehicleNumber  string  `json:"vehicle_number"`
	Date           string  `json:"date"`
}

// EditableRecord is the canonical staged record the user reviews and corrects
// before commit. Numeric fields are always non-negative. Unverified marks
// records whose fields were synthesized rather than recognized.
type EditableRecord struct {
	DocType     DocumentType `json:"doc_type"`
	Vendor      string       `json:"vendor"`
	ItemName    string       `json:"item_name"`
	Price       float64      `json:"price"`
	Unit        string       `json:"unit"`
	DeliveryFee float64      `json:"delivery_fee"`
	ProjectRef  string       `json:"project_ref"`
	Category    Category     `json:"category"`
	Fuel        *FuelDetail  `json:"fuel,omitempty"`
	Unverified  bool         `json:"unverified"`
}

// CommitPayload is the document sent to a ledger destination on confirmation.
type CommitPayload struct {
	Vendor      string       `json:"vendor"`
	ItemName    string       `json:"item_name"`
	Price       float64      `json:"price"`
	Unit        string       `json:"unit"`
	DeliveryFee float64      `json:"delivery_fee"`
	ProjectRef  string       `json:"project_ref"`
	Category    Category     `json:"category"`
	DocType     DocumentType `json:"doc_type"`
	CreatedAt   time.Time    `json:"created_at"`
}

// RecentScanEntry is one row of the recent-scan history shown after commits.
type RecentScanEntry struct {
	ID             uuid.UUID `json:"id"`
	DisplayType    string    `json:"display_type"`
	Icon           string    `json:"icon"`
	Name           string    `json:"name"`
	TimestampLabel string    `json:"timestamp_label"`
}

// ScanAuditEntry records one pipeline event for auditability. Unverified
// carries the synthesized-record flag through to storage.
type ScanAuditEntry struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	SessionID   uuid.UUID       `db:"session_id" json:"session_id"`
	Action      AuditAction     `db:"action" json:"action"`
	DocType     DocumentType    `db:"doc_type" json:"doc_type"`
	Category    Category        `db:"category" json:"category"`
	Destination string          `db:"destination" json:"destination"`
	Unverified  bool            `db:"unverified" json:"unverified"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
