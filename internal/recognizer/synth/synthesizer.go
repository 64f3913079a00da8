// Package synth fabricates representative records when recognition is
// unavailable, keeping the capture workflow usable while the OCR backend is
// down. Synthesized outcomes normalize into records flagged unverified so
// the substitution stays auditable.
package synth

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"scanstation/internal/domain"
)

// typeOrder fixes the selection order so a seeded source is reproducible.
var typeOrder = []domain.DocumentType{
	domain.DocTypeEstimate,
	domain.DocTypeRental,
	domain.DocTypeMaterial,
	domain.DocTypeReceipt,
	domain.DocTypeFuel,
	domain.DocTypeAttendance,
}

// templates holds the fixed representative field set per document type.
// Delivery fees apply to rental and estimate slips only.
var templates = map[domain.DocumentType]domain.SyntheticFields{
	domain.DocTypeEstimate: {
		DocType:     domain.DocTypeEstimate,
		Vendor:      "アクティオ",
		ItemName:    "バックホー 0.7㎥",
		Price:       25000,
		Unit:        "円/日",
		DeliveryFee: 35000,
	},
	domain.DocTypeRental: {
		DocType:     domain.DocTypeRental,
		Vendor:      "ニッケン",
		ItemName:    "タイヤローラー",
		Price:       18000,
		Unit:        "円/日",
		DeliveryFee: 20000,
	},
	domain.DocTypeMaterial: {
		DocType:  domain.DocTypeMaterial,
		Vendor:   "〇〇建材",
		ItemName: "アスファルト合材 50t",
		Price:    9500,
		Unit:     "円/t",
	},
	domain.DocTypeReceipt: {
		DocType:  domain.DocTypeReceipt,
		Vendor:   "ホームセンター",
		ItemName: "消耗品セット",
		Price:    3800,
		Unit:     "円",
	},
	domain.DocTypeFuel: {
		DocType:  domain.DocTypeFuel,
		Vendor:   "ENEOS",
		ItemName: "レギュラー 45L",
		Price:    7425,
		Unit:     "円",
	},
	domain.DocTypeAttendance: {
		DocType:  domain.DocTypeAttendance,
		Vendor:   "自社",
		ItemName: "出面表 12月分",
		Price:    18000,
		Unit:     "円/人日",
	},
}

// Synthesizer picks one of the six document types from an injected random
// source and returns that type's template. It implements port.Synthesizer.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Synthesizer. A zero seed seeds from the wall clock; tests
// pass a fixed seed for deterministic selection.
func New(seed int64) *Synthesizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Synthesize fabricates a representative outcome for the given capture
// method. The capture method does not influence field content today; it is
// kept on the contract so selection policy can depend on it later.
func (s *Synthesizer) Synthesize(method domain.CaptureMethod) *domain.RecognitionOutcome {
	s.mu.Lock()
	dt := typeOrder[s.rng.Intn(len(typeOrder))]
	s.mu.Unlock()

	t := templates[dt]
	log.Printf("synth.Synthesize: fabricating %s record (method=%s)", dt, method)

	return &domain.RecognitionOutcome{
		Kind:      domain.OutcomeSynthetic,
		Synthetic: &t,
	}
}
