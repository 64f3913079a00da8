package domain

// DocumentType classifies a captured business document.
type DocumentType string

const (
	DocTypeEstimate   DocumentType = "estimate"
	DocTypeRental     DocumentType = "rental"
	DocTypeMaterial   DocumentType = "material"
	DocTypeReceipt    DocumentType = "receipt"
	DocTypeFuel       DocumentType = "fuel"
	DocTypeAttendance DocumentType = "attendance"
)

// ValidDocumentTypes is the set of recognized document types.
var ValidDocumentTypes = map[DocumentType]bool{
	DocTypeEstimate:   true,
	DocTypeRental:     true,
	DocTypeMaterial:   true,
	DocTypeReceipt:    true,
	DocTypeFuel:       true,
	DocTypeAttendance: true,
}

// DocumentTypeLabels maps each document type to its display label.
var DocumentTypeLabels = map[DocumentType]string{
	DocTypeEstimate:   "見積書",
	DocTypeRental:     "レンタル伝票",
	DocTypeMaterial:   "建材伝票",
	DocTypeReceipt:    "ホームセンター",
	DocTypeFuel:       "ガソリン",
	DocTypeAttendance: "出面表",
}

// DocumentTypeIcons maps each document type to its display icon.
var DocumentTypeIcons = map[DocumentType]string{
	DocTypeEstimate:   "📄",
	DocTypeRental:     "🔧",
	DocTypeMaterial:   "🧱",
	DocTypeReceipt:    "🛒",
	DocTypeFuel:       "⛽",
	DocTypeAttendance: "👷",
}

// Category is the business ledger category a confirmed record is filed under.
type Category string

const (
	CategoryRental   Category = "rental"
	CategoryMaterial Category = "material"
	CategorySubcon   Category = "subcon"
	CategoryExpense  Category = "expense"
	CategoryFuel     Category = "fuel"
	CategoryLabor    Category = "labor"
)

// ValidCategories is the set of recognized ledger categories.
var ValidCategories = map[Category]bool{
	CategoryRental:   true,
	CategoryMaterial: true,
	CategorySubcon:   true,
	CategoryExpense:  true,
	CategoryFuel:     true,
	CategoryLabor:    true,
}

// CategoryLabels maps each category to its display label.
var CategoryLabels = map[Category]string{
	CategoryRental:   "レンタル機材",
	CategoryMaterial: "材料費",
	CategorySubcon:   "外注費",
	CategoryExpense:  "経費",
	CategoryFuel:     "燃料費",
	CategoryLabor:    "労務費",
}

// CaptureMethod declares how a document image was obtained.
type CaptureMethod string

const (
	CaptureCamera  CaptureMethod = "camera"
	CaptureGallery CaptureMethod = "gallery"
	CaptureFile    CaptureMethod = "file"
)

// ValidCaptureMethods is the set of recognized capture methods.
var ValidCaptureMethods = map[CaptureMethod]bool{
	CaptureCamera:  true,
	CaptureGallery: true,
	CaptureFile:    true,
}

// SessionState is the scan session lifecycle state.
type SessionState string

const (
	SessionIdle        SessionState = "idle"
	SessionCapturing   SessionState = "capturing"
	SessionRecognizing SessionState = "recognizing"
	SessionStaged      SessionState = "staged"
	SessionCommitting  SessionState = "committing"
	SessionFailed      SessionState = "failed"
)

// AuditAction tags an entry in the scan audit log.
type AuditAction string

const (
	AuditStaged       AuditAction = "staged"
	AuditCommitted    AuditAction = "committed"
	AuditCommitFailed AuditAction = "commit_failed"
	AuditCanceled     AuditAction = "canceled"
)
