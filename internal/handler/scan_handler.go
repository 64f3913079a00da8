package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scanstation/internal/domain"
	"scanstation/internal/export"
	"scanstation/internal/route"
	"scanstation/internal/service"
)

// ScanHandler handles the capture, staging, and commit endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// updateStagedRequest carries user corrections to the staged record.
// Absent fields are left untouched.
type updateStagedRequest struct {
	Vendor      *string  `json:"vendor"`
	ItemName    *string  `json:"item_name"`
	Price       *float64 `json:"price"`
	Unit        *string  `json:"unit"`
	DeliveryFee *float64 `json:"delivery_fee"`
	ProjectRef  *string  `json:"project_ref"`
	DocType     *string  `json:"doc_type"`
	Category    *string  `json:"category"`
}

// Capture handles POST /api/v1/scans.
// Accepts a multipart upload ("file" plus a "method" field of camera or
// library), runs recognition, and stages the resulting record.
func (h *ScanHandler) Capture(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	method := domain.CaptureMethod(c.DefaultPostForm("method", string(domain.CaptureCamera)))

	input := service.CaptureInput{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		FileName:    header.Filename,
		Method:      method,
	}

	snapshot, err := h.scanService.StartScan(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	log.Printf("scanHandler.Capture: user %s staged session %s (%s)",
		userID, snapshot.SessionID, snapshot.Record.DocType)
	RespondCreated(c, snapshot)
}

// Session handles GET /api/v1/scans/session.
func (h *ScanHandler) Session(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	RespondOK(c, h.scanService.Session())
}

// UpdateStaged handles PATCH /api/v1/scans/session.
func (h *ScanHandler) UpdateStaged(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}

	var req updateStagedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return
	}

	input := service.UpdateStagedInput{
		Vendor:      req.Vendor,
		ItemName:    req.ItemName,
		Price:       req.Price,
		Unit:        req.Unit,
		DeliveryFee: req.DeliveryFee,
		ProjectRef:  req.ProjectRef,
	}
	if req.DocType != nil {
		dt := domain.DocumentType(*req.DocType)
		if !domain.ValidDocumentTypes[dt] {
			HandleError(c, domain.ErrUnknownDocumentType)
			return
		}
		input.DocType = &dt
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		if !domain.ValidCategories[cat] {
			HandleError(c, domain.ErrUnknownCategory)
			return
		}
		input.Category = &cat
	}

	record, err := h.scanService.UpdateStaged(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// Commit handles POST /api/v1/scans/session/commit.
func (h *ScanHandler) Commit(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	result, err := h.scanService.Commit(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	log.Printf("scanHandler.Commit: user %s registered scan to %s", userID, result.Destination)
	RespondOK(c, result)
}

// Cancel handles DELETE /api/v1/scans/session.
func (h *ScanHandler) Cancel(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	if err := h.scanService.Cancel(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"cancelled": true})
}

// Recent handles GET /api/v1/scans/recent.
func (h *ScanHandler) Recent(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	entries := h.scanService.Recent()
	if entries == nil {
		entries = []domain.RecentScanEntry{}
	}
	RespondOK(c, entries)
}

// ExportRecent handles GET /api/v1/scans/recent/export.
// Streams the recent history as an xlsx workbook.
func (h *ScanHandler) ExportRecent(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}

	filename := fmt.Sprintf("recent_scans_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.WriteRecentScans(c.Writer, h.scanService.Recent()); err != nil {
		// Headers are already out; log and abort the stream.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] scanHandler.ExportRecent: %v", requestID, err)
		c.Abort()
	}
}

// Types handles GET /api/v1/scans/types.
// Returns the document type grid with labels, icons, and routing.
func (h *ScanHandler) Types(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	RespondOK(c, route.Table())
}

// AuditTrail handles GET /api/v1/scans/:session_id/audit.
func (h *ScanHandler) AuditTrail(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session_id must be a valid UUID")
		return
	}

	offset, limit := parsePagination(c)
	entries, total, err := h.scanService.AuditTrail(c.Request.Context(), sessionID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
