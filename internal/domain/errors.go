package domain

import "errors"

var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrRecognitionUnavailable   = errors.New("recognition services unavailable")
	ErrNoMatch                  = errors.New("document did not match recognizer")
	ErrSessionBusy              = errors.New("a scan session is already in progress")
	ErrNoStagedRecord           = errors.New("no staged record in session")
	ErrCommitFailed             = errors.New("ledger commit failed")
	ErrEmptyDocument            = errors.New("captured document is empty")
	ErrDocumentTooLarge         = errors.New("captured document exceeds maximum allowed size")
	ErrUnsupportedCaptureMethod = errors.New("unsupported capture method")
	ErrUnknownDocumentType      = errors.New("unknown document type")
	ErrUnknownCategory          = errors.New("unknown category")
)
