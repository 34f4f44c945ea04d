package site2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML        = errors.New("html content cannot be empty")
	ErrEmptySubjectID   = errors.New("subject id cannot be empty")
	ErrValidationFailed = errors.New("subject validation failed")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Artifact store errors.
	ErrArtifactWrite = errors.New("artifact write failed")
	ErrNoArtifacts   = errors.New("no artifacts found")

	// Render option validation errors.
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Engine pool errors.
	ErrPoolClosed = errors.New("engine pool is closed")
)
