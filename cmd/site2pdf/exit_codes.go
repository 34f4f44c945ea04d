package main

import (
	"errors"
	"os"

	site2pdf "github.com/alnah/go-site2pdf"
	"github.com/alnah/go-site2pdf/internal/config"
)

// Exit codes for the site2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error (including partial batch failure)
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, artifact write
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, site2pdf.ErrBrowserConnect) ||
		errors.Is(err, site2pdf.ErrPageCreate) ||
		errors.Is(err, site2pdf.ErrPageLoad) ||
		errors.Is(err, site2pdf.ErrPDFGeneration) ||
		errors.Is(err, site2pdf.ErrPoolClosed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, site2pdf.ErrArtifactWrite) ||
		errors.Is(err, site2pdf.ErrNoArtifacts) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, site2pdf.ErrEmptyHTML) ||
		errors.Is(err, site2pdf.ErrEmptySubjectID) ||
		errors.Is(err, site2pdf.ErrValidationFailed) ||
		errors.Is(err, site2pdf.ErrInvalidPageFormat) ||
		errors.Is(err, site2pdf.ErrInvalidOrientation) ||
		errors.Is(err, site2pdf.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}
