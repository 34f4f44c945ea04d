package site2pdf

import (
	"fmt"
	"os"
	"strings"
)

// ValidationReport lists every problem found with a subject's source
// before a render is attempted.
type ValidationReport struct {
	Valid  bool
	Issues []string
}

// ValidationGate pre-flight checks a subject's source HTML. Checks append
// issues instead of short-circuiting so all problems surface together;
// validation never fails with an error.
type ValidationGate struct {
	paths Paths
}

// NewValidationGate returns a gate checking the given root's conventions.
func NewValidationGate(root string) *ValidationGate {
	return &ValidationGate{paths: Paths{Root: root}}
}

// Validate checks that the subject id is set, its working directory
// exists, and its index.html exists and is non-empty.
func (g *ValidationGate) Validate(subjectID string) ValidationReport {
	var issues []string

	if strings.TrimSpace(subjectID) == "" {
		issues = append(issues, "subject id is empty")
	}

	dir := g.paths.SubjectDir(subjectID)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		issues = append(issues, fmt.Sprintf("subject directory not found: %s", dir))
	}

	entry := g.paths.EntryFile(subjectID)
	info, err := os.Stat(entry)
	switch {
	case err != nil:
		issues = append(issues, fmt.Sprintf("entry file not found: %s", entry))
	case info.Size() == 0:
		issues = append(issues, fmt.Sprintf("entry file is empty: %s", entry))
	}

	return ValidationReport{Valid: len(issues) == 0, Issues: issues}
}
