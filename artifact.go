package site2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// artifactStampLayout qualifies artifact filenames down to the second so
// same-day re-renders version distinctly instead of overwriting.
const artifactStampLayout = "2006-01-02-150405"

// ArtifactRecord describes the latest persisted artifact of a subject plus
// its full version history. Records are derived by listing, never mutated.
type ArtifactRecord struct {
	SubjectID     string
	Filename      string
	Path          string
	SizeBytes     int64
	CreatedAt     time.Time
	ModifiedAt    time.Time
	TotalVersions int
	AllVersions   []string // newest first
}

// ArtifactStore persists PDF buffers under a shared directory with
// timestamped, per-subject filenames. Writes are append-only: an existing
// artifact is never deleted or overwritten.
type ArtifactStore struct {
	dir string
	now func() time.Time
}

func newArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir, now: time.Now}
}

// artifactPrefix namespaces a subject's files so that listing "acme" never
// picks up "acme-corp" artifacts.
func artifactPrefix(subjectID string) string {
	return subjectID + "-portfolio-"
}

// Save writes the buffer as a new timestamped artifact and returns the
// refreshed record. The artifact directory is created when missing.
func (s *ArtifactStore) Save(subjectID string, pdf []byte) (*ArtifactRecord, error) {
	if strings.TrimSpace(subjectID) == "" {
		return nil, ErrEmptySubjectID
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrArtifactWrite)
	}

	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrArtifactWrite, s.dir, err)
	}

	filename := fmt.Sprintf("%s%s.pdf", artifactPrefix(subjectID), s.now().Format(artifactStampLayout))
	path := filepath.Join(s.dir, filename)

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(path, pdf, filePermissions); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrArtifactWrite, path, err)
	}

	return s.Status(subjectID)
}

// Status reports the latest artifact of a subject and its version list,
// sorted newest first by filename (timestamp-prefixed names make the
// lexicographic order the chronological one). Returns ErrNoArtifacts when
// the subject has no persisted PDF. Status is a pure read: it never
// creates or deletes files.
func (s *ArtifactStore) Status(subjectID string) (*ArtifactRecord, error) {
	if strings.TrimSpace(subjectID) == "" {
		return nil, ErrEmptySubjectID
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoArtifacts, subjectID)
		}
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	prefix := artifactPrefix(subjectID)
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".pdf") {
			versions = append(versions, name)
		}
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoArtifacts, subjectID)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(versions)))

	latest := versions[0]
	path := filepath.Join(s.dir, latest)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact metadata: %w", err)
	}

	return &ArtifactRecord{
		SubjectID:     subjectID,
		Filename:      latest,
		Path:          path,
		SizeBytes:     info.Size(),
		CreatedAt:     info.ModTime(),
		ModifiedAt:    info.ModTime(),
		TotalVersions: len(versions),
		AllVersions:   versions,
	}, nil
}
