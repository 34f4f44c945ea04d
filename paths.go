package site2pdf

import "path/filepath"

// Paths derives the filesystem layout shared with the external site
// generator and build pipeline. All locations hang off a single root:
//
//	{root}/generated-files/{subject}/index.html   rendered site entry point
//	{root}/dist/output.css                        optional precompiled stylesheet
//	{root}/generated-files/pdfs/                  PDF artifacts
//	{root}/debug/                                 debug screenshots
type Paths struct {
	Root string
}

// SubjectDir returns the working directory of a published subject.
func (p Paths) SubjectDir(subjectID string) string {
	return filepath.Join(p.Root, "generated-files", subjectID)
}

// EntryFile returns the HTML entry point of a published subject.
func (p Paths) EntryFile(subjectID string) string {
	return filepath.Join(p.SubjectDir(subjectID), "index.html")
}

// Stylesheet returns the precompiled stylesheet location produced by the
// external build step. The file is optional.
func (p Paths) Stylesheet() string {
	return filepath.Join(p.Root, "dist", "output.css")
}

// ArtifactDir returns the directory holding versioned PDF artifacts.
func (p Paths) ArtifactDir() string {
	return filepath.Join(p.Root, "generated-files", "pdfs")
}

// DebugDir returns the directory for debug screenshots.
func (p Paths) DebugDir() string {
	return filepath.Join(p.Root, "debug")
}
