package site2pdf

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// StyleMethod identifies how utility CSS classes get resolved at render time.
type StyleMethod string

const (
	// StylePrecompiled inlines a build-time stylesheet; classes resolve
	// instantly and the readiness waits stay short.
	StylePrecompiled StyleMethod = "precompiled"

	// StyleCDNFallback loads the utility-CSS engine from its CDN at render
	// time; class generation happens client-side and needs longer waits.
	StyleCDNFallback StyleMethod = "cdn-fallback"
)

// ResolvedStyle is the outcome of style resolution.
// CSS is only populated for StylePrecompiled.
type ResolvedStyle struct {
	CSS    string
	Method StyleMethod
}

// styleResolver decides between the precompiled stylesheet and the CDN
// fallback. A missing stylesheet is a normal branch, not an error, so
// Resolve never fails. The file content is cached process-wide and
// invalidated on modification time.
type styleResolver struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	css     string
	modTime time.Time
	cached  bool
}

func newStyleResolver(path string, logger *slog.Logger) *styleResolver {
	return &styleResolver{path: path, logger: logger}
}

// Resolve loads the precompiled stylesheet if present, falling back to CDN
// injection otherwise. Unreadable or empty stylesheets degrade to the
// fallback with a warning.
func (r *styleResolver) Resolve() ResolvedStyle {
	info, err := os.Stat(r.path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return ResolvedStyle{Method: StyleCDNFallback}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached && info.ModTime().Equal(r.modTime) {
		return ResolvedStyle{CSS: r.css, Method: StylePrecompiled}
	}

	data, err := os.ReadFile(r.path) // #nosec G304 -- path derives from the configured root
	if err != nil {
		r.logger.Warn("reading precompiled stylesheet, falling back to CDN",
			"path", r.path, "error", err)
		return ResolvedStyle{Method: StyleCDNFallback}
	}

	r.css = string(data)
	r.modTime = info.ModTime()
	r.cached = true

	return ResolvedStyle{CSS: r.css, Method: StylePrecompiled}
}
