package site2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Page format constants.
const (
	FormatA3     = "a3"
	FormatA4     = "a4"
	FormatA5     = "a5"
	FormatLetter = "letter"
	FormatLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// pageDimensions maps page formats to paper sizes in inches.
var pageDimensions = map[string]struct {
	width  float64
	height float64
}{
	FormatA3:     {width: 11.69, height: 16.54},
	FormatA4:     {width: 8.27, height: 11.69},
	FormatA5:     {width: 5.83, height: 8.27},
	FormatLetter: {width: 8.5, height: 11},
	FormatLegal:  {width: 8.5, height: 14},
}

// Margins holds per-side page margins in inches.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins returns margins with the same value on all sides.
func UniformMargins(inches float64) Margins {
	return Margins{Top: inches, Right: inches, Bottom: inches, Left: inches}
}

// RenderOptions configures a single PDF render.
type RenderOptions struct {
	PageFormat  string  // "a3", "a4", "a5", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margins     Margins // inches per side
	Debug       bool    // capture a full-page screenshot before the PDF
	DebugLabel  string  // screenshot filename prefix (defaults to the subject id)
}

// DefaultRenderOptions returns render options with default values:
// A4, portrait, 0.5 inch margins, debug off.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		PageFormat:  FormatA4,
		Orientation: OrientationPortrait,
		Margins:     UniformMargins(DefaultMargin),
	}
}

// Validate checks that render options are valid.
// Returns nil if o is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}

	if _, ok := pageDimensions[strings.ToLower(o.PageFormat)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, o.PageFormat)
	}

	switch strings.ToLower(o.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o.Orientation)
	}

	for _, m := range []struct {
		side  string
		value float64
	}{
		{"top", o.Margins.Top},
		{"right", o.Margins.Right},
		{"bottom", o.Margins.Bottom},
		{"left", o.Margins.Left},
	} {
		if m.value < MinMargin || m.value > MaxMargin {
			return fmt.Errorf("%w: %s %.2f (must be between %.2f and %.2f)",
				ErrInvalidMargin, m.side, m.value, MinMargin, MaxMargin)
		}
	}

	return nil
}

// Timeouts bounds every heuristic wait in the render pipeline.
// Each field is independently tunable; zero values fall back to defaults
// when passed through WithTimeouts.
type Timeouts struct {
	ContentLoad       time.Duration // page navigation + load event
	NetworkIdle       time.Duration // quiet window that counts as network idle
	ImageWait         time.Duration // all <img> elements settled
	FontWait          time.Duration // document.fonts.ready
	CDNDetect         time.Duration // utility-CSS engine global defined
	StyleProbe        time.Duration // probe element computed background applied
	PrecompiledSettle time.Duration // settle window after precompiled styles
	CDNSettle         time.Duration // settle window after CDN class generation
	Scroll            time.Duration // full lazy-load scroll pass
	ScrollStepDelay   time.Duration // pause between scroll steps
	Screenshot        time.Duration // debug screenshot capture
}

// DefaultTimeouts returns the timeout set tuned for typical portfolio pages.
// The CDN path is inherently slower than the precompiled one, so its waits
// are longer.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ContentLoad:       30 * time.Second,
		NetworkIdle:       500 * time.Millisecond,
		ImageWait:         8 * time.Second,
		FontWait:          8 * time.Second,
		CDNDetect:         12 * time.Second,
		StyleProbe:        12 * time.Second,
		PrecompiledSettle: 1 * time.Second,
		CDNSettle:         5 * time.Second,
		Scroll:            15 * time.Second,
		ScrollStepDelay:   100 * time.Millisecond,
		Screenshot:        10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTimeouts.
func (t Timeouts) withDefaults() Timeouts {
	def := DefaultTimeouts()
	if t.ContentLoad <= 0 {
		t.ContentLoad = def.ContentLoad
	}
	if t.NetworkIdle <= 0 {
		t.NetworkIdle = def.NetworkIdle
	}
	if t.ImageWait <= 0 {
		t.ImageWait = def.ImageWait
	}
	if t.FontWait <= 0 {
		t.FontWait = def.FontWait
	}
	if t.CDNDetect <= 0 {
		t.CDNDetect = def.CDNDetect
	}
	if t.StyleProbe <= 0 {
		t.StyleProbe = def.StyleProbe
	}
	if t.PrecompiledSettle <= 0 {
		t.PrecompiledSettle = def.PrecompiledSettle
	}
	if t.CDNSettle <= 0 {
		t.CDNSettle = def.CDNSettle
	}
	if t.Scroll <= 0 {
		t.Scroll = def.Scroll
	}
	if t.ScrollStepDelay <= 0 {
		t.ScrollStepDelay = def.ScrollStepDelay
	}
	if t.Screenshot <= 0 {
		t.Screenshot = def.Screenshot
	}
	return t
}

// RenderResult holds the outcome of a successful render.
// The PDF buffer is only populated after the underlying emission call
// completed; failures surface as errors, never as partial buffers.
type RenderResult struct {
	PDF         []byte
	SizeBytes   int
	Duration    time.Duration
	StyleMethod StyleMethod
	Timestamp   time.Time
}

// JobResult holds the outcome of one subject render within a batch or a
// direct RenderSubject call. Exactly one of Result/Err is set.
type JobResult struct {
	SubjectID string
	Result    *RenderResult
	Artifact  *ArtifactRecord
	Err       error
}

// Success reports whether the job completed without error.
func (j JobResult) Success() bool {
	return j.Err == nil
}
