package site2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// screenshotStampLayout names debug screenshots by capture time.
const screenshotStampLayout = "20060102-150405"

// renderSession abstracts one live browser session (process + page) to
// enable testing without a browser. Implementations own their resources;
// Close must release everything on every exit path.
type renderSession interface {
	LoadHTML(ctx context.Context, htmlContent string) error
	Eval(timeout time.Duration, js string) error
	Screenshot(path string) error
	PDF(opts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

// sessionFactory creates a configured browser session. The default factory
// launches a fresh engine per render; WithEnginePool swaps in one backed by
// a warm browser pool.
type sessionFactory func(ctx context.Context) (renderSession, error)

// Renderer converts optimized HTML into PDF bytes through one headless
// browser session per render. The session is closed in a deferred cleanup
// regardless of success or failure - no engine instance may leak.
type Renderer struct {
	resolver   *styleResolver
	optimizer  *htmlOptimizer
	readiness  *readinessController
	timeouts   Timeouts
	debugDir   string
	logger     *slog.Logger
	newSession sessionFactory
}

func newRenderer(paths Paths, timeouts Timeouts, logger *slog.Logger, pool *EnginePool) *Renderer {
	return &Renderer{
		resolver:   newStyleResolver(paths.Stylesheet(), logger),
		optimizer:  &htmlOptimizer{},
		readiness:  newReadinessController(timeouts, logger),
		timeouts:   timeouts,
		debugDir:   paths.DebugDir(),
		logger:     logger,
		newSession: newRodSessionFactory(pool, timeouts),
	}
}

// Render resolves the style strategy, optimizes the HTML, and drives one
// browser session through load, readiness, optional debug screenshot, and
// PDF emission. A nil opts uses DefaultRenderOptions.
func (r *Renderer) Render(ctx context.Context, htmlContent string, opts *RenderOptions) (*RenderResult, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, ErrEmptyHTML
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	style := r.resolver.Resolve()
	optimized := r.optimizer.Optimize(htmlContent, style)

	session, err := r.newSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Warn("closing browser session", "error", cerr)
		}
	}()

	if err := session.LoadHTML(ctx, optimized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	r.readiness.awaitReady(ctx, session, style.Method)

	if opts.Debug {
		r.captureDebugScreenshot(session, opts.DebugLabel)
	}

	pdf, err := session.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return &RenderResult{
		PDF:         pdf,
		SizeBytes:   len(pdf),
		Duration:    time.Since(start),
		StyleMethod: style.Method,
		Timestamp:   time.Now(),
	}, nil
}

// captureDebugScreenshot writes a full-page screenshot for operational
// troubleshooting. Failures are logged, never fatal.
func (r *Renderer) captureDebugScreenshot(session renderSession, label string) {
	if label == "" {
		label = "render"
	}
	name := fmt.Sprintf("%s-%s.jpg", label, time.Now().Format(screenshotStampLayout))
	path := filepath.Join(r.debugDir, name)

	if err := session.Screenshot(path); err != nil {
		r.logger.Warn("debug screenshot failed", "path", path, "error", err)
		return
	}
	r.logger.Debug("debug screenshot captured", "path", path)
}

// buildPDFOptions constructs proto.PagePrintToPDF from validated options.
// Background graphics are always enabled so the print CSS color forcing
// takes effect.
func buildPDFOptions(opts *RenderOptions) *proto.PagePrintToPDF {
	dims := pageDimensions[strings.ToLower(opts.PageFormat)]

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(dims.width),
		PaperHeight:     floatPtr(dims.height),
		Landscape:       strings.EqualFold(opts.Orientation, OrientationLandscape),
		MarginTop:       floatPtr(opts.Margins.Top),
		MarginRight:     floatPtr(opts.Margins.Right),
		MarginBottom:    floatPtr(opts.Margins.Bottom),
		MarginLeft:      floatPtr(opts.Margins.Left),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// intPtr returns a pointer to an int value.
func intPtr(v int) *int {
	return &v
}
