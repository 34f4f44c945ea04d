package site2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DefaultConcurrency is the batch chunk size when none is configured.
const DefaultConcurrency = 2

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	root        string
	timeouts    Timeouts
	concurrency int
	logger      *slog.Logger
	pool        *EnginePool
}

// Option configures a Service.
type Option func(*serviceConfig)

// WithRoot sets the project root the pipeline shares with the site
// generator. Defaults to the current directory.
func WithRoot(dir string) Option {
	return func(c *serviceConfig) {
		c.root = dir
	}
}

// WithTimeouts overrides the readiness and load timeouts. Zero fields keep
// their defaults.
func WithTimeouts(t Timeouts) Option {
	return func(c *serviceConfig) {
		c.timeouts = t.withDefaults()
	}
}

// WithConcurrency sets the batch chunk size.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithConcurrency(n int) Option {
	if n <= 0 {
		panic("site2pdf: WithConcurrency must be positive")
	}
	return func(c *serviceConfig) {
		c.concurrency = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithEnginePool makes renders acquire warm browsers from the pool instead
// of launching a fresh engine per render. The service does not take
// ownership unless it created the pool; Close closes it either way.
func WithEnginePool(pool *EnginePool) Option {
	return func(c *serviceConfig) {
		c.pool = pool
	}
}

// Service orchestrates the full pipeline: validation, style resolution,
// HTML optimization, rendering, and artifact persistence.
type Service struct {
	cfg      serviceConfig
	paths    Paths
	gate     *ValidationGate
	renderer *Renderer
	store    *ArtifactStore
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithRoot, WithConcurrency).
func NewService(opts ...Option) *Service {
	cfg := serviceConfig{
		root:        ".",
		timeouts:    DefaultTimeouts(),
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	paths := Paths{Root: cfg.root}
	return &Service{
		cfg:      cfg,
		paths:    paths,
		gate:     &ValidationGate{paths: paths},
		renderer: newRenderer(paths, cfg.timeouts, cfg.logger, cfg.pool),
		store:    newArtifactStore(paths.ArtifactDir()),
	}
}

// RenderSubject runs the full chain for one subject: validation gate,
// entry-file read, render, artifact save. Failures never escape as panics
// or raw engine errors - they land in JobResult.Err.
func (s *Service) RenderSubject(ctx context.Context, subjectID string, opts *RenderOptions) JobResult {
	job := JobResult{SubjectID: subjectID}

	report := s.gate.Validate(subjectID)
	if !report.Valid {
		job.Err = fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(report.Issues, "; "))
		return job
	}

	htmlContent, err := os.ReadFile(s.paths.EntryFile(subjectID)) // #nosec G304 -- path derives from the configured root
	if err != nil {
		job.Err = fmt.Errorf("reading entry file: %w", err)
		return job
	}

	if opts != nil && opts.Debug && opts.DebugLabel == "" {
		labeled := *opts
		labeled.DebugLabel = subjectID
		opts = &labeled
	}

	result, err := s.renderer.Render(ctx, string(htmlContent), opts)
	if err != nil {
		job.Err = err
		return job
	}
	job.Result = result

	record, err := s.store.Save(subjectID, result.PDF)
	if err != nil {
		job.Err = err
		return job
	}
	job.Artifact = record

	s.cfg.logger.Info("rendered subject",
		"subject", subjectID,
		"bytes", result.SizeBytes,
		"style", result.StyleMethod,
		"duration", result.Duration,
		"artifact", record.Filename,
	)
	return job
}

// RenderHTML renders a raw HTML string without the filesystem conventions
// and without persisting the result. Used for ad hoc rendering requests.
func (s *Service) RenderHTML(ctx context.Context, htmlContent string, opts *RenderOptions) (*RenderResult, error) {
	return s.renderer.Render(ctx, htmlContent, opts)
}

// Validate runs the pre-flight checks for a subject without rendering.
func (s *Service) Validate(subjectID string) ValidationReport {
	return s.gate.Validate(subjectID)
}

// Status reports the latest persisted artifact of a subject.
// Returns ErrNoArtifacts when the subject has none.
func (s *Service) Status(subjectID string) (*ArtifactRecord, error) {
	return s.store.Status(subjectID)
}

// Close releases pooled browser resources, if any.
func (s *Service) Close() error {
	if s.cfg.pool != nil {
		return s.cfg.pool.Close()
	}
	return nil
}
