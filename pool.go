package site2pdf

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-rod/rod"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one engine is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// EnginePool manages a bounded set of warm browser processes for
// deployments where a launch per render is too expensive. Engines are
// launched lazily on first acquire and health-checked on every reuse.
// The renderer stays pool-agnostic; wire a pool with WithEnginePool.
type EnginePool struct {
	size     int
	launch   func() (*rod.Browser, error)
	healthy  func(*rod.Browser) bool
	shutdown func(*rod.Browser) error
	browsers []*rod.Browser
	sem      chan *rod.Browser
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewEnginePool creates a pool with capacity for n browser instances.
// Engines are launched lazily when acquired, not at pool creation.
func NewEnginePool(n int) *EnginePool {
	if n < 1 {
		n = 1
	}

	return &EnginePool{
		size:     n,
		launch:   launchBrowser,
		healthy:  browserHealthy,
		shutdown: (*rod.Browser).Close,
		sem:      make(chan *rod.Browser, n),
	}
}

// browserHealthy probes the engine over its control connection.
func browserHealthy(b *rod.Browser) bool {
	_, err := b.Version()
	return err == nil
}

// Acquire leases an engine from the pool, launching one if capacity
// remains. Blocks if all engines are leased out.
func (p *EnginePool) Acquire() (*rod.Browser, error) {
	// Try to reuse an idle engine (non-blocking)
	select {
	case b, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return p.checkout(b)
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Launch outside the lock
		b, err := p.launch()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.browsers = append(p.browsers, b)
		p.mu.Unlock()

		return b, nil
	}
	p.mu.Unlock()

	// All engines launched, wait for a lease to return
	b, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return p.checkout(b)
}

// checkout health-checks a reused engine and replaces it when dead.
func (p *EnginePool) checkout(b *rod.Browser) (*rod.Browser, error) {
	if p.healthy(b) {
		return b, nil
	}

	_ = p.shutdown(b)
	replacement, err := p.launch()
	if err != nil {
		return nil, fmt.Errorf("%w: relaunching unhealthy engine: %v", ErrBrowserConnect, err)
	}

	p.mu.Lock()
	for i, old := range p.browsers {
		if old == b {
			p.browsers[i] = replacement
			break
		}
	}
	p.mu.Unlock()

	return replacement, nil
}

// Release returns an engine to the pool. Engines released after Close are
// shut down instead.
func (p *EnginePool) Release(b *rod.Browser) {
	if b == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = p.shutdown(b)
		return
	}

	// Never blocks: sem capacity covers every launched engine, so holding
	// the lock here also serializes against close(p.sem).
	p.sem <- b
}

// Close shuts down every launched engine.
// Returns an aggregated error if multiple engines fail to close.
func (p *EnginePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	browsers := p.browsers
	p.mu.Unlock()

	var errs []error
	for _, b := range browsers {
		if err := p.shutdown(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *EnginePool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
