package site2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// scriptRunner is the minimal page surface the readiness controller drives.
// Eval runs a script (awaiting promises) bounded by the given timeout.
type scriptRunner interface {
	Eval(timeout time.Duration, js string) error
}

// sleepFunc suspends until the duration elapses or the context is done.
// Injected so tests can run the settle windows instantly.
type sleepFunc func(ctx context.Context, d time.Duration)

func realSleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Readiness scripts. Every script is an async function evaluated with
// promise awaiting, so a hung wait surfaces as an Eval timeout rather
// than a stuck page.
const (
	// waitImagesJS resolves once every <img> has fired load or error.
	waitImagesJS = `async () => {
		const imgs = Array.from(document.images);
		await Promise.all(imgs.map(img => img.complete
			? Promise.resolve()
			: new Promise(resolve => {
				img.addEventListener('load', resolve, { once: true });
				img.addEventListener('error', resolve, { once: true });
			})));
	}`

	// waitFontsJS resolves once the document font-loading signal settles.
	waitFontsJS = `async () => { await document.fonts.ready; }`

	// waitCDNEngineJS polls until the utility-CSS engine global is defined.
	waitCDNEngineJS = `async () => {
		while (window.tailwind === undefined) {
			await new Promise(resolve => setTimeout(resolve, 100));
		}
	}`

	// waitStyleProbeJS polls until the probe element's computed background
	// differs from transparent, evidence that utility classes applied.
	waitStyleProbeJS = `async () => {
		const probe = document.getElementById('` + styleProbeID + `');
		if (!probe) return;
		while (getComputedStyle(probe).backgroundColor === 'rgba(0, 0, 0, 0)') {
			await new Promise(resolve => setTimeout(resolve, 100));
		}
	}`

	// forceStyleRecalcJS toggles a transform on the root element to trigger
	// a reflow, then forces computed-style reads on every classed element
	// to defeat lazy style computation.
	forceStyleRecalcJS = `() => {
		const root = document.documentElement;
		root.style.transform = 'translateZ(0)';
		void root.offsetHeight;
		root.style.transform = '';
		for (const el of document.querySelectorAll('[class]')) {
			void getComputedStyle(el).opacity;
		}
	}`
)

// scrollStepPixels is the distance of each programmatic scroll step used
// to trigger scroll-based lazy loading.
const scrollStepPixels = 400

// lazyScrollJS scrolls from top to bottom in fixed steps with a small
// delay between steps, then returns to the top.
func lazyScrollJS(stepDelay time.Duration) string {
	return fmt.Sprintf(`async () => {
		const step = %d;
		const delay = %d;
		const height = document.body.scrollHeight;
		for (let y = 0; y <= height; y += step) {
			window.scrollTo(0, y);
			await new Promise(resolve => setTimeout(resolve, delay));
		}
		window.scrollTo(0, 0);
	}`, scrollStepPixels, stepDelay.Milliseconds())
}

// readinessController drives the asynchronous readiness checks that must
// settle before a snapshot is stable. Every wait degrades to a warning on
// timeout; the pipeline always proceeds with best-effort content.
type readinessController struct {
	timeouts Timeouts
	sleep    sleepFunc
	logger   *slog.Logger
}

func newReadinessController(timeouts Timeouts, logger *slog.Logger) *readinessController {
	return &readinessController{
		timeouts: timeouts,
		sleep:    realSleep,
		logger:   logger,
	}
}

// awaitReady runs the readiness sequence: images, fonts, style settling
// (short for precompiled, engine+probe+long settle for CDN fallback),
// forced style recalculation, and a lazy-load scroll pass.
func (c *readinessController) awaitReady(ctx context.Context, page scriptRunner, method StyleMethod) {
	c.step(page, c.timeouts.ImageWait, waitImagesJS, "images")
	c.step(page, c.timeouts.FontWait, waitFontsJS, "fonts")

	if method == StyleCDNFallback {
		c.step(page, c.timeouts.CDNDetect, waitCDNEngineJS, "cdn engine")
		c.step(page, c.timeouts.StyleProbe, waitStyleProbeJS, "style probe")
		c.sleep(ctx, c.timeouts.CDNSettle)
	} else {
		c.sleep(ctx, c.timeouts.PrecompiledSettle)
	}

	c.step(page, c.timeouts.FontWait, forceStyleRecalcJS, "style recalc")
	c.step(page, c.timeouts.Scroll, lazyScrollJS(c.timeouts.ScrollStepDelay), "lazy scroll")
}

// step runs one readiness wait, downgrading failures to warnings.
func (c *readinessController) step(page scriptRunner, timeout time.Duration, js, name string) {
	if err := page.Eval(timeout, js); err != nil {
		c.logger.Warn("readiness wait did not settle, proceeding",
			"step", name, "timeout", timeout, "error", err)
	}
}
