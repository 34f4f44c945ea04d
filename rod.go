package site2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-site2pdf/internal/fileutil"
)

// Viewport configuration for high-density rendering.
const (
	viewportWidth     = 1920
	viewportHeight    = 1080
	viewportScale     = 2.0
	screenshotQuality = 85
)

// launchBrowser starts a headless Chrome with a hardened argument set:
// no sandbox (containerized execution), no GPU, no extensions.
// Rod downloads a managed Chromium on first run unless ROD_BROWSER_BIN
// points at a pre-installed binary.
func launchBrowser() (*rod.Browser, error) {
	l := launcher.New().
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-extensions").
		Set("disable-dev-shm-usage")

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return browser, nil
}

// newRodSessionFactory returns the production session factory. Without a
// pool every session launches and closes its own browser process; with a
// pool, Close returns the browser instead of killing it.
func newRodSessionFactory(pool *EnginePool, timeouts Timeouts) sessionFactory {
	return func(ctx context.Context) (renderSession, error) {
		var (
			browser *rod.Browser
			release func(*rod.Browser) error
		)

		if pool != nil {
			b, err := pool.Acquire()
			if err != nil {
				return nil, err
			}
			browser = b
			release = func(b *rod.Browser) error {
				pool.Release(b)
				return nil
			}
		} else {
			b, err := launchBrowser()
			if err != nil {
				return nil, err
			}
			browser = b
			release = func(b *rod.Browser) error { return b.Close() }
		}

		page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			_ = release(browser)
			return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
		}
		page = page.Context(ctx)

		if err := configurePage(page); err != nil {
			_ = page.Close()
			_ = release(browser)
			return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
		}

		return &rodSession{
			browser:  browser,
			page:     page,
			timeouts: timeouts,
			release:  release,
		}, nil
	}
}

// configurePage sets the high-density viewport and media emulation.
// Reduced motion stays at no-preference so CSS animations compute their
// running end state instead of a paused one.
func configurePage(page *rod.Page) error {
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: viewportScale,
		Mobile:            false,
	}); err != nil {
		return err
	}

	return proto.EmulationSetEmulatedMedia{
		Features: []*proto.EmulationMediaFeature{
			{Name: "prefers-color-scheme", Value: "light"},
			{Name: "prefers-reduced-motion", Value: "no-preference"},
		},
	}.Call(page)
}

// rodSession implements renderSession with go-rod. The HTML is written to
// a temp file and navigated via file:// so relative asset paths resolve
// the same way they do for the static-site output.
type rodSession struct {
	browser    *rod.Browser
	page       *rod.Page
	timeouts   Timeouts
	release    func(*rod.Browser) error
	tmpCleanup func()
}

// LoadHTML navigates to the content and waits for both the load event and
// a network-idle window, bounded by the content-load timeout.
func (s *rodSession) LoadHTML(ctx context.Context, htmlContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return err
	}
	s.tmpCleanup = cleanup

	page := s.page.Timeout(s.timeouts.ContentLoad)
	waitIdle := page.WaitRequestIdle(s.timeouts.NetworkIdle, nil, nil, nil)

	if err := page.Navigate("file://" + path); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}
	waitIdle()

	return nil
}

// Eval runs a script on the page, awaiting promises, bounded by timeout.
func (s *rodSession) Eval(timeout time.Duration, js string) error {
	_, err := s.page.Timeout(timeout).Eval(js)
	return err
}

// Screenshot captures a full-page JPEG to the given path, creating the
// parent directory when needed.
func (s *rodSession) Screenshot(path string) error {
	data, err := s.page.Timeout(s.timeouts.Screenshot).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: intPtr(screenshotQuality),
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, data, filePermissions)
}

// PDF emits the snapshot and drains the stream into memory. The buffer is
// only returned after the emission completed, never partially.
func (s *rodSession) PDF(opts *proto.PagePrintToPDF) ([]byte, error) {
	reader, err := s.page.PDF(opts)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

// Close releases the page, returns or shuts down the browser, and removes
// the temp HTML file. Safe to call exactly once per session.
func (s *rodSession) Close() error {
	var errs []error

	if err := s.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.release(s.browser); err != nil {
		errs = append(errs, err)
	}
	if s.tmpCleanup != nil {
		s.tmpCleanup()
	}

	return errors.Join(errs...)
}
