// Package site2pdf renders published portfolio sites to versioned PDF
// artifacts using headless Chrome.
//
// # Quick Start
//
// Create a service rooted at the directory shared with the site generator,
// then render a subject:
//
//	svc := site2pdf.NewService(site2pdf.WithRoot("/srv/portfolio"))
//	defer svc.Close()
//
//	job := svc.RenderSubject(ctx, "acme", nil)
//	if job.Err != nil {
//	    log.Fatal(job.Err)
//	}
//	fmt.Println(job.Artifact.Path)
//
// Each successful render writes a new timestamped artifact under
// {root}/generated-files/pdfs/; prior versions are never overwritten.
// Use Status to inspect the latest artifact and the full version list.
//
// # Rendering Pipeline
//
// A render walks these stages:
//
//  1. Validation of the subject's entry file (ValidationGate)
//  2. Style resolution: precompiled stylesheet or CDN fallback
//  3. HTML optimization (style injection, print CSS, script stripping)
//  4. Headless-Chrome rendering via go-rod with readiness waits for
//     images, fonts, utility-class application, and lazy-loaded content
//  5. Artifact persistence with lexicographic version ordering
//
// Raw HTML can be rendered without the filesystem conventions through
// RenderHTML, which returns the PDF bytes without persisting them.
//
// # Batch Rendering
//
// RenderBatch processes many subjects in chunks of a configurable
// concurrency (default 2). Each job owns its own browser instance; a
// failing job never disturbs its chunk siblings, and results preserve
// input order:
//
//	results := svc.RenderBatch(ctx, []string{"acme", "globex"}, nil)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). Set
// ROD_BROWSER_BIN to use a pre-installed binary; sandboxing is disabled
// automatically for containerized execution.
//
// For deployments that cannot afford a browser launch per render, an
// optional EnginePool keeps a bounded set of warm browser processes; wire
// it with WithEnginePool. The renderer itself stays pool-agnostic.
package site2pdf
