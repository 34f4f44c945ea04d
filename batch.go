package site2pdf

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RenderBatch runs many render jobs with bounded, chunked concurrency.
// Subject ids are partitioned into consecutive chunks of the configured
// concurrency; chunks run sequentially, jobs within a chunk run
// concurrently and the whole chunk settles before the next one starts.
// One job's failure never cancels or blocks its siblings.
//
// The result slice preserves the input order regardless of completion
// order within a chunk.
func (s *Service) RenderBatch(ctx context.Context, subjectIDs []string, opts *RenderOptions) []JobResult {
	if len(subjectIDs) == 0 {
		return nil
	}

	concurrency := s.cfg.concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]JobResult, len(subjectIDs))
	for start := 0; start < len(subjectIDs); start += concurrency {
		end := min(start+concurrency, len(subjectIDs))

		g := new(errgroup.Group)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				// Failures stay in the slot; returning nil keeps the
				// chunk siblings running.
				results[i] = s.RenderSubject(ctx, subjectIDs[i], opts)
				return nil
			})
		}
		_ = g.Wait()

		succeeded, failed := 0, 0
		for i := start; i < end; i++ {
			if results[i].Success() {
				succeeded++
			} else {
				failed++
			}
		}
		s.cfg.logger.Debug("batch chunk settled",
			"from", start, "to", end-1, "succeeded", succeeded, "failed", failed)
	}

	return results
}
