package du

import (
	"context"
	"errors"
	"time"

	"go.uber.org/multierr"
)

// Report is the outcome of scanning several roots with the same options.
type Report struct {
	// Trees holds one tree per root that could be scanned, in argument order.
	Trees []*Tree
	// Failures holds the fatal error of every root that could not be scanned.
	Failures []error
	// GrandTotal is the sum of the root totals in Trees.
	GrandTotal Usage
	// Elapsed is the total time taken for the scans.
	Elapsed time.Duration
}

// SoftErrors returns the per-entry failures of all trees.
func (r *Report) SoftErrors() []*EntryError {
	var out []*EntryError
	for _, t := range r.Trees {
		out = append(out, t.Errors...)
	}

	return out
}

// Err combines root failures and soft errors, or returns nil.
func (r *Report) Err() error {
	err := multierr.Combine(r.Failures...)
	for _, t := range r.Trees {
		err = multierr.Append(err, t.Err())
	}

	return err
}

// Run scans every root independently and sums their totals.
//
// Invalid options abort before any root is touched. A root that cannot be
// accessed, or whose scan violates a traversal invariant, is recorded in
// Report.Failures and the remaining roots are still scanned. Cancellation of
// ctx aborts the whole run.
//
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, roots []string, progressHook ProgressFunc) (*Report, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	if len(roots) == 0 {
		roots = []string{"."}
	}

	log := opt.logger()
	log.Debug("scan options",
		"roots", roots,
		"block_size", uint64(opt.BlockSize),
		"apparent", opt.Apparent,
		"max_depth", opt.Policy.MaxDepth,
		"hidden", opt.Policy.IncludeHidden,
		"one_file_system", opt.Policy.OneFileSystem,
		"count_links", opt.Policy.CountLinks,
		"excludes", opt.Policy.Excludes.Strings(),
	)

	start := time.Now()
	prog := newProgress(progressHook, opt.ProgressInterval)
	report := &Report{}

	for _, root := range roots {
		tree, err := scan(ctx, root, opt, prog)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}

			log.Debug("root failed", "root", root, "error", err)
			report.Failures = append(report.Failures, err)

			continue
		}

		report.Trees = append(report.Trees, tree)
	}

	report.GrandTotal = Total(report.Trees...)
	report.Elapsed = time.Since(start)

	return report, nil
}
