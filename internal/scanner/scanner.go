// Package scanner finds the boundary entry that energizes the most cells.
//
// Every boundary entry is simulated independently against the same read-only
// grid. Runs share nothing, so they are fanned out to a bounded pool of
// goroutines; each run writes only its own slot of the results slice and the
// maximum is reduced after all runs have finished, so no lock guards the
// running best.
//
// Ties are broken by enumeration order (see Entries): the first entry to reach
// the maximum count wins, regardless of which worker finished first.
package scanner

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/beamgrid/internal/beam"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
	"github.com/specialistvlad/beamgrid/internal/grid"
	"github.com/specialistvlad/beamgrid/internal/resultstore"
)

// Result is the best entry and its energized count.
type Result struct {
	Count int
	Entry beam.State
}

// EntryResult is the outcome for one candidate entry.
type EntryResult struct {
	Index  int // position in the Entries enumeration
	Entry  beam.State
	Count  int
	Cached bool // served from the result store
}

// Report is the outcome of a full boundary scan.
type Report struct {
	Best     EntryResult
	Entries  []EntryResult // in enumeration order
	Workers  int
	Duration time.Duration
}

// Top returns the n best entries, highest count first and enumeration order
// among equal counts. n larger than the number of entries returns them all.
func (r *Report) Top(n int) []EntryResult {
	if n <= 0 {
		return nil
	}
	sorted := slices.Clone(r.Entries)
	slices.SortStableFunc(sorted, func(a, b EntryResult) int {
		return b.Count - a.Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Scanner runs boundary scans. The zero value is not usable; use New.
type Scanner struct {
	workers int
	store   resultstore.Store
	tracer  trace.Tracer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers bounds the number of concurrent simulations. Values below one
// are treated as one.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithStore makes the scanner consult and fill store. The store must belong
// to the grid being scanned.
func WithStore(store resultstore.Store) Option {
	return func(s *Scanner) {
		s.store = store
	}
}

// WithTracerProvider makes the scanner start its spans from tp instead of
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Scanner) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New creates a scanner. By default it uses one worker per CPU, no store and
// the global tracer provider.
func New(opts ...Option) *Scanner {
	s := &Scanner{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Workers returns the configured concurrency limit.
func (s *Scanner) Workers() int {
	return s.workers
}

// FindMaximumEnergized returns the highest energized count over all boundary
// entries of g and the first entry, in enumeration order, that reaches it.
func (s *Scanner) FindMaximumEnergized(ctx context.Context, g *grid.Grid) (Result, error) {
	report, err := s.Scan(ctx, g)
	if err != nil {
		return Result{}, err
	}
	return Result{Count: report.Best.Count, Entry: report.Best.Entry}, nil
}

// Scan simulates every boundary entry of g. Cancelling ctx stops new runs from
// starting; runs already in progress complete first.
func (s *Scanner) Scan(ctx context.Context, g *grid.Grid) (*Report, error) {
	entries := Entries(g)
	w, h := g.Dimensions()

	ctx, span := startScanSpan(ctx, s.tracer, w, h, len(entries), s.workers)
	defer span.End()

	logger := ctxlog.FromContext(ctx).With("component", "scanner")
	logger.Debug("Boundary scan starting.", "width", w, "height", h, "candidates", len(entries), "workers", s.workers)
	start := time.Now()

	results := make([]EntryResult, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	for i, entry := range entries {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := s.evaluate(egCtx, g, entry)
			if err != nil {
				return err
			}
			res.Index = i
			results[i] = res
			return nil
		})
	}

	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		setScanSpanError(span, err)
		logger.Debug("Boundary scan aborted.", "error", err)
		return nil, fmt.Errorf("boundary scan aborted: %w", err)
	}

	best := results[0]
	cached := 0
	for _, res := range results {
		if res.Count > best.Count {
			best = res
		}
		if res.Cached {
			cached++
		}
	}

	elapsed := time.Since(start)
	scanDuration.Observe(elapsed.Seconds())
	setScanSpanResult(span, best, cached)
	logger.Debug("Boundary scan finished.", "best_entry", best.Entry.String(), "best_count", best.Count, "cached", cached, "duration", elapsed)

	return &Report{
		Best:     best,
		Entries:  results,
		Workers:  s.workers,
		Duration: elapsed,
	}, nil
}

func (s *Scanner) evaluate(ctx context.Context, g *grid.Grid, entry beam.State) (EntryResult, error) {
	if s.store != nil {
		if count, ok := s.store.Get(ctx, entry); ok {
			simulationsTotal.WithLabelValues(sourceCached).Inc()
			return EntryResult{Entry: entry, Count: count, Cached: true}, nil
		}
	}

	count, err := beam.Simulate(g, entry)
	if err != nil {
		return EntryResult{}, fmt.Errorf("simulating entry %s: %w", entry, err)
	}
	simulationsTotal.WithLabelValues(sourceComputed).Inc()
	energizedCells.Observe(float64(count))

	if s.store != nil {
		s.store.Set(ctx, entry, count)
	}
	return EntryResult{Entry: entry, Count: count}, nil
}
