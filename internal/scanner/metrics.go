package scanner

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies the scanner's spans.
const tracerName = "beamgrid.scanner"

var (
	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beamgrid_scanner_simulations_total",
		Help: "Boundary entries evaluated, by whether the count was computed or served from the result store",
	}, []string{"source"})

	energizedCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "beamgrid_scanner_energized_cells",
		Help:    "Energized cell count per computed entry",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "beamgrid_scanner_scan_duration_seconds",
		Help:    "Wall time of a full boundary scan",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
	})
)

const (
	sourceComputed = "computed"
	sourceCached   = "cached"
)

func startScanSpan(ctx context.Context, tracer trace.Tracer, width, height, candidates, workers int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Scanner.Scan",
		trace.WithAttributes(
			attribute.Int("grid.width", width),
			attribute.Int("grid.height", height),
			attribute.Int("scan.candidates", candidates),
			attribute.Int("scan.workers", workers),
		),
	)
}

func setScanSpanResult(span trace.Span, best EntryResult, cached int) {
	span.SetAttributes(
		attribute.Int("scan.best_count", best.Count),
		attribute.String("scan.best_entry", best.Entry.String()),
		attribute.Int("scan.cached", cached),
	)
	span.SetStatus(codes.Ok, "")
}

func setScanSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
