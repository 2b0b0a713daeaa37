package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal    = "lintfang.files.total"
	metricProblemsTotal = "lintfang.problems.total"
	metricFixPassTotal  = "lintfang.fix.passes.total"
	metricVerifyTime    = "lintfang.verify.duration.seconds"

	attrSeverity = "severity"
)

// verifyBucketBoundaries covers 1ms to 30s: single small files parse in
// milliseconds, multi-pass fixes on large files can take seconds.
var verifyBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// LintMetrics holds OTel instruments for verification metrics.
type LintMetrics struct {
	filesTotal    metric.Int64Counter
	problemsTotal metric.Int64Counter
	fixPassTotal  metric.Int64Counter
	verifyTime    metric.Float64Histogram
}

// FileStats holds the statistics for one verified file.
type FileStats struct {
	Errors    int64
	Warnings  int64
	FixPasses int64
	Duration  time.Duration
}

// NewLintMetrics creates verification metric instruments from the given meter.
func NewLintMetrics(mt metric.Meter) (*LintMetrics, error) {
	b := newMetricBuilder(mt)

	lm := &LintMetrics{
		filesTotal:    b.counter(metricFilesTotal, "Total files verified", "{file}"),
		problemsTotal: b.counter(metricProblemsTotal, "Total problems reported by severity", "{problem}"),
		fixPassTotal:  b.counter(metricFixPassTotal, "Total verify-patch passes executed", "{pass}"),
		verifyTime:    b.histogram(metricVerifyTime, "Per-file verification duration in seconds", "s", verifyBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return lm, nil
}

// RecordFile records statistics for one completed file verification.
// Safe to call on a nil receiver (no-op).
func (lm *LintMetrics) RecordFile(ctx context.Context, stats FileStats) {
	if lm == nil {
		return
	}

	lm.filesTotal.Add(ctx, 1)
	lm.fixPassTotal.Add(ctx, stats.FixPasses)
	lm.verifyTime.Record(ctx, stats.Duration.Seconds())

	lm.problemsTotal.Add(ctx, stats.Errors, metric.WithAttributes(attribute.String(attrSeverity, "error")))
	lm.problemsTotal.Add(ctx, stats.Warnings, metric.WithAttributes(attribute.String(attrSeverity, "warn")))
}
