// Package telemetry provides OpenCensus stats and trace instrumentation
// for the parser and transformer. Parsing does no logging, and neither
// parsing nor transforming records metrics of its own (spec §5: "holds no
// global state");
// this package wraps those calls at the boundary so a host process can
// register views and export spans without the core packages importing
// an observability stack.
package telemetry

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
)

var (
	keyOperation = tag.MustNewKey("sevenmark.operation")
	keyOutcome   = tag.MustNewKey("sevenmark.outcome")

	latencyMs = stats.Float64(
		"sevenmark/operation_latency",
		"Latency of a parse/transform operation.",
		stats.UnitMilliseconds,
	)
	operationCount = stats.Int64(
		"sevenmark/operation_count",
		"Count of parse/transform operations by outcome.",
		stats.UnitDimensionless,
	)

	// OperationLatency distributes operation latency by operation name.
	OperationLatency = &view.View{
		Name:        "sevenmark/operation/latency",
		Measure:     latencyMs,
		Aggregation: view.Distribution(0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
		Description: "Distribution of sevenmark operation latency in milliseconds",
		TagKeys:     []tag.Key{keyOperation},
	}
	// OperationCount counts operations by name and outcome (ok/error).
	OperationCount = &view.View{
		Name:        "sevenmark/operation/count",
		Measure:     operationCount,
		Aggregation: view.Count(),
		Description: "Count of sevenmark operations by outcome",
		TagKeys:     []tag.Key{keyOperation, keyOutcome},
	}

	// Views is the full set of views a host process should register with
	// view.Register to collect sevenmark metrics.
	Views = []*view.View{OperationLatency, OperationCount}
)

// Track starts a trace span named "sevenmark."+operation and returns a
// function that records its elapsed latency and outcome. Call the
// returned function with the operation's error (nil on success) when it
// completes, typically via defer:
//
//	ctx, done := telemetry.Track(ctx, "parse")
//	defer func() { done(err) }()
func Track(ctx context.Context, operation string) (context.Context, func(err error)) {
	ctx, span := trace.StartSpan(ctx, "sevenmark."+operation)
	start := time.Now()
	return ctx, func(err error) {
		defer span.End()
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		}
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)
		stats.RecordWithTags(ctx,
			[]tag.Mutator{tag.Upsert(keyOperation, operation), tag.Upsert(keyOutcome, outcome)},
			latencyMs.M(elapsed), operationCount.M(1))
	}
}
