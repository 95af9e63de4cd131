// SPDX-License-Identifier: Apache-2.0

// Package suspend wraps the four suspension points spec §5 names (RC leaf
// lookup, FC leaf lookup, hint-text fetch, package resolution) with one
// shared policy: a tracing span scoped to the run, bounded exponential
// backoff for transient failures, and cooperative cancellation that wins
// the race over a pending retry.
package suspend

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
)

var tracer = otel.Tracer("github.com/holomush/ahbicht/internal/ahb")

// maxAttempts bounds retries of a single suspension-point call; the
// content evaluator itself decides what counts as retryable by wrapping
// its error in retry.RetryableError.
const maxAttempts = 4

// Call runs fn as one suspension-point call named spanName, tagged with
// runID and key, under a bounded exponential-backoff retry. A context
// cancellation always wins over a pending retry and surfaces as
// ahberr.Cancelled rather than the wrapped error.
func Call[T any](ctx context.Context, runID, spanName, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("ahb.run_id", runID),
		attribute.String("ahb.key", key),
	))
	defer span.End()

	slog.DebugContext(ctx, "suspension point call", "run_id", runID, "point", spanName, "key", key)

	backoff := retry.WithMaxRetries(maxAttempts, retry.NewExponential(10*time.Millisecond))

	var result T
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})

	if err != nil {
		span.RecordError(err)
		slog.DebugContext(ctx, "suspension point call failed", "run_id", runID, "point", spanName, "key", key, "error", err)
		if ctx.Err() != nil {
			return result, ahberr.Cancelled(runID, ctx.Err())
		}
		return result, err
	}
	return result, nil
}
