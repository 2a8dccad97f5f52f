package validation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/metric"
	"github.com/c360/ontoquery/rdf"
)

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	// Store owns the committed graph. Required.
	Store *graph.Store

	// Runner computes the closure; zero value uses the default cap.
	Runner InferenceRunner

	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger

	// Metrics is optional; nil disables metric recording.
	Metrics *metric.Metrics
}

// Gateway serializes all mutations of the committed graph through the
// validate-and-commit gate.
type Gateway struct {
	store   *graph.Store
	checker ConstraintChecker
	runner  InferenceRunner
	logger  *slog.Logger
	metrics *metric.Metrics

	// mu enforces the single-writer discipline: at most one
	// validation attempt owns a sandbox at a time.
	mu sync.Mutex
}

// NewGateway creates a Gateway over the given store.
func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		store:   cfg.Store,
		runner:  cfg.Runner,
		logger:  logger.With("component", "gateway"),
		metrics: cfg.Metrics,
	}
}

// ValidateAndCommit runs the sequential gate over a proposed batch:
// clone, apply, check, closure, promote. A Rejected or Inconsistent
// outcome discards the sandbox and leaves the committed graph
// untouched; only a promote failure returns a non-nil error, with the
// in-memory graph rolled back by the store.
func (gw *Gateway) ValidateAndCommit(ctx context.Context, proposed []rdf.Triple) (Outcome, error) {
	if len(proposed) == 0 {
		return Noop(), nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()

	sandbox := gw.store.Clone()
	applied := sandbox.AddAll(proposed)

	// The sandbox carries both the committed declarations and any the
	// batch itself adds, so evolution batches are checked against
	// their own schema statements.
	if violations := gw.checker.Check(sandbox, proposed); len(violations) > 0 {
		gw.logger.Warn("batch rejected",
			"proposed", len(proposed),
			"violations", len(violations),
			"first", violations[0].String())
		gw.recordOutcome(StatusRejected)
		return Rejected(violations), nil
	}

	entailed, err := gw.runner.Closure(sandbox)
	if err != nil {
		gw.logger.Error("batch inconsistent, schema-level reasoning failure",
			"proposed", len(proposed),
			"error", err)
		gw.recordOutcome(StatusInconsistent)
		return Inconsistent(err.Error()), nil
	}

	if err := gw.store.Promote(sandbox); err != nil {
		return Outcome{}, err
	}

	added := applied + entailed
	gw.logger.Info("batch committed",
		"proposed", len(proposed),
		"applied", applied,
		"entailed", entailed)
	gw.recordOutcome(StatusCommitted)
	if gw.metrics != nil {
		gw.metrics.RecordTriplesCommitted(added)
	}
	return Committed(added), nil
}

func (gw *Gateway) recordOutcome(s Status) {
	if gw.metrics != nil {
		gw.metrics.RecordValidationOutcome(s.String())
	}
}
