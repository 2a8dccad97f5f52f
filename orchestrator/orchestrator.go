package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360/ontoquery/enrich"
	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/graph/query"
	"github.com/c360/ontoquery/llm"
	"github.com/c360/ontoquery/metric"
	"github.com/c360/ontoquery/pkg/cache"
	"github.com/c360/ontoquery/schema"
	"github.com/c360/ontoquery/validation"
)

// Phase names a state of the resolution machine.
type Phase string

const (
	PhaseGenerate Phase = "generate"
	PhaseExecute  Phase = "execute"
	PhaseEvaluate Phase = "evaluate"
	PhaseEnrich   Phase = "enrich"
	PhaseRefine   Phase = "refine"
	PhaseEvolve   Phase = "evolve"
	PhaseFinalize Phase = "finalize"
	PhaseError    Phase = "error"
)

// Answer envelope statuses.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// maxExecutions bounds query re-runs per question.
const maxExecutions = 3

// PhaseStep is one entry of an envelope's phase trace.
type PhaseStep struct {
	Phase   Phase         `json:"phase"`
	Note    string        `json:"note,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Envelope is the final answer for one question.
type Envelope struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	IsEmpty    bool        `json:"is_empty"`
	Bindings   []query.Row `json:"bindings"`
	FinalQuery string      `json:"final_query,omitempty"`
	Trace      []PhaseStep `json:"trace"`
	Err        string      `json:"error,omitempty"`
}

// Config assembles an Orchestrator. Store, Gateway, Dispatcher and
// Translator are required; the escalation collaborators are optional
// and their phases degrade to no-ops when absent.
type Config struct {
	Store      *graph.Store
	Gateway    *validation.Gateway
	Dispatcher *enrich.Dispatcher

	// Translator is the cheap first-pass query generator.
	Translator llm.Translator

	// Escalation is consulted when the first translation's confidence
	// falls below GenerateConfidence.
	Escalation llm.Translator
	Refiner    llm.Refiner
	Proposer   llm.SchemaProposer

	// GenerateConfidence and RefineConfidence default to 0.5.
	GenerateConfidence float64
	RefineConfidence   float64

	// CacheSize bounds the answer cache (default 128).
	CacheSize int

	Logger  *slog.Logger
	Metrics *metric.Metrics
}

// Orchestrator resolves natural-language questions over the committed
// graph.
type Orchestrator struct {
	cfg       Config
	authority *Authority
	answers   *cache.LRU[Envelope]
	logger    *slog.Logger
}

// New creates an Orchestrator from the config.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Store == nil || cfg.Gateway == nil || cfg.Dispatcher == nil || cfg.Translator == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "orchestrator", "New",
			"store, gateway, dispatcher and translator are required")
	}
	if cfg.GenerateConfidence == 0 {
		cfg.GenerateConfidence = 0.5
	}
	if cfg.RefineConfidence == 0 {
		cfg.RefineConfidence = 0.5
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "orchestrator")

	answers, err := cache.NewLRU[Envelope](cfg.CacheSize)
	if err != nil {
		return nil, errors.WrapInvalid(err, "orchestrator", "New", "creating answer cache failed")
	}

	return &Orchestrator{
		cfg:       cfg,
		authority: NewAuthority(cfg.Store, logger),
		answers:   answers,
		logger:    logger,
	}, nil
}

// resolution is the mutable state threaded through one question's
// phases.
type resolution struct {
	text       string
	query      string
	result     QueryResult
	gap        enrich.Gap
	executions int

	enriched bool
	refined  bool
	evolved  bool

	trace []PhaseStep
}

// HandleQuery resolves one question and returns its answer envelope.
// Identical questions are served from the answer cache; cached
// envelopes are snapshots and are not invalidated by later commits.
// Panics inside the pipeline surface as an Error envelope.
func (o *Orchestrator) HandleQuery(ctx context.Context, text string) (envelope Envelope) {
	if cached, ok := o.answers.Get(text); ok {
		o.logger.Debug("answer cache hit", "text", text)
		if o.cfg.Metrics != nil {
			o.cfg.Metrics.RecordCacheHit()
		}
		return cached
	}
	if o.cfg.Metrics != nil {
		o.cfg.Metrics.RecordCacheMiss()
	}

	id := uuid.New().String()
	res := &resolution{text: text}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic during resolution", "id", id, "panic", r)
			envelope = o.errorEnvelope(id, res, fmt.Sprintf("internal failure: %v", r))
		}
		if o.cfg.Metrics != nil {
			o.cfg.Metrics.RecordQueryServed(envelope.Status)
		}
	}()

	o.logger.Info("resolving question", "id", id, "text", text)
	envelope = o.resolve(ctx, id, res)

	if envelope.Status != StatusError {
		o.answers.Set(text, envelope)
	}
	return envelope
}

// resolve runs the phase machine to a terminal envelope.
func (o *Orchestrator) resolve(ctx context.Context, id string, res *resolution) Envelope {
	phase := PhaseGenerate
	for {
		if err := ctx.Err(); err != nil {
			return o.errorEnvelope(id, res, "resolution cancelled: "+err.Error())
		}

		start := time.Now()
		next, failure := o.step(ctx, phase, res)
		elapsed := time.Since(start)

		res.trace = append(res.trace, PhaseStep{Phase: phase, Note: failure, Elapsed: elapsed})
		if o.cfg.Metrics != nil {
			o.cfg.Metrics.RecordPhaseDuration(string(phase), elapsed)
		}

		switch next {
		case PhaseError:
			return o.errorEnvelope(id, res, failure)
		case PhaseFinalize:
			return o.finalize(id, res)
		}
		phase = next
	}
}

// step executes one phase and returns the next phase, plus a note
// describing any non-fatal failure recorded in the trace.
func (o *Orchestrator) step(ctx context.Context, phase Phase, res *resolution) (Phase, string) {
	switch phase {
	case PhaseGenerate:
		return o.generate(ctx, res)
	case PhaseExecute:
		res.executions++
		res.result = o.authority.Execute(res.query)
		return PhaseEvaluate, ""
	case PhaseEvaluate:
		return o.evaluate(res)
	case PhaseEnrich:
		return o.enrichPhase(ctx, res)
	case PhaseRefine:
		return o.refinePhase(ctx, res)
	case PhaseEvolve:
		return o.evolvePhase(ctx, res)
	default:
		return PhaseError, fmt.Sprintf("unknown phase %q", phase)
	}
}

func (o *Orchestrator) generate(ctx context.Context, res *resolution) (Phase, string) {
	translation, err := o.cfg.Translator.Translate(ctx, res.text)
	if err != nil {
		return PhaseError, "translation failed: " + err.Error()
	}

	note := ""
	if translation.Confidence < o.cfg.GenerateConfidence && o.cfg.Escalation != nil {
		o.logger.Info("translation confidence below threshold, escalating",
			"confidence", translation.Confidence)
		escalated, err := o.cfg.Escalation.Translate(ctx, res.text)
		if err != nil {
			// Keep the cheap translation rather than failing the
			// question.
			o.logger.Warn("escalated translation failed", "error", err)
			note = "escalated translation failed, kept first-pass query"
		} else {
			translation = escalated
			note = "escalated translation adopted"
		}
	}

	res.query = translation.Query
	return PhaseExecute, note
}

func (o *Orchestrator) evaluate(res *resolution) (Phase, string) {
	if res.result.Failed() {
		return PhaseError, "query failed: " + res.result.Err.Error()
	}
	if !res.result.Empty() {
		return PhaseFinalize, ""
	}

	res.gap = o.authority.Analyze(res.text, res.query)
	switch {
	case !res.enriched:
		return PhaseEnrich, ""
	case !res.refined:
		return PhaseRefine, ""
	case !res.evolved:
		return PhaseEvolve, ""
	default:
		return PhaseFinalize, ""
	}
}

func (o *Orchestrator) enrichPhase(ctx context.Context, res *resolution) (Phase, string) {
	res.enriched = true

	added, err := o.cfg.Dispatcher.Enrich(ctx, res.gap)
	if err != nil {
		return PhaseError, "enrichment commit failed: " + err.Error()
	}
	if added {
		return o.reExecute(res, "")
	}
	return PhaseRefine, "enrichment added nothing"
}

func (o *Orchestrator) refinePhase(ctx context.Context, res *resolution) (Phase, string) {
	res.refined = true
	if o.cfg.Refiner == nil {
		return PhaseEvolve, "no refiner configured"
	}

	refinement, err := o.cfg.Refiner.Refine(ctx, res.text, res.query, res.gap)
	if err != nil {
		o.logger.Warn("refinement failed", "error", err)
		return PhaseEvolve, "refinement failed: " + err.Error()
	}
	if refinement.Confidence <= o.cfg.RefineConfidence {
		o.logger.Info("refinement below threshold, not adopted",
			"confidence", refinement.Confidence)
		return PhaseEvolve, "refinement below threshold"
	}

	o.logger.Info("refined query adopted",
		"confidence", refinement.Confidence, "explanation", refinement.Explanation)
	res.query = refinement.Query
	return o.reExecute(res, "")
}

func (o *Orchestrator) evolvePhase(ctx context.Context, res *resolution) (Phase, string) {
	res.evolved = true
	if o.cfg.Proposer == nil {
		return PhaseFinalize, "no schema proposer configured"
	}

	proposal, err := o.cfg.Proposer.ProposeSchema(ctx, res.text)
	if err != nil {
		o.logger.Warn("schema proposal failed", "error", err)
		return PhaseFinalize, "schema proposal failed: " + err.Error()
	}
	if proposal.Empty() {
		return PhaseFinalize, "no schema changes proposed"
	}

	evolver := schema.NewEvolver(o.cfg.Store.Graph(), o.logger)
	batch, err := evolver.BuildTriples(proposal)
	if err != nil {
		// An unresolvable name sinks only this evolution attempt.
		o.logger.Warn("schema proposal unresolvable", "error", err)
		return PhaseFinalize, "schema proposal unresolvable: " + err.Error()
	}

	outcome, err := o.cfg.Gateway.ValidateAndCommit(ctx, batch)
	if err != nil {
		return PhaseError, "schema commit failed: " + err.Error()
	}
	if !outcome.OK() {
		o.logger.Warn("schema proposal rejected", "status", outcome.Status, "reason", outcome.Reason)
		return o.reExecute(res, "schema proposal rejected")
	}
	return o.reExecute(res, "")
}

// reExecute transitions back to Execute while the run bound allows,
// otherwise finalizes with whatever the last result was.
func (o *Orchestrator) reExecute(res *resolution, note string) (Phase, string) {
	if res.executions >= maxExecutions {
		return PhaseFinalize, "execution bound reached"
	}
	return PhaseExecute, note
}

func (o *Orchestrator) finalize(id string, res *resolution) Envelope {
	status := StatusSuccess
	if res.result.Empty() {
		status = StatusEmpty
	}
	bindings := res.result.Result.Rows
	if bindings == nil {
		bindings = []query.Row{}
	}

	o.logger.Info("question resolved",
		"id", id, "status", status, "rows", len(bindings), "executions", res.executions)
	return Envelope{
		ID:         id,
		Status:     status,
		IsEmpty:    status == StatusEmpty,
		Bindings:   bindings,
		FinalQuery: res.query,
		Trace:      res.trace,
	}
}

func (o *Orchestrator) errorEnvelope(id string, res *resolution, reason string) Envelope {
	o.logger.Error("question failed", "id", id, "reason", reason)
	return Envelope{
		ID:       id,
		Status:   StatusError,
		IsEmpty:  true,
		Bindings: []query.Row{},
		Trace:    res.trace,
		Err:      reason,
	}
}
