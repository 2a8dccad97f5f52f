package enrich

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/c360/ontoquery/validation"
)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Gateway commits handler batches. Required.
	Gateway *validation.Gateway

	// Fetcher is the external catalog client. Required.
	Fetcher Fetcher

	// Base is the ontology namespace handlers mint IRIs in.
	Base string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Dispatcher selects enrichment handlers from lexical triggers in the
// query text and runs their cycles.
type Dispatcher struct {
	handlers map[string]Handler
	gateway  *validation.Gateway
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher with the paper, author and
// concept handlers registered.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: map[string]Handler{
			"paper":   NewPaperHandler(cfg.Fetcher, cfg.Base),
			"author":  NewAuthorHandler(cfg.Fetcher, cfg.Base),
			"concept": NewConceptHandler(cfg.Fetcher, cfg.Base),
		},
		gateway: cfg.Gateway,
		logger:  logger.With("component", "dispatcher"),
	}
}

// Dispatch returns the handler keys selected for a query, sorted.
// "papers by" selects the paper handler, "who is" the author handler,
// a concept mention the concept handler; with no trigger the fallback
// set is {author, paper}.
func (d *Dispatcher) Dispatch(queryText string) []string {
	lower := strings.ToLower(queryText)
	selected := make(map[string]bool)

	switch {
	case strings.Contains(lower, "papers by"):
		selected["paper"] = true
	case strings.Contains(lower, "who is"):
		selected["author"] = true
	}
	if strings.Contains(lower, "concept") {
		selected["concept"] = true
	}
	if len(selected) == 0 {
		selected["author"] = true
		selected["paper"] = true
	}

	keys := make([]string, 0, len(selected))
	for k := range selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Enrich runs the selected handlers' identify, fetch and commit cycle
// for a gap and reports whether any commit added triples. A handler
// that identifies nothing, fetches nothing, or fails is a logged no-op
// for that handler; only a fatal commit error aborts.
func (d *Dispatcher) Enrich(ctx context.Context, gap Gap) (bool, error) {
	added := false
	for _, key := range d.Dispatch(gap.QueryText) {
		h := d.handlers[key]
		logger := d.logger.With("handler", h.Name())

		params, ok := h.IdentifyTarget(gap)
		if !ok {
			logger.Warn("no actionable missing info identified")
			continue
		}

		records, err := h.FetchRecords(ctx, params)
		if err != nil {
			logger.Error("fetch failed", "error", err)
			continue
		}
		if len(records) == 0 {
			logger.Warn("no external data found", "params", params)
			continue
		}

		batch := h.ToTriples(records)
		logger.Info("fetched records", "records", len(records), "triples", len(batch))

		outcome, err := d.gateway.ValidateAndCommit(ctx, batch)
		if err != nil {
			return added, err
		}
		if !outcome.OK() {
			logger.Warn("batch not committed", "outcome", outcome.Status.String())
			continue
		}
		if outcome.Added > 0 {
			added = true
		}
	}
	return added, nil
}
