package orchestrator

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/c360/ontoquery/enrich"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/graph/query"
)

// mentionedExpr extracts local names from prefixed identifiers in a
// query string.
var mentionedExpr = regexp.MustCompile(`:([a-zA-Z0-9_]+)`)

// QueryResult is the outcome of one execution attempt. A failed run is
// distinct from a run that matched nothing: only the latter drives
// escalation.
type QueryResult struct {
	Result query.Result
	Err    error
}

// Failed reports whether the query could not be run at all.
func (r QueryResult) Failed() bool { return r.Err != nil }

// Empty reports whether the query ran and matched nothing.
func (r QueryResult) Empty() bool { return r.Err == nil && r.Result.IsEmpty() }

// Authority runs queries against consistent snapshots of the committed
// graph.
type Authority struct {
	store  *graph.Store
	logger *slog.Logger
}

// NewAuthority creates a query authority over the store. A nil logger
// defaults to slog.Default().
func NewAuthority(store *graph.Store, logger *slog.Logger) *Authority {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authority{store: store, logger: logger.With("component", "authority")}
}

// Execute parses and runs the query against the current committed
// snapshot. Parse and execution failures land in the result's Err
// field rather than an error return.
func (a *Authority) Execute(queryText string) QueryResult {
	g := a.store.Graph()

	q, err := query.Parse(queryText, g.Namespaces())
	if err != nil {
		a.logger.Warn("query parse failed", "error", err)
		return QueryResult{Err: err}
	}

	result, err := query.Execute(g, q)
	if err != nil {
		a.logger.Warn("query execution failed", "error", err)
		return QueryResult{Err: err}
	}

	a.logger.Debug("query executed", "rows", len(result.Rows))
	return QueryResult{Result: *result}
}

// Analyze builds the gap analysis for an empty result: the original
// question text plus the entity names the failed query mentioned,
// sorted and deduplicated.
func (a *Authority) Analyze(questionText, failedQuery string) enrich.Gap {
	seen := make(map[string]struct{})
	var entities []string
	for _, m := range mentionedExpr.FindAllStringSubmatch(failedQuery, -1) {
		name := ":" + m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		entities = append(entities, name)
	}
	sort.Strings(entities)

	return enrich.Gap{QueryText: questionText, MentionedEntities: entities}
}
