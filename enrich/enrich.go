package enrich

import (
	"context"

	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// Gap describes what a failed query was looking for: the original
// question text plus the entity names the query mentioned, as
// prefixed names.
type Gap struct {
	QueryText         string
	MentionedEntities []string
}

// Params carries the actionable target a handler identified, such as
// an author name to search for.
type Params map[string]string

// Record is one decoded catalog record.
type Record map[string]any

// str returns the string value for a key, or "" when absent or not a
// string.
func (r Record) str(key string) string {
	s, _ := r[key].(string)
	return s
}

// obj returns a nested record, or nil.
func (r Record) obj(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// list returns a nested record list.
func (r Record) list(key string) []Record {
	raw, _ := r[key].([]any)
	out := make([]Record, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Handler is the capability contract one entity kind implements.
type Handler interface {
	// Name identifies the handler in logs and provenance triples.
	Name() string

	// IdentifyTarget inspects the gap for actionable missing
	// information; false means this handler has nothing to do.
	IdentifyTarget(gap Gap) (Params, bool)

	// FetchRecords queries the external catalog for the target.
	FetchRecords(ctx context.Context, params Params) ([]Record, error)

	// ToTriples converts fetched records into a proposed batch,
	// including provenance triples.
	ToTriples(records []Record) []rdf.Triple
}

// withProvenance appends the enriched subject's provenance: who added
// it and where the data came from.
func withProvenance(batch []rdf.Triple, subject rdf.Term, handler, sourceURL string) []rdf.Triple {
	batch = append(batch,
		rdf.NewTriple(subject, rdf.NewIRI(vocabulary.ProvAddedBy), rdf.NewLiteral(handler)))
	if sourceURL != "" {
		batch = append(batch,
			rdf.NewTriple(subject, rdf.NewIRI(vocabulary.ProvSource), rdf.NewIRI(sourceURL)))
	}
	return batch
}

// localID extracts the trailing path segment of a catalog entity URL,
// e.g. "https://openalex.org/W123" yields "W123".
func localID(entityURL string) string {
	for i := len(entityURL) - 1; i >= 0; i-- {
		if entityURL[i] == '/' {
			return entityURL[i+1:]
		}
	}
	return entityURL
}
