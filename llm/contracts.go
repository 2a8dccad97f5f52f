package llm

import (
	"context"

	"github.com/c360/ontoquery/enrich"
	"github.com/c360/ontoquery/schema"
)

// Translation is a proposed query for a natural-language question,
// scored by the translator's own confidence.
type Translation struct {
	Query      string  `json:"query"`
	Confidence float64 `json:"confidence"`
}

// Refinement is an improved query produced after a failed attempt.
type Refinement struct {
	Query       string  `json:"query"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Translator converts a natural-language question into a query.
type Translator interface {
	Translate(ctx context.Context, text string) (Translation, error)
}

// Refiner produces an improved query conditioned on the gap analysis
// of a failed one.
type Refiner interface {
	Refine(ctx context.Context, text, failedQuery string, gap enrich.Gap) (Refinement, error)
}

// SchemaProposer suggests ontology extensions needed to model a
// question's concepts.
type SchemaProposer interface {
	ProposeSchema(ctx context.Context, text string) (schema.Proposal, error)
}
