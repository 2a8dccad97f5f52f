package enrich

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// ConceptHandler enriches the graph with research concept nodes.
type ConceptHandler struct {
	fetcher Fetcher
	base    string
}

// NewConceptHandler creates a concept handler minting IRIs in the
// given base namespace.
func NewConceptHandler(fetcher Fetcher, base string) *ConceptHandler {
	return &ConceptHandler{fetcher: fetcher, base: base}
}

func (h *ConceptHandler) Name() string { return "ConceptHandler" }

// IdentifyTarget scans the mentioned entities for a capitalized
// underscore name like :Deep_Learning and turns it into a concept
// search term.
func (h *ConceptHandler) IdentifyTarget(gap Gap) (Params, bool) {
	for _, entity := range gap.MentionedEntities {
		if len(entity) < 2 || !strings.HasPrefix(entity, ":") {
			continue
		}
		local := entity[1:]
		if unicode.IsUpper(rune(local[0])) && strings.Contains(local, "_") {
			return Params{"concept_name": strings.ReplaceAll(local, "_", " ")}, true
		}
	}
	return nil, false
}

// FetchRecords queries the catalog's concepts endpoint.
func (h *ConceptHandler) FetchRecords(ctx context.Context, params Params) ([]Record, error) {
	return h.fetcher.SearchConcepts(ctx, params["concept_name"])
}

// ToTriples converts concept records into concept nodes with their
// hierarchy level.
func (h *ConceptHandler) ToTriples(records []Record) []rdf.Triple {
	var batch []rdf.Triple
	for _, rec := range records {
		conceptURL := rec.str("id")
		if conceptURL == "" {
			continue
		}
		concept := rdf.NewIRI(h.base + localID(conceptURL))

		batch = append(batch, rdf.NewTriple(concept,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(h.base+"Concept")))
		if name := rec.str("display_name"); name != "" {
			batch = append(batch, rdf.NewTriple(concept,
				rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLiteral(name)))
		}
		if level, ok := rec["level"].(float64); ok {
			batch = append(batch, rdf.NewTriple(concept,
				rdf.NewIRI(h.base+"hasLevel"),
				rdf.NewTypedLiteral(strconv.Itoa(int(level)), vocabulary.XSDInteger)))
		}
		batch = withProvenance(batch, concept, h.Name(), conceptURL)
	}
	return batch
}
