package enrich

import (
	"context"
	"regexp"
	"strings"

	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// nameExpr extracts a person name from the question forms the pipeline
// understands, e.g. "papers by geoffrey hinton".
var nameExpr = regexp.MustCompile(`(papers by|who is) (.+)`)

// nameFromQuery returns the person name mentioned in the query text,
// lowercased, or "" when none is found.
func nameFromQuery(queryText string) string {
	m := nameExpr.FindStringSubmatch(strings.ToLower(queryText))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[2])
}

// PaperHandler enriches the graph with papers and their author links.
type PaperHandler struct {
	fetcher Fetcher
	base    string
}

// NewPaperHandler creates a paper handler minting IRIs in the given
// base namespace.
func NewPaperHandler(fetcher Fetcher, base string) *PaperHandler {
	return &PaperHandler{fetcher: fetcher, base: base}
}

func (h *PaperHandler) Name() string { return "PaperHandler" }

// IdentifyTarget looks for an author name in the query text.
func (h *PaperHandler) IdentifyTarget(gap Gap) (Params, bool) {
	name := nameFromQuery(gap.QueryText)
	if name == "" {
		return nil, false
	}
	return Params{"author_name": name}, true
}

// FetchRecords queries the catalog's works endpoint.
func (h *PaperHandler) FetchRecords(ctx context.Context, params Params) ([]Record, error) {
	return h.fetcher.SearchWorks(ctx, params["author_name"])
}

// ToTriples converts work records into paper nodes, author links and
// author nodes, each with provenance.
func (h *PaperHandler) ToTriples(records []Record) []rdf.Triple {
	var batch []rdf.Triple
	for _, work := range records {
		workURL := work.str("id")
		if workURL == "" {
			continue
		}
		paper := rdf.NewIRI(h.base + localID(workURL))

		batch = append(batch, rdf.NewTriple(paper,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(h.base+"Paper")))
		if title := work.str("display_name"); title != "" {
			batch = append(batch, rdf.NewTriple(paper,
				rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLiteral(title)))
		}
		batch = withProvenance(batch, paper, h.Name(), workURL)

		for _, authorship := range work.list("authorships") {
			author := authorship.obj("author")
			authorURL := author.str("id")
			if authorURL == "" {
				continue
			}
			authorTerm := rdf.NewIRI(h.base + localID(authorURL))

			batch = append(batch, rdf.NewTriple(paper,
				rdf.NewIRI(h.base+"hasAuthor"), authorTerm))
			batch = append(batch, rdf.NewTriple(authorTerm,
				rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(h.base+"Author")))
			if name := author.str("display_name"); name != "" {
				batch = append(batch, rdf.NewTriple(authorTerm,
					rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLiteral(name)))
			}
			batch = withProvenance(batch, authorTerm, h.Name(), authorURL)
		}
	}
	return batch
}
