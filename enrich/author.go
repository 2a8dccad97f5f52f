package enrich

import (
	"context"

	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// AuthorHandler enriches the graph with author metadata and
// affiliations.
type AuthorHandler struct {
	fetcher Fetcher
	base    string
}

// NewAuthorHandler creates an author handler minting IRIs in the given
// base namespace.
func NewAuthorHandler(fetcher Fetcher, base string) *AuthorHandler {
	return &AuthorHandler{fetcher: fetcher, base: base}
}

func (h *AuthorHandler) Name() string { return "AuthorHandler" }

// IdentifyTarget looks for an author name in the query text.
func (h *AuthorHandler) IdentifyTarget(gap Gap) (Params, bool) {
	name := nameFromQuery(gap.QueryText)
	if name == "" {
		return nil, false
	}
	return Params{"author_name": name}, true
}

// FetchRecords queries the catalog's authors endpoint.
func (h *AuthorHandler) FetchRecords(ctx context.Context, params Params) ([]Record, error) {
	return h.fetcher.SearchAuthors(ctx, params["author_name"])
}

// ToTriples converts author records into author nodes and, when the
// record carries one, an institution affiliation.
func (h *AuthorHandler) ToTriples(records []Record) []rdf.Triple {
	var batch []rdf.Triple
	for _, rec := range records {
		authorURL := rec.str("id")
		if authorURL == "" {
			continue
		}
		author := rdf.NewIRI(h.base + localID(authorURL))

		batch = append(batch, rdf.NewTriple(author,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(h.base+"Author")))
		if name := rec.str("display_name"); name != "" {
			batch = append(batch, rdf.NewTriple(author,
				rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLiteral(name)))
		}
		batch = withProvenance(batch, author, h.Name(), authorURL)

		institution := rec.obj("last_known_institution")
		instURL := institution.str("id")
		if instURL == "" {
			continue
		}
		inst := rdf.NewIRI(h.base + localID(instURL))

		batch = append(batch, rdf.NewTriple(author,
			rdf.NewIRI(h.base+"affiliatedWith"), inst))
		batch = append(batch, rdf.NewTriple(inst,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(h.base+"Institution")))
		if name := institution.str("display_name"); name != "" {
			batch = append(batch, rdf.NewTriple(inst,
				rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLiteral(name)))
		}
		batch = withProvenance(batch, inst, h.Name(), instURL)
	}
	return batch
}
