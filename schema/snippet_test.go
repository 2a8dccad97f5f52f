package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

func snippetGraph() *graph.Graph {
	g := graph.New(vocabulary.DefaultBaseNamespace)
	iri := func(local string) rdf.Term { return rdf.NewIRI(vocabulary.DefaultBaseNamespace + local) }
	typePred := rdf.NewIRI(vocabulary.RDFType)

	g.Add(rdf.NewTriple(iri("Paper"), typePred, rdf.NewIRI(vocabulary.OWLClass)))
	g.Add(rdf.NewTriple(iri("Paper"), rdf.NewIRI(vocabulary.RDFSSubClassOf), rdf.NewIRI(vocabulary.OWLThing)))
	g.Add(rdf.NewTriple(iri("hasAuthor"), typePred, rdf.NewIRI(vocabulary.OWLObjectProperty)))
	g.Add(rdf.NewTriple(iri("hasAuthor"), rdf.NewIRI(vocabulary.RDFSDomain), iri("Paper")))
	g.Add(rdf.NewTriple(iri("hasAuthor"), rdf.NewIRI(vocabulary.RDFSRange), iri("Author")))
	g.Add(rdf.NewTriple(iri("year"), typePred, rdf.NewIRI(vocabulary.OWLDatatypeProperty)))
	g.Add(rdf.NewTriple(iri("year"), rdf.NewIRI(vocabulary.RDFSRange), rdf.NewIRI(vocabulary.XSDInteger)))
	return g
}

func TestSnippet_RendersDeclarations(t *testing.T) {
	out := Snippet(snippetGraph())

	assert.Contains(t, out, "Prefixes:")
	assert.Contains(t, out, ":Paper (subClassOf owl:Thing)")
	assert.Contains(t, out, ":hasAuthor (domain :Paper, range :Author)")
	assert.Contains(t, out, ":year (domain -, range xsd:integer)")
	// Instance triples never appear.
	assert.NotContains(t, out, "W1")
}

func TestSnippet_Deterministic(t *testing.T) {
	g := snippetGraph()
	assert.Equal(t, Snippet(g), Snippet(g))
}

func TestSnippet_EmptyGraph(t *testing.T) {
	out := Snippet(graph.New(vocabulary.DefaultBaseNamespace))
	assert.True(t, strings.Contains(out, "Classes:"))
	assert.True(t, strings.Contains(out, "Properties:"))
}
