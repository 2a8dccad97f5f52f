package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

const base = vocabulary.DefaultBaseNamespace

func newEvolver(t *testing.T) *Evolver {
	t.Helper()
	return NewEvolver(graph.New(base), nil)
}

func TestResolveName(t *testing.T) {
	e := newEvolver(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute iri", "http://example.org/other#Thing", "http://example.org/other#Thing"},
		{"bare name", "Grant", base + "Grant"},
		{"empty prefix", ":Grant", base + "Grant"},
		{"xsd prefixed", "xsd:int", vocabulary.XSDInt},
		{"owl prefixed", "owl:Thing", vocabulary.OWLThing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ResolveName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveName_UnknownPrefix(t *testing.T) {
	e := newEvolver(t)
	_, err := e.ResolveName("foaf:Person")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolvedPrefix)
}

func TestBuildClassTriples_Defaults(t *testing.T) {
	e := newEvolver(t)

	triples, err := e.BuildClassTriples(ClassProposal{Name: "Funding_Grant"})
	require.NoError(t, err)
	require.Len(t, triples, 3)

	class := rdf.NewIRI(base + "Funding_Grant")
	assert.Contains(t, triples, rdf.NewTriple(class,
		rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(vocabulary.OWLClass)))
	assert.Contains(t, triples, rdf.NewTriple(class,
		rdf.NewIRI(vocabulary.RDFSSubClassOf), rdf.NewIRI(vocabulary.OWLThing)))
	assert.Contains(t, triples, rdf.NewTriple(class,
		rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLangLiteral("Funding Grant", "en")))
}

func TestBuildClassTriples_ExplicitParentAndLabel(t *testing.T) {
	e := newEvolver(t)

	triples, err := e.BuildClassTriples(ClassProposal{
		Name:   ":Grant",
		Parent: ":Project",
		Label:  "Research Grant",
	})
	require.NoError(t, err)

	class := rdf.NewIRI(base + "Grant")
	assert.Contains(t, triples, rdf.NewTriple(class,
		rdf.NewIRI(vocabulary.RDFSSubClassOf), rdf.NewIRI(base+"Project")))
	assert.Contains(t, triples, rdf.NewTriple(class,
		rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLangLiteral("Research Grant", "en")))
}

func TestBuildPropertyTriples(t *testing.T) {
	e := newEvolver(t)

	t.Run("object property", func(t *testing.T) {
		triples, err := e.BuildPropertyTriples(ObjectProperty, PropertyProposal{
			Name:   "hasFunding",
			Domain: ":Paper",
			Range:  ":Grant",
		})
		require.NoError(t, err)
		require.Len(t, triples, 4)

		prop := rdf.NewIRI(base + "hasFunding")
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(vocabulary.OWLObjectProperty)))
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFSDomain), rdf.NewIRI(base+"Paper")))
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFSRange), rdf.NewIRI(base+"Grant")))
	})

	t.Run("datatype property", func(t *testing.T) {
		triples, err := e.BuildPropertyTriples(DatatypeProperty, PropertyProposal{
			Name:   "page_count",
			Domain: ":Paper",
			Range:  "xsd:int",
		})
		require.NoError(t, err)

		prop := rdf.NewIRI(base + "page_count")
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(vocabulary.OWLDatatypeProperty)))
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFSRange), rdf.NewIRI(vocabulary.XSDInt)))
		assert.Contains(t, triples, rdf.NewTriple(prop,
			rdf.NewIRI(vocabulary.RDFSLabel), rdf.NewLangLiteral("page count", "en")))
	})
}

func TestBuildPropertyTriples_UnresolvableRange(t *testing.T) {
	e := newEvolver(t)
	_, err := e.BuildPropertyTriples(DatatypeProperty, PropertyProposal{
		Name:   "weird",
		Domain: ":Paper",
		Range:  "nope:int",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolvedPrefix)
}

func TestBuildTriples_FullProposal(t *testing.T) {
	e := newEvolver(t)

	p := Proposal{
		Classes: []ClassProposal{{Name: "Grant"}},
		ObjectProperties: []PropertyProposal{
			{Name: "hasFunding", Domain: ":Paper", Range: ":Grant"},
		},
		DatatypeProperties: []PropertyProposal{
			{Name: "amount", Domain: ":Grant", Range: "xsd:int"},
		},
	}
	assert.False(t, p.Empty())

	batch, err := e.BuildTriples(p)
	require.NoError(t, err)
	assert.Len(t, batch, 11)
}

func TestProposal_Empty(t *testing.T) {
	assert.True(t, Proposal{}.Empty())
	assert.False(t, Proposal{Classes: []ClassProposal{{Name: "X"}}}.Empty())
}
