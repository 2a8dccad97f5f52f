package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

var (
	typePred   = rdf.NewIRI(vocabulary.RDFType)
	subClassOf = rdf.NewIRI(vocabulary.RDFSSubClassOf)
	subPropOf  = rdf.NewIRI(vocabulary.RDFSSubPropertyOf)
	domainPred = rdf.NewIRI(vocabulary.RDFSDomain)
	rangePred  = rdf.NewIRI(vocabulary.RDFSRange)
)

func TestClosure_SubClassTransitivity(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("A"), subClassOf, iri("B")))
	g.Add(rdf.NewTriple(iri("B"), subClassOf, iri("C")))
	g.Add(rdf.NewTriple(iri("C"), subClassOf, iri("D")))

	var runner InferenceRunner
	added, err := runner.Closure(g)
	require.NoError(t, err)

	assert.True(t, g.Has(rdf.NewTriple(iri("A"), subClassOf, iri("C"))))
	assert.True(t, g.Has(rdf.NewTriple(iri("A"), subClassOf, iri("D"))))
	assert.True(t, g.Has(rdf.NewTriple(iri("B"), subClassOf, iri("D"))))
	assert.Equal(t, 3, added)
}

func TestClosure_TypePropagation(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("Paper"), subClassOf, iri("Work")))
	g.Add(rdf.NewTriple(iri("W1"), typePred, iri("Paper")))

	var runner InferenceRunner
	_, err := runner.Closure(g)
	require.NoError(t, err)

	assert.True(t, g.Has(rdf.NewTriple(iri("W1"), typePred, iri("Work"))))
}

func TestClosure_PredicatePropagation(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("hasFirstAuthor"), subPropOf, iri("hasAuthor")))
	g.Add(rdf.NewTriple(iri("W1"), iri("hasFirstAuthor"), iri("A1")))

	var runner InferenceRunner
	_, err := runner.Closure(g)
	require.NoError(t, err)

	assert.True(t, g.Has(rdf.NewTriple(iri("W1"), iri("hasAuthor"), iri("A1"))))
}

func TestClosure_DomainAndRangeTyping(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("hasAuthor"), domainPred, iri("Paper")))
	g.Add(rdf.NewTriple(iri("hasAuthor"), rangePred, iri("Author")))
	g.Add(rdf.NewTriple(iri("W1"), iri("hasAuthor"), iri("A1")))

	var runner InferenceRunner
	_, err := runner.Closure(g)
	require.NoError(t, err)

	assert.True(t, g.Has(rdf.NewTriple(iri("W1"), typePred, iri("Paper"))))
	assert.True(t, g.Has(rdf.NewTriple(iri("A1"), typePred, iri("Author"))))
}

func TestClosure_DatatypeRangeDoesNotTypeLiterals(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("year"), rangePred, rdf.NewIRI(vocabulary.XSDInteger)))
	g.Add(rdf.NewTriple(iri("W1"), iri("year"), rdf.NewTypedLiteral("2024", vocabulary.XSDInteger)))

	var runner InferenceRunner
	added, err := runner.Closure(g)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestClosure_SecondRunAddsNothing(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("A"), subClassOf, iri("B")))
	g.Add(rdf.NewTriple(iri("x"), typePred, iri("A")))

	var runner InferenceRunner
	first, err := runner.Closure(g)
	require.NoError(t, err)
	require.Positive(t, first)

	second, err := runner.Closure(g)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestClosure_LiteralInSchemaLink(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("A"), subClassOf, rdf.NewLiteral("not a class")))

	var runner InferenceRunner
	_, err := runner.Closure(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInconsistency)
}

func TestClosure_NothingMembershipIsContradiction(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("Broken"), subClassOf, rdf.NewIRI(vocabulary.OWLNothing)))
	g.Add(rdf.NewTriple(iri("x"), typePred, iri("Broken")))

	var runner InferenceRunner
	_, err := runner.Closure(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInconsistency)
}

func TestClosure_IterationCap(t *testing.T) {
	g := graph.New(base)
	g.Add(rdf.NewTriple(iri("A"), subClassOf, iri("B")))
	g.Add(rdf.NewTriple(iri("B"), subClassOf, iri("C")))
	g.Add(rdf.NewTriple(iri("C"), subClassOf, iri("D")))

	// The chain needs two passes to reach its fixed point; a cap of
	// one forces the bounded-iteration failure path.
	runner := InferenceRunner{MaxIterations: 1}
	_, err := runner.Closure(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInconsistency)
}
