package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

func buildSampleGraph() *Graph {
	g := New("http://example.org/ontology#")
	base := "http://example.org/ontology#"

	g.Add(tr(base+"W1", vocabulary.RDFType, base+"Paper"))
	g.Add(tr(base+"W1", base+"hasAuthor", base+"A1"))
	g.Add(rdf.NewTriple(
		rdf.NewIRI(base+"A1"),
		rdf.NewIRI(vocabulary.RDFSLabel),
		rdf.NewLiteral("Jane Doe")))
	g.Add(rdf.NewTriple(
		rdf.NewIRI(base+"W1"),
		rdf.NewIRI(base+"pageCount"),
		rdf.NewTypedLiteral("12", vocabulary.XSDInteger)))
	g.Add(rdf.NewTriple(
		rdf.NewIRI(base+"Paper"),
		rdf.NewIRI(vocabulary.RDFSLabel),
		rdf.NewLangLiteral("Paper", "en")))
	return g
}

func TestSerialize_RoundTrip(t *testing.T) {
	g := buildSampleGraph()

	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf))

	parsed := New("http://example.org/ontology#")
	require.NoError(t, parsed.Parse(&buf))

	assert.True(t, g.Equal(parsed), "deserialize(serialize(g)) must be triple-set-equal to g")
}

func TestSerialize_Deterministic(t *testing.T) {
	g := buildSampleGraph()

	var first, second bytes.Buffer
	require.NoError(t, g.Serialize(&first))
	require.NoError(t, g.Serialize(&second))

	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Fatalf("serialization not deterministic (-first +second):\n%s", diff)
	}
}

func TestSerialize_TypeShorthand(t *testing.T) {
	g := New("http://example.org/ontology#")
	base := "http://example.org/ontology#"
	g.Add(tr(base+"W1", vocabulary.RDFType, base+"Paper"))
	// rdf:type in object position must stay spelled out; "a" is only
	// valid as a predicate.
	g.Add(tr(base+"typeOf", vocabulary.RDFSRange, vocabulary.RDFType))

	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf))

	out := buf.String()
	assert.Contains(t, out, ":W1 a :Paper .")
	assert.NotContains(t, out, ":W1 rdf:type :Paper .")
	assert.Contains(t, out, ":typeOf rdfs:range rdf:type .")
}

func TestSerialize_PrefixDeclarationsSorted(t *testing.T) {
	g := New("")
	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var prefixes []string
	for _, line := range lines {
		if strings.HasPrefix(line, "@prefix") {
			prefixes = append(prefixes, line)
		}
	}
	require.NotEmpty(t, prefixes)
	for i := 1; i < len(prefixes); i++ {
		assert.LessOrEqual(t, prefixes[i-1], prefixes[i])
	}
}

func TestParse_PrefixedNamesAndTypeKeyword(t *testing.T) {
	doc := `@prefix : <http://example.org/ontology#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

:W1 a :Paper .
:W1 :hasAuthor :A1 .
:A1 rdfs:label "Jane Doe" .
`
	g := New("http://example.org/ontology#")
	require.NoError(t, g.Parse(strings.NewReader(doc)))

	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Has(tr(
		"http://example.org/ontology#W1",
		vocabulary.RDFType,
		"http://example.org/ontology#Paper")))
	assert.True(t, g.Has(rdf.NewTriple(
		rdf.NewIRI("http://example.org/ontology#A1"),
		rdf.NewIRI(vocabulary.RDFSLabel),
		rdf.NewLiteral("Jane Doe"))))
}

func TestParse_TypedLiteralForms(t *testing.T) {
	doc := `@prefix : <http://example.org/ontology#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

:W1 :pageCount "12"^^xsd:integer .
:W1 :score "0.5"^^<http://www.w3.org/2001/XMLSchema#float> .
:W1 :title "On Graphs"@en .
`
	g := New("")
	require.NoError(t, g.Parse(strings.NewReader(doc)))

	w1 := rdf.NewIRI("http://example.org/ontology#W1")
	objects := g.Objects(w1, rdf.NewIRI("http://example.org/ontology#pageCount"))
	require.Len(t, objects, 1)
	assert.Equal(t, rdf.NewTypedLiteral("12", vocabulary.XSDInteger), objects[0])

	objects = g.Objects(w1, rdf.NewIRI("http://example.org/ontology#score"))
	require.Len(t, objects, 1)
	assert.Equal(t, vocabulary.XSDFloat, objects[0].Datatype)

	objects = g.Objects(w1, rdf.NewIRI("http://example.org/ontology#title"))
	require.Len(t, objects, 1)
	assert.Equal(t, "en", objects[0].Lang)
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	doc := `# base schema
@prefix : <http://example.org/ontology#> .

# a paper
:W1 a :Paper .
`
	g := New("")
	require.NoError(t, g.Parse(strings.NewReader(doc)))
	assert.Equal(t, 1, g.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing dot", ":W1 a :Paper"},
		{"two terms", ":W1 :hasAuthor ."},
		{"unterminated iri", "<http://example.org/x :p :o ."},
		{"unterminated literal", `:W1 rdfs:label "open .`},
		{"unknown prefix", ":W1 nope:p :o ."},
		{"bad prefix decl", "@prefix broken <http://x> ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("")
			assert.Error(t, g.Parse(strings.NewReader(tt.doc)))
		})
	}
}

func TestParse_EscapedQuoteInLiteral(t *testing.T) {
	g := buildSampleGraph()
	g.Add(rdf.NewTriple(
		rdf.NewIRI("http://example.org/ontology#W2"),
		rdf.NewIRI(vocabulary.RDFSLabel),
		rdf.NewLiteral(`The "Best" Paper`)))

	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf))

	parsed := New("")
	require.NoError(t, parsed.Parse(&buf))
	assert.True(t, g.Equal(parsed))
}
