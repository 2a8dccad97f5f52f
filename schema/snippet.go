package schema

import (
	"fmt"
	"strings"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// snippetMaxLines caps the schema rendering handed to collaborators so
// prompts stay bounded on large graphs.
const snippetMaxLines = 120

// Snippet renders the graph's class and property declarations as a
// compact listing suitable for collaborator prompt context.
func Snippet(g *graph.Graph) string {
	var b strings.Builder

	b.WriteString("Prefixes:\n")
	fmt.Fprintf(&b, "  : <%s>\n", g.Base())

	lines := 0
	typePred := rdf.NewIRI(vocabulary.RDFType)

	b.WriteString("Classes:\n")
	for _, t := range g.ByPredicate(typePred) {
		if t.Object.Value != vocabulary.OWLClass || lines >= snippetMaxLines {
			continue
		}
		fmt.Fprintf(&b, "  %s (subClassOf %s)\n",
			compact(g, t.Subject.Value), objectList(g, t.Subject, vocabulary.RDFSSubClassOf))
		lines++
	}

	b.WriteString("Properties:\n")
	for _, kindIRI := range []string{vocabulary.OWLObjectProperty, vocabulary.OWLDatatypeProperty} {
		for _, t := range g.ByPredicate(typePred) {
			if t.Object.Value != kindIRI || lines >= snippetMaxLines {
				continue
			}
			fmt.Fprintf(&b, "  %s (domain %s, range %s)\n",
				compact(g, t.Subject.Value),
				objectList(g, t.Subject, vocabulary.RDFSDomain),
				objectList(g, t.Subject, vocabulary.RDFSRange))
			lines++
		}
	}

	return b.String()
}

// objectList renders the objects of (subject, predicate) as a
// comma-separated list, or "-" when none are declared.
func objectList(g *graph.Graph, subject rdf.Term, predicate string) string {
	objects := g.Objects(subject, rdf.NewIRI(predicate))
	if len(objects) == 0 {
		return "-"
	}
	names := make([]string, 0, len(objects))
	for _, o := range objects {
		names = append(names, compact(g, o.Value))
	}
	return strings.Join(names, ", ")
}

// compact shortens an IRI to a prefixed name when a bound namespace
// matches, preferring the base namespace.
func compact(g *graph.Graph, iri string) string {
	if strings.HasPrefix(iri, g.Base()) {
		return ":" + strings.TrimPrefix(iri, g.Base())
	}
	for prefix, ns := range g.Namespaces() {
		if prefix != "" && strings.HasPrefix(iri, ns) {
			return prefix + ":" + strings.TrimPrefix(iri, ns)
		}
	}
	return "<" + iri + ">"
}
