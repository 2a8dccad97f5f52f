package graph

import (
	"sort"
	"strings"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// Graph is a set of unique triples plus a namespace prefix table.
// It is not safe for concurrent mutation; the Store serializes writes
// and hands out immutable snapshots for reads.
type Graph struct {
	triples map[rdf.Triple]struct{}

	// Secondary indexes, always consistent with the triple set.
	bySubject   map[rdf.Term]map[rdf.Triple]struct{}
	byPredicate map[rdf.Term]map[rdf.Triple]struct{}

	// prefixes maps prefix -> namespace IRI. The empty prefix is the
	// deployment base namespace.
	prefixes map[string]string
}

// New creates an empty graph with the standard prefixes bound and the
// empty prefix bound to baseNamespace (vocabulary.DefaultBaseNamespace
// when empty).
func New(baseNamespace string) *Graph {
	if baseNamespace == "" {
		baseNamespace = vocabulary.DefaultBaseNamespace
	}

	prefixes := vocabulary.StandardPrefixes()
	prefixes[""] = baseNamespace

	return &Graph{
		triples:     make(map[rdf.Triple]struct{}),
		bySubject:   make(map[rdf.Term]map[rdf.Triple]struct{}),
		byPredicate: make(map[rdf.Term]map[rdf.Triple]struct{}),
		prefixes:    prefixes,
	}
}

// Base returns the namespace bound to the empty prefix.
func (g *Graph) Base() string {
	return g.prefixes[""]
}

// Bind associates a prefix with a namespace IRI. Rebinding an existing
// prefix replaces it.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Namespaces returns a copy of the prefix table.
func (g *Graph) Namespaces() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for p, ns := range g.prefixes {
		out[p] = ns
	}
	return out
}

// Expand resolves a bare name, prefixed name, or absolute IRI into an
// absolute IRI using the prefix table. Unknown prefixes return
// errors.ErrUnresolvedPrefix.
func (g *Graph) Expand(name string) (string, error) {
	if name == "" {
		return "", errors.WrapInvalid(errors.ErrUnresolvedPrefix, "Graph", "Expand", "empty name")
	}

	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name, nil
	}

	idx := strings.Index(name, ":")
	if idx < 0 {
		// Bare name resolves against the base namespace.
		return g.Base() + name, nil
	}

	prefix, local := name[:idx], name[idx+1:]
	ns, ok := g.prefixes[prefix]
	if !ok {
		return "", errors.WrapInvalid(errors.ErrUnresolvedPrefix, "Graph", "Expand", "prefix "+prefix)
	}
	return ns + local, nil
}

// Add inserts a triple. Returns true if the triple was not already
// present; adding an existing triple is a no-op.
func (g *Graph) Add(t rdf.Triple) bool {
	if _, exists := g.triples[t]; exists {
		return false
	}

	g.triples[t] = struct{}{}

	if g.bySubject[t.Subject] == nil {
		g.bySubject[t.Subject] = make(map[rdf.Triple]struct{})
	}
	g.bySubject[t.Subject][t] = struct{}{}

	if g.byPredicate[t.Predicate] == nil {
		g.byPredicate[t.Predicate] = make(map[rdf.Triple]struct{})
	}
	g.byPredicate[t.Predicate][t] = struct{}{}

	return true
}

// AddAll inserts a batch and returns the count actually added.
func (g *Graph) AddAll(triples []rdf.Triple) int {
	added := 0
	for _, t := range triples {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Remove deletes a triple. Returns true if it was present.
func (g *Graph) Remove(t rdf.Triple) bool {
	if _, exists := g.triples[t]; !exists {
		return false
	}

	delete(g.triples, t)

	delete(g.bySubject[t.Subject], t)
	if len(g.bySubject[t.Subject]) == 0 {
		delete(g.bySubject, t.Subject)
	}

	delete(g.byPredicate[t.Predicate], t)
	if len(g.byPredicate[t.Predicate]) == 0 {
		delete(g.byPredicate, t.Predicate)
	}

	return true
}

// Has reports whether the triple is present.
func (g *Graph) Has(t rdf.Triple) bool {
	_, ok := g.triples[t]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples in deterministic order (sorted by their
// Turtle rendering).
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// BySubject returns the triples whose subject equals the given term.
func (g *Graph) BySubject(subject rdf.Term) []rdf.Triple {
	return collect(g.bySubject[subject])
}

// ByPredicate returns the triples whose predicate equals the given term.
func (g *Graph) ByPredicate(predicate rdf.Term) []rdf.Triple {
	return collect(g.byPredicate[predicate])
}

// Objects returns the objects of all (subject, predicate, ?) triples.
func (g *Graph) Objects(subject, predicate rdf.Term) []rdf.Term {
	var out []rdf.Term
	for t := range g.bySubject[subject] {
		if t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Clone returns a fully independent copy: same triples, same namespace
// bindings, no shared mutable state. Mutating the clone never affects
// the original.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		triples:     make(map[rdf.Triple]struct{}, len(g.triples)),
		bySubject:   make(map[rdf.Term]map[rdf.Triple]struct{}, len(g.bySubject)),
		byPredicate: make(map[rdf.Term]map[rdf.Triple]struct{}, len(g.byPredicate)),
		prefixes:    make(map[string]string, len(g.prefixes)),
	}

	for t := range g.triples {
		clone.Add(t)
	}
	for p, ns := range g.prefixes {
		clone.prefixes[p] = ns
	}
	return clone
}

// Equal reports whether two graphs hold the same triple set.
// Namespace bindings do not participate in equality.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() {
		return false
	}
	for t := range g.triples {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

func collect(set map[rdf.Triple]struct{}) []rdf.Triple {
	if len(set) == 0 {
		return nil
	}
	out := make([]rdf.Triple, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
