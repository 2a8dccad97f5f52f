package validation

import (
	"fmt"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// defaultMaxIterations bounds the closure fixed point so a pathological
// schema cannot loop forever. RDFS rules only add triples over a finite
// term universe, so the bound is a safety rail, not a tuning knob.
const defaultMaxIterations = 100

// InferenceRunner materializes the RDFS deductive closure over a
// sandbox graph, adding only newly entailed triples.
type InferenceRunner struct {
	// MaxIterations caps the fixed-point loop; 0 means the default.
	MaxIterations int
}

// Closure mutates g in place, applying the RDFS rule set until no new
// triples are produced, and returns the count of newly materialized
// triples. A structural schema defect (literal in a schema link,
// entailed membership in owl:Nothing) returns ErrInconsistency and
// leaves whatever was materialized so far in g; callers discard the
// sandbox on error.
func (r InferenceRunner) Closure(g *graph.Graph) (int, error) {
	maxIter := r.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	if err := checkSchemaLinks(g); err != nil {
		return 0, err
	}

	total := 0
	for i := 0; i < maxIter; i++ {
		added := 0
		added += applyRule(g, subClassTransitivity)
		added += applyRule(g, subPropertyTransitivity)
		added += applyRule(g, typePropagation)
		added += applyRule(g, predicatePropagation)
		added += applyRule(g, domainTyping)
		added += applyRule(g, rangeTyping)
		total += added

		if added == 0 {
			if err := checkConsistency(g); err != nil {
				return total, err
			}
			return total, nil
		}
	}

	return total, errors.WrapInvalid(errors.ErrInconsistency, "inference", "Closure",
		fmt.Sprintf("no fixed point after %d iterations", maxIter))
}

// applyRule collects a rule's entailments and adds them, returning the
// count of triples actually new to the graph.
func applyRule(g *graph.Graph, rule func(*graph.Graph) []rdf.Triple) int {
	added := 0
	for _, t := range rule(g) {
		if t.Valid() && g.Add(t) {
			added++
		}
	}
	return added
}

// subClassTransitivity: (a subClassOf b), (b subClassOf c) ⊢ (a subClassOf c).
func subClassTransitivity(g *graph.Graph) []rdf.Triple {
	return transitivity(g, rdf.NewIRI(vocabulary.RDFSSubClassOf))
}

// subPropertyTransitivity: (p subPropertyOf q), (q subPropertyOf r) ⊢ (p subPropertyOf r).
func subPropertyTransitivity(g *graph.Graph) []rdf.Triple {
	return transitivity(g, rdf.NewIRI(vocabulary.RDFSSubPropertyOf))
}

func transitivity(g *graph.Graph, pred rdf.Term) []rdf.Triple {
	var out []rdf.Triple
	for _, first := range g.ByPredicate(pred) {
		for _, second := range g.BySubject(first.Object) {
			if second.Predicate == pred {
				out = append(out, rdf.NewTriple(first.Subject, pred, second.Object))
			}
		}
	}
	return out
}

// typePropagation: (x type c), (c subClassOf d) ⊢ (x type d).
func typePropagation(g *graph.Graph) []rdf.Triple {
	typePred := rdf.NewIRI(vocabulary.RDFType)
	subClass := rdf.NewIRI(vocabulary.RDFSSubClassOf)

	var out []rdf.Triple
	for _, typed := range g.ByPredicate(typePred) {
		for _, super := range g.Objects(typed.Object, subClass) {
			out = append(out, rdf.NewTriple(typed.Subject, typePred, super))
		}
	}
	return out
}

// predicatePropagation: (x p y), (p subPropertyOf q) ⊢ (x q y).
func predicatePropagation(g *graph.Graph) []rdf.Triple {
	subProp := rdf.NewIRI(vocabulary.RDFSSubPropertyOf)

	var out []rdf.Triple
	for _, link := range g.ByPredicate(subProp) {
		for _, use := range g.ByPredicate(link.Subject) {
			if link.Object.IsIRI() {
				out = append(out, rdf.NewTriple(use.Subject, link.Object, use.Object))
			}
		}
	}
	return out
}

// domainTyping: (p domain c), (x p y) ⊢ (x type c).
func domainTyping(g *graph.Graph) []rdf.Triple {
	domain := rdf.NewIRI(vocabulary.RDFSDomain)
	typePred := rdf.NewIRI(vocabulary.RDFType)

	var out []rdf.Triple
	for _, decl := range g.ByPredicate(domain) {
		if !decl.Object.IsIRI() {
			continue
		}
		for _, use := range g.ByPredicate(decl.Subject) {
			out = append(out, rdf.NewTriple(use.Subject, typePred, decl.Object))
		}
	}
	return out
}

// rangeTyping: (p range c), (x p y), y a resource, c not a datatype ⊢ (y type c).
func rangeTyping(g *graph.Graph) []rdf.Triple {
	rangePred := rdf.NewIRI(vocabulary.RDFSRange)
	typePred := rdf.NewIRI(vocabulary.RDFType)

	var out []rdf.Triple
	for _, decl := range g.ByPredicate(rangePred) {
		if !decl.Object.IsIRI() || vocabulary.IsXSDDatatype(decl.Object.Value) {
			continue
		}
		for _, use := range g.ByPredicate(decl.Subject) {
			if use.Object.IsLiteral() {
				continue
			}
			out = append(out, rdf.NewTriple(use.Object, typePred, decl.Object))
		}
	}
	return out
}

// checkSchemaLinks rejects malformed schema statements before any rule
// runs: subclass, subproperty, domain and range links must point at
// resources, not literals.
func checkSchemaLinks(g *graph.Graph) error {
	schemaPreds := []string{
		vocabulary.RDFSSubClassOf,
		vocabulary.RDFSSubPropertyOf,
		vocabulary.RDFSDomain,
		vocabulary.RDFSRange,
	}
	for _, p := range schemaPreds {
		for _, t := range g.ByPredicate(rdf.NewIRI(p)) {
			if t.Object.IsLiteral() {
				return errors.WrapInvalid(errors.ErrInconsistency, "inference", "Closure",
					fmt.Sprintf("literal object in schema link %s", t))
			}
		}
	}
	return nil
}

// checkConsistency runs after the fixed point: entailed membership in
// owl:Nothing is a contradiction.
func checkConsistency(g *graph.Graph) error {
	typePred := rdf.NewIRI(vocabulary.RDFType)
	nothing := rdf.NewIRI(vocabulary.OWLNothing)
	for _, t := range g.ByPredicate(typePred) {
		if t.Object == nothing {
			return errors.WrapInvalid(errors.ErrInconsistency, "inference", "Closure",
				fmt.Sprintf("%s is entailed to be a member of owl:Nothing", t.Subject))
		}
	}
	return nil
}
