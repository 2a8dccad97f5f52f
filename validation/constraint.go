package validation

import (
	"fmt"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// ConstraintChecker validates proposed triples against the range
// declarations in a schema graph. It is stateless.
type ConstraintChecker struct{}

// Check validates every proposed triple and collects all violations;
// it never short-circuits, so callers get a complete diagnostic for
// the batch. A triple whose predicate has no declared range is valid.
func (ConstraintChecker) Check(schema *graph.Graph, proposed []rdf.Triple) []Violation {
	var violations []Violation
	for _, t := range proposed {
		if v, ok := checkRange(schema, t); !ok {
			violations = append(violations, v)
		}
	}
	return violations
}

// checkRange enforces the declared ranges of the triple's predicate.
// A predicate may carry several range declarations; the object is
// valid when it satisfies any of them. Datatype ranges require a
// literal object with a matching datatype tag (xsd:string accepts
// untyped literals). Class ranges reject only a literal in resource
// position; no deep type inference is performed.
func checkRange(schema *graph.Graph, t rdf.Triple) (Violation, bool) {
	ranges := schema.Objects(t.Predicate, rdf.NewIRI(vocabulary.RDFSRange))
	if len(ranges) == 0 {
		return Violation{}, true
	}

	var first Violation
	for i, declared := range ranges {
		v, ok := checkOneRange(t, declared)
		if ok {
			return Violation{}, true
		}
		if i == 0 {
			first = v
		}
	}
	return first, false
}

func checkOneRange(t rdf.Triple, declared rdf.Term) (Violation, bool) {
	if !declared.IsIRI() {
		return Violation{}, true
	}

	if vocabulary.IsXSDDatatype(declared.Value) {
		if !t.Object.IsLiteral() {
			return Violation{
				Triple: t,
				Reason: fmt.Sprintf("range %s requires a literal, got a resource", declared.Value),
			}, false
		}
		if t.Object.Datatype == "" {
			if vocabulary.IsStringRange(declared.Value) {
				return Violation{}, true
			}
			return Violation{
				Triple: t,
				Reason: fmt.Sprintf("untyped literal does not satisfy range %s", declared.Value),
			}, false
		}
		if t.Object.Datatype != declared.Value {
			return Violation{
				Triple: t,
				Reason: fmt.Sprintf("literal datatype %s does not match range %s", t.Object.Datatype, declared.Value),
			}, false
		}
		return Violation{}, true
	}

	// Class range: structural check only.
	if t.Object.IsLiteral() {
		return Violation{
			Triple: t,
			Reason: fmt.Sprintf("range %s is a class, got a literal", declared.Value),
		}, false
	}
	return Violation{}, true
}

// CheckDomain is the domain half of the declared constraint surface.
// Domain declarations are carried in the schema but not enforced:
// subjects are not required to carry the declared domain type.
func (ConstraintChecker) CheckDomain(schema *graph.Graph, t rdf.Triple) bool {
	return true
}
