package rdf

import "fmt"

// Triple is a single (subject, predicate, object) statement, the atomic
// unit of the graph. Subject and Predicate are resource identifiers;
// Object is a resource identifier or a literal.
//
// Triple is comparable; equality is structural. Two graphs holding the
// same statements hold equal Triple values regardless of how they were
// produced.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple constructs a triple from its three terms.
func NewTriple(subject, predicate, object Term) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// Valid reports whether the triple is structurally well-formed:
// subject is an IRI or blank node, predicate is an IRI, and object is
// any non-zero term.
func (t Triple) Valid() bool {
	if t.Subject.IsZero() || t.Predicate.IsZero() || t.Object.IsZero() {
		return false
	}
	if t.Subject.IsLiteral() {
		return false
	}
	return t.Predicate.IsIRI()
}

// String renders the triple as a Turtle statement.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}
