// Package rdf provides the value types for the knowledge graph: terms
// and triples. Both are immutable comparable values; equality is
// structural, never pointer identity, so the triple collection stays a
// flat set of data with no ownership links between resources.
package rdf

import (
	"fmt"
	"strings"
)

// TermKind discriminates the three kinds of RDF terms.
type TermKind int

const (
	// KindIRI is a resource identifier.
	KindIRI TermKind = iota
	// KindLiteral is a typed or plain literal value.
	KindLiteral
	// KindBlank is an anonymous node label.
	KindBlank
)

// String returns the string representation of TermKind.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Term is a single RDF term. The zero value is an empty IRI, which is
// never valid in a triple; construct terms with NewIRI, NewLiteral,
// NewTypedLiteral, NewLangLiteral, or NewBlank.
//
// Term is comparable: two terms are equal iff all four fields match.
type Term struct {
	// Kind discriminates IRI, literal, and blank node terms.
	Kind TermKind

	// Value holds the IRI string, the literal lexical form, or the
	// blank node label depending on Kind.
	Value string

	// Datatype is the optional datatype IRI for literals
	// (e.g. "http://www.w3.org/2001/XMLSchema#integer").
	// Empty for plain literals and non-literal terms.
	Datatype string

	// Lang is the optional language tag for literals (e.g. "en").
	// A literal carries a datatype or a language tag, never both.
	Lang string
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// NewLiteral creates a plain (untyped) literal.
func NewLiteral(lexical string) Term {
	return Term{Kind: KindLiteral, Value: lexical}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(lexical, datatype string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// NewLangLiteral creates a literal with a language tag.
func NewLangLiteral(lexical, lang string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Lang: lang}
}

// NewBlank creates a blank node term with the given label.
func NewBlank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// IsIRI reports whether the term is a resource identifier.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsZero reports whether the term is the zero value.
func (t Term) IsZero() bool {
	return t == Term{}
}

// String renders the term in Turtle syntax: <iri>, "lexical",
// "lexical"^^<datatype>, "lexical"@lang, or _:label.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		quoted := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return quoted + "@" + t.Lang
		}
		if t.Datatype != "" {
			return quoted + "^^<" + t.Datatype + ">"
		}
		return quoted
	default:
		return fmt.Sprintf("!invalid(%d)", t.Kind)
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

var literalUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// UnescapeLiteral reverses the Turtle string escapes applied by
// Term.String. Used by the parser.
func UnescapeLiteral(s string) string {
	return literalUnescaper.Replace(s)
}
