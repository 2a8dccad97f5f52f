// Package query implements the read-query surface of the triple store:
// a SPARQL-subset parser and an index-assisted executor.
//
// The supported grammar covers what the query collaborators emit:
//
//	PREFIX name: <iri> ...
//	SELECT ?a ?b | SELECT *
//	WHERE { pattern . pattern . ... }
//	LIMIT n
//
// where each pattern position is a variable, an IRI, a prefixed name,
// the "a" shorthand for rdf:type, a quoted literal (with optional
// ^^datatype or @lang), or a bare number. Malformed syntax is reported
// as errors.ErrMalformedQuery and unknown prefixes as
// errors.ErrUnresolvedPrefix; both are invalid errors, surfaced
// immediately and never retried.
package query

import (
	"fmt"
	"strings"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// PatternTerm is one position of a triple pattern: either a variable
// name or a concrete term.
type PatternTerm struct {
	Var  string
	Term rdf.Term
}

// IsVar reports whether the position is a variable.
func (pt PatternTerm) IsVar() bool { return pt.Var != "" }

// Pattern is a single triple pattern in the WHERE clause.
type Pattern struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
}

// Query is a parsed read query.
type Query struct {
	// Text is the original query text, kept for gap analysis and the
	// answer envelope.
	Text string

	// Vars is the explicit projection; nil means SELECT *.
	Vars []string

	// Patterns is the basic graph pattern, matched in order.
	Patterns []Pattern

	// Limit caps the number of result rows; 0 means unlimited.
	Limit int

	prefixes map[string]string
}

// Parse parses a query against the given namespace table (the graph's
// bindings; PREFIX declarations in the query take precedence).
func Parse(text string, namespaces map[string]string) (*Query, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, malformed("empty query")
	}

	q := &Query{Text: text, prefixes: make(map[string]string)}
	for p, ns := range namespaces {
		q.prefixes[p] = ns
	}

	i := 0

	// PREFIX declarations
	for i < len(toks) && strings.EqualFold(toks[i], "PREFIX") {
		if i+2 >= len(toks) {
			return nil, malformed("incomplete PREFIX declaration")
		}
		name := toks[i+1]
		if !strings.HasSuffix(name, ":") {
			return nil, malformed("PREFIX name must end with a colon: " + name)
		}
		iriTok := toks[i+2]
		if !strings.HasPrefix(iriTok, "<") || !strings.HasSuffix(iriTok, ">") {
			return nil, malformed("PREFIX namespace must be an IRI: " + iriTok)
		}
		q.prefixes[strings.TrimSuffix(name, ":")] = iriTok[1 : len(iriTok)-1]
		i += 3
	}

	// SELECT projection
	if i >= len(toks) || !strings.EqualFold(toks[i], "SELECT") {
		return nil, malformed("expected SELECT")
	}
	i++

	if i < len(toks) && toks[i] == "*" {
		i++
	} else {
		for i < len(toks) && strings.HasPrefix(toks[i], "?") {
			q.Vars = append(q.Vars, toks[i][1:])
			i++
		}
		if len(q.Vars) == 0 {
			return nil, malformed("SELECT requires at least one variable or *")
		}
	}

	// WHERE block
	if i >= len(toks) || !strings.EqualFold(toks[i], "WHERE") {
		return nil, malformed("expected WHERE")
	}
	i++
	if i >= len(toks) || toks[i] != "{" {
		return nil, malformed("expected { after WHERE")
	}
	i++

	var terms []PatternTerm
	for i < len(toks) && toks[i] != "}" {
		if toks[i] == "." {
			i++
			continue
		}
		term, err := q.parsePatternTerm(toks[i])
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		i++
	}
	if i >= len(toks) {
		return nil, malformed("unterminated WHERE block")
	}
	i++ // consume }

	if len(terms) == 0 || len(terms)%3 != 0 {
		return nil, malformed(fmt.Sprintf("WHERE block has %d terms, want a multiple of 3", len(terms)))
	}
	for j := 0; j < len(terms); j += 3 {
		q.Patterns = append(q.Patterns, Pattern{
			Subject:   terms[j],
			Predicate: terms[j+1],
			Object:    terms[j+2],
		})
	}

	// Optional LIMIT
	if i < len(toks) && strings.EqualFold(toks[i], "LIMIT") {
		if i+1 >= len(toks) {
			return nil, malformed("LIMIT requires a count")
		}
		n := 0
		if _, err := fmt.Sscanf(toks[i+1], "%d", &n); err != nil || n < 0 {
			return nil, malformed("invalid LIMIT count: " + toks[i+1])
		}
		q.Limit = n
		i += 2
	}

	if i != len(toks) {
		return nil, malformed("unexpected trailing token: " + toks[i])
	}

	if err := q.checkProjection(); err != nil {
		return nil, err
	}
	return q, nil
}

// checkProjection verifies every projected variable is bound by at
// least one pattern, so all result rows share the projection's
// variable set.
func (q *Query) checkProjection() error {
	if q.Vars == nil {
		return nil
	}
	bound := make(map[string]bool)
	for _, p := range q.Patterns {
		for _, pt := range []PatternTerm{p.Subject, p.Predicate, p.Object} {
			if pt.IsVar() {
				bound[pt.Var] = true
			}
		}
	}
	for _, v := range q.Vars {
		if !bound[v] {
			return errors.WrapInvalid(errors.ErrUnboundVariable, "query", "Parse", "?"+v)
		}
	}
	return nil
}

func (q *Query) parsePatternTerm(tok string) (PatternTerm, error) {
	switch {
	case strings.HasPrefix(tok, "?"):
		if len(tok) == 1 {
			return PatternTerm{}, malformed("empty variable name")
		}
		return PatternTerm{Var: tok[1:]}, nil

	case strings.HasPrefix(tok, "<"):
		if !strings.HasSuffix(tok, ">") {
			return PatternTerm{}, malformed("unterminated IRI: " + tok)
		}
		return PatternTerm{Term: rdf.NewIRI(tok[1 : len(tok)-1])}, nil

	case strings.HasPrefix(tok, `"`):
		term, err := q.parseLiteralToken(tok)
		if err != nil {
			return PatternTerm{}, err
		}
		return PatternTerm{Term: term}, nil

	case tok == "a":
		return PatternTerm{Term: rdf.NewIRI(vocabulary.RDFType)}, nil

	case isNumeric(tok):
		if strings.Contains(tok, ".") {
			return PatternTerm{Term: rdf.NewTypedLiteral(tok, vocabulary.XSDFloat)}, nil
		}
		return PatternTerm{Term: rdf.NewTypedLiteral(tok, vocabulary.XSDInteger)}, nil

	default:
		iri, err := q.expand(tok)
		if err != nil {
			return PatternTerm{}, err
		}
		return PatternTerm{Term: rdf.NewIRI(iri)}, nil
	}
}

func (q *Query) parseLiteralToken(tok string) (rdf.Term, error) {
	end := -1
	for i := 1; i < len(tok); i++ {
		if tok[i] == '\\' {
			i++
			continue
		}
		if tok[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return rdf.Term{}, malformed("unterminated literal: " + tok)
	}

	lexical := rdf.UnescapeLiteral(tok[1:end])
	rest := tok[end+1:]

	switch {
	case rest == "":
		return rdf.NewLiteral(lexical), nil
	case strings.HasPrefix(rest, "@"):
		return rdf.NewLangLiteral(lexical, rest[1:]), nil
	case strings.HasPrefix(rest, "^^"):
		dt := rest[2:]
		if strings.HasPrefix(dt, "<") && strings.HasSuffix(dt, ">") {
			return rdf.NewTypedLiteral(lexical, dt[1:len(dt)-1]), nil
		}
		expanded, err := q.expand(dt)
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.NewTypedLiteral(lexical, expanded), nil
	default:
		return rdf.Term{}, malformed("invalid literal suffix: " + rest)
	}
}

// expand resolves a prefixed or bare name against the query's prefix
// table (query PREFIX declarations plus the graph's namespaces).
func (q *Query) expand(name string) (string, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name, nil
	}
	idx := strings.Index(name, ":")
	if idx < 0 {
		return "", malformed("bare name in pattern: " + name)
	}
	prefix := name[:idx]
	ns, ok := q.prefixes[prefix]
	if !ok {
		return "", errors.WrapInvalid(errors.ErrUnresolvedPrefix, "query", "Parse", "prefix "+prefix)
	}
	return ns + name[idx+1:], nil
}

func malformed(detail string) error {
	return errors.WrapInvalid(errors.ErrMalformedQuery, "query", "Parse", detail)
}

func isNumeric(tok string) bool {
	dot, digit := false, false
	for i, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digit
}

// tokenize splits query text into tokens, keeping IRIs and quoted
// literals (with their ^^datatype or @lang suffix) intact.
func tokenize(text string) ([]string, error) {
	var toks []string
	i := 0
	n := len(text)

	for i < n {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '#':
			for i < n && text[i] != '\n' {
				i++
			}

		case c == '{' || c == '}':
			toks = append(toks, string(c))
			i++

		case c == '<':
			end := strings.IndexByte(text[i:], '>')
			if end < 0 {
				return nil, malformed("unterminated IRI")
			}
			toks = append(toks, text[i:i+end+1])
			i += end + 1

		case c == '"':
			j := i + 1
			closed := false
			for j < n {
				if text[j] == '\\' {
					j += 2
					continue
				}
				if text[j] == '"' {
					closed = true
					j++
					break
				}
				j++
			}
			if !closed {
				return nil, malformed("unterminated literal")
			}
			// Attach ^^datatype or @lang suffix
			if j < n && text[j] == '@' {
				for j < n && !isDelimiter(text[j]) {
					j++
				}
			} else if j+1 < n && text[j] == '^' && text[j+1] == '^' {
				j += 2
				if j < n && text[j] == '<' {
					end := strings.IndexByte(text[j:], '>')
					if end < 0 {
						return nil, malformed("unterminated datatype IRI")
					}
					j += end + 1
				} else {
					for j < n && !isDelimiter(text[j]) {
						j++
					}
				}
			}
			toks = append(toks, text[i:j])
			i = j

		case c == '.':
			// Statement separator; decimals are consumed by the number case
			toks = append(toks, ".")
			i++

		default:
			j := i
			for j < n {
				// A dot inside a number is a decimal point, not a
				// statement separator.
				if text[j] == '.' && isNumeric(text[i:j]) && j+1 < n && text[j+1] >= '0' && text[j+1] <= '9' {
					j += 2
					continue
				}
				if isDelimiter(text[j]) {
					break
				}
				j++
			}
			if j == i {
				return nil, malformed(fmt.Sprintf("unexpected character %q", c))
			}
			toks = append(toks, text[i:j])
			i = j
		}
	}
	return toks, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '.', '<', '"', '#':
		return true
	default:
		return false
	}
}
