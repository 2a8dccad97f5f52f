package graph

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// Serialize writes the graph as a Turtle subset: sorted @prefix
// declarations followed by one statement per line, triples sorted by
// their rendering. Output is deterministic for a given triple set and
// prefix table, and Parse(Serialize(g)) is triple-set-equal to g.
func (g *Graph) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)

	prefixes := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	for _, p := range prefixes {
		if _, err := fmt.Fprintf(bw, "@prefix %s: <%s> .\n", p, g.prefixes[p]); err != nil {
			return errors.Wrap(err, "Graph", "Serialize", "prefix write")
		}
	}
	if len(prefixes) > 0 {
		if _, err := fmt.Fprintln(bw); err != nil {
			return errors.Wrap(err, "Graph", "Serialize", "separator write")
		}
	}

	for _, t := range g.Triples() {
		line := fmt.Sprintf("%s %s %s .\n",
			g.compact(t.Subject), g.compactPredicate(t.Predicate), g.compact(t.Object))
		if _, err := bw.WriteString(line); err != nil {
			return errors.Wrap(err, "Graph", "Serialize", "statement write")
		}
	}

	return bw.Flush()
}

// compactPredicate renders a predicate term, emitting the Turtle "a"
// shorthand for rdf:type. The shorthand is only valid in predicate
// position, so subjects and objects go through compact.
func (g *Graph) compactPredicate(t rdf.Term) string {
	if t.Kind == rdf.KindIRI && t.Value == vocabulary.RDFType {
		return "a"
	}
	return g.compact(t)
}

// compact renders a term, abbreviating IRIs through the prefix table
// when the local part stays a simple name.
func (g *Graph) compact(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindIRI:
		return g.compactIRI(t.Value)
	case rdf.KindLiteral:
		if t.Datatype != "" {
			quoted := rdf.NewLiteral(t.Value).String()
			return quoted + "^^" + g.compactIRI(t.Datatype)
		}
		return t.String()
	default:
		return t.String()
	}
}

func (g *Graph) compactIRI(iri string) string {
	bestPrefix, bestNS := "", ""
	for p, ns := range g.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			bestPrefix, bestNS = p, ns
		}
	}
	if bestNS != "" {
		local := iri[len(bestNS):]
		if isSimpleLocal(local) {
			return bestPrefix + ":" + local
		}
	}
	return "<" + iri + ">"
}

func isSimpleLocal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// Parse reads a Turtle-subset document into the graph, adding its
// triples and prefix bindings. The format is what Serialize emits:
// @prefix declarations and one statement per line.
func (g *Graph) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "@prefix") {
			if err := g.parsePrefix(line); err != nil {
				return errors.WrapFatal(err, "Graph", "Parse", fmt.Sprintf("line %d", lineNo))
			}
			continue
		}

		triple, err := g.parseStatement(line)
		if err != nil {
			return errors.WrapFatal(err, "Graph", "Parse", fmt.Sprintf("line %d", lineNo))
		}
		g.Add(triple)
	}

	if err := scanner.Err(); err != nil {
		return errors.WrapFatal(errors.ErrLoadFailed, "Graph", "Parse", err.Error())
	}
	return nil
}

func (g *Graph) parsePrefix(line string) error {
	// @prefix name: <iri> .
	rest := strings.TrimSpace(strings.TrimPrefix(line, "@prefix"))
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return fmt.Errorf("%w: missing colon in prefix declaration", errors.ErrLoadFailed)
	}
	prefix := strings.TrimSpace(rest[:colon])

	rest = strings.TrimSpace(rest[colon+1:])
	if !strings.HasPrefix(rest, "<") {
		return fmt.Errorf("%w: prefix namespace must be an IRI", errors.ErrLoadFailed)
	}
	end := strings.Index(rest, ">")
	if end < 0 {
		return fmt.Errorf("%w: unterminated IRI in prefix declaration", errors.ErrLoadFailed)
	}

	g.Bind(prefix, rest[1:end])
	return nil
}

func (g *Graph) parseStatement(line string) (rdf.Triple, error) {
	terms, err := g.tokenizeTerms(line)
	if err != nil {
		return rdf.Triple{}, err
	}
	if len(terms) != 3 {
		return rdf.Triple{}, fmt.Errorf("%w: expected 3 terms, got %d", errors.ErrLoadFailed, len(terms))
	}

	t := rdf.NewTriple(terms[0], terms[1], terms[2])
	if !t.Valid() {
		return rdf.Triple{}, fmt.Errorf("%w: malformed statement %q", errors.ErrLoadFailed, line)
	}
	return t, nil
}

// tokenizeTerms splits a statement line into terms, honoring IRI
// brackets and literal quoting. The trailing "." is required.
func (g *Graph) tokenizeTerms(line string) ([]rdf.Term, error) {
	line = strings.TrimSpace(line)
	if !strings.HasSuffix(line, ".") {
		return nil, fmt.Errorf("%w: statement missing terminating dot", errors.ErrLoadFailed)
	}
	line = strings.TrimSpace(line[:len(line)-1])

	var terms []rdf.Term
	for line != "" {
		term, rest, err := g.readTerm(line)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		line = strings.TrimSpace(rest)
	}
	return terms, nil
}

func (g *Graph) readTerm(s string) (rdf.Term, string, error) {
	switch {
	case strings.HasPrefix(s, "<"):
		end := strings.Index(s, ">")
		if end < 0 {
			return rdf.Term{}, "", fmt.Errorf("%w: unterminated IRI", errors.ErrLoadFailed)
		}
		return rdf.NewIRI(s[1:end]), s[end+1:], nil

	case strings.HasPrefix(s, `"`):
		return g.readLiteral(s)

	case strings.HasPrefix(s, "_:"):
		end := wordEnd(s)
		return rdf.NewBlank(s[2:end]), s[end:], nil

	default:
		// Prefixed or bare name; "a" is the Turtle shorthand for rdf:type
		end := wordEnd(s)
		if s[:end] == "a" {
			return rdf.NewIRI(vocabulary.RDFType), s[end:], nil
		}
		iri, err := g.Expand(s[:end])
		if err != nil {
			return rdf.Term{}, "", fmt.Errorf("%w: %q", errors.ErrLoadFailed, s[:end])
		}
		return rdf.NewIRI(iri), s[end:], nil
	}
}

func (g *Graph) readLiteral(s string) (rdf.Term, string, error) {
	// Find the closing quote, skipping escaped characters.
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return rdf.Term{}, "", fmt.Errorf("%w: unterminated literal", errors.ErrLoadFailed)
	}

	lexical := rdf.UnescapeLiteral(s[1:end])
	rest := s[end+1:]

	switch {
	case strings.HasPrefix(rest, "^^"):
		rest = rest[2:]
		var datatype string
		if strings.HasPrefix(rest, "<") {
			dtEnd := strings.Index(rest, ">")
			if dtEnd < 0 {
				return rdf.Term{}, "", fmt.Errorf("%w: unterminated datatype IRI", errors.ErrLoadFailed)
			}
			datatype = rest[1:dtEnd]
			rest = rest[dtEnd+1:]
		} else {
			wEnd := wordEnd(rest)
			expanded, err := g.Expand(rest[:wEnd])
			if err != nil {
				return rdf.Term{}, "", fmt.Errorf("%w: datatype %q", errors.ErrLoadFailed, rest[:wEnd])
			}
			datatype = expanded
			rest = rest[wEnd:]
		}
		return rdf.NewTypedLiteral(lexical, datatype), rest, nil

	case strings.HasPrefix(rest, "@"):
		wEnd := wordEnd(rest)
		return rdf.NewLangLiteral(lexical, rest[1:wEnd]), rest[wEnd:], nil

	default:
		return rdf.NewLiteral(lexical), rest, nil
	}
}

// wordEnd returns the index of the first whitespace character, or the
// string length.
func wordEnd(s string) int {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return i
		}
	}
	return len(s)
}
