package query

import (
	"sort"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
)

// Row maps variable names to rendered values: IRIs as their raw value,
// literals as their lexical form, blanks as _:label.
type Row map[string]string

// Result holds the rows produced by executing a query.
type Result struct {
	Vars []string
	Rows []Row
}

// IsEmpty reports whether the result has no rows.
func (r *Result) IsEmpty() bool { return len(r.Rows) == 0 }

// Execute matches the query's basic graph pattern against the graph
// with a backtracking join and returns the projected rows. Row order
// is deterministic for a given graph because pattern candidates come
// from the graph's sorted indexes.
func Execute(g *graph.Graph, q *Query) (*Result, error) {
	bindings := []map[string]rdf.Term{{}}
	for _, p := range q.Patterns {
		var next []map[string]rdf.Term
		for _, b := range bindings {
			next = appendMatches(next, g, p, b)
		}
		bindings = next
		if len(bindings) == 0 {
			break
		}
	}

	vars := q.Vars
	if vars == nil {
		vars = patternVars(q.Patterns)
	}

	res := &Result{Vars: vars}
	for _, b := range bindings {
		if q.Limit > 0 && len(res.Rows) >= q.Limit {
			break
		}
		row := make(Row, len(vars))
		for _, v := range vars {
			row[v] = renderTerm(b[v])
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// appendMatches extends the binding b with every triple matching the
// pattern, preferring the subject index, then the predicate index, and
// scanning all triples only when both positions are unbound.
func appendMatches(dst []map[string]rdf.Term, g *graph.Graph, p Pattern, b map[string]rdf.Term) []map[string]rdf.Term {
	s, sOK := resolve(p.Subject, b)
	pr, prOK := resolve(p.Predicate, b)

	var candidates []rdf.Triple
	switch {
	case sOK:
		candidates = g.BySubject(s)
	case prOK:
		candidates = g.ByPredicate(pr)
	default:
		candidates = g.Triples()
	}

	for _, t := range candidates {
		ext := match(p, t, b)
		if ext != nil {
			dst = append(dst, ext)
		}
	}
	return dst
}

// resolve returns the concrete term for a pattern position, if any:
// either the position's literal term or the binding of its variable.
func resolve(pt PatternTerm, b map[string]rdf.Term) (rdf.Term, bool) {
	if !pt.IsVar() {
		return pt.Term, true
	}
	t, ok := b[pt.Var]
	return t, ok
}

// match checks the triple against the pattern under the binding b and
// returns the extended binding, or nil if the triple does not match.
func match(p Pattern, t rdf.Triple, b map[string]rdf.Term) map[string]rdf.Term {
	ext := b
	extended := false
	positions := []struct {
		pt   PatternTerm
		term rdf.Term
	}{
		{p.Subject, t.Subject},
		{p.Predicate, t.Predicate},
		{p.Object, t.Object},
	}
	for _, pos := range positions {
		if !pos.pt.IsVar() {
			if pos.pt.Term != pos.term {
				return nil
			}
			continue
		}
		if bound, ok := ext[pos.pt.Var]; ok {
			if bound != pos.term {
				return nil
			}
			continue
		}
		if !extended {
			ext = cloneBinding(ext)
			extended = true
		}
		ext[pos.pt.Var] = pos.term
	}
	if !extended {
		ext = cloneBinding(ext)
	}
	return ext
}

func cloneBinding(b map[string]rdf.Term) map[string]rdf.Term {
	c := make(map[string]rdf.Term, len(b)+1)
	for k, v := range b {
		c[k] = v
	}
	return c
}

// patternVars lists the variables of a pattern set in first-appearance
// order, for SELECT * projection.
func patternVars(patterns []Pattern) []string {
	seen := make(map[string]bool)
	var vars []string
	for _, p := range patterns {
		for _, pt := range []PatternTerm{p.Subject, p.Predicate, p.Object} {
			if pt.IsVar() && !seen[pt.Var] {
				seen[pt.Var] = true
				vars = append(vars, pt.Var)
			}
		}
	}
	return vars
}

func renderTerm(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindBlank:
		return "_:" + t.Value
	default:
		return t.Value
	}
}

// Values collects the distinct values of one variable across all rows,
// sorted, for mention extraction over result sets.
func (r *Result) Values(v string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range r.Rows {
		val, ok := row[v]
		if !ok || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}
	sort.Strings(out)
	return out
}
