package llm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/c360/ontoquery/vocabulary"
)

// personNameExpr matches the question forms that name a person.
var personNameExpr = regexp.MustCompile(`(papers by|who is) (.+)`)

// Confidences reported by the template translator. Matched templates
// score above the default generation threshold, the fallback below it,
// so the orchestrator escalates to the expensive translator only when
// no rule applied.
const (
	templateConfidence = 0.9
	fallbackConfidence = 0.1
)

// TemplateTranslator is the offline rule-based first-pass translator.
// It understands "papers by X", "who is X" and "list all papers", and
// returns a guaranteed-empty query for anything else.
type TemplateTranslator struct {
	base   string
	logger *slog.Logger
}

// NewTemplateTranslator creates a template translator for the given
// base namespace. A nil logger defaults to slog.Default().
func NewTemplateTranslator(base string, logger *slog.Logger) *TemplateTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateTranslator{base: base, logger: logger.With("component", "template_translator")}
}

// Translate applies the lexical rules to the question text.
func (t *TemplateTranslator) Translate(ctx context.Context, text string) (Translation, error) {
	lower := strings.ToLower(text)

	if m := personNameExpr.FindStringSubmatch(lower); m != nil {
		name := titleCase(strings.TrimSpace(m[2]))
		t.logger.Info("matched person template", "trigger", m[1], "name", name)
		if m[1] == "papers by" {
			return Translation{Query: t.papersByQuery(name), Confidence: templateConfidence}, nil
		}
		return Translation{Query: t.whoIsQuery(name), Confidence: templateConfidence}, nil
	}

	if strings.Contains(lower, "list all papers") {
		t.logger.Info("matched list-all-papers template")
		return Translation{Query: t.allPapersQuery(), Confidence: templateConfidence}, nil
	}

	t.logger.Warn("no template matched, returning empty-result query", "text", text)
	return Translation{Query: t.emptyQuery(), Confidence: fallbackConfidence}, nil
}

func (t *TemplateTranslator) prefixes() string {
	return fmt.Sprintf("PREFIX : <%s>\nPREFIX rdfs: <%s>\n", t.base, vocabulary.RDFSNamespace)
}

func (t *TemplateTranslator) papersByQuery(name string) string {
	return t.prefixes() + fmt.Sprintf(`
SELECT ?paper
WHERE {
  ?paper a :Paper .
  ?paper :hasAuthor ?author .
  ?author rdfs:label "%s" .
}
`, name)
}

func (t *TemplateTranslator) whoIsQuery(name string) string {
	return t.prefixes() + fmt.Sprintf(`
SELECT ?person
WHERE {
  ?person rdfs:label "%s" .
}
`, name)
}

func (t *TemplateTranslator) allPapersQuery() string {
	return t.prefixes() + `
SELECT ?paper
WHERE {
  ?paper a :Paper .
}
`
}

// emptyQuery matches nothing; its empty result drives the pipeline
// into the escalation phases.
func (t *TemplateTranslator) emptyQuery() string {
	return t.prefixes() + `
SELECT ?s
WHERE {
  ?s a :NonExistentClass .
}
`
}

// titleCase uppercases the first letter of each space-separated word,
// turning "geoffrey hinton" into "Geoffrey Hinton" to match catalog
// label casing.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
