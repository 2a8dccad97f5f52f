package schema

import (
	"log/slog"
	"strings"

	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/rdf"
	"github.com/c360/ontoquery/vocabulary"
)

// ClassProposal describes one proposed class.
type ClassProposal struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
	Label  string `json:"label,omitempty"`
}

// PropertyProposal describes one proposed property.
type PropertyProposal struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Range  string `json:"range"`
	Label  string `json:"label,omitempty"`
}

// Proposal is a batch of schema extensions, typically produced by the
// schema-proposal collaborator.
type Proposal struct {
	Classes            []ClassProposal    `json:"classes"`
	ObjectProperties   []PropertyProposal `json:"object_properties"`
	DatatypeProperties []PropertyProposal `json:"datatype_properties"`
}

// Empty reports whether the proposal contains no schema elements.
func (p Proposal) Empty() bool {
	return len(p.Classes) == 0 && len(p.ObjectProperties) == 0 && len(p.DatatypeProperties) == 0
}

// PropertyKind selects the OWL property class a proposal declares.
type PropertyKind int

const (
	ObjectProperty PropertyKind = iota
	DatatypeProperty
)

func (k PropertyKind) typeIRI() string {
	if k == DatatypeProperty {
		return vocabulary.OWLDatatypeProperty
	}
	return vocabulary.OWLObjectProperty
}

// Evolver builds schema triples against a graph snapshot's namespace
// table.
type Evolver struct {
	g      *graph.Graph
	logger *slog.Logger
}

// NewEvolver creates an Evolver resolving names against g. A nil
// logger defaults to slog.Default().
func NewEvolver(g *graph.Graph, logger *slog.Logger) *Evolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evolver{g: g, logger: logger.With("component", "evolver")}
}

// ResolveName resolves a bare name, prefixed name, or absolute IRI to
// a canonical IRI. Bare names and the empty prefix resolve against the
// base namespace; unknown prefixes fail with ErrUnresolvedPrefix.
func (e *Evolver) ResolveName(name string) (string, error) {
	return e.g.Expand(name)
}

// BuildClassTriples produces the triples declaring a class: its
// rdf:type, a subclass link (owl:Thing when no parent is given) and an
// English label defaulting to the name with underscores spaced.
func (e *Evolver) BuildClassTriples(c ClassProposal) ([]rdf.Triple, error) {
	classIRI, err := e.ResolveName(c.Name)
	if err != nil {
		return nil, err
	}
	parent := c.Parent
	if parent == "" {
		parent = "owl:Thing"
	}
	parentIRI, err := e.ResolveName(parent)
	if err != nil {
		return nil, err
	}

	class := rdf.NewIRI(classIRI)
	triples := []rdf.Triple{
		rdf.NewTriple(class, rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(vocabulary.OWLClass)),
		rdf.NewTriple(class, rdf.NewIRI(vocabulary.RDFSSubClassOf), rdf.NewIRI(parentIRI)),
		rdf.NewTriple(class, rdf.NewIRI(vocabulary.RDFSLabel), labelFor(c.Name, c.Label)),
	}

	e.logger.Info("built class triples", "class", classIRI, "parent", parentIRI)
	return triples, nil
}

// BuildPropertyTriples produces the triples declaring a property: its
// rdf:type, domain and range links, and an English label defaulting to
// the name with underscores spaced.
func (e *Evolver) BuildPropertyTriples(kind PropertyKind, p PropertyProposal) ([]rdf.Triple, error) {
	propIRI, err := e.ResolveName(p.Name)
	if err != nil {
		return nil, err
	}
	domainIRI, err := e.ResolveName(p.Domain)
	if err != nil {
		return nil, err
	}
	rangeIRI, err := e.ResolveName(p.Range)
	if err != nil {
		return nil, err
	}

	prop := rdf.NewIRI(propIRI)
	triples := []rdf.Triple{
		rdf.NewTriple(prop, rdf.NewIRI(vocabulary.RDFType), rdf.NewIRI(kind.typeIRI())),
		rdf.NewTriple(prop, rdf.NewIRI(vocabulary.RDFSDomain), rdf.NewIRI(domainIRI)),
		rdf.NewTriple(prop, rdf.NewIRI(vocabulary.RDFSRange), rdf.NewIRI(rangeIRI)),
		rdf.NewTriple(prop, rdf.NewIRI(vocabulary.RDFSLabel), labelFor(p.Name, p.Label)),
	}

	e.logger.Info("built property triples",
		"property", propIRI, "domain", domainIRI, "range", rangeIRI)
	return triples, nil
}

// BuildTriples flattens a full proposal into one triple batch. The
// batch is never applied here; it goes through the gateway.
func (e *Evolver) BuildTriples(p Proposal) ([]rdf.Triple, error) {
	var batch []rdf.Triple
	for _, c := range p.Classes {
		triples, err := e.BuildClassTriples(c)
		if err != nil {
			return nil, err
		}
		batch = append(batch, triples...)
	}
	for _, prop := range p.ObjectProperties {
		triples, err := e.BuildPropertyTriples(ObjectProperty, prop)
		if err != nil {
			return nil, err
		}
		batch = append(batch, triples...)
	}
	for _, prop := range p.DatatypeProperties {
		triples, err := e.BuildPropertyTriples(DatatypeProperty, prop)
		if err != nil {
			return nil, err
		}
		batch = append(batch, triples...)
	}
	return batch, nil
}

func labelFor(name, label string) rdf.Term {
	if label == "" {
		label = strings.ReplaceAll(name, "_", " ")
	}
	return rdf.NewLangLiteral(label, "en")
}
