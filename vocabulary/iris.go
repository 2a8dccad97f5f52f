package vocabulary

// Namespace IRIs for the standard semantic web vocabularies.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	// DefaultBaseNamespace is the namespace bound to the empty prefix
	// when a deployment does not configure its own.
	DefaultBaseNamespace = "http://example.org/ontology#"

	// ProvenanceNamespace holds the enrichment provenance predicates.
	ProvenanceNamespace = "http://example.org/provenance#"
)

// RDF vocabulary.
const (
	RDFType     = RDFNamespace + "type"
	RDFProperty = RDFNamespace + "Property"
)

// RDFS vocabulary.
const (
	RDFSClass         = RDFSNamespace + "Class"
	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSDomain        = RDFSNamespace + "domain"
	RDFSRange         = RDFSNamespace + "range"
	RDFSLabel         = RDFSNamespace + "label"
	RDFSComment       = RDFSNamespace + "comment"
)

// OWL vocabulary.
const (
	OWLClass            = OWLNamespace + "Class"
	OWLObjectProperty   = OWLNamespace + "ObjectProperty"
	OWLDatatypeProperty = OWLNamespace + "DatatypeProperty"
	OWLThing            = OWLNamespace + "Thing"
	OWLNothing          = OWLNamespace + "Nothing"
)

// XSD datatypes used by the constraint checker.
const (
	XSDString   = XSDNamespace + "string"
	XSDInteger  = XSDNamespace + "integer"
	XSDInt      = XSDNamespace + "int"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDDate     = XSDNamespace + "date"
)

// Provenance predicates attached to enriched subjects.
const (
	ProvAddedBy = ProvenanceNamespace + "addedBy"
	ProvSource  = ProvenanceNamespace + "source"
)

// StandardPrefixes returns the prefix bindings every graph starts with.
// The empty prefix maps to the deployment's base namespace and is bound
// separately by the graph constructor.
func StandardPrefixes() map[string]string {
	return map[string]string{
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
		"owl":  OWLNamespace,
		"xsd":  XSDNamespace,
		"prov": ProvenanceNamespace,
	}
}

// IsStringRange reports whether a declared range accepts untyped
// literals. Plain literals have no datatype tag, so a range of
// xsd:string is satisfied by them.
func IsStringRange(rangeIRI string) bool {
	return rangeIRI == XSDString
}

// IsXSDDatatype reports whether the IRI names an XSD datatype, i.e. a
// literal range rather than a class range.
func IsXSDDatatype(iri string) bool {
	return len(iri) > len(XSDNamespace) && iri[:len(XSDNamespace)] == XSDNamespace
}
