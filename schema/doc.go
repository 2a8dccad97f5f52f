// Package schema turns proposed ontology extensions into triples.
//
// The Evolver resolves names against the graph's namespace table and
// builds the rdf:type, rdfs:subClassOf, rdfs:domain, rdfs:range and
// rdfs:label statements describing a proposal. It never applies them:
// callers route every built batch through the validation gateway, so
// schema mutation obeys the same consistency gate as instance data.
package schema
