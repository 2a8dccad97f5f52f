package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardPrefixes(t *testing.T) {
	prefixes := StandardPrefixes()

	assert.Equal(t, RDFNamespace, prefixes["rdf"])
	assert.Equal(t, RDFSNamespace, prefixes["rdfs"])
	assert.Equal(t, OWLNamespace, prefixes["owl"])
	assert.Equal(t, XSDNamespace, prefixes["xsd"])
	assert.Equal(t, ProvenanceNamespace, prefixes["prov"])

	// Callers may mutate the returned map; a fresh copy each call
	prefixes["rdf"] = "corrupted"
	assert.Equal(t, RDFNamespace, StandardPrefixes()["rdf"])
}

func TestIsXSDDatatype(t *testing.T) {
	assert.True(t, IsXSDDatatype(XSDInteger))
	assert.True(t, IsXSDDatatype(XSDString))
	assert.False(t, IsXSDDatatype(OWLClass))
	assert.False(t, IsXSDDatatype(""))
	assert.False(t, IsXSDDatatype(XSDNamespace))
}

func TestIsStringRange(t *testing.T) {
	assert.True(t, IsStringRange(XSDString))
	assert.False(t, IsStringRange(XSDInteger))
	assert.False(t, IsStringRange(""))
}
