package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/vocabulary"
)

const testSchema = `@prefix : <http://example.org/ontology#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

:Paper a owl:Class .
:Author a owl:Class .
:hasAuthor a owl:ObjectProperty .
:hasAuthor rdfs:domain :Paper .
:hasAuthor rdfs:range :Author .
`

const testInstances = `@prefix : <http://example.org/ontology#> .

:W1 a :Paper .
:W1 :hasAuthor :A1 .
:A1 a :Author .
`

func writeTestFiles(t *testing.T) (schemaPath, instancePath string) {
	t.Helper()
	dir := t.TempDir()

	schemaPath = filepath.Join(dir, "schema.ttl")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0o644))

	instancePath = filepath.Join(dir, "instances.ttl")
	require.NoError(t, os.WriteFile(instancePath, []byte(testInstances), 0o644))
	return schemaPath, instancePath
}

func TestNewStore_LoadsSchemaAndInstances(t *testing.T) {
	schemaPath, instancePath := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)

	g := store.Graph()
	assert.Equal(t, 8, g.Len())
	assert.True(t, g.Has(tr(
		"http://example.org/ontology#W1",
		vocabulary.RDFType,
		"http://example.org/ontology#Paper")))
}

func TestNewStore_MissingInstanceFileTolerated(t *testing.T) {
	schemaPath, _ := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: filepath.Join(t.TempDir(), "absent.ttl"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, store.Graph().Len())
}

func TestNewStore_MissingSchemaFails(t *testing.T) {
	_, err := NewStore(StoreConfig{SchemaPath: "/nonexistent/schema.ttl"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLoadFailed))

	_, err = NewStore(StoreConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingConfig))
}

func TestStore_PromotePersistsInstanceOnly(t *testing.T) {
	schemaPath, instancePath := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)

	sandbox := store.Clone()
	sandbox.Add(tr(
		"http://example.org/ontology#W2",
		vocabulary.RDFType,
		"http://example.org/ontology#Paper"))

	require.NoError(t, store.Promote(sandbox))
	assert.Equal(t, 9, store.Graph().Len())

	// The instance file holds only non-schema triples
	data, err := os.ReadFile(instancePath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, ":W2 a :Paper .")
	assert.Contains(t, content, ":W1 :hasAuthor :A1 .")
	assert.NotContains(t, content, ":hasAuthor rdfs:domain")

	// A fresh store load sees the same triple set
	reloaded, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)
	assert.True(t, store.Graph().Equal(reloaded.Graph()))
}

func TestStore_PromoteRollbackOnPersistFailure(t *testing.T) {
	schemaPath, instancePath := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)

	before := store.Graph()
	beforeLen := before.Len()

	// Point the instance file into a directory that no longer exists
	// so the flush fails.
	store.instancePath = filepath.Join(instancePath, "impossible", "instances.ttl")

	sandbox := store.Clone()
	sandbox.Add(tr(
		"http://example.org/ontology#W9",
		vocabulary.RDFType,
		"http://example.org/ontology#Paper"))

	err = store.Promote(sandbox)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPersistFailed))

	// In-memory graph rolled back to the pre-promote snapshot
	assert.Same(t, before, store.Graph())
	assert.Equal(t, beforeLen, store.Graph().Len())
}

func TestStore_GraphSnapshotStableAcrossPromote(t *testing.T) {
	schemaPath, instancePath := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)

	snapshot := store.Graph()
	snapshotLen := snapshot.Len()

	sandbox := store.Clone()
	sandbox.Add(tr(
		"http://example.org/ontology#W3",
		vocabulary.RDFType,
		"http://example.org/ontology#Paper"))
	require.NoError(t, store.Promote(sandbox))

	// The old snapshot is unchanged; new readers see the new graph.
	assert.Equal(t, snapshotLen, snapshot.Len())
	assert.Equal(t, snapshotLen+1, store.Graph().Len())
}

func TestStore_InstanceFileRoundTripPreservesTypedLiterals(t *testing.T) {
	schemaPath, instancePath := writeTestFiles(t)

	store, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)

	sandbox := store.Clone()
	require.NoError(t, sandbox.Parse(strings.NewReader(
		`@prefix : <http://example.org/ontology#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
:W1 :pageCount "42"^^xsd:integer .
`)))
	require.NoError(t, store.Promote(sandbox))

	reloaded, err := NewStore(StoreConfig{
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	})
	require.NoError(t, err)
	assert.True(t, store.Graph().Equal(reloaded.Graph()))
}
