package graph

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/rdf"
)

// StoreConfig configures a Store.
type StoreConfig struct {
	// SchemaPath is the base schema (TBox) file, required at startup.
	SchemaPath string

	// InstancePath is the instance-data file. Missing at startup is
	// tolerated; it is created on the first successful promote.
	InstancePath string

	// BaseNamespace is bound to the empty prefix. Defaults to
	// vocabulary.DefaultBaseNamespace.
	BaseNamespace string

	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// Store owns the committed graph. The graph is exposed through a
// pointer that is only ever atomically swapped, never mutated in
// place, so concurrent readers always observe a complete snapshot.
// Promote is the single mutation path.
type Store struct {
	committed atomic.Pointer[Graph]

	// schemaTriples records the base schema loaded at startup; promote
	// writes everything outside this set to the instance file, keeping
	// the base schema file clean.
	schemaTriples map[rdf.Triple]struct{}

	instancePath string
	logger       *slog.Logger

	// promoteMu serializes Promote calls.
	promoteMu sync.Mutex
}

// NewStore loads the schema and instance files and returns a store
// holding the committed graph.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Store", "NewStore", "schema path")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")

	g := New(cfg.BaseNamespace)

	schemaFile, err := os.Open(cfg.SchemaPath)
	if err != nil {
		return nil, errors.WrapFatal(errors.ErrLoadFailed, "Store", "NewStore", cfg.SchemaPath)
	}
	defer schemaFile.Close()

	if err := g.Parse(schemaFile); err != nil {
		return nil, errors.WrapFatal(err, "Store", "NewStore", "schema parse")
	}

	schemaTriples := make(map[rdf.Triple]struct{}, g.Len())
	for _, t := range g.Triples() {
		schemaTriples[t] = struct{}{}
	}
	logger.Info("loaded base schema", "path", cfg.SchemaPath, "triples", g.Len())

	if cfg.InstancePath != "" {
		instanceFile, err := os.Open(cfg.InstancePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.WrapFatal(errors.ErrLoadFailed, "Store", "NewStore", cfg.InstancePath)
			}
			logger.Warn("instance data file not found, starting empty", "path", cfg.InstancePath)
		} else {
			defer instanceFile.Close()
			before := g.Len()
			if err := g.Parse(instanceFile); err != nil {
				return nil, errors.WrapFatal(err, "Store", "NewStore", "instance parse")
			}
			logger.Info("loaded instance data", "path", cfg.InstancePath, "triples", g.Len()-before)
		}
	}

	s := &Store{
		schemaTriples: schemaTriples,
		instancePath:  cfg.InstancePath,
		logger:        logger,
	}
	s.committed.Store(g)
	return s, nil
}

// Graph returns the committed graph snapshot. Callers must treat the
// returned graph as read-only; mutation goes through Promote.
func (s *Store) Graph() *Graph {
	return s.committed.Load()
}

// Clone returns an independent sandbox copy of the committed graph.
func (s *Store) Clone() *Graph {
	return s.committed.Load().Clone()
}

// Promote atomically replaces the committed graph with sandbox and
// persists the instance data. On persist failure the previous graph is
// restored and errors.ErrPersistFailed is returned, so the in-memory
// and on-disk states never diverge past one failed promote.
func (s *Store) Promote(sandbox *Graph) error {
	s.promoteMu.Lock()
	defer s.promoteMu.Unlock()

	previous := s.committed.Swap(sandbox)

	if err := s.persistInstance(sandbox); err != nil {
		s.committed.Store(previous)
		s.logger.Error("promote rolled back, instance flush failed", "error", err)
		return errors.WrapFatal(errors.ErrPersistFailed, "Store", "Promote", err.Error())
	}

	s.logger.Info("promoted sandbox to committed graph", "triples", sandbox.Len())
	return nil
}

// persistInstance writes all non-schema triples to the instance file
// via a temp file and rename, so a crash mid-write never truncates the
// previous instance data.
func (s *Store) persistInstance(g *Graph) error {
	if s.instancePath == "" {
		return nil
	}

	instance := New(g.Base())
	for p, ns := range g.Namespaces() {
		instance.Bind(p, ns)
	}
	for _, t := range g.Triples() {
		if _, inSchema := s.schemaTriples[t]; !inSchema {
			instance.Add(t)
		}
	}

	dir := filepath.Dir(s.instancePath)
	tmp, err := os.CreateTemp(dir, ".instance-*.ttl")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := instance.Serialize(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("serialize: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.instancePath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
