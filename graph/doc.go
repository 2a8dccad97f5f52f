// Package graph implements the triple store: an in-memory set of
// unique triples with subject and predicate indexes, a namespace
// prefix table, Turtle-subset serialization, and the Store that owns
// the committed graph and its file persistence.
//
// # Graph
//
// Graph is a mutable set of rdf.Triple values. Add is idempotent, the
// indexes are always consistent with the set, and Clone produces a
// fully independent copy sharing no mutable state with the original,
// the property the validation sandbox depends on.
//
// # Store
//
// Store holds the committed graph behind an atomically swapped pointer.
// Readers take a consistent snapshot with Store.Graph; the only
// mutation path is Store.Promote, which swaps in a validated sandbox
// and synchronously flushes the instance data file. If the flush fails
// the swap is rolled back, so memory and disk never diverge for longer
// than one failed promote.
package graph
