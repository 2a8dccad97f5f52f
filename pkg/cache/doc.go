// Package cache provides a generic, thread-safe bounded LRU cache.
//
// The orchestrator memoizes final answer envelopes keyed by exact query
// text. The original decorator-style memoization was unbounded for the
// process lifetime; here the cache is an explicit value with a fixed
// capacity and least-recently-used eviction, so eviction is a
// first-class, testable behavior.
//
// Statistics (hits, misses, sets, evictions) are always collected.
// An optional eviction callback observes evicted entries.
//
// Entries are immutable snapshots from the caller's point of view and
// are never invalidated by later graph mutations within the same
// process run; serving a stale answer for a repeated question is a
// documented trade-off, not a bug.
package cache
