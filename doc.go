// Package ontoquery answers natural-language questions against a typed
// knowledge graph, escalating through progressively more expensive
// resolution strategies only when a cheaper one comes back empty.
//
// # Architecture
//
// The pipeline is a phase state machine over a single committed graph:
//
//	┌──────────┐    ┌─────────┐    ┌──────────┐
//	│ Generate │───►│ Execute │───►│ Evaluate │──► Finalize (non-empty)
//	└──────────┘    └─────────┘    └────┬─────┘
//	                     ▲              │ empty
//	                     │         ┌────▼─────┐
//	                     ├─────────│  Enrich  │  external catalog fetch
//	                     │         └────┬─────┘
//	                     │         ┌────▼─────┐
//	                     ├─────────│  Refine  │  LLM query refinement
//	                     │         └────┬─────┘
//	                     │         ┌────▼─────┐
//	                     └─────────│  Evolve  │  LLM schema proposal
//	                               └────┬─────┘
//	                                    ▼
//	                                Finalize
//
// Each phase runs at most once per question, so the pipeline terminates
// after a bounded number of query executions.
//
// Every mutation of the committed graph, whether instance data from
// enrichment or schema elements from evolution, passes through the same
// transactional validation gate: clone the graph into a sandbox, apply
// the proposed triples, check schema constraints, materialize the RDFS
// closure, and only then promote the sandbox to become the committed
// graph. A failure at any step discards the sandbox and leaves the
// committed graph byte-for-byte untouched.
//
// # Packages
//
// Data model:
//   - rdf: Term, Literal, and Triple value types
//   - vocabulary: RDF/RDFS/OWL/XSD IRIs and the standard prefix table
//   - graph: triple set with indexes, namespaces, Turtle round trip,
//     and the Store that owns the committed graph and its persistence
//   - graph/query: SPARQL-subset parser and executor
//
// Validation core:
//   - validation: constraint checker, RDFS inference runner, and the
//     transactional gateway that sequences clone/check/infer/promote
//
// Escalation:
//   - schema: schema evolution (name resolution, proposal to triples)
//   - enrich: gap-driven enrichment handlers and dispatch
//   - llm: translation, refinement, and schema-proposal collaborators
//   - orchestrator: the phase machine, query authority, gap analysis,
//     answer envelope, and bounded answer cache
//
// Infrastructure:
//   - config: JSON configuration with schema validation
//   - errors: classified error handling
//   - metric: Prometheus collectors
//   - health: component liveness monitor and /healthz handler
//   - pkg/retry: bounded jittered backoff for collaborator calls
//   - pkg/cache: generic bounded LRU
//
// # Consistency model
//
// Single committed graph, single writer: only the validation gateway's
// promote step replaces the committed graph, through an atomically
// swapped pointer, so concurrent readers always observe a complete
// snapshot. Sandbox clones are exclusively owned by the validation
// attempt that created them and never outlive it.
package ontoquery
