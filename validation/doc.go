// Package validation is the transactional core of the graph: every
// mutation, whether enrichment data or schema evolution, passes through
// the Gateway's validate-and-commit gate.
//
// The gate is strictly sequential: clone the committed graph into a
// sandbox, apply the proposed batch to the sandbox only, check the
// proposed triples against the declared constraints, materialize the
// RDFS closure over the sandbox, then promote the sandbox to become the
// committed graph. A failure at any step discards the sandbox and
// leaves the committed graph untouched; either the full batch (proposed
// plus entailed) lands, or nothing does.
//
// Constraint checking enforces declared literal ranges only. Domain
// declarations are carried in the schema but deliberately not enforced;
// CheckDomain documents the contract.
package validation
