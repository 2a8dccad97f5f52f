// Package errors provides standardized error handling for the ontoquery
// pipeline.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable),
// and Fatal (unrecoverable, stop processing). Classification lets the
// orchestrator make retry and escalation decisions without string
// matching on error text.
//
// On top of the classes, the package defines the pipeline's error
// taxonomy as sentinel variables:
//
//   - ErrMalformedQuery: query failed to parse or referenced an unbound
//     prefix; surfaced immediately, never retried.
//   - ErrConstraintViolation: a proposed triple batch violated a
//     schema-declared constraint; the batch is rejected and the phase
//     that produced it is treated as a no-op.
//   - ErrInconsistency: the reasoner found a structural defect while
//     materializing the closure; same handling as a constraint
//     violation but logged distinctly for operators.
//   - ErrPersistFailed: the committed graph could not be flushed to
//     disk; fatal for that commit, the in-memory graph is rolled back.
//   - ErrCollaborator: an external collaborator call failed after its
//     retry budget; treated as a failed phase transition.
//   - ErrRateLimited: rate-limit-class collaborator failure; transient,
//     retried with backoff.
//   - ErrUnresolvedPrefix: a prefixed name could not be resolved; fatal
//     to the specific schema-evolution attempt only.
//
// # Usage
//
// Wrap errors with component context using the classification-aware
// wrappers:
//
//	return errors.WrapTransient(err, "CatalogClient", "FetchRecords", "works search")
//
// and branch on classification at decision points:
//
//	if errors.IsTransient(err) {
//	    // retry with backoff
//	}
//
// All wrapping follows the "component.method: action failed: %w" format
// and preserves errors.Is/As chains.
package errors
