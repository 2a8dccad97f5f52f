// Package retry provides bounded exponential backoff for transient failures.
//
// # Overview
//
// The orchestrator treats every external collaborator call (translation,
// refinement, schema proposal, catalog fetch) as potentially blocking I/O
// with a bounded retry policy: jittered exponential delay, capped
// attempts, and a definitive failure surfaced once the budget is
// exhausted. This package implements that loop.
//
// # Core functions
//
//   - Do: execute a function with retry and exponential backoff
//   - DoWithResult: same, returning both result and error
//
// # Configuration presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay (normal operations)
//   - Collaborator(): 4 attempts, 500ms-30s delay (rate-limited LLM and
//     catalog APIs)
//
// # Usage
//
//	translation, err := retry.DoWithResult(ctx, retry.Collaborator(), func() (llm.Translation, error) {
//	    return client.Translate(ctx, text)
//	})
//
// Errors wrapped with NonRetryable stop the loop immediately; everything
// else is retried until the attempt budget runs out.
//
// # Context cancellation
//
// Retry respects context cancellation both between attempts and during
// backoff sleeps. Suspension is a blocking sleep, never a background
// goroutine: the call is synchronous from the caller's point of view.
package retry
