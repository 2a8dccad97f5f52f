// Package orchestrator drives question answering as a phase state
// machine: Generate a query, Execute it against the committed graph,
// and on an empty result escalate through Enrich, Refine and Evolve
// before finalizing the answer envelope. Each escalation phase runs at
// most once per question, so resolution always terminates.
package orchestrator
