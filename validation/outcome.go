package validation

import (
	"fmt"

	"github.com/c360/ontoquery/rdf"
)

// Status is the terminal state of a validation attempt.
type Status int

const (
	// StatusNoop means the proposed batch was empty and the graph was
	// not touched.
	StatusNoop Status = iota

	// StatusCommitted means the batch and its entailments were promoted
	// into the committed graph.
	StatusCommitted

	// StatusRejected means at least one proposed triple violated a
	// declared constraint; the committed graph is unchanged.
	StatusRejected

	// StatusInconsistent means the closure computation found a
	// structural schema defect; the committed graph is unchanged.
	StatusInconsistent
)

// String returns the status name used in logs and metrics labels.
func (s Status) String() string {
	switch s {
	case StatusNoop:
		return "noop"
	case StatusCommitted:
		return "committed"
	case StatusRejected:
		return "rejected"
	case StatusInconsistent:
		return "inconsistent"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Violation is one constraint failure, reported per triple.
type Violation struct {
	Triple rdf.Triple
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Triple, v.Reason)
}

// Outcome is the result of a validation attempt.
type Outcome struct {
	Status Status

	// Added is the number of triples that landed, proposed plus
	// entailed, when Status is StatusCommitted.
	Added int

	// Violations holds every constraint failure in the batch when
	// Status is StatusRejected.
	Violations []Violation

	// Reason describes the structural defect when Status is
	// StatusInconsistent.
	Reason string
}

// Noop is the outcome for an empty proposed batch.
func Noop() Outcome {
	return Outcome{Status: StatusNoop}
}

// Committed is the outcome for a promoted batch.
func Committed(added int) Outcome {
	return Outcome{Status: StatusCommitted, Added: added}
}

// Rejected is the outcome for a batch with constraint violations.
func Rejected(violations []Violation) Outcome {
	return Outcome{Status: StatusRejected, Violations: violations}
}

// Inconsistent is the outcome for a batch whose closure failed.
func Inconsistent(reason string) Outcome {
	return Outcome{Status: StatusInconsistent, Reason: reason}
}

// OK reports whether the attempt left the graph in a valid state with
// the batch either absorbed or trivially empty.
func (o Outcome) OK() bool {
	return o.Status == StatusCommitted || o.Status == StatusNoop
}
