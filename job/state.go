package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Pending   (retry, via a failed attempt with budget left)
//	Processing -> Dead      (retry budget exhausted)
//	Dead       -> Pending   (operator requeue from the DLQ)
//
// Completed and Dead are terminal. State is the zero value's type; the
// zero value itself (0) is never a valid persisted state and must not be
// written to storage.
type State uint8

const (
	// Pending indicates the job is available for claiming. A Pending job
	// may have a future NextRetryAt, which delays its eligibility.
	Pending State = iota + 1

	// Processing indicates a worker holds the job's lock and is currently
	// executing its command.
	Processing

	// Completed indicates the job's command exited successfully. Completed
	// is terminal; the job stays in the active set.
	Completed

	// Dead indicates the job exhausted its retry budget and was moved to
	// the dead letter queue. Dead is terminal until an operator requeues
	// the job with dlq-requeue.
	Dead
)

func stateToString(s State) string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func stateFromString(s string) (State, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "dead":
		return Dead, nil
	default:
		return 0, fmt.Errorf("job: unknown state %q", s)
	}
}

// ParseState converts a string representation of a state into a State
// value. Recognized values are "pending", "processing", "completed" and
// "dead". An error is returned for anything else, including the "failed"
// alias (see Filter in the queue package, which interprets "failed" as a
// filter condition rather than a persisted state).
func ParseState(s string) (State, error) {
	return stateFromString(s)
}

// MarshalText implements encoding.TextMarshaler so State round-trips
// through the JSON job files as its canonical lowercase name rather than
// a bare integer.
func (s State) MarshalText() ([]byte, error) {
	if s == 0 {
		return nil, fmt.Errorf("job: cannot marshal zero-value state")
	}
	return []byte(stateToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := stateFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// String returns the canonical lowercase name of the state.
func (s State) String() string {
	return stateToString(s)
}
