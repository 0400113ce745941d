package deferred

import "github.com/promist-io/deferred/internal/state"

// State is the lifecycle state of a Promise, or the variant of a Result.
// A Result is never Pending.
type State int

const (
	// the order here matters, it mirrors internal/state.
	Pending State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "<unknown>"
	}
}

// IsSucceeded returns true, only if the promise or result succeeded.
func (s State) IsSucceeded() bool { return s == Succeeded }

// IsFailed returns true, only if the promise or result failed.
func (s State) IsFailed() bool { return s == Failed }

// IsResolved returns true, only if the state is terminal.
func (s State) IsResolved() bool { return s != Pending }

func stateOf(s state.State) State {
	return State(s)
}
