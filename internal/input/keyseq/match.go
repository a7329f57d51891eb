package keyseq

import "strconv"

// State is the recognizer state implied by a Result.
type State uint8

const (
	// StateIdle means no keys are buffered.
	StateIdle State = iota
	// StateCount means only a count has been typed.
	StateCount
	// StateChord means a valid prefix of a multi-key pattern has been typed.
	StateChord
	// StateComplete means a command was recognized.
	StateComplete
	// StateInvalid means the keys cannot form a command.
	StateInvalid
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCount:
		return "count"
	case StateChord:
		return "chord"
	case StateComplete:
		return "complete"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is the outcome of matching a key buffer.
type Result struct {
	// Complete is set when a command was recognized.
	Complete bool

	// Partial is set when more keys are needed.
	Partial bool

	// Command is the recognized pattern, "." or "m:<count>".
	Command string

	// Count is the typed count, or 0 if none.
	Count int

	// ShouldClear is set when the buffer must be discarded.
	ShouldClear bool

	// DotRepeat is set for the dot-repeat command.
	DotRepeat bool

	// Pending holds the keys of an unfinished chord, without the count.
	Pending string
}

// State returns the recognizer state this result represents.
func (r Result) State() State {
	switch {
	case r.Complete:
		return StateComplete
	case r.ShouldClear:
		return StateInvalid
	case r.Partial && r.Pending == "":
		return StateCount
	case r.Partial:
		return StateChord
	default:
		return StateIdle
	}
}

// Match recognizes the key buffer keys against table t.
func Match(keys string, t *Table) Result {
	if keys == "" {
		return Result{}
	}

	count, hasCount, rest := splitCount(keys)

	switch {
	case rest == "":
		return Result{Partial: true, Count: count}

	case rest == NumberListKey && hasCount:
		return Result{
			Complete: true,
			Command:  NumberListKey + ":" + strconv.Itoa(count),
			Count:    count,
		}

	case rest == DotRepeat:
		return Result{Complete: true, Command: DotRepeat, Count: count, DotRepeat: true}

	case t.Has(rest):
		return Result{Complete: true, Command: rest, Count: count}

	case t.IsPrefix(rest):
		return Result{Partial: true, Count: count, Pending: rest}

	default:
		return Result{ShouldClear: true}
	}
}
