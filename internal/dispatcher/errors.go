package dispatcher

import "errors"

// Dispatcher errors. They are logged and surface to callers only as the
// Error text of a failed command.Result.
var (
	// ErrUnknownCommand indicates no command matched the requested name.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrCancelled indicates a pre-dispatch hook cancelled the invocation.
	ErrCancelled = errors.New("dispatcher: cancelled by hook")

	// ErrGuardFailed indicates the command guard rejected the invocation.
	ErrGuardFailed = errors.New("dispatcher: guard failed")

	// ErrPanic indicates the command panicked.
	ErrPanic = errors.New("dispatcher: command panic")

	// ErrNothingToRepeat indicates dot-repeat had no recorded invocation.
	ErrNothingToRepeat = errors.New("dispatcher: nothing to repeat")

	// ErrNotRepeatable indicates the recorded command is no longer repeatable.
	ErrNotRepeatable = errors.New("dispatcher: command not repeatable")

	// ErrUnboundKey indicates a recognized key sequence has no command line.
	ErrUnboundKey = errors.New("dispatcher: key sequence not bound")
)

// User-facing failure messages.
const (
	msgCancelled       = "Command cancelled"
	msgGuardFailed     = "Command guard failed: preconditions not met"
	msgExecutionFailed = "Command execution failed"
	msgNothingToRepeat = "Nothing to repeat"
	msgNotRepeatable   = "Command %s cannot be repeated"
)
