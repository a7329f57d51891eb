package command

import "fmt"

// Result is the outcome of a dispatch.
type Result struct {
	// Success reports whether the command ran and succeeded.
	Success bool

	// Message is an optional status message for display.
	Message string

	// Error describes the failure when Success is false.
	Error string

	// Data holds command-specific return data.
	Data any
}

// Success creates a successful result.
func Success() Result {
	return Result{Success: true}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Successf creates a successful result with a formatted message.
func Successf(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failure creates a failed result with the given error message.
func Failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Failuref creates a failed result with a formatted error message.
func Failuref(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// FromError creates a failed result from err.
func FromError(err error) Result {
	if err == nil {
		return Success()
	}
	return Failure(err.Error())
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithData returns a copy of the result with data attached.
func (r Result) WithData(data any) Result {
	r.Data = data
	return r
}

// String renders the result for display.
func (r Result) String() string {
	if r.Success {
		if r.Message == "" {
			return "ok"
		}
		return r.Message
	}
	if r.Error == "" {
		return "error"
	}
	return "error: " + r.Error
}
