package dispatcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
)

// PreDispatchHook runs after validation and before the guard. Returning
// false cancels the invocation with "Command cancelled".
type PreDispatchHook interface {
	PreDispatch(ctx context.Context, inv *command.Invocation) bool
}

// PostDispatchHook sees every invocation that got past validation, cancelled
// and guard-rejected ones included. It may rewrite the result. A panicking
// hook ends the invocation with a failure and skips the hooks after it.
type PostDispatchHook interface {
	PostDispatch(ctx context.Context, inv *command.Invocation, result *command.Result)
}

// PreDispatchFunc adapts a function to PreDispatchHook.
type PreDispatchFunc func(ctx context.Context, inv *command.Invocation) bool

// PreDispatch calls f.
func (f PreDispatchFunc) PreDispatch(ctx context.Context, inv *command.Invocation) bool {
	return f(ctx, inv)
}

// PostDispatchFunc adapts a function to PostDispatchHook.
type PostDispatchFunc func(ctx context.Context, inv *command.Invocation, result *command.Result)

// PostDispatch calls f.
func (f PostDispatchFunc) PostDispatch(ctx context.Context, inv *command.Invocation, result *command.Result) {
	f(ctx, inv, result)
}

// LoggingHook traces invocations at debug level. Register the same value
// as both a pre and a post hook.
type LoggingHook struct {
	logger *zap.Logger
}

// NewLoggingHook returns a hook writing to logger, or discarding if nil.
func NewLoggingHook(logger *zap.Logger) *LoggingHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHook{logger: logger}
}

func (h *LoggingHook) fields(inv *command.Invocation) []zap.Field {
	return []zap.Field{
		zap.Stringer("id", inv.ID),
		zap.String("command", inv.Name),
		zap.Stringer("source", inv.Source),
	}
}

// PreDispatch logs the invocation about to run. It never cancels.
func (h *LoggingHook) PreDispatch(ctx context.Context, inv *command.Invocation) bool {
	h.logger.Debug("dispatch", append(h.fields(inv), zap.Int("count", inv.Count))...)
	return true
}

// PostDispatch logs the outcome, with the error text on failure.
func (h *LoggingHook) PostDispatch(ctx context.Context, inv *command.Invocation, result *command.Result) {
	fs := append(h.fields(inv), zap.Bool("success", result.Success))
	if !result.Success {
		fs = append(fs, zap.String("error", result.Error))
	}
	h.logger.Debug("dispatched", fs...)
}

// ValidationHook cancels any invocation ValidateFunc rejects. A nil
// ValidateFunc lets everything through.
type ValidationHook struct {
	ValidateFunc func(inv *command.Invocation) bool
}

// PreDispatch reports whether ValidateFunc accepts inv.
func (h *ValidationHook) PreDispatch(ctx context.Context, inv *command.Invocation) bool {
	return h.ValidateFunc == nil || h.ValidateFunc(inv)
}
