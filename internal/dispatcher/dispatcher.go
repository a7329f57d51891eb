package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
	"github.com/dshills/mindcmd/internal/input/cmdline"
	"github.com/dshills/mindcmd/internal/input/keyseq"
	"github.com/dshills/mindcmd/internal/registry"
)

// Options modify a single Execute call.
type Options struct {
	// DryRun validates the command without running it.
	DryRun bool

	// Count is a numeric prefix for countable commands.
	Count int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKeyTable sets the initial key-binding table.
func WithKeyTable(t *keyseq.Table) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.keys = t
		}
	}
}

// Dispatcher routes command lines and key sequences to registered commands.
type Dispatcher struct {
	mu sync.RWMutex

	registry *registry.Registry
	keys     *keyseq.Table
	config   Config
	logger   *zap.Logger
	metrics  *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook

	// last is the most recent successful repeatable invocation.
	last *recorded
}

// recorded is an invocation kept for dot-repeat.
type recorded struct {
	name  string
	args  command.Args
	count int
	raw   string
}

// request is a resolved invocation waiting for lookup and validation.
type request struct {
	name   string
	args   command.Args
	raw    string
	count  int
	source command.Source
	dryRun bool
}

// New creates a dispatcher over reg.
func New(reg *registry.Registry, config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		keys:     keyseq.DefaultTable(),
		config:   config,
		logger:   zap.NewNop(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// AddPreHook registers a pre-dispatch hook.
func (d *Dispatcher) AddPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, h)
}

// AddPostHook registers a post-dispatch hook.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, h)
}

// Execute parses and runs one command line.
func (d *Dispatcher) Execute(ctx context.Context, input string, env any, opts Options) command.Result {
	parsed, err := cmdline.Parse(input)
	if err != nil {
		d.logger.Debug("parse failed", zap.String("input", input), zap.Error(err))
		return command.FromError(err)
	}

	return d.dispatch(ctx, request{
		name:   parsed.Name,
		args:   parsed.Args,
		raw:    parsed.Raw,
		count:  opts.Count,
		source: command.SourceText,
		dryRun: opts.DryRun,
	}, env)
}

// dispatch resolves, validates and runs req.
func (d *Dispatcher) dispatch(ctx context.Context, req request, env any) command.Result {
	cmd := d.registry.Get(req.name)
	if cmd == nil {
		d.logger.Debug("unknown command", zap.String("name", req.name), zap.Error(ErrUnknownCommand))
		return command.Failure(d.unknownCommand(req.name))
	}

	args, err := command.Validate(req.args, cmd)
	if err != nil {
		d.logger.Debug("validation failed", zap.String("command", cmd.Name), zap.Error(err))
		return command.FromError(err)
	}

	inv := d.newInvocation(cmd, args, req.count, req.source, req.raw, env)

	if req.dryRun {
		return command.Successf("Would execute %s", cmd.Name).WithData(args)
	}

	return d.invoke(ctx, cmd, inv)
}

// newInvocation builds the invocation for cmd, dropping or clamping count.
func (d *Dispatcher) newInvocation(cmd *command.Command, args command.Args, count int, src command.Source, raw string, env any) *command.Invocation {
	if !cmd.Countable {
		count = 0
	}
	return &command.Invocation{
		ID:     uuid.New(),
		Name:   cmd.Name,
		Env:    env,
		Args:   args,
		Count:  d.config.clampCount(count),
		Source: src,
		Raw:    raw,
	}
}

// unknownCommand formats the failure for an unregistered name.
func (d *Dispatcher) unknownCommand(name string) string {
	limit := d.config.suggestionLimit()

	if s := d.registry.Search(name); len(s) > 0 {
		return fmt.Sprintf("Unknown command: %s. Did you mean: %s?", name, strings.Join(s[:min(limit, len(s))], ", "))
	}
	if names := d.registry.Names(); len(names) > 0 {
		sort.Strings(names)
		return fmt.Sprintf("Unknown command: %s. Available commands: %s", name, strings.Join(names, ", "))
	}
	return "Unknown command: " + name
}

// invoke runs hooks, guard and Execute for a validated invocation. A panic
// anywhere in here, hooks included, comes back as a failed Result.
func (d *Dispatcher) invoke(ctx context.Context, cmd *command.Command, inv *command.Invocation) (result command.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = d.recovered(cmd, r)
		}
		if d.metrics != nil {
			d.metrics.RecordDispatch(cmd.Name, time.Since(start), result.Success)
		}
	}()

	result = d.run(ctx, cmd, inv)

	d.runPostHooks(ctx, inv, &result)

	if result.Success && cmd.Repeatable {
		d.remember(inv)
	}
	return result
}

// run performs the pre-hook, guard and Execute stages. Post hooks still see
// the result of a panicking guard or handler.
func (d *Dispatcher) run(ctx context.Context, cmd *command.Command, inv *command.Invocation) command.Result {
	if !d.runPreHooks(ctx, inv) {
		d.logger.Debug("invocation cancelled", zap.String("command", cmd.Name), zap.Error(ErrCancelled))
		return command.Failure(msgCancelled)
	}
	return d.executeWithRecovery(ctx, cmd, inv)
}

// execute checks the guard and calls Execute.
func (d *Dispatcher) execute(ctx context.Context, cmd *command.Command, inv *command.Invocation) command.Result {
	if cmd.Guard != nil && !cmd.Guard(ctx, inv) {
		d.logger.Debug("guard rejected invocation", zap.String("command", cmd.Name), zap.Error(ErrGuardFailed))
		return command.Failure(msgGuardFailed)
	}

	result, err := cmd.Execute(ctx, inv)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgExecutionFailed
		}
		return command.Failure(msg)
	}
	return result
}

// executeWithRecovery executes a command, turning a panic into a failure.
func (d *Dispatcher) executeWithRecovery(ctx context.Context, cmd *command.Command, inv *command.Invocation) (result command.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = d.recovered(cmd, r)
		}
	}()

	return d.execute(ctx, cmd, inv)
}

// recovered logs a recovered panic value and converts it to a failure.
func (d *Dispatcher) recovered(cmd *command.Command, r any) command.Result {
	fields := []zap.Field{
		zap.String("command", cmd.Name),
		zap.Any("panic", r),
		zap.Error(ErrPanic),
	}
	if d.config.PanicStacks {
		stack := make([]byte, 4096)
		n := runtime.Stack(stack, false)
		fields = append(fields, zap.ByteString("stack", stack[:n]))
	}
	d.logger.Error("command panicked", fields...)

	if d.metrics != nil {
		d.metrics.RecordPanic(cmd.Name)
	}
	return command.Failure(panicMessage(r))
}

// panicMessage extracts a message from a recovered panic value.
func panicMessage(r any) string {
	var msg string
	switch v := r.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	case fmt.Stringer:
		msg = v.String()
	}
	if msg == "" {
		return msgExecutionFailed
	}
	return msg
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the invocation.
func (d *Dispatcher) runPreHooks(ctx context.Context, inv *command.Invocation) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(ctx, inv) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(ctx context.Context, inv *command.Invocation, result *command.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(ctx, inv, result)
	}
}

// remember records inv for dot-repeat.
func (d *Dispatcher) remember(inv *command.Invocation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = &recorded{
		name:  inv.Name,
		args:  inv.Args.Clone(),
		count: inv.Count,
		raw:   inv.Raw,
	}
}

// forget drops the recorded invocation if it is still last.
func (d *Dispatcher) forget(last *recorded) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == last {
		d.last = nil
	}
}

// Repeat re-runs the last successful repeatable invocation. A positive count
// replaces the recorded one.
func (d *Dispatcher) Repeat(ctx context.Context, count int, env any) command.Result {
	d.mu.RLock()
	last := d.last
	d.mu.RUnlock()

	if last == nil {
		d.logger.Debug("dot-repeat with empty history", zap.Error(ErrNothingToRepeat))
		return command.Failure(msgNothingToRepeat)
	}

	cmd := d.registry.Get(last.name)
	if cmd == nil {
		return command.Failure(d.unknownCommand(last.name))
	}
	if !cmd.Repeatable {
		d.forget(last)
		d.logger.Debug("dot-repeat of non-repeatable command", zap.String("command", cmd.Name), zap.Error(ErrNotRepeatable))
		return command.Failure(fmt.Sprintf(msgNotRepeatable, cmd.Name))
	}

	if count <= 0 {
		count = last.count
	}
	inv := d.newInvocation(cmd, last.args.Clone(), count, command.SourceRepeat, last.raw, env)
	return d.invoke(ctx, cmd, inv)
}

// LastRepeatable returns the name of the command dot-repeat would run.
func (d *Dispatcher) LastRepeatable() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.last == nil {
		return "", false
	}
	return d.last.name, true
}

// IsUnknownCommand reports whether r is an unknown-command failure.
func IsUnknownCommand(r command.Result) bool {
	return !r.Success && strings.HasPrefix(r.Error, "Unknown command: ")
}

