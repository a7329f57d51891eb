// Package app wires the command engine together: registry, builtin outline
// commands, Lua script commands, dispatcher, command history and the
// configuration watcher.
package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
	"github.com/dshills/mindcmd/internal/config"
	"github.com/dshills/mindcmd/internal/dispatcher"
	"github.com/dshills/mindcmd/internal/history"
	"github.com/dshills/mindcmd/internal/input/keyseq"
	"github.com/dshills/mindcmd/internal/outline"
	"github.com/dshills/mindcmd/internal/plugin/lua"
	"github.com/dshills/mindcmd/internal/registry"
)

// Application owns every engine component.
type Application struct {
	mu     sync.RWMutex
	config *config.Config
	logger *zap.Logger

	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	tree       *outline.Tree

	history *history.Store
	plugins *lua.Loader
	watcher *config.Watcher

	closed atomic.Bool
	opts   options
}

type options struct {
	watchPath string
	tree      *outline.Tree
}

// Option configures an Application.
type Option func(*options)

// WithConfigWatch reloads key bindings and aliases whenever the config file
// at path changes.
func WithConfigWatch(path string) Option {
	return func(o *options) { o.watchPath = path }
}

// WithTree uses t as the command environment instead of an empty outline.
func WithTree(t *outline.Tree) Option {
	return func(o *options) { o.tree = t }
}

// New builds an application from cfg. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &Application{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(&app.opts)
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.config

	// 1. Registry with builtins
	app.registry = registry.New()
	if err := app.registry.RegisterAll(outline.Commands()); err != nil {
		return &InitError{Component: "registry", Err: err}
	}

	if err := app.registry.RegisterAll(app.systemCommands()); err != nil {
		return &InitError{Component: "registry", Err: err}
	}

	app.tree = app.opts.tree
	if app.tree == nil {
		app.tree = outline.NewTree("Outline")
	}

	// 2. Lua script commands. Broken scripts are skipped.
	if cfg.Plugins.Enabled {
		app.plugins = lua.NewLoader(app.registry, app.logger.Named("lua"))
		dir := PluginDir(cfg)
		n, err := app.plugins.LoadDir(context.Background(), dir)
		if err != nil {
			app.logger.Warn("some lua scripts failed to load", zap.String("dir", dir), zap.Error(err))
		}
		app.logger.Debug("loaded lua commands", zap.String("dir", dir), zap.Int("count", n))
	}

	// 3. Aliases from config, after every command exists
	app.applyAliases(cfg.Aliases)

	// 4. Dispatcher
	table, err := cfg.KeyTable()
	if err != nil {
		return &InitError{Component: "key bindings", Err: err}
	}
	app.dispatcher = dispatcher.New(app.registry, dispatcherConfig(cfg),
		dispatcher.WithLogger(app.logger.Named("dispatcher")),
		dispatcher.WithKeyTable(table),
	)
	hook := dispatcher.NewLoggingHook(app.logger.Named("dispatch"))
	app.dispatcher.AddPreHook(hook)
	app.dispatcher.AddPostHook(hook)

	// 5. History
	if cfg.History.Enabled {
		store, err := history.Open(HistoryPath(cfg),
			history.WithLimit(cfg.History.Limit),
			history.WithLogger(app.logger.Named("history")),
		)
		if err != nil {
			return &InitError{Component: "history", Err: err}
		}
		app.history = store
		app.dispatcher.AddPostHook(store)
	}

	// 6. Config watcher
	if app.opts.watchPath != "" {
		w, err := config.Watch(app.opts.watchPath, app.logger.Named("config"), app.applyConfig)
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
		app.watcher = w
	}

	return nil
}

func dispatcherConfig(cfg *config.Config) dispatcher.Config {
	dc := dispatcher.DefaultConfig().
		WithPanicStacks(cfg.Dispatcher.PanicStacks).
		WithMaxCount(cfg.Dispatcher.MaxCount).
		WithMaxSuggestions(cfg.Dispatcher.MaxSuggestions)
	if cfg.Dispatcher.Metrics {
		dc = dc.WithMetrics()
	}
	return dc
}

// applyAliases adds alias -> command entries. Conflicts are logged.
func (app *Application) applyAliases(aliases map[string]string) {
	for alias, name := range aliases {
		if app.registry.Get(alias) != nil {
			continue
		}
		if err := app.registry.AddAlias(alias, name); err != nil {
			app.logger.Warn("ignoring alias", zap.String("alias", alias), zap.String("command", name), zap.Error(err))
		}
	}
}

// applyConfig installs a reloaded configuration. Only key bindings and
// aliases take effect without a restart.
func (app *Application) applyConfig(cfg *config.Config) {
	if app.closed.Load() {
		return
	}

	if table, err := cfg.KeyTable(); err != nil {
		app.logger.Warn("keeping previous key bindings", zap.Error(err))
	} else {
		app.dispatcher.SetKeyBindings(table)
	}
	app.applyAliases(cfg.Aliases)

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.Info("configuration reloaded")
}

// PluginDir returns the Lua script directory for cfg.
func PluginDir(cfg *config.Config) string {
	if cfg.Plugins.Dir != "" {
		return cfg.Plugins.Dir
	}
	return filepath.Join(filepath.Dir(config.DefaultPath()), "plugins")
}

// HistoryPath returns the history database location for cfg.
func HistoryPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return history.DefaultPath()
}

// Config returns the configuration currently in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *zap.Logger {
	return app.logger
}

// Registry returns the command registry.
func (app *Application) Registry() *registry.Registry {
	return app.registry
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Tree returns the outline the commands act on.
func (app *Application) Tree() *outline.Tree {
	return app.tree
}

// History returns the history store, or nil when history is disabled.
func (app *Application) History() *history.Store {
	return app.history
}

// Plugins returns the Lua loader, or nil when plugins are disabled.
func (app *Application) Plugins() *lua.Loader {
	return app.plugins
}

// Execute dispatches a command line against the outline.
func (app *Application) Execute(ctx context.Context, line string, opts dispatcher.Options) command.Result {
	if app.closed.Load() {
		return command.Failure(ErrClosed.Error())
	}
	return app.dispatcher.Execute(ctx, line, app.tree, opts)
}

// ExecuteKeys dispatches a complete key sequence against the outline.
func (app *Application) ExecuteKeys(ctx context.Context, keys string) (keyseq.Result, command.Result) {
	if app.closed.Load() {
		return keyseq.Result{}, command.Failure(ErrClosed.Error())
	}
	return app.dispatcher.ExecuteKeySequence(ctx, keys, app.tree)
}

// NewKeySession starts a keystroke-at-a-time session for one input stream.
func (app *Application) NewKeySession() *dispatcher.KeySession {
	return app.dispatcher.NewKeySession()
}

// Close stops the watcher and releases the plugin states and the history
// database. It is safe to call more than once.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	app.logMetrics()

	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.plugins != nil {
		errs = append(errs, app.plugins.Close())
	}
	if app.history != nil {
		errs = append(errs, app.history.Close())
	}
	return errors.Join(errs...)
}
