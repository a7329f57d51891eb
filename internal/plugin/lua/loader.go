package lua

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/registry"
)

// SourcePrefix prefixes the command source of every script command.
const SourcePrefix = "lua:"

// Loader loads Lua scripts and registers their commands.
type Loader struct {
	mu       sync.Mutex
	registry *registry.Registry
	logger   *zap.Logger
	opts     []StateOption
	scripts  map[string]*script // source -> script
}

// NewLoader creates a loader that registers into reg.
func NewLoader(reg *registry.Registry, logger *zap.Logger, opts ...StateOption) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		registry: reg,
		logger:   logger,
		opts:     opts,
		scripts:  make(map[string]*script),
	}
}

// Source returns the command source used for the script at path.
func Source(path string) string {
	return SourcePrefix + filepath.Base(path)
}

// LoadFile runs the script at path and registers the commands it declares.
// Commands previously registered from the same file are replaced. If any
// command cannot be registered, none from the file are.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	return l.load(Source(path), func(s *State) error { return s.DoFile(ctx, path) })
}

// loadString runs code under the given source name.
func (l *Loader) loadString(ctx context.Context, name, code string) (int, error) {
	return l.load(SourcePrefix+name, func(s *State) error { return s.DoString(ctx, code) })
}

func (l *Loader) load(source string, run func(*State) error) (int, error) {
	sc := &script{
		state:  NewState(l.opts...),
		source: source,
		logger: l.logger.With(zap.String("script", source)),
	}
	sc.install()

	if err := run(sc.state); err != nil {
		_ = sc.state.Close()
		return 0, fmt.Errorf("loading %s: %s", source, errorText(err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	old := l.scripts[source]
	l.registry.UnregisterBySource(source)

	for i, cmd := range sc.commands {
		if err := l.registry.Register(cmd); err != nil {
			for _, done := range sc.commands[:i] {
				l.registry.Unregister(done.Name)
			}
			_ = sc.state.Close()
			if old != nil {
				l.restore(old)
			}
			return 0, fmt.Errorf("loading %s: %w", source, err)
		}
	}

	if old != nil {
		_ = old.state.Close()
	}
	l.scripts[source] = sc

	l.logger.Debug("loaded lua script", zap.String("source", source), zap.Int("commands", len(sc.commands)))
	return len(sc.commands), nil
}

// restore re-registers the commands of a script whose replacement failed.
func (l *Loader) restore(sc *script) {
	for _, cmd := range sc.commands {
		if err := l.registry.Register(cmd); err != nil {
			l.logger.Warn("could not restore lua command", zap.String("command", cmd.Name), zap.Error(err))
		}
	}
}

// LoadDir loads every *.lua file in dir in name order. A failing script is
// logged and skipped; the joined errors are returned with the number of
// commands registered.
func (l *Loader) LoadDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading plugin directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	total := 0
	var errs []error
	for _, name := range names {
		n, err := l.LoadFile(ctx, filepath.Join(dir, name))
		if err != nil {
			l.logger.Warn("skipping lua script", zap.String("file", name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

// Unload removes the commands of the script at path and closes its state.
func (l *Loader) Unload(path string) bool {
	source := Source(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	sc, ok := l.scripts[source]
	if !ok {
		return false
	}
	l.registry.UnregisterBySource(source)
	_ = sc.state.Close()
	delete(l.scripts, source)
	return true
}

// Sync brings the loaded scripts in line with dir: scripts whose file is
// gone are unloaded and every remaining *.lua file is (re)loaded. It returns
// the number of commands registered and of scripts unloaded.
func (l *Loader) Sync(ctx context.Context, dir string) (loaded, removed int, err error) {
	present := make(map[string]bool)
	entries, rerr := os.ReadDir(dir)
	if rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
		return 0, 0, fmt.Errorf("reading plugin directory %s: %w", dir, rerr)
	}
	for _, e := range entries {
		present[Source(e.Name())] = true
	}

	for _, src := range l.Sources() {
		if present[src] {
			continue
		}
		if l.Unload(filepath.Join(dir, strings.TrimPrefix(src, SourcePrefix))) {
			l.logger.Info("unloaded lua script", zap.String("source", src))
			removed++
		}
	}

	loaded, err = l.LoadDir(ctx, dir)
	return loaded, removed, err
}

// Sources returns the loaded script sources, sorted.
func (l *Loader) Sources() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.scripts))
	for src := range l.scripts {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

// Close unregisters all script commands and closes every state.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for source, sc := range l.scripts {
		l.registry.UnregisterBySource(source)
		_ = sc.state.Close()
	}
	l.scripts = make(map[string]*script)
	return nil
}
