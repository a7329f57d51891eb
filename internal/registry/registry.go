// Package registry stores command definitions and resolves names, aliases and
// suggestions.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/dshills/mindcmd/internal/command"
)

// Registry maps command names and aliases to commands.
//
// A name or alias belongs to exactly one command; registering a command whose
// name or alias is already taken fails rather than overwriting. Lookups are
// case-sensitive. Registration order is preserved for listing and for
// suggestion ranking.
type Registry struct {
	mu sync.RWMutex

	commands map[string]*command.Command // primary name -> command
	index    map[string]*command.Command // name or alias -> command
	order    []string                    // primary names in registration order
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]*command.Command),
		index:    make(map[string]*command.Command),
	}
}

// Register adds a command. The registry takes ownership of cmd, which must
// not be modified afterwards.
func (r *Registry) Register(cmd *command.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := cmd.Check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, 1+len(cmd.Aliases))
	for _, name := range cmd.Names() {
		if name == "" {
			return fmt.Errorf("registry: command %q has an empty alias", cmd.Name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q declared twice by %q", ErrDuplicate, name, cmd.Name)
		}
		seen[name] = true
		if owner, taken := r.index[name]; taken {
			return fmt.Errorf("%w: %q already used by %q", ErrDuplicate, name, owner.Name)
		}
	}

	r.commands[cmd.Name] = cmd
	for _, name := range cmd.Names() {
		r.index[name] = cmd
	}
	r.order = append(r.order, cmd.Name)
	return nil
}

// RegisterAll adds multiple commands, stopping at the first error.
func (r *Registry) RegisterAll(cmds []*command.Command) error {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// AddAlias adds an alias to the command registered under name.
func (r *Registry) AddAlias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if owner, taken := r.index[alias]; taken {
		return fmt.Errorf("%w: %q already used by %q", ErrDuplicate, alias, owner.Name)
	}

	// Registered commands are shared with readers outside the lock, so the
	// alias goes on a copy that replaces the original everywhere.
	updated := *cmd
	updated.Aliases = append(slices.Clip(cmd.Aliases), alias)
	r.commands[name] = &updated
	for _, n := range updated.Names() {
		r.index[n] = &updated
	}
	return nil
}

// Unregister removes the command with the given primary name and all of its
// aliases. It returns false if no such command exists.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unregisterLocked(name)
}

// UnregisterBySource removes every command registered from source.
func (r *Registry) UnregisterBySource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, name := range r.order {
		if r.commands[name].Source == source {
			names = append(names, name)
		}
	}
	for _, name := range names {
		r.unregisterLocked(name)
	}
	return len(names)
}

// unregisterLocked removes a command. Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) bool {
	cmd, ok := r.commands[name]
	if !ok {
		return false
	}

	for _, n := range cmd.Names() {
		if r.index[n] == cmd {
			delete(r.index, n)
		}
	}
	delete(r.commands, name)

	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get resolves a primary name or alias. It returns nil if nothing matches.
func (r *Registry) Get(nameOrAlias string) *command.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index[nameOrAlias]
}

// Has reports whether a name or alias is registered.
func (r *Registry) Has(nameOrAlias string) bool {
	return r.Get(nameOrAlias) != nil
}

// All returns all commands in registration order.
func (r *Registry) All() []*command.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*command.Command, len(r.order))
	for i, name := range r.order {
		out[i] = r.commands[name]
	}
	return out
}

// Names returns the primary names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// ByCategory returns the commands in category, in registration order.
func (r *Registry) ByCategory(category string) []*command.Command {
	var out []*command.Command
	for _, cmd := range r.All() {
		if cmd.Category == category {
			out = append(out, cmd)
		}
	}
	return out
}

// Categories returns all distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cmd := range r.All() {
		if !seen[cmd.Category] {
			seen[cmd.Category] = true
			out = append(out, cmd.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Search returns ranked command names matching query.
func (r *Registry) Search(query string) []string {
	return Suggest(query, r.All())
}
