package dispatcher

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
	"github.com/dshills/mindcmd/internal/input/cmdline"
	"github.com/dshills/mindcmd/internal/input/keyseq"
)

// KeyTable returns the current key-binding table.
func (d *Dispatcher) KeyTable() *keyseq.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.keys
}

// SetKeyBindings replaces the key-binding table. Sessions pick up the new
// table on their next key.
func (d *Dispatcher) SetKeyBindings(t *keyseq.Table) {
	if t == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = t
}

// ExecuteKeySequence matches keys as a whole sequence and, when it is
// complete, runs the bound command. Incomplete and unrecognized sequences
// return a failed Result without running anything.
func (d *Dispatcher) ExecuteKeySequence(ctx context.Context, keys string, env any) (keyseq.Result, command.Result) {
	table := d.KeyTable()
	m := keyseq.Match(keys, table)

	switch {
	case m.Complete:
		return m, d.runKeys(ctx, m, keys, table, env)
	case m.Partial:
		return m, command.Failuref("Incomplete key sequence: %s", keys)
	default:
		return m, command.Failuref("Unknown key sequence: %s", keys)
	}
}

// runKeys dispatches a completed key match.
func (d *Dispatcher) runKeys(ctx context.Context, m keyseq.Result, keys string, table *keyseq.Table, env any) command.Result {
	if m.DotRepeat {
		return d.Repeat(ctx, m.Count, env)
	}

	// "m:<n>" carries its count in m.Count; the binding lives under "m".
	pattern := m.Command
	if p, _, ok := strings.Cut(pattern, ":"); ok && p == keyseq.NumberListKey {
		pattern = p
	}

	line, ok := table.Command(pattern)
	if !ok {
		d.logger.Debug("key sequence has no binding", zap.String("keys", keys), zap.Error(ErrUnboundKey))
		return command.Failuref("No command bound to %s", pattern)
	}

	parsed, err := cmdline.Parse(line)
	if err != nil {
		d.logger.Warn("invalid key binding", zap.String("pattern", pattern), zap.String("line", line), zap.Error(err))
		return command.FromError(err)
	}

	return d.dispatch(ctx, request{
		name:   parsed.Name,
		args:   parsed.Args,
		raw:    keys,
		count:  m.Count,
		source: command.SourceKeys,
	}, env)
}

// KeyOutcome is the result of feeding one key to a KeySession.
type KeyOutcome struct {
	// Match is the recognizer result for the buffered keys.
	Match keyseq.Result

	// Keys is the buffered sequence the match was computed over.
	Keys string

	// Executed is set when a command ran (or failed to run) for this key.
	Executed bool

	// Result is the command outcome. Valid only when Executed is set.
	Result command.Result
}

// KeySession recognizes one stream of keys and dispatches completed
// sequences. It is not safe for concurrent use.
type KeySession struct {
	d       *Dispatcher
	session *keyseq.Session
}

// NewKeySession creates a key session bound to d.
func (d *Dispatcher) NewKeySession() *KeySession {
	return &KeySession{
		d:       d,
		session: keyseq.NewSession(d.KeyTable()),
	}
}

// Feed appends key to the buffer and runs the bound command once the
// sequence completes.
func (s *KeySession) Feed(ctx context.Context, key string, env any) KeyOutcome {
	table := s.d.KeyTable()
	if s.session.Table() != table {
		s.session.SetTable(table)
	}

	keys := s.session.Pending() + key
	m := s.session.Feed(key)

	out := KeyOutcome{Match: m, Keys: keys}
	if m.Complete {
		out.Executed = true
		out.Result = s.d.runKeys(ctx, m, keys, table, env)
	}
	return out
}

// Pending returns the keys buffered so far.
func (s *KeySession) Pending() string {
	return s.session.Pending()
}

// Reset discards the buffered keys.
func (s *KeySession) Reset() {
	s.session.Reset()
}
