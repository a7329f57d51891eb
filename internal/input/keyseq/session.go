package keyseq

// Session accumulates keys for one input stream.
// A Session is not safe for concurrent use; each stream owns its own.
type Session struct {
	table  *Table
	buffer string
}

// NewSession creates a session matching against t.
func NewSession(t *Table) *Session {
	return &Session{table: t}
}

// Feed appends key to the buffer and matches the result.
// The buffer is cleared after a complete or invalid sequence.
func (s *Session) Feed(key string) Result {
	s.buffer += key
	r := Match(s.buffer, s.table)
	if r.Complete || r.ShouldClear {
		s.buffer = ""
	}
	return r
}

// Pending returns the buffered keys.
func (s *Session) Pending() string {
	return s.buffer
}

// Reset discards the buffered keys.
func (s *Session) Reset() {
	s.buffer = ""
}

// SetTable replaces the pattern table and discards the buffer.
func (s *Session) SetTable(t *Table) {
	s.table = t
	s.buffer = ""
}

// Table returns the pattern table.
func (s *Session) Table() *Table {
	return s.table
}
