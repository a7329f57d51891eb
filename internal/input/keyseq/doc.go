// Package keyseq recognizes modal (Vim-style) key sequences.
//
// A sequence has the shape
//
//	[count]<pattern>
//
// where count is a run of digits not starting with 0 and pattern is one of the
// key sequences in a Table. Two shorthands are built in and need no table
// entry: "." (dot-repeat) and "<count>m", which folds the count into the
// command identifier ("5m" -> "m:5").
//
// Match is a pure function over the keys typed so far. It reports one of:
//
//   - Partial: a bare count, or a strict prefix of some pattern ("d" before "dd")
//   - Complete: a recognized command, with its count if one was typed
//   - ShouldClear: the keys cannot become a command; discard them
//
// Session wraps Match for one live input stream, accumulating keys and
// clearing its buffer after every complete or invalid sequence:
//
//	s := keyseq.NewSession(table)
//	s.Feed("3") // Partial, Count 3
//	s.Feed("j") // Complete, Command "j", Count 3
//
// The table is configuration data; the algorithm is independent of it.
package keyseq
