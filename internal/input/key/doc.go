// Package key converts terminal key events into the key tokens fed to a
// key-sequence session.
//
// A token is the string a key contributes to the sequence buffer: a single
// printable character such as "j", "G" or ">". Keys that never appear in a
// binding (Escape, Enter, Ctrl chords) are reported as control events so the
// host can cancel the pending sequence, open a command line or quit.
package key
