package command

import (
	"sort"
	"strconv"
	"strings"
)

// PositionalPrefix prefixes the synthesized keys of positional arguments.
const PositionalPrefix = "_"

// Args maps argument names, or positional keys such as "_0", to values.
type Args map[string]Value

// PositionalKey returns the key for the positional argument at index i.
func PositionalKey(i int) string {
	return PositionalPrefix + strconv.Itoa(i)
}

// positionalIndex returns the index encoded in a positional key.
func positionalIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, PositionalPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(key[len(PositionalPrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Get returns the value for name.
func (a Args) Get(name string) (Value, bool) {
	v, ok := a[name]
	return v, ok
}

// Has reports whether name is present.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string form of name, or "" if absent.
func (a Args) String(name string) string {
	return a[name].String()
}

// Number returns the numeric value of name, or 0 if absent or not a number.
func (a Args) Number(name string) float64 {
	return a[name].Number()
}

// Int returns the numeric value of name truncated to an int.
func (a Args) Int(name string) int {
	return a[name].Int()
}

// Bool returns the boolean value of name, or false if absent or not a boolean.
func (a Args) Bool(name string) bool {
	return a[name].Bool()
}

// PositionalKeys returns the positional keys present, ordered by index.
func (a Args) PositionalKeys() []string {
	type entry struct {
		key string
		idx int
	}
	entries := make([]entry, 0, len(a))
	for k := range a {
		if idx, ok := positionalIndex(k); ok {
			entries = append(entries, entry{key: k, idx: idx})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].idx < entries[j].idx
	})

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// Positionals returns positional values ordered by index.
func (a Args) Positionals() []Value {
	keys := a.PositionalKeys()
	values := make([]Value, len(keys))
	for i, k := range keys {
		values[i] = a[k]
	}
	return values
}

// Clone returns a shallow copy of the map.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Map returns the arguments as plain Go values.
func (a Args) Map() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v.Interface()
	}
	return out
}

// Format renders the arguments as "name=value" pairs sorted by name.
func (a Args) Format() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.Quote(a[k].String())
	}
	return strings.Join(parts, " ")
}
