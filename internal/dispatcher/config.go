package dispatcher

import "math"

const defaultSuggestions = 3

// Config tunes a Dispatcher. Panics are always recovered; the zero value
// only loses stack traces in the log and the default limits.
type Config struct {
	// PanicStacks attaches the goroutine stack to recovered-panic log
	// entries.
	PanicStacks bool

	// MaxCount is the largest count a handler sees. Zero falls back to
	// math.MaxInt32.
	MaxCount int

	// MaxSuggestions caps the "Did you mean" list.
	MaxSuggestions int

	// EnableMetrics allocates a Metrics collector.
	EnableMetrics bool
}

// DefaultConfig logs panic stacks, caps counts at 10000 and suggests up to
// three names.
func DefaultConfig() Config {
	return Config{
		PanicStacks:    true,
		MaxCount:       10000,
		MaxSuggestions: defaultSuggestions,
	}
}

// WithMetrics turns on metrics collection.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicStacks sets PanicStacks.
func (c Config) WithPanicStacks(on bool) Config {
	c.PanicStacks = on
	return c
}

// WithMaxCount sets MaxCount.
func (c Config) WithMaxCount(n int) Config {
	c.MaxCount = n
	return c
}

// WithMaxSuggestions sets MaxSuggestions.
func (c Config) WithMaxSuggestions(n int) Config {
	c.MaxSuggestions = n
	return c
}

func (c Config) clampCount(n int) int {
	ceiling := c.MaxCount
	if ceiling <= 0 {
		ceiling = math.MaxInt32
	}
	switch {
	case n < 0:
		return 0
	case n > ceiling:
		return ceiling
	}
	return n
}

func (c Config) suggestionLimit() int {
	if c.MaxSuggestions > 0 {
		return c.MaxSuggestions
	}
	return defaultSuggestions
}
