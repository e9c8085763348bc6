package dispatcher

// DefaultMaxDepth bounds nested dispatch unless a Config says otherwise.
// It is well above the deepest chain-in-chain nesting seen in practice.
const DefaultMaxDepth = 32

// Config tunes a Dispatcher. The zero value collects no metrics, lets
// handler panics propagate, and does not limit nesting.
type Config struct {
	// EnableMetrics turns on per-action counters and timings.
	EnableMetrics bool

	// RecoverFromPanic converts a panicking handler into an error result.
	RecoverFromPanic bool

	// MaxDepth caps how many dispatches may be active at once through
	// ctx.Commands. Zero disables the cap.
	MaxDepth int
}

// DefaultConfig recovers from panics and caps nesting at DefaultMaxDepth.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true, MaxDepth: DefaultMaxDepth}
}

// WithMetrics returns c with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithMaxDepth returns c with the nesting cap set to depth.
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// WithoutRecovery returns c with panic recovery off, which is useful
// when a test wants the original stack.
func (c Config) WithoutRecovery() Config {
	c.RecoverFromPanic = false
	return c
}
