package transition

import "time"

const (
	// DefaultSteps is the number of incremental updates before the final snap.
	DefaultSteps = 10
	// DefaultInterval separates two updates.
	DefaultInterval = 15 * time.Millisecond
)

// Step describes one update applied to a viewer.
type Step struct {
	Index int // 0-based; equals the step count for the final snap
	Final bool
	X, Y  float64 // center, percent of frame
	Depth float64
}

// Options tune a transition.
type Options struct {
	Steps    int
	Interval time.Duration
	// Spring eases intermediate positions with a critically damped spring
	// instead of equal increments. The final snap is the same either way.
	Spring bool
	// OnStep is called after every update, on the transition's goroutine.
	// It must not start another transition on the same handle.
	OnStep func(Step)
}

// Option edits Options.
type Option func(*Options)

// WithSteps sets the number of incremental updates. Values below 1 are ignored.
func WithSteps(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Steps = n
		}
	}
}

// WithInterval sets the pause between updates.
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Interval = d
		}
	}
}

// WithSpring switches to spring easing.
func WithSpring() Option {
	return func(o *Options) {
		o.Spring = true
	}
}

// WithStepHook observes every update.
func WithStepHook(fn func(Step)) Option {
	return func(o *Options) {
		o.OnStep = fn
	}
}

func defaultOptions() Options {
	return Options{Steps: DefaultSteps, Interval: DefaultInterval}
}
