package editor

import (
	"github.com/dshills/caretjar/internal/config"
	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithOptions replaces the default configuration.
func WithOptions(opts config.Options) Option {
	return func(e *Editor) {
		e.opts = opts
	}
}

// WithPatch merges p into the configuration.
func WithPatch(p config.Patch) Option {
	return func(e *Editor) {
		e.opts.Apply(p)
	}
}

// WithClock sets the clock driving debounced work.
func WithClock(c debounce.Clock) Option {
	return func(e *Editor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithPost routes debounced callbacks through post, typically onto the
// host's event loop.
func WithPost(post func(func())) Option {
	return func(e *Editor) {
		e.post = post
	}
}

// WithLogger sets the logger. Output is still gated by the Debug option.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithModeDetector replaces DetectMode.
func WithModeDetector(d ModeDetector) Option {
	return func(e *Editor) {
		if d != nil {
			e.detect = d
		}
	}
}

// WithErrorHandler receives fatal selection errors from event handlers.
// The default handler panics.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Editor) {
		if fn != nil {
			e.onError = fn
		}
	}
}

// WithResizeObserver registers the observer that drives Resize.
func WithResizeObserver(o ResizeObserver) Option {
	return func(e *Editor) {
		e.observer = o
	}
}
