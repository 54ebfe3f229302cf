package config

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalidPattern indicates a pattern that does not compile.
	ErrInvalidPattern = errors.New("config: invalid pattern")

	// ErrWatcherClosed indicates the watcher was already closed.
	ErrWatcherClosed = errors.New("config: watcher closed")
)

// ParseError reports an option file that failed to decode.
type ParseError struct {
	Path string
	// Line and Column are 1-based; zero when the decoder gave no position.
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("config: %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("config: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
