package lua

import "errors"

// Errors for Lua state and plugin operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoPlugin is returned when a script declares no plugin table.
	ErrNoPlugin = errors.New("lua script declares no plugin table")

	// ErrNoName is returned when the plugin table has no name.
	ErrNoName = errors.New("lua plugin has no name")

	// ErrNoHandler is returned when the plugin table has no on_action
	// function.
	ErrNoHandler = errors.New("lua plugin has no on_action function")
)
