package jsonvalidate

import "errors"

var (
	// ErrNoEditor is returned by Set when the host cannot replace its text.
	ErrNoEditor = errors.New("jsonvalidate: host cannot update code")

	// ErrInvalid wraps syntax errors reported by Check.
	ErrInvalid = errors.New("invalid JSON")
)
