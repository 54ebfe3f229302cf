package editor

import "errors"

// ErrDestroyed is reported when a destroyed editor is asked to do work.
var ErrDestroyed = errors.New("editor: destroyed")
