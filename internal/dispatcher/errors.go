package dispatcher

import "errors"

// Registry errors. They are logged as warnings, not returned to callers of
// the editor's plugin operations.
var (
	// ErrNilPlugin indicates a nil source or a factory that built nothing.
	ErrNilPlugin = errors.New("dispatcher: no usable plugin")

	// ErrDuplicateName indicates a plugin with the same name exists.
	ErrDuplicateName = errors.New("dispatcher: duplicate plugin name")

	// ErrUnknownPlugin indicates no plugin has the requested name.
	ErrUnknownPlugin = errors.New("dispatcher: unknown plugin")

	// ErrInvalidSource indicates an argument that is neither a plugin nor
	// a factory.
	ErrInvalidSource = errors.New("dispatcher: invalid plugin source")
)
