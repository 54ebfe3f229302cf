package editor

// EditingMode controls line-break handling for one kind of surface.
type EditingMode interface {
	// Name identifies the mode in logs.
	Name() string
	// Editable is the contenteditable value written to the root.
	Editable() string
	// FixNewLine runs for Enter when no indentation is inserted.
	FixNewLine(e *Editor, ev *KeyEvent)
	// AfterKeyDown runs last in the key-down handler.
	AfterKeyDown(e *Editor, ev *KeyEvent)
}

// ModeDetector selects the editing mode for a surface. It runs once, when
// the editor is created.
type ModeDetector func(s Surface) EditingMode

// StrictMode is used by surfaces that insert plain newlines natively.
type StrictMode struct{}

// Name returns "strict".
func (StrictMode) Name() string { return "strict" }

// Editable returns "plaintext-only".
func (StrictMode) Editable() string { return "plaintext-only" }

// FixNewLine does nothing.
func (StrictMode) FixNewLine(*Editor, *KeyEvent) {}

// AfterKeyDown does nothing.
func (StrictMode) AfterKeyDown(*Editor, *KeyEvent) {}

// CompatMode is used by surfaces that only support rich editability and
// would otherwise insert block elements on Enter.
type CompatMode struct{}

// Name returns "compat".
func (CompatMode) Name() string { return "compat" }

// Editable returns "true".
func (CompatMode) Editable() string { return "true" }

// FixNewLine inserts the newline itself. At the end of the content a
// trailing space is inserted after it and the caret placed before the
// space, so the new empty line is rendered.
func (CompatMode) FixNewLine(e *Editor, ev *KeyEvent) {
	if ev.Key != "Enter" {
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
	if e.afterCursor() != "" {
		e.insert("\n")
		return
	}
	e.insert("\n ")
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	pos.End--
	pos.Start = pos.End
	e.Restore(pos)
}

// AfterKeyDown recommits the selection unless the key is a copy shortcut.
func (CompatMode) AfterKeyDown(e *Editor, ev *KeyEvent) {
	if isCopy(ev) {
		return
	}
	if pos, ok := e.mustSave(); ok {
		e.Restore(pos)
	}
}

// DetectMode picks CompatMode for surfaces that report no plaintext-only
// support and StrictMode otherwise.
func DetectMode(s Surface) EditingMode {
	if p, ok := s.(PlaintextProber); ok && !p.SupportsPlaintextOnly() {
		return CompatMode{}
	}
	return StrictMode{}
}
