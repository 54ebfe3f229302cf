package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caretjar/internal/editor"
)

// Key names for keys without a printable value.
const (
	KeyEnter      = "Enter"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyEscape     = "Escape"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyLeft:       KeyArrowLeft,
	tcell.KeyRight:      KeyArrowRight,
	tcell.KeyUp:         KeyArrowUp,
	tcell.KeyDown:       KeyArrowDown,
}

// KeyEvent translates a tcell key event. It reports false for keys the
// editor has no use for.
func KeyEvent(ev *tcell.EventKey) (*editor.KeyEvent, bool) {
	mod := ev.Modifiers()
	k := &editor.KeyEvent{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Shift: mod&tcell.ModShift != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Meta:  mod&tcell.ModMeta != 0,
	}

	key := ev.Key()
	if key == tcell.KeyBacktab {
		k.Key = KeyTab
		k.Shift = true
		return k, true
	}
	if name, ok := namedKeys[key]; ok {
		k.Key = name
		// Terminals report Enter, Tab and Backspace as their control codes.
		if key == tcell.KeyEnter || key == tcell.KeyTab || key == tcell.KeyBackspace {
			k.Ctrl = false
		}
		return k, true
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		k.Key = string(rune('a' + (key - tcell.KeyCtrlA)))
		k.Ctrl = true
		return k, true
	}
	if key == tcell.KeyRune {
		k.Key = string(ev.Rune())
		if k.Ctrl {
			k.Key = strings.ToLower(k.Key)
		}
		return k, true
	}
	return nil, false
}
