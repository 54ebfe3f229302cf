package editor

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/caretjar/internal/config"
	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/engine/history"
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/logging"
	"github.com/dshills/caretjar/internal/tree"
)

const attrSpellcheck = "spellcheck"

var nextID atomic.Int64

// Editor coordinates a Surface, its history, its plugins and the debounced
// highlight, history and update channels.
type Editor struct {
	mu sync.Mutex // event lock

	id        string
	surface   Surface
	highlight HighlightFunc
	opts      config.Options

	mapper  *position.Mapper
	history *history.Stack
	disp    *dispatcher.Dispatcher

	log      *logging.Logger
	clock    debounce.Clock
	post     func(func())
	detect   ModeDetector
	mode     EditingMode
	onError  func(error)
	observer ResizeObserver

	onUpdate func(code string)

	group       debounce.Group
	highlightCh *debounce.Debouncer[struct{}]
	updateCh    *debounce.Debouncer[string]
	historyCh   *debounce.Debouncer[*KeyEvent]
	refreshCh   *debounce.Debouncer[struct{}]

	readonly  bool // cached, see checkReadonly
	focused   bool
	recording bool
	prev      string // text before the current key-down
	destroyed bool
}

// New creates an editor over surface. highlight may be nil.
func New(surface Surface, highlight HighlightFunc, opts ...Option) *Editor {
	e := &Editor{
		id:        fmt.Sprintf("caretjar-%d", nextID.Add(1)-1),
		surface:   surface,
		highlight: highlight,
		opts:      config.Default(),
		log:       logging.New(logging.DefaultConfig()),
		clock:     debounce.RealClock{},
		detect:    DetectMode,
		onError:   func(err error) { panic(err) },
	}
	for _, opt := range opts {
		opt(e)
	}
	prefix := e.id
	if p := e.log.Prefix(); p != "" {
		prefix = p + ":" + e.id
	}
	e.log = e.log.WithPrefix(prefix)

	e.mapper = position.NewMapper(surface)
	e.history = history.NewStack(e.opts.MaxHistory)
	e.disp = dispatcher.New(e, e.checkReadonly)
	e.onUpdate = func(code string) {
		e.Debug("no update callback, %d characters", len([]rune(code)))
	}

	var dopts []debounce.Option
	if e.post != nil {
		dopts = append(dopts, debounce.WithPost(e.post))
	}
	e.highlightCh = debounce.New(e.clock, e.opts.Debounce.HighlightDelay(), func(struct{}) {
		e.fire(e.debouncedHighlight)
	}, dopts...)
	e.updateCh = debounce.New(e.clock, e.opts.Debounce.UpdateDelay(), func(code string) {
		e.fire(func() { e.notifyUpdate(code) })
	}, dopts...)
	e.historyCh = debounce.New(e.clock, e.historyDelay(), func(ev *KeyEvent) {
		e.fire(func() { e.debouncedHistory(ev) })
	}, dopts...)
	e.refreshCh = debounce.New(e.clock, e.opts.Debounce.UpdateDelay(), func(struct{}) {
		e.fire(e.debouncedRefresh)
	}, dopts...)
	e.group.Add(e.highlightCh)
	e.group.Add(e.updateCh)
	e.group.Add(e.historyCh)
	e.group.Add(e.refreshCh)

	e.mode = e.detect(surface)
	e.readonly = !e.opts.ReadOnly
	e.checkReadonly()

	root := surface.Root()
	root.SetStyleProperty("outline", "none")
	root.SetStyleProperty("overflow-y", "auto")

	if e.observer != nil {
		e.observer.Observe(e.Resize)
	}

	e.Debug("created in %s mode", e.mode.Name())
	return e
}

func (e *Editor) historyDelay() time.Duration {
	if e.opts.HistoryDebounce <= 0 {
		return config.DefaultHistoryDebounce
	}
	return e.opts.HistoryDebounce
}

// fire runs a debounced callback under the event lock unless the editor
// was destroyed in the meantime.
func (e *Editor) fire(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	fn()
}

// Do runs fn under the event lock. Hosts driving the editor from several
// goroutines wrap public operations in Do. It returns ErrDestroyed without
// running fn once the editor is destroyed.
func (e *Editor) Do(fn func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	fn()
	return nil
}

// checkReadonly syncs the root's editability attributes with the ReadOnly
// option and reports whether the editor is read-only. Attributes are only
// written when the option changed since the last call.
func (e *Editor) checkReadonly() bool {
	ro := e.opts.ReadOnly
	if e.readonly == ro {
		return ro
	}
	e.readonly = ro

	root := e.surface.Root()
	if ro {
		root.RemoveAttr(tree.AttrEditable)
		root.RemoveAttr(attrSpellcheck)
		return true
	}
	root.SetAttr(tree.AttrEditable, e.mode.Editable())
	root.SetAttr(attrSpellcheck, strconv.FormatBool(e.opts.Spellcheck))
	return false
}

// ID returns the editor's unique identifier.
func (e *Editor) ID() string { return e.id }

// Options returns a copy of the live configuration.
func (e *Editor) Options() config.Options { return e.opts }

// Surface returns the driven surface.
func (e *Editor) Surface() Surface { return e.surface }

// Root returns the surface's root element.
func (e *Editor) Root() *tree.Node { return e.surface.Root() }

// Mode returns the editing mode chosen at creation.
func (e *Editor) Mode() EditingMode { return e.mode }

// ReadOnly reports whether the editor is read-only.
func (e *Editor) ReadOnly() bool { return e.checkReadonly() }

// Focused reports whether the surface has focus per FocusIn and Blur.
func (e *Editor) Focused() bool { return e.focused }

// UpdateOptions merges p into the configuration. Changes take effect on
// the next interaction; nothing is re-rendered.
func (e *Editor) UpdateOptions(p config.Patch) {
	e.Debug("update options")
	e.opts.Apply(p)
	e.history.SetMaxEntries(e.opts.MaxHistory)
	e.highlightCh.SetDelay(e.opts.Debounce.HighlightDelay())
	e.updateCh.SetDelay(e.opts.Debounce.UpdateDelay())
	e.refreshCh.SetDelay(e.opts.Debounce.UpdateDelay())
	e.historyCh.SetDelay(e.historyDelay())
}

// UpdateCode replaces the full text and re-highlights. When notify is set
// the update callback runs immediately.
func (e *Editor) UpdateCode(code string, notify bool) {
	e.Debug("update code, %d characters", len([]rune(code)))
	root := e.surface.Root()
	e.keepSelection(func() { root.SetTextContent(code) })
	e.doHighlight(nil)
	if notify {
		e.updateCh.Cancel()
		e.notifyUpdate(code)
	}
}

// Refresh schedules a re-highlight and a refresh action without reporting
// a content change.
func (e *Editor) Refresh() {
	e.refreshCh.Call(struct{}{})
}

// OnUpdate sets the callback receiving the text after edits settle.
func (e *Editor) OnUpdate(fn func(code string)) {
	if fn == nil {
		e.Warn("update callback is not a function")
		return
	}
	e.onUpdate = fn
}

// OnAction sets the system handler that sees every action before plugins.
// Returning true aborts the action.
func (e *Editor) OnAction(fn func(name, code string, event any) bool) {
	if fn == nil {
		e.Warn("action callback is not a function")
		return
	}
	e.disp.SetSystem(fn)
}

// ToString returns the full text.
func (e *Editor) ToString() string {
	return e.surface.Root().TextContent()
}

// Save focuses the surface and reads its selection.
func (e *Editor) Save() (position.Position, error) {
	e.surface.Focus()
	return e.mapper.Save()
}

// Restore commits pos to the selection.
func (e *Editor) Restore(pos position.Position) {
	e.mapper.Restore(pos)
}

// mustSave saves the selection, reporting failure to the error handler.
func (e *Editor) mustSave() (position.Position, bool) {
	pos, err := e.Save()
	if err != nil {
		e.onError(fmt.Errorf("%s: save selection: %w", e.id, err))
		return pos, false
	}
	return pos, true
}

// Warn logs a warning when Debug is enabled.
func (e *Editor) Warn(msg string, args ...any) {
	if e.opts.Debug {
		e.log.Warn(msg, args...)
	}
}

// Debug logs a debug message when Debug is enabled.
func (e *Editor) Debug(msg string, args ...any) {
	if e.opts.Debug {
		e.log.Debug(msg, args...)
	}
}

// AddPlugin registers a plugin built from source, which may be a
// dispatcher.Factory, a func(dispatcher.Host, any) dispatcher.Plugin or a
// prebuilt dispatcher.Plugin. It returns nil and logs a warning on failure.
func (e *Editor) AddPlugin(source any, config any) dispatcher.Plugin {
	if source == nil {
		e.Warn("plugin is not a function or object")
		return nil
	}
	return e.disp.Add(e, source, config)
}

// RemovePlugin destroys and removes the plugin named by target, a name or
// a plugin.
func (e *Editor) RemovePlugin(target any) bool {
	return e.disp.Remove(target)
}

// UpdatePluginConfig forwards config to the plugin named by target.
func (e *Editor) UpdatePluginConfig(target any, config any) bool {
	return e.disp.UpdateConfig(target, config)
}

// Plugin returns the plugin registered under name, or nil.
func (e *Editor) Plugin(name string) dispatcher.Plugin {
	return e.disp.Get(name)
}

// Plugins returns the registered plugin names in dispatch order.
func (e *Editor) Plugins() []string {
	return e.disp.Names()
}

// DestroyPlugins tears down and removes every plugin.
func (e *Editor) DestroyPlugins() {
	e.disp.DestroyAll()
}

// Dispatch runs the named action through the system handler and plugins
// and reports whether it was aborted.
func (e *Editor) Dispatch(name string, event any) bool {
	return e.disp.Dispatch(dispatcher.Action{
		Name:  name,
		Code:  e.ToString(),
		Event: event,
	})
}

// Destroy cancels pending debounced work, stops handling events, tears down
// plugins and releases the resize observer.
func (e *Editor) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Debug("destroy")
	e.destroyed = true
	e.group.CancelAll()
	e.disp.DestroyAll()
	if e.observer != nil {
		e.observer.Disconnect()
	}
}
