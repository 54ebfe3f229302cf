package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/caretjar/internal/debounce"
)

// DefaultReloadDelay is the quiet window between the last file event and
// the reload.
const DefaultReloadDelay = 100 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay sets the quiet window before a reload.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.delay = d }
}

// WithClock sets the clock used to debounce reloads.
func WithClock(c debounce.Clock) WatcherOption {
	return func(w *Watcher) { w.clock = c }
}

// WithPost routes reload callbacks through post.
func WithPost(post func(func())) WatcherOption {
	return func(w *Watcher) { w.post = post }
}

// WithLoader sets the loader used to re-read the file.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) { w.loader = l }
}

// Watcher reloads an option file when it changes.
type Watcher struct {
	path     string
	loader   *Loader
	onChange func(Patch)

	delay  time.Duration
	clock  debounce.Clock
	post   func(func())
	reload *debounce.Debouncer[struct{}]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
	errs    chan error
}

// NewWatcher creates a watcher for path. onChange receives each
// successfully reloaded patch.
func NewWatcher(path string, onChange func(Patch), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		loader:   NewLoader(),
		onChange: onChange,
		delay:    DefaultReloadDelay,
		done:     make(chan struct{}),
		errs:     make(chan error, 10),
	}
	for _, opt := range opts {
		opt(w)
	}
	var dopts []debounce.Option
	if w.post != nil {
		dopts = append(dopts, debounce.WithPost(w.post))
	}
	w.reload = debounce.New(w.clock, w.delay, func(struct{}) { w.doReload() }, dopts...)
	return w
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors often replace files by rename, so watch the directory.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.watcher = fw

	w.wg.Add(1)
	go w.loop(fw)
	return nil
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

// handleEvent schedules a reload for writes and creates of the watched
// file.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Base(ev.Name) != filepath.Base(w.path) {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	w.reload.Call(struct{}{})
}

func (w *Watcher) doReload() {
	p, err := w.loader.Load(w.path)
	if err != nil {
		w.report(fmt.Errorf("reload config: %w", err))
		return
	}
	if w.onChange != nil {
		w.onChange(p)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

// Errors returns reload and watch errors. Errors are dropped when the
// channel is full.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and cancels any pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fw := w.watcher
	close(w.done)
	w.mu.Unlock()

	w.reload.Cancel()
	var err error
	if fw != nil {
		err = fw.Close()
	}
	w.wg.Wait()
	return err
}
