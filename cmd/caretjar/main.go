// Package main is a terminal demo for the caretjar editing core.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caretjar/internal/config"
	"github.com/dshills/caretjar/internal/editor"
	"github.com/dshills/caretjar/internal/highlight"
	"github.com/dshills/caretjar/internal/logging"
	"github.com/dshills/caretjar/internal/plugin/lua"
	"github.com/dshills/caretjar/internal/plugins/jsonvalidate"
	"github.com/dshills/caretjar/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	file       string
	configPath string
	language   string
	style      string
	logPath    string
	logLevel   string
	schemaPath string
	json       bool
	readOnly   bool
	debug      bool
	plugins    stringList
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, closeLog, err := openLog(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	patch := config.Patch{}
	if opts.configPath != "" {
		p, err := config.NewLoader().Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		patch = p
	}
	if opts.readOnly {
		patch.ReadOnly = config.Bool(true)
	}
	if opts.debug {
		patch.Debug = config.Bool(true)
	}

	text, err := readFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	hl, err := newHighlighter(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	host := term.New(screen, term.Config{
		Highlighter:   hl,
		Logger:        log,
		EditorOptions: []editor.Option{editor.WithPatch(patch)},
		OnSave:        saver(opts.file),
	})
	defer host.Close()

	ed := host.Editor()
	ed.UpdateCode(text, false)

	if err := addPlugins(ed, opts); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.configPath != "" {
		w := config.NewWatcher(opts.configPath, func(p config.Patch) {
			ed.UpdateOptions(p)
			host.SetMessage("options reloaded")
		}, config.WithPost(host.Post))
		if err := w.Start(); err != nil {
			log.Warn("watch %s: %v", opts.configPath, err)
		} else {
			defer w.Close()
			go func() {
				for err := range w.Errors() {
					log.Warn("%v", err)
				}
			}()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
	}()

	if err := host.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to an options file (TOML, YAML or JSON)")
	flag.StringVar(&opts.configPath, "c", "", "Path to an options file (shorthand)")
	flag.StringVar(&opts.language, "lang", "", "Highlight language (default: from file name)")
	flag.StringVar(&opts.style, "style", "monokai", "Highlight style")
	flag.StringVar(&opts.logPath, "log", "", "Write diagnostics to this file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.schemaPath, "schema", "", "JSON Schema for -json validation")
	flag.BoolVar(&opts.json, "json", false, "Validate the text as JSON")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open read-only")
	flag.BoolVar(&opts.readOnly, "R", false, "Open read-only (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable editor debug logging")
	flag.Var(&opts.plugins, "plugin", "Lua plugin script (repeatable)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "caretjar - terminal demo for the caretjar editing core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: caretjar [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl-S save, Ctrl-Q quit, Ctrl-Z/Ctrl-Y undo/redo, Ctrl-X/C/V clipboard\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("caretjar %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts
}

// openLog opens the diagnostics log. The terminal is owned by the screen,
// so without -log diagnostics are discarded.
func openLog(opts options) (*logging.Logger, func(), error) {
	if opts.logPath == "" {
		return logging.Null(), func() {}, nil
	}
	f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	cfg := logging.DefaultConfig()
	cfg.Output = f
	cfg.Level = logging.ParseLevel(opts.logLevel)
	return logging.New(cfg), func() { f.Close() }, nil
}

func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func saver(path string) func(string) error {
	if path == "" {
		return func(string) error { return errors.New("no file name") }
	}
	return func(text string) error {
		return os.WriteFile(path, []byte(text), 0o644)
	}
}

func newHighlighter(opts options) (*highlight.Highlighter, error) {
	lang := opts.language
	if lang == "" && opts.file != "" {
		lang = filepath.Base(opts.file)
	}
	if lang == "" {
		return highlight.Plain(), nil
	}
	hl, err := highlight.New(lang, opts.style)
	if errors.Is(err, highlight.ErrNoLexer) && opts.language == "" {
		return highlight.Plain(), nil
	}
	return hl, err
}

func addPlugins(ed *editor.Editor, opts options) error {
	if opts.json {
		cfg := jsonvalidate.Config{Enabled: true}
		if opts.schemaPath != "" {
			data, err := os.ReadFile(opts.schemaPath)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			cfg.Schema = string(data)
		}
		ed.AddPlugin(jsonvalidate.New, cfg)
	}
	for _, path := range opts.plugins {
		script, err := readScript(path)
		if err != nil {
			return err
		}
		if ed.AddPlugin(lua.Factory(script), nil) == nil {
			return fmt.Errorf("plugin %s was rejected", path)
		}
	}
	return nil
}

func readScript(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open plugin: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read plugin: %w", err)
	}
	return string(data), nil
}
