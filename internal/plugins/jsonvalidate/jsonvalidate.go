// Package jsonvalidate checks an editor's text as JSON before each update
// notification, marks the first error and aborts the notification.
//
// Validity is checked with gjson. When a schema is configured, valid
// documents are also validated against it and the first failing value is
// marked.
package jsonvalidate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/plugins/marker"
)

// Name is the plugin's registry name.
const Name = "json-validate"

// MarkerID identifies the error mark.
const MarkerID = "caretjar-json-validate"

// Defaults for the error mark.
const (
	DefaultMarkerClass = "code-error"
	DefaultMarkerStyle = "text-decoration: wavy underline red"
)

const schemaURL = "caretjar://schema.json"

// Location is where an error was found. Line and Column are 1-based; Index
// is a character index.
type Location struct {
	Line   int
	Column int
	Index  int
}

// ErrorFunc receives each validation result. err is nil for a valid
// document, in which case loc is nil.
type ErrorFunc func(err error, code string, loc *Location)

// Config configures the plugin. Validation is off unless Enabled or
// EnabledFunc says otherwise.
type Config struct {
	Enabled     bool
	EnabledFunc func(code string) bool
	// KeepEmpty validates blank text instead of skipping it.
	KeepEmpty   bool
	MarkerClass string
	MarkerStyle string
	// Schema is an optional JSON Schema source.
	Schema  string
	OnError ErrorFunc
}

// Update changes a running plugin's configuration. Nil and empty fields
// are left unchanged.
type Update struct {
	Enabled     *bool
	EnabledFunc func(code string) bool
	IgnoreEmpty *bool
	MarkerClass string
	MarkerStyle string
	Schema      *string
}

// Updater is implemented by hosts whose text can be replaced.
type Updater interface {
	UpdateCode(code string, notify bool)
}

// Plugin validates on beforeUpdate.
type Plugin struct {
	host dispatcher.Host

	mu     sync.Mutex
	cfg    Config
	schema *jsonschema.Schema
}

// New is a dispatcher.Factory. config may be a Config, a *Config or nil. A
// schema that does not compile is logged and ignored.
func New(host dispatcher.Host, config any) dispatcher.Plugin {
	var cfg Config
	switch c := config.(type) {
	case Config:
		cfg = c
	case *Config:
		if c != nil {
			cfg = *c
		}
	}
	p := &Plugin{host: host, cfg: cfg}
	p.setSchema(cfg.Schema)
	return p
}

func (p *Plugin) setSchema(src string) {
	p.schema = nil
	if strings.TrimSpace(src) == "" {
		return
	}
	s, err := CompileSchema(src)
	if err != nil {
		p.host.Warn("json schema: %v", err)
		return
	}
	p.schema = s
}

// CompileSchema compiles a JSON Schema source.
func CompileSchema(src string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}

// Name returns the registry name.
func (p *Plugin) Name() string { return Name }

// OnAction validates on beforeUpdate and aborts the update when the text
// is invalid.
func (p *Plugin) OnAction(a dispatcher.Action) bool {
	if a.Name != dispatcher.ActionBeforeUpdate {
		return false
	}
	return p.Validate(a.Code)
}

// Validate checks code and reports whether it is invalid. Invalid text
// gets an error mark and is reported to OnError.
func (p *Plugin) Validate(code string) bool {
	p.mu.Lock()
	cfg := p.cfg
	schema := p.schema
	p.mu.Unlock()

	if !cfg.KeepEmpty && strings.TrimSpace(code) == "" {
		return false
	}
	enabled := cfg.Enabled
	if cfg.EnabledFunc != nil {
		enabled = cfg.EnabledFunc(code)
	}
	if !enabled {
		return false
	}

	loc, err := Check(code, schema)
	if err == nil {
		if cfg.OnError != nil {
			cfg.OnError(nil, code, nil)
		}
		return false
	}

	p.host.Warn("json: %v", err)
	p.mark(cfg, loc, err)
	if cfg.OnError != nil {
		cfg.OnError(err, code, &loc)
	}
	return true
}

func (p *Plugin) mark(cfg Config, loc Location, err error) {
	class := cfg.MarkerClass
	if class == "" {
		class = DefaultMarkerClass
	}
	style := cfg.MarkerStyle
	if style == "" {
		style = DefaultMarkerStyle
	}
	pos, saveErr := p.host.Save()
	marker.Insert(p.host.Root(), marker.Spec{
		ID:      MarkerID,
		Index:   loc.Index,
		Class:   class,
		Style:   style,
		Message: err.Error(),
	})
	if saveErr == nil {
		p.host.Restore(pos)
	}
}

// Check validates code as JSON and, when schema is non-nil, against the
// schema. On failure it returns where the error was found.
func Check(code string, schema *jsonschema.Schema) (Location, error) {
	if !gjson.Valid(code) {
		offset, msg := syntaxError(code)
		return locate(code, offset), fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	if schema == nil {
		return Location{}, nil
	}

	var doc any
	dec := json.NewDecoder(strings.NewReader(code))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return locate(code, 0), fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	err := schema.Validate(doc)
	if err == nil {
		return Location{}, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return locate(code, 0), err
	}
	leaf := deepest(verr)
	offset := gjson.Get(code, pointerToPath(leaf.InstanceLocation)).Index
	return locate(code, offset), fmt.Errorf("%s: %s", displayPointer(leaf.InstanceLocation), leaf.Message)
}

// syntaxError returns the byte offset and message of the first syntax
// error.
func syntaxError(code string) (int, string) {
	var v any
	err := json.Unmarshal([]byte(code), &v)
	var serr *json.SyntaxError
	if errors.As(err, &serr) && serr.Offset > 0 {
		return int(serr.Offset) - 1, serr.Error()
	}
	end := len(strings.TrimRight(code, " \t\r\n"))
	if err != nil {
		return end, err.Error()
	}
	return end, "malformed document"
}

// locate converts a byte offset into a Location.
func locate(code string, offset int) Location {
	offset = min(max(offset, 0), len(code))
	prefix := code[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := utf8.RuneCountInString(prefix[strings.LastIndexByte(prefix, '\n')+1:]) + 1
	return Location{Line: line, Column: col, Index: utf8.RuneCountInString(prefix)}
}

func deepest(e *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(e.Causes) > 0 {
		e = e.Causes[0]
	}
	return e
}

// pointerToPath converts a JSON pointer into a gjson path.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "@this"
	}
	parts := strings.Split(ptr, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		parts[i] = escapePath(part)
	}
	return strings.Join(parts, ".")
}

func escapePath(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func displayPointer(ptr string) string {
	if ptr == "" {
		return "/"
	}
	return ptr
}

// Format pretty-prints code with the given indent. Invalid JSON is
// returned unchanged.
func Format(code, indent string) string {
	if !gjson.Valid(code) {
		return code
	}
	opts := *pretty.DefaultOptions
	if indent != "" {
		opts.Indent = indent
	}
	return string(bytes.TrimRight(pretty.PrettyOptions([]byte(code), &opts), "\n"))
}

// Get looks up a gjson path in the host's text.
func (p *Plugin) Get(path string) gjson.Result {
	return gjson.Get(p.host.ToString(), path)
}

// Set writes value at a gjson-style path and replaces the host's text,
// notifying the update callback.
func (p *Plugin) Set(path string, value any) error {
	u, ok := p.host.(Updater)
	if !ok {
		return ErrNoEditor
	}
	code, err := sjson.Set(p.host.ToString(), path, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	u.UpdateCode(code, true)
	return nil
}

// UpdateConfig applies an Update or *Update. Other values are ignored.
func (p *Plugin) UpdateConfig(config any) {
	var u Update
	switch c := config.(type) {
	case Update:
		u = c
	case *Update:
		if c == nil {
			return
		}
		u = *c
	default:
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if u.Enabled != nil {
		p.cfg.Enabled = *u.Enabled
		p.cfg.EnabledFunc = nil
	}
	if u.EnabledFunc != nil {
		p.cfg.EnabledFunc = u.EnabledFunc
	}
	if u.IgnoreEmpty != nil {
		p.cfg.KeepEmpty = !*u.IgnoreEmpty
	}
	if u.MarkerClass != "" {
		p.cfg.MarkerClass = u.MarkerClass
	}
	if u.MarkerStyle != "" {
		p.cfg.MarkerStyle = u.MarkerStyle
	}
	if u.Schema != nil {
		p.cfg.Schema = *u.Schema
		p.setSchema(*u.Schema)
	}
}
