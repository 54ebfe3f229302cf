package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFor picks a format from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// FileSystem is an abstraction for file reads.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads option files.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader over the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads path and returns its patch. A missing file yields an empty
// patch and no error.
func (l *Loader) Load(path string) (Patch, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Patch{}, nil
		}
		return Patch{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	format := FormatFor(path)
	if format == FormatUnknown {
		return Patch{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return Parse(path, format, data)
}

// LoadFromReader reads a patch in the given format from r.
func LoadFromReader(r io.Reader, format Format) (Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Patch{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse("<reader>", format, data)
}

// Parse decodes data in format. Unknown keys are rejected. source names
// the data in errors.
func Parse(source string, format Format, data []byte) (Patch, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(source, data, &f)
	case FormatYAML:
		err = decodeYAML(source, data, &f)
	case FormatJSON:
		err = decodeJSON(source, data, &f)
	default:
		return Patch{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Patch{}, err
	}
	p, err := f.Patch()
	if err != nil {
		return Patch{}, fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}

func decodeTOML(source string, data []byte, f *File) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

func decodeYAML(source string, data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}

func decodeJSON(source string, data []byte, f *File) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var serr *json.SyntaxError
		if errors.As(err, &serr) {
			pe.Line, pe.Column = lineColumn(data, serr.Offset)
		}
		return pe
	}
	return nil
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
