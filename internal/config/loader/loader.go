// Package loader reads cursorkit configuration sources into plain maps.
//
// Files are TOML or YAML, picked by extension. A file may pull in
// others with an "@include" key; the including file wins on conflicts.
// Environment variables with the CURSORKIT_ prefix form one more map
// that callers merge on top.
package loader

import (
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

// IncludeKey lists further files to load beneath the current one.
const IncludeKey = "@include"

// ErrUnsupportedFormat indicates a file extension no loader understands.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// File loads one configuration file and its includes.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFile creates a loader for path, choosing the format from its extension.
func NewFile(path string) (*File, error) {
	return NewFileWithFS(DefaultFS(), path)
}

// NewFileWithFS creates a loader reading through fsys.
func NewFileWithFS(fsys FileSystem, path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return &File{fs: fsys, path: path, format: format}, nil
}

// Path returns the file the loader reads.
func (l *File) Path() string { return l.path }

// Format returns the file's syntax.
func (l *File) Format() Format { return l.format }

// Load reads the file without following includes.
func (l *File) Load() (map[string]any, error) {
	return l.load(l.path, l.format)
}

// LoadFromReader parses configuration in the loader's format from r.
func (l *File) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", l.format, data)
}

func (l *File) load(path string, format Format) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, format, data)
}

// LoadWithIncludes loads the file and every file named under IncludeKey,
// relative to the including file. Includes may use either format.
// maxDepth limits nesting.
func (l *File) LoadWithIncludes(maxDepth int) (map[string]any, error) {
	return l.loadWithIncludes(l.path, l.format, maxDepth)
}

func (l *File) loadWithIncludes(path string, format Format, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepth, path)
	}

	config, err := l.load(path, format)
	if err != nil || config == nil {
		return config, err
	}

	includes, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	var list []string
	switch v := includes.(type) {
	case string:
		list = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s must list file names, got %T", path, IncludeKey, item)
			}
			list = append(list, s)
		}
	default:
		return nil, fmt.Errorf("%s: %s must be a string or list, got %T", path, IncludeKey, includes)
	}

	baseDir := filepath.Dir(path)
	for _, inc := range list {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}
		incFormat, err := FormatOf(incPath)
		if err != nil {
			return nil, err
		}

		incConfig, err := l.loadWithIncludes(incPath, incFormat, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		config = DeepMerge(incConfig, config)
	}
	return config, nil
}

// ErrIncludeDepth indicates includes nest deeper than allowed.
var ErrIncludeDepth = errors.New("include depth exceeded")

// parse decodes data in the given format into a map.
func parse(source string, format Format, data []byte) (map[string]any, error) {
	config := make(map[string]any)

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &config); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
