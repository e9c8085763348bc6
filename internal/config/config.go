package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/cursorkit/internal/config/loader"
	"github.com/dshills/cursorkit/internal/dispatcher/chain"
	"github.com/dshills/cursorkit/internal/input"
)

// Setting keys.
const (
	KeyLogLevel     = "log_level"
	KeyVisibleLines = "visible_lines"
	KeyScripts      = "scripts"
	KeyChains       = "chains"
)

// LogLevels lists the accepted log_level values, least verbose last.
var LogLevels = []string{"debug", "info", "warn", "error"}

// DefaultMaxIncludeDepth limits nested "@include" directives.
const DefaultMaxIncludeDepth = 8

// Viewport is an inclusive span of visible lines.
type Viewport struct {
	First, Last uint32
}

// Config holds resolved cursorkit settings.
type Config struct {
	// LogLevel is one of LogLevels.
	LogLevel string

	// Viewport is the visible line span, nil for the whole document.
	Viewport *Viewport

	// Scripts are Lua files to load, resolved against the config file's
	// directory.
	Scripts []string

	// Chains maps a command name to the commands it runs.
	Chains map[string][]input.Action

	// Path is the file the settings came from, empty for defaults.
	Path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Chains:   make(map[string][]input.Action),
	}
}

// ChainNames returns the defined chain names, sorted.
func (c *Config) ChainNames() []string {
	names := make([]string, 0, len(c.Chains))
	for name := range c.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs           loader.FileSystem
	envPrefix    string
	includeDepth int
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// ignores the environment.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithMaxIncludeDepth limits nested includes.
func WithMaxIncludeDepth(depth int) Option {
	return func(o *options) { o.includeDepth = depth }
}

// Load reads settings from path, or only from the environment when path
// is empty. A missing file yields the defaults.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:           loader.DefaultFS(),
		envPrefix:    loader.DefaultEnvPrefix,
		includeDepth: DefaultMaxIncludeDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var merged map[string]any
	baseDir := ""
	found := false
	if path != "" {
		f, err := loader.NewFileWithFS(o.fs, path)
		if err != nil {
			return nil, err
		}
		merged, err = f.LoadWithIncludes(o.includeDepth)
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Dir(path)
		found = merged != nil
	}

	if o.envPrefix != "" {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged, baseDir)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	if found {
		cfg.Path = path
	}
	return cfg, nil
}

// FromMap builds settings from a decoded config map. Relative script
// paths are resolved against baseDir.
func FromMap(m map[string]any, baseDir string) (*Config, error) {
	cfg := Default()

	if v, ok := m[KeyLogLevel]; ok {
		level, ok := v.(string)
		level = strings.ToLower(level)
		if !ok || !slices.Contains(LogLevels, level) {
			return nil, fmt.Errorf("%w: %s must be one of %v, got %v", ErrInvalidValue, KeyLogLevel, LogLevels, v)
		}
		cfg.LogLevel = level
	}

	if v, ok := m[KeyVisibleLines]; ok {
		vp, err := parseViewport(v)
		if err != nil {
			return nil, err
		}
		cfg.Viewport = vp
	}

	if v, ok := m[KeyScripts]; ok {
		scripts, err := stringList(KeyScripts, v)
		if err != nil {
			return nil, err
		}
		for _, s := range scripts {
			s = os.ExpandEnv(s)
			if !filepath.IsAbs(s) && baseDir != "" {
				s = filepath.Join(baseDir, s)
			}
			cfg.Scripts = append(cfg.Scripts, s)
		}
	}

	if v, ok := m[KeyChains]; ok {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a table, got %T", ErrInvalidValue, KeyChains, v)
		}
		for name, raw := range table {
			specs, err := chain.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidChain, name, err)
			}
			cfg.Chains[name] = specs
		}
	}
	return cfg, nil
}

func parseViewport(v any) (*Viewport, error) {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return nil, fmt.Errorf("%w: %s must be [first, last], got %v", ErrInvalidValue, KeyVisibleLines, v)
	}
	var bounds [2]uint32
	for i, item := range list {
		n, ok := toInt(item)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: %s entries must be non-negative integers, got %v", ErrInvalidValue, KeyVisibleLines, item)
		}
		bounds[i] = uint32(n)
	}
	return &Viewport{First: bounds[0], Last: bounds[1]}, nil
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

func stringList(key string, v any) ([]string, error) {
	switch list := v.(type) {
	case string:
		return []string{list}, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s entries must be strings, got %T", ErrInvalidValue, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list of strings, got %T", ErrInvalidValue, key, v)
	}
}
