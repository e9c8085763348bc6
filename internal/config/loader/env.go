package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of cursorkit environment variables.
const DefaultEnvPrefix = "CURSORKIT_"

// EnvLoader loads configuration from environment variables.
//
// CURSORKIT_LOG_LEVEL becomes the key "log_level". A double underscore
// descends into a table: CURSORKIT_CHAINS__QUICK becomes "chains.quick".
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "CURSORKIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept; an empty variable still overrides.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || name == l.prefix {
			continue
		}
		setByPath(config, EnvToPath(strings.TrimPrefix(name, l.prefix)), ParseValue(value))
	}
	return config, nil
}

// EnvToPath converts the part of a variable name after the prefix to a
// dotted config path: LOG_LEVEL -> log_level, CHAINS__QUICK -> chains.quick.
func EnvToPath(name string) string {
	parts := strings.Split(strings.ToLower(name), "__")
	return strings.Join(parts, ".")
}

// ParseValue converts an environment string into the value a config
// file would have produced.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	// JSON arrays and objects, e.g. CURSORKIT_VISIBLE_LINES=[0,40]
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return normalizeJSON(gjson.Parse(s).Value())
	}
	return s
}

// normalizeJSON turns JSON numbers that are whole into int64, matching
// what the TOML decoder produces.
func normalizeJSON(v any) any {
	switch x := v.(type) {
	case float64:
		if x == float64(int64(x)) {
			return int64(x)
		}
		return x
	case []any:
		for i := range x {
			x[i] = normalizeJSON(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeJSON(x[k])
		}
		return x
	default:
		return v
	}
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
