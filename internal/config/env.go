package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads settings overrides from environment variables.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader creates an environment variable loader. The prefix should
// include the trailing underscore (e.g. "GLIMPSE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// Load scans the environment for prefixed variables and returns them as a
// settings map. GLIMPSE_PREVIEW_AUTO_REMOVE becomes preview.autoRemove.
func (l *EnvLoader) Load() map[string]any {
	settings := make(map[string]any)

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		path := l.envToPath(parts[0])
		if path == "" {
			continue
		}
		setPathUnchecked(settings, path, parseEnvValue(parts[1]))
	}

	return settings
}

// envToPath converts GLIMPSE_PREVIEW_MAX_WIDTH to preview.maxWidth. The
// first underscore-separated part becomes the section, the rest form a
// camelCase setting name.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part == "" {
			continue
		}
		setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return section + "." + setting
}

// parseEnvValue parses the string value into an appropriate type.
func parseEnvValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
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
	return s
}

// setPathUnchecked sets a value in a nested map, creating intermediate
// maps as needed. Used for trusted internal paths only.
func setPathUnchecked(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[parts[i]] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
