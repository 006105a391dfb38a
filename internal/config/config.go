// Package config provides the layered settings system for preview
// sessions: compiled defaults, an optional TOML settings file, environment
// overrides, and runtime sets, with change notification and live reload.
package config

import (
	"strings"
	"sync"
)

// Layer precedence, lowest to highest: defaults, file, environment,
// runtime. Later layers win for the same path.

// Config provides unified access to the settings system. It manages
// loading, validation, live reloading, and change notification.
type Config struct {
	mu sync.RWMutex

	// Layers, merged into the effective view.
	defaults map[string]any
	file     map[string]any
	env      map[string]any
	runtime  map[string]any

	// merged is the effective view, recomputed on every mutation.
	merged map[string]any

	// filePath is the loaded settings file, empty until Load.
	filePath string

	loader   *TOMLLoader
	notifier *notifier
	watcher  *fileWatcher

	enableWatcher bool
	envPrefix     string
}

// Option configures a Config instance.
type Option func(*Config)

// WithFileSystem sets the file system used to read settings files.
func WithFileSystem(fsys FileSystem) Option {
	return func(c *Config) {
		c.loader = NewTOMLLoaderWithFS(fsys)
	}
}

// WithWatcher enables live reload of the loaded settings file.
func WithWatcher() Option {
	return func(c *Config) {
		c.enableWatcher = true
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config with defaults applied and the environment layer
// loaded. No settings file is read until Load.
func New(opts ...Option) *Config {
	c := &Config{
		defaults:  defaultSettings(),
		runtime:   make(map[string]any),
		loader:    NewTOMLLoader(),
		notifier:  newNotifier(),
		envPrefix: "GLIMPSE_",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.envPrefix != "" {
		c.env = NewEnvLoader(c.envPrefix).Load()
	}

	c.remerge()
	return c
}

// Load reads the settings file at path into the file layer. A missing
// file leaves the layer empty and is not an error. When the watcher is
// enabled, the file is watched for changes from the first Load on.
func (c *Config) Load(path string) error {
	data, err := c.loader.Load(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.file = data
	c.filePath = path
	c.remerge()
	needWatch := c.enableWatcher && c.watcher == nil
	c.mu.Unlock()

	if needWatch {
		w, err := newFileWatcher(path, c.handleFileChange)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.watcher = w
		c.mu.Unlock()
	}

	return nil
}

// Close shuts down the settings system.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		_ = w.close()
	}
}

// Get returns the effective value at the given dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// Set validates and sets a value at the given path in the runtime layer,
// then notifies observers with the effective old and new values.
func (c *Config) Set(path string, value any) error {
	if err := validateSetting(path, value); err != nil {
		return err
	}

	c.mu.Lock()
	oldValue, _ := getPath(c.merged, path)
	if err := setPath(c.runtime, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.remerge()
	newValue, _ := getPath(c.merged, path)
	c.mu.Unlock()

	// Observers run outside the lock so they can read settings.
	c.notifier.notify(Change{
		Path:     path,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   "runtime",
	})
	return nil
}

// Subscribe registers an observer for all settings changes.
func (c *Config) Subscribe(observer Observer) *ObserverSubscription {
	return c.notifier.subscribe(observer)
}

// SubscribePath registers an observer for changes to a specific path or
// its children.
func (c *Config) SubscribePath(path string, observer Observer) *ObserverSubscription {
	return c.notifier.subscribePath(path, observer)
}

// Merged returns a deep copy of the effective settings.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Clone(c.merged)
}

// handleFileChange reloads the file layer after the settings file changes
// on disk. Unparsable content leaves the previous layer in place.
func (c *Config) handleFileChange(path string) {
	data, err := c.loader.Load(path)
	if err != nil || data == nil {
		return
	}

	c.mu.Lock()
	c.file = data
	c.remerge()
	c.mu.Unlock()

	c.notifier.notify(Change{
		Type:   ChangeReload,
		Source: "file",
	})
}

// remerge recomputes the effective view. Caller holds the write lock
// (or has exclusive access during construction).
func (c *Config) remerge() {
	merged := Clone(c.defaults)
	merged = DeepMerge(merged, Clone(c.file))
	merged = DeepMerge(merged, Clone(c.env))
	merged = DeepMerge(merged, Clone(c.runtime))
	c.merged = merged
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]]
		if !ok {
			nm := make(map[string]any)
			current[parts[i]] = nm
			current = nm
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empties.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(path, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64, float32:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
