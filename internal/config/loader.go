package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem is an abstraction for file system reads, allowing tests to
// load settings from in-memory files.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// osFS implements FileSystem using the real OS file system.
type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns the OS-backed file system.
func DefaultFS() FileSystem {
	return osFS{}
}

// TOMLLoader loads settings from TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader backed by the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fsys}
}

// Load reads settings from path. A missing file returns nil, nil; callers
// treat that as an empty layer rather than an error.
func (l *TOMLLoader) Load(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var settings map[string]any
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return settings, nil
}

// DeepMerge recursively merges src into dst. Values in src override values
// in dst. Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}

// Clone creates a deep copy of a settings map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[key] = Clone(v)
		case []any:
			dst[key] = cloneSlice(v)
		case []string:
			dst[key] = append([]string(nil), v...)
		default:
			dst[key] = val
		}
	}
	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[i] = Clone(v)
		case []any:
			dst[i] = cloneSlice(v)
		default:
			dst[i] = val
		}
	}
	return dst
}
