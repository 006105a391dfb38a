package config

import "fmt"

// defaultSettings returns the default settings values.
func defaultSettings() map[string]any {
	return map[string]any{
		"preview": map[string]any{
			"scale":              0.5,
			"delay":              0.2,
			"spacing":            1,
			"autoRemove":         true,
			"maxWidth":           0,
			"maxHeight":          0,
			"autoPreview":        false,
			"excludedExtensions": []string{"ico", "cur"},
		},
	}
}

// validateSetting checks a value against the schema for its path.
// Paths outside the schema are rejected.
func validateSetting(path string, value any) error {
	switch path {
	case "preview.scale":
		f, ok := asFloat(value)
		if !ok {
			return &TypeError{Path: path, Expected: "float64", Actual: typeName(value)}
		}
		if f <= 0 {
			return &ValueError{Path: path, Reason: "must be greater than zero"}
		}
	case "preview.delay":
		f, ok := asFloat(value)
		if !ok {
			return &TypeError{Path: path, Expected: "float64", Actual: typeName(value)}
		}
		if f < 0 {
			return &ValueError{Path: path, Reason: "must not be negative"}
		}
	case "preview.spacing", "preview.maxWidth", "preview.maxHeight":
		n, ok := asInt(value)
		if !ok {
			return &TypeError{Path: path, Expected: "int", Actual: typeName(value)}
		}
		if n < 0 {
			return &ValueError{Path: path, Reason: "must not be negative"}
		}
	case "preview.autoRemove", "preview.autoPreview":
		if _, ok := value.(bool); !ok {
			return &TypeError{Path: path, Expected: "bool", Actual: typeName(value)}
		}
	case "preview.excludedExtensions":
		if _, ok := asStringSlice(value); !ok {
			return &TypeError{Path: path, Expected: "[]string", Actual: typeName(value)}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	return nil
}

// asFloat coerces numeric values to float64.
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// asInt coerces numeric values to int.
func asInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

// asStringSlice coerces []string or []any of strings.
func asStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
