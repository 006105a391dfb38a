package config

import "time"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying settings. Use Config.Set() to
// update settings values.

// PreviewConfig provides type-safe access to preview settings.
type PreviewConfig struct {
	// Scale is the multiplier applied to the rendered image.
	Scale float64

	// Delay is how long the debounce timer waits before acting.
	Delay time.Duration

	// Spacing is the number of blank separator lines inserted before and
	// after the rendered content.
	Spacing int

	// AutoRemove clears all other previews before showing a new one.
	AutoRemove bool

	// MaxWidth caps the rendered width in pixels. Zero means uncapped.
	MaxWidth int

	// MaxHeight caps the rendered height in pixels. Zero means uncapped.
	MaxHeight int

	// AutoPreview makes cursor movement alone trigger previews.
	AutoPreview bool

	// ExcludedExtensions lists file extensions never eligible for
	// preview, without the leading dot.
	ExcludedExtensions []string
}

// ExtensionExcluded reports whether ext (without the leading dot) is in
// the excluded set. The comparison is case-sensitive.
func (p PreviewConfig) ExtensionExcluded(ext string) bool {
	for _, e := range p.ExcludedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Preview returns type-safe access to preview settings.
func (c *Config) Preview() PreviewConfig {
	delay := c.getFloatOr("preview.delay", 0.2)
	return PreviewConfig{
		Scale:              c.getFloatOr("preview.scale", 0.5),
		Delay:              time.Duration(delay * float64(time.Second)),
		Spacing:            c.getIntOr("preview.spacing", 1),
		AutoRemove:         c.getBoolOr("preview.autoRemove", true),
		MaxWidth:           c.getIntOr("preview.maxWidth", 0),
		MaxHeight:          c.getIntOr("preview.maxHeight", 0),
		AutoPreview:        c.getBoolOr("preview.autoPreview", false),
		ExcludedExtensions: c.getStringSliceOr("preview.excludedExtensions", []string{"ico", "cur"}),
	}
}

// getFloatOr returns the float at path, or fallback on any error.
func (c *Config) getFloatOr(path string, fallback float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		return fallback
	}
	return v
}

// getIntOr returns the int at path, or fallback on any error.
func (c *Config) getIntOr(path string, fallback int) int {
	v, err := c.GetInt(path)
	if err != nil {
		return fallback
	}
	return v
}

// getBoolOr returns the bool at path, or fallback on any error.
func (c *Config) getBoolOr(path string, fallback bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		return fallback
	}
	return v
}

// getStringSliceOr returns the string slice at path, or fallback on any
// error.
func (c *Config) getStringSliceOr(path string, fallback []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		return fallback
	}
	return v
}
