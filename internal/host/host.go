// Package host declares the collaborator interfaces a host editor supplies
// to preview sessions: buffer access, display capability, image rendering,
// overlay annotation primitives, and delayed scheduling.
//
// Nothing in this module implements file listing, file-system access, or
// image decoding; sessions consume these interfaces and the host decides
// how they work.
package host

import (
	"regexp"

	"github.com/dshills/glimpse/internal/overlay"
)

// Buffer is one file-manager-style listing buffer managed by a session.
type Buffer interface {
	// ID returns a stable identifier for this buffer.
	ID() string

	// CursorPosition returns the current cursor position.
	CursorPosition() overlay.Position

	// LineEndPosition returns the position just past the last character
	// of the given line. Preview overlays anchor there.
	LineEndPosition(line uint32) overlay.Position

	// FileAt resolves the listing entry at the given position to a file
	// path. The second result is false when the position holds no entry,
	// for example a header or padding line.
	FileAt(pos overlay.Position) (string, bool)
}

// Display reports the host's image display capability.
type Display interface {
	// ImagesSupported returns true when the runtime can render images
	// at all.
	ImagesSupported() bool

	// ImageFilePattern returns the host's recognizer for filenames that
	// look like displayable images.
	ImageFilePattern() *regexp.Regexp
}

// Constraints are the sizing constraints passed to the renderer.
// Zero MaxWidth or MaxHeight means uncapped.
type Constraints struct {
	Scale     float64
	MaxWidth  int
	MaxHeight int
}

// Renderer produces displayable image handles. Render fails with the
// host's decode error for unsupported or corrupt input; callers do not
// retry.
type Renderer interface {
	Render(path, formatHint string, c Constraints) (overlay.Image, error)
}

// Overlays exposes the host's buffer annotation primitives.
type Overlays interface {
	// Create attaches an annotation at the given position and returns
	// the host's handle for it.
	Create(at overlay.Position, content overlay.Content) overlay.Handle

	// Destroy removes a previously created annotation.
	Destroy(handle overlay.Handle)
}
