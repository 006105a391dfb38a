package event

import (
	"github.com/dshills/glimpse/internal/overlay"
)

// Topics published on the bus.
const (
	// TopicCursorMoved is published by the host whenever the cursor moves
	// in a managed buffer.
	TopicCursorMoved Topic = "cursor.moved"

	// TopicPreviewShown is published by a session after an overlay is
	// created.
	TopicPreviewShown Topic = "preview.shown"

	// TopicPreviewHidden is published by a session after one or more
	// overlays are destroyed.
	TopicPreviewHidden Topic = "preview.hidden"

	// TopicModeEnabled is published by a session when the minor mode is
	// enabled on its buffer.
	TopicModeEnabled Topic = "mode.enabled"

	// TopicModeDisabled is published by a session when the minor mode is
	// disabled on its buffer.
	TopicModeDisabled Topic = "mode.disabled"
)

// CursorMoved is the payload for TopicCursorMoved.
type CursorMoved struct {
	// BufferID identifies the buffer the cursor moved in.
	BufferID string

	// Old is the position before the move.
	Old overlay.Position

	// New is the position after the move.
	New overlay.Position
}

// PreviewShown is the payload for TopicPreviewShown.
type PreviewShown struct {
	// BufferID identifies the buffer the preview was shown in.
	BufferID string

	// Path is the file the preview was rendered from.
	Path string

	// Anchor is the line-end position the overlay is anchored at.
	Anchor overlay.Position

	// RecordID identifies the overlay record.
	RecordID string
}

// HideReason says why overlays were destroyed.
type HideReason string

const (
	// HideAtPoint means a hide command removed the overlays at the
	// cursor's line.
	HideAtPoint HideReason = "point"

	// HideAll means a hide-all command removed every overlay.
	HideAll HideReason = "all"

	// HideReplaced means overlays were cleared to make room for a new
	// preview.
	HideReplaced HideReason = "replaced"

	// HideDisabled means the minor mode was disabled on the buffer.
	HideDisabled HideReason = "disabled"
)

// PreviewHidden is the payload for TopicPreviewHidden.
type PreviewHidden struct {
	// BufferID identifies the buffer the overlays were removed from.
	BufferID string

	// RecordIDs identifies the destroyed overlay records.
	RecordIDs []string

	// Reason says what triggered the removal.
	Reason HideReason
}

// ModeChanged is the payload for TopicModeEnabled and TopicModeDisabled.
type ModeChanged struct {
	// BufferID identifies the buffer whose mode changed.
	BufferID string

	// AutoPreview reports whether cursor tracking was active at the time
	// of the change.
	AutoPreview bool
}
