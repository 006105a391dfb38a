// Package overlay provides the overlay records that carry rendered image
// previews anchored to listing lines, and the per-session store that tracks
// them.
package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position represents a position in the buffer.
type Position struct {
	Line uint32
	Col  uint32
}

// String returns the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Handle is the host's opaque reference to a created buffer annotation.
// The store never inspects it; it is held so the annotation can be
// destroyed later.
type Handle any

// Image is an opaque handle to rendered image content produced by the
// host's renderer.
type Image interface {
	// Source returns the file path the image was rendered from.
	Source() string
}

// Content is the displayed body of a preview overlay: blank separator
// lines around a placeholder whose visual replacement is the image.
type Content struct {
	// Leading is the number of blank lines before the placeholder.
	Leading int

	// Placeholder is the text carrying the image as its visual
	// replacement. A single space in practice.
	Placeholder string

	// Image is the rendered image handle shown in place of Placeholder.
	Image Image

	// Trailing is the number of blank lines after the placeholder.
	Trailing int
}

// Text returns the flattened textual form of the content, for hosts that
// compose overlays as text with display substitution.
func (c Content) Text() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", c.Leading))
	b.WriteString(c.Placeholder)
	b.WriteString(strings.Repeat("\n", c.Trailing))
	return b.String()
}

// Record represents one live preview overlay. Records are immutable after
// creation; lifecycle is owned by the store.
type Record struct {
	id      string
	anchor  Position
	content Content
	handle  Handle
	created time.Time
}

// NewRecord creates a record for an overlay anchored at the given
// position, holding the host handle returned by overlay creation.
func NewRecord(anchor Position, content Content, handle Handle) *Record {
	return &Record{
		id:      uuid.NewString(),
		anchor:  anchor,
		content: content,
		handle:  handle,
		created: time.Now(),
	}
}

// ID returns the unique identifier for this record.
func (r *Record) ID() string {
	return r.id
}

// Anchor returns the buffer position the overlay is anchored at.
func (r *Record) Anchor() Position {
	return r.anchor
}

// Content returns the overlay content.
func (r *Record) Content() Content {
	return r.content
}

// Handle returns the host's overlay handle.
func (r *Record) Handle() Handle {
	return r.handle
}

// CreatedAt returns when the record was created.
func (r *Record) CreatedAt() time.Time {
	return r.created
}
