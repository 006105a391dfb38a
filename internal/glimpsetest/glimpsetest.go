// Package glimpsetest provides in-memory host implementations for tests.
//
// The fakes record the operations performed on them so tests can assert
// on interaction order as well as final state.
package glimpsetest

import (
	"sync"

	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/overlay"
)

// Buffer is an in-memory listing buffer. Each line may name a file, the
// way a directory listing does. Lines without a file entry resolve to
// nothing.
type Buffer struct {
	id string

	mu       sync.Mutex
	files    map[uint32]string
	lineEnds map[uint32]uint32
	cursor   overlay.Position
}

// NewBuffer creates an empty buffer with the given identifier.
func NewBuffer(id string) *Buffer {
	return &Buffer{
		id:       id,
		files:    make(map[uint32]string),
		lineEnds: make(map[uint32]uint32),
	}
}

// AddLine registers a listing line. An empty file means the line holds
// no file entry. endCol is the column just past the line's last cell.
func (b *Buffer) AddLine(line uint32, file string, endCol uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if file != "" {
		b.files[line] = file
	}
	b.lineEnds[line] = endCol
}

// RemoveLine drops a line's file entry, simulating a file disappearing
// from the listing while the buffer stays put.
func (b *Buffer) RemoveLine(line uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.files, line)
}

// ID returns the buffer identifier.
func (b *Buffer) ID() string { return b.id }

// CursorPosition returns the current cursor position.
func (b *Buffer) CursorPosition() overlay.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// LineEndPosition returns the position just past the end of line.
func (b *Buffer) LineEndPosition(line uint32) overlay.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return overlay.Position{Line: line, Col: b.lineEnds[line]}
}

// FileAt resolves the file named on the line at pos.
func (b *Buffer) FileAt(pos overlay.Position) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	file, ok := b.files[pos.Line]
	return file, ok
}

// SetCursor moves the cursor without publishing an event.
func (b *Buffer) SetCursor(to overlay.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = to
}

// MoveCursor moves the cursor and publishes a cursor.moved event on bus
// if bus is non-nil.
func (b *Buffer) MoveCursor(bus *event.Bus, to overlay.Position) {
	b.mu.Lock()
	old := b.cursor
	b.cursor = to
	b.mu.Unlock()

	if bus != nil {
		bus.Publish(event.TopicCursorMoved, event.CursorMoved{
			BufferID: b.id,
			Old:      old,
			New:      to,
		})
	}
}
