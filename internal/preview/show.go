package preview

import (
	"path/filepath"
	"strings"

	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/host"
	"github.com/dshills/glimpse/internal/overlay"
)

// placeholder occupies the overlay's anchor cell. The rendered image is
// drawn by the host; the buffer text only carries spacing and this
// single cell.
const placeholder = " "

// Previewable reports whether the file at path could be shown as a
// preview. It checks nothing about the cursor: path emptiness, display
// support, the excluded extension list, the host's image name pattern,
// and any loaded allow rules.
func (s *Session) Previewable(path string) bool {
	return s.previewable(path, s.cfg.Preview())
}

func (s *Session) previewable(path string, p config.PreviewConfig) bool {
	if path == "" {
		return false
	}
	if !s.display.ImagesSupported() {
		return false
	}
	// The exclusion list matches the extension exactly; "ico" does not
	// exclude "ICO".
	if p.ExtensionExcluded(extension(path)) {
		return false
	}
	if !s.display.ImageFilePattern().MatchString(path) {
		return false
	}
	if s.rules != nil && !s.rules.Allowed(path) {
		return false
	}
	return true
}

// ShowAtPoint shows a preview for the file named on the cursor's line.
// It reports whether a preview was created; a line with no previewable
// file is not an error. When autoRemove is set, existing previews are
// cleared first, and that clear stands even if the render then fails.
func (s *Session) ShowAtPoint() (bool, error) {
	file, p, ok := s.fileAtPoint()
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	created, events, err := s.showLocked(file, p)
	s.mu.Unlock()

	s.emit(events...)
	return created, err
}

// fileAtPoint resolves the cursor's file and runs the eligibility
// check. It must not hold the session lock: allow predicates may write
// settings, and the settings observer takes the lock itself.
func (s *Session) fileAtPoint() (string, config.PreviewConfig, bool) {
	file, ok := s.buf.FileAt(s.buf.CursorPosition())
	if !ok {
		return "", config.PreviewConfig{}, false
	}

	p := s.cfg.Preview()
	if !s.previewable(file, p) {
		return "", config.PreviewConfig{}, false
	}
	return file, p, true
}

func (s *Session) showLocked(file string, p config.PreviewConfig) (bool, []pendingEvent, error) {
	var events []pendingEvent

	if p.AutoRemove {
		if ev, any := s.removeLocked(s.store.RemoveAll(), event.HideReplaced); any {
			events = append(events, ev)
		}
	}

	anchor := s.buf.LineEndPosition(s.buf.CursorPosition().Line)

	img, err := s.renderer.Render(file, formatHint(file), host.Constraints{
		Scale:     p.Scale,
		MaxWidth:  p.MaxWidth,
		MaxHeight: p.MaxHeight,
	})
	if err != nil {
		return false, events, err
	}

	content := overlay.Content{
		Leading:     p.Spacing,
		Placeholder: placeholder,
		Image:       img,
		Trailing:    p.Spacing,
	}
	handle := s.overlays.Create(anchor, content)
	rec := overlay.NewRecord(anchor, content, handle)
	s.store.Add(rec)

	events = append(events, pendingEvent{
		topic: event.TopicPreviewShown,
		payload: event.PreviewShown{
			BufferID: s.buf.ID(),
			Path:     file,
			Anchor:   anchor,
			RecordID: rec.ID(),
		},
	})
	return true, events, nil
}

// HideAtPoint removes every preview anchored at the end of the cursor's
// line and returns how many were removed.
func (s *Session) HideAtPoint() int {
	s.mu.Lock()
	anchor := s.buf.LineEndPosition(s.buf.CursorPosition().Line)
	records := s.store.RemoveAtAnchor(anchor)
	ev, any := s.removeLocked(records, event.HideAtPoint)
	s.mu.Unlock()

	if any {
		s.emit(ev)
	}
	return len(records)
}

// HideAll removes every preview in the session and returns how many were
// removed. Calling it with nothing shown is a no-op.
func (s *Session) HideAll() int {
	s.mu.Lock()
	records := s.store.RemoveAll()
	ev, any := s.removeLocked(records, event.HideAll)
	s.mu.Unlock()

	if any {
		s.emit(ev)
	}
	return len(records)
}

// Toggle hides the previews anchored at the cursor's line end if any
// exist, otherwise it behaves like ShowAtPoint. It reports whether a
// preview was created and how many were removed; both zero values mean
// the line was not previewable.
func (s *Session) Toggle() (bool, int, error) {
	s.mu.Lock()
	anchor := s.buf.LineEndPosition(s.buf.CursorPosition().Line)
	if s.store.HasAnchor(anchor) {
		records := s.store.RemoveAtAnchor(anchor)
		ev, any := s.removeLocked(records, event.HideAtPoint)
		s.mu.Unlock()

		if any {
			s.emit(ev)
		}
		return false, len(records), nil
	}
	s.mu.Unlock()

	created, err := s.ShowAtPoint()
	return created, 0, err
}

// removeLocked destroys the host overlays of records already removed
// from the store and builds the corresponding hidden event.
func (s *Session) removeLocked(records []*overlay.Record, reason event.HideReason) (pendingEvent, bool) {
	if len(records) == 0 {
		return pendingEvent{}, false
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID()
		s.overlays.Destroy(rec.Handle())
	}

	return pendingEvent{
		topic: event.TopicPreviewHidden,
		payload: event.PreviewHidden{
			BufferID:  s.buf.ID(),
			RecordIDs: ids,
			Reason:    reason,
		},
	}, true
}

// extension returns the file extension without the leading dot, case
// preserved.
func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// formatHint returns the lowercased extension passed to the renderer.
// Extensionless files get an empty hint.
func formatHint(path string) string {
	return strings.ToLower(extension(path))
}
