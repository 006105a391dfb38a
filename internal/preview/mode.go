package preview

import (
	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
)

// Enable turns the mode on. When the autoPreview setting is on, cursor
// movement events for this buffer start scheduling debounced previews.
// Enabling an enabled session is a no-op.
func (s *Session) Enable() {
	s.mu.Lock()
	if s.enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = true
	if s.cfg.Preview().AutoPreview {
		s.subscribeMovementLocked()
	}
	auto := s.moveSub != nil
	s.mu.Unlock()

	s.emit(pendingEvent{
		topic:   event.TopicModeEnabled,
		payload: event.ModeChanged{BufferID: s.buf.ID(), AutoPreview: auto},
	})
}

// Disable turns the mode off: the movement subscription is cancelled, a
// pending debounce timer is stopped, and every preview is removed. The
// cleanup runs even if the mode was never enabled.
func (s *Session) Disable() {
	s.mu.Lock()
	wasEnabled := s.enabled
	s.enabled = false
	s.unsubscribeMovementLocked()
	records := s.store.RemoveAll()
	hideEv, hid := s.removeLocked(records, event.HideDisabled)
	s.mu.Unlock()

	var events []pendingEvent
	if hid {
		events = append(events, hideEv)
	}
	if wasEnabled {
		events = append(events, pendingEvent{
			topic:   event.TopicModeDisabled,
			payload: event.ModeChanged{BufferID: s.buf.ID()},
		})
	}
	s.emit(events...)
}

// subscribeMovementLocked registers the cursor movement handler for this
// session's buffer. Caller holds s.mu.
func (s *Session) subscribeMovementLocked() {
	if s.moveSub != nil {
		return
	}

	bufID := s.buf.ID()
	s.moveSub = s.bus.Subscribe(event.TopicCursorMoved, s.cursorMoved,
		event.WithFilter(func(ev event.Event) bool {
			moved, ok := ev.Payload.(event.CursorMoved)
			return ok && moved.BufferID == bufID
		}))
}

// unsubscribeMovementLocked cancels the movement subscription and any
// pending debounce timer. Caller holds s.mu.
func (s *Session) unsubscribeMovementLocked() {
	if s.moveSub != nil {
		s.moveSub.Cancel()
		s.moveSub = nil
	}
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.hasLast = false
}

// cursorMoved handles a cursor movement event. A position equal to the
// last seen one is ignored entirely; a new position replaces any pending
// timer with a fresh one and is recorded immediately, before the timer
// fires.
func (s *Session) cursorMoved(ev event.Event) {
	moved, ok := ev.Payload.(event.CursorMoved)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.moveSub == nil {
		return
	}
	if s.hasLast && moved.New == s.lastCursor {
		return
	}

	if s.pending != nil {
		s.pending.Stop()
	}
	s.lastCursor = moved.New
	s.hasLast = true
	s.pending = s.clock.AfterFunc(s.cfg.Preview().Delay, s.autoShow)
}

// autoShow runs when the debounce timer fires. The cursor is re-read at
// fire time: whatever file the listing names there now is shown, even if
// it changed since the timer was scheduled.
func (s *Session) autoShow() {
	s.mu.Lock()
	active := s.enabled && s.moveSub != nil
	s.mu.Unlock()
	if !active {
		return
	}

	pos := s.buf.CursorPosition()
	if _, ok := s.buf.FileAt(pos); !ok {
		return
	}

	// Auto previews are best-effort; a render failure leaves the
	// listing untouched.
	_, _ = s.ShowAtPoint()
}

// settingsChanged keeps the movement subscription in line with the
// autoPreview setting while the mode is enabled.
func (s *Session) settingsChanged(config.Change) {
	auto := s.cfg.Preview().AutoPreview

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	if auto {
		s.subscribeMovementLocked()
	} else {
		s.unsubscribeMovementLocked()
	}
}
