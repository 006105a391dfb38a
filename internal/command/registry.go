// Package command routes named preview commands to buffer sessions.
package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/glimpse/internal/preview"
)

// Command names accepted by Dispatch.
const (
	CmdShow    = "preview.show"
	CmdHide    = "preview.hide"
	CmdHideAll = "preview.hide-all"
	CmdToggle  = "preview.toggle"
	CmdEnable  = "preview.enable"
	CmdDisable = "preview.disable"
)

// Dispatch errors.
var (
	// ErrUnknownCommand is returned for command names outside the set
	// of constants above.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnboundBuffer is returned when no session is registered for
	// the buffer.
	ErrUnboundBuffer = errors.New("no session for buffer")
)

// Registry binds buffer IDs to preview sessions and dispatches commands
// to them by name.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*preview.Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*preview.Session),
	}
}

// Register binds a session to a buffer ID, replacing any previous
// binding. The registry does not own the session's lifecycle.
func (r *Registry) Register(bufferID string, s *preview.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[bufferID] = s
}

// Unregister removes the binding for a buffer ID.
func (r *Registry) Unregister(bufferID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, bufferID)
}

// Session returns the session bound to a buffer ID.
func (r *Registry) Session(bufferID string) (*preview.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[bufferID]
	return s, ok
}

// Commands returns the accepted command names, sorted.
func (r *Registry) Commands() []string {
	names := []string{CmdShow, CmdHide, CmdHideAll, CmdToggle, CmdEnable, CmdDisable}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command against the session bound to bufferID.
func (r *Registry) Dispatch(name, bufferID string) Result {
	r.mu.RLock()
	s, ok := r.sessions[bufferID]
	r.mu.RUnlock()
	if !ok {
		return Errorf("%w: %s", ErrUnboundBuffer, bufferID)
	}

	switch name {
	case CmdShow:
		created, err := s.ShowAtPoint()
		if err != nil {
			return Error(err)
		}
		if !created {
			return NoOpWithMessage("nothing to preview at point")
		}
		return SuccessWithMessage("preview shown")

	case CmdHide:
		n := s.HideAtPoint()
		if n == 0 {
			return NoOpWithMessage("no preview at point")
		}
		return SuccessWithMessage("hid " + previews(n))

	case CmdHideAll:
		n := s.HideAll()
		if n == 0 {
			return NoOpWithMessage("no previews shown")
		}
		return SuccessWithMessage("hid " + previews(n))

	case CmdToggle:
		created, removed, err := s.Toggle()
		switch {
		case err != nil:
			return Error(err)
		case created:
			return SuccessWithMessage("preview shown")
		case removed > 0:
			return SuccessWithMessage("hid " + previews(removed))
		default:
			return NoOpWithMessage("nothing to toggle at point")
		}

	case CmdEnable:
		if s.Enabled() {
			return NoOpWithMessage("preview mode already enabled")
		}
		s.Enable()
		return SuccessWithMessage("preview mode enabled")

	case CmdDisable:
		s.Disable()
		return SuccessWithMessage("preview mode disabled")

	default:
		return Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

func previews(n int) string {
	if n == 1 {
		return "1 preview"
	}
	return fmt.Sprintf("%d previews", n)
}
