// Package preview implements inline image previews for listing buffers.
//
// A Session tracks the previews of one buffer. Showing a preview anchors
// an overlay at the end of the cursor's line; the host renders the image
// and owns the overlay surface, the session owns eligibility, placement,
// and bookkeeping. With auto preview enabled, cursor movement schedules a
// debounced show.
package preview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/host"
	"github.com/dshills/glimpse/internal/overlay"
	"github.com/dshills/glimpse/internal/script"
)

// ErrMissingDep is returned by NewSession when a required host
// collaborator is absent.
var ErrMissingDep = errors.New("preview: missing dependency")

// Deps are the collaborators a Session needs. Buffer, Display, Renderer,
// and Overlays are required. Clock, Config, and Bus default to working
// instances when nil; Rules is optional.
type Deps struct {
	Buffer   host.Buffer
	Display  host.Display
	Renderer host.Renderer
	Overlays host.Overlays
	Clock    host.Clock
	Config   *config.Config
	Bus      *event.Bus
	Rules    *script.Rules
}

// Session manages the preview overlays of a single buffer.
type Session struct {
	buf      host.Buffer
	display  host.Display
	renderer host.Renderer
	overlays host.Overlays
	clock    host.Clock
	cfg      *config.Config
	bus      *event.Bus
	rules    *script.Rules

	store *overlay.Store

	mu         sync.Mutex
	enabled    bool
	moveSub    event.Subscription
	pending    host.Timer
	lastCursor overlay.Position
	hasLast    bool

	cfgSub *config.ObserverSubscription
}

// NewSession creates a session for the buffer in deps.
func NewSession(deps Deps) (*Session, error) {
	if deps.Buffer == nil {
		return nil, fmt.Errorf("%w: buffer", ErrMissingDep)
	}
	if deps.Display == nil {
		return nil, fmt.Errorf("%w: display", ErrMissingDep)
	}
	if deps.Renderer == nil {
		return nil, fmt.Errorf("%w: renderer", ErrMissingDep)
	}
	if deps.Overlays == nil {
		return nil, fmt.Errorf("%w: overlays", ErrMissingDep)
	}

	s := &Session{
		buf:      deps.Buffer,
		display:  deps.Display,
		renderer: deps.Renderer,
		overlays: deps.Overlays,
		clock:    deps.Clock,
		cfg:      deps.Config,
		bus:      deps.Bus,
		rules:    deps.Rules,
		store:    overlay.NewStore(),
	}
	if s.clock == nil {
		s.clock = host.SystemClock()
	}
	if s.cfg == nil {
		s.cfg = config.New()
	}
	if s.bus == nil {
		s.bus = event.NewBus()
	}

	s.cfgSub = s.cfg.SubscribePath("preview.autoPreview", s.settingsChanged)
	return s, nil
}

// Close disables the session and detaches it from the settings system.
// The session must not be used afterwards.
func (s *Session) Close() {
	s.Disable()
	if s.cfgSub != nil {
		s.cfgSub.Unsubscribe()
	}
}

// Enabled reports whether the mode is enabled.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// AutoPreviewActive reports whether cursor movement currently schedules
// previews.
func (s *Session) AutoPreviewActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveSub != nil
}

// Count returns the number of live preview overlays.
func (s *Session) Count() int {
	return s.store.Count()
}

// pendingEvent is an event built under the session lock and published
// after it is released, so subscribers may call back into the session.
type pendingEvent struct {
	topic   event.Topic
	payload any
}

func (s *Session) emit(events ...pendingEvent) {
	for _, ev := range events {
		s.bus.Publish(ev.topic, ev.payload)
	}
}
