package command

import (
	"errors"
	"testing"

	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/glimpsetest"
	"github.com/dshills/glimpse/internal/overlay"
	"github.com/dshills/glimpse/internal/preview"
)

func newTestSession(t *testing.T) (*preview.Session, *glimpsetest.Buffer) {
	t.Helper()

	buf := glimpsetest.NewBuffer("dir")
	buf.AddLine(0, "photos/cat.png", 14)
	buf.AddLine(1, "notes.txt", 9)

	cfg := config.New(config.WithEnvPrefix(""))
	s, err := preview.NewSession(preview.Deps{
		Buffer:   buf,
		Display:  glimpsetest.NewDisplay(),
		Renderer: glimpsetest.NewRenderer(),
		Overlays: glimpsetest.NewOverlays(),
		Clock:    glimpsetest.NewClock(),
		Config:   cfg,
		Bus:      event.NewBus(),
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		cfg.Close()
	})
	return s, buf
}

func TestDispatchShowAndHide(t *testing.T) {
	s, buf := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	buf.SetCursor(overlay.Position{Line: 0})

	res := r.Dispatch(CmdShow, "dir")
	if !res.IsOK() {
		t.Fatalf("Dispatch(show) = %+v, want ok", res)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}

	res = r.Dispatch(CmdHide, "dir")
	if !res.IsOK() || res.Message != "hid 1 preview" {
		t.Errorf("Dispatch(hide) = %+v, want ok with count message", res)
	}

	res = r.Dispatch(CmdHide, "dir")
	if res.Status != StatusNoOp {
		t.Errorf("Dispatch(hide) on empty = %+v, want no-op", res)
	}
}

func TestDispatchShowNoOp(t *testing.T) {
	s, buf := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	buf.SetCursor(overlay.Position{Line: 1})

	res := r.Dispatch(CmdShow, "dir")
	if res.Status != StatusNoOp {
		t.Errorf("Dispatch(show) on text line = %+v, want no-op", res)
	}
}

func TestDispatchToggle(t *testing.T) {
	s, buf := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	buf.SetCursor(overlay.Position{Line: 0})

	if res := r.Dispatch(CmdToggle, "dir"); !res.IsOK() || res.Message != "preview shown" {
		t.Errorf("first toggle = %+v, want shown", res)
	}
	if res := r.Dispatch(CmdToggle, "dir"); !res.IsOK() || res.Message != "hid 1 preview" {
		t.Errorf("second toggle = %+v, want hidden", res)
	}

	buf.SetCursor(overlay.Position{Line: 1})
	if res := r.Dispatch(CmdToggle, "dir"); res.Status != StatusNoOp {
		t.Errorf("toggle on text line = %+v, want no-op", res)
	}
}

func TestDispatchHideAll(t *testing.T) {
	s, buf := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	buf.SetCursor(overlay.Position{Line: 0})
	if res := r.Dispatch(CmdShow, "dir"); !res.IsOK() {
		t.Fatalf("Dispatch(show) = %+v", res)
	}

	if res := r.Dispatch(CmdHideAll, "dir"); !res.IsOK() {
		t.Errorf("Dispatch(hide-all) = %+v, want ok", res)
	}
	if res := r.Dispatch(CmdHideAll, "dir"); res.Status != StatusNoOp {
		t.Errorf("Dispatch(hide-all) on empty = %+v, want no-op", res)
	}
}

func TestDispatchEnableDisable(t *testing.T) {
	s, _ := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	if res := r.Dispatch(CmdEnable, "dir"); !res.IsOK() {
		t.Fatalf("Dispatch(enable) = %+v, want ok", res)
	}
	if !s.Enabled() {
		t.Error("session not enabled after enable command")
	}
	if res := r.Dispatch(CmdEnable, "dir"); res.Status != StatusNoOp {
		t.Errorf("second enable = %+v, want no-op", res)
	}

	if res := r.Dispatch(CmdDisable, "dir"); !res.IsOK() {
		t.Errorf("Dispatch(disable) = %+v, want ok", res)
	}
	if s.Enabled() {
		t.Error("session still enabled after disable command")
	}
}

func TestDispatchErrors(t *testing.T) {
	s, _ := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)

	res := r.Dispatch(CmdShow, "other")
	if !res.IsError() || !errors.Is(res.Err, ErrUnboundBuffer) {
		t.Errorf("Dispatch to unbound buffer = %+v, want ErrUnboundBuffer", res)
	}

	res = r.Dispatch("preview.bogus", "dir")
	if !res.IsError() || !errors.Is(res.Err, ErrUnknownCommand) {
		t.Errorf("Dispatch of unknown command = %+v, want ErrUnknownCommand", res)
	}
}

func TestUnregister(t *testing.T) {
	s, _ := newTestSession(t)
	r := NewRegistry()
	r.Register("dir", s)
	r.Unregister("dir")

	if _, ok := r.Session("dir"); ok {
		t.Error("Session() found binding after Unregister")
	}
	if res := r.Dispatch(CmdShow, "dir"); !res.IsError() {
		t.Errorf("Dispatch after Unregister = %+v, want error", res)
	}
}

func TestCommandsSorted(t *testing.T) {
	r := NewRegistry()
	names := r.Commands()

	if len(names) != 6 {
		t.Fatalf("Commands() returned %d names, want 6", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Commands() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
