package app

import (
	"strings"
	"testing"

	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/host"
	"github.com/dshills/glimpse/internal/overlay"
)

func TestListingBuffer_FileAt(t *testing.T) {
	buf := sampleListing()

	if _, ok := buf.FileAt(overlay.Position{Line: 0}); ok {
		t.Error("expected no file on the header line")
	}

	file, ok := buf.FileAt(overlay.Position{Line: 1})
	if !ok {
		t.Fatal("expected a file on line 1")
	}
	if file != "photos/beach.png" {
		t.Errorf("FileAt(1) = %q, expected photos/beach.png", file)
	}

	if _, ok := buf.FileAt(overlay.Position{Line: 99}); ok {
		t.Error("expected no file past the end of the listing")
	}
}

func TestListingBuffer_LineEndPosition(t *testing.T) {
	buf := newListingBuffer("t", []listingLine{
		{text: "abc", file: "abc.png"},
	})

	pos := buf.LineEndPosition(0)
	if pos.Line != 0 || pos.Col != 3 {
		t.Errorf("LineEndPosition(0) = %s, expected 0:3", pos)
	}

	pos = buf.LineEndPosition(7)
	if pos.Col != 0 {
		t.Errorf("LineEndPosition past end = %s, expected col 0", pos)
	}
}

func TestListingBuffer_MoveTo(t *testing.T) {
	buf := sampleListing()
	bus := event.NewBus()

	var got event.CursorMoved
	bus.Subscribe(event.TopicCursorMoved, func(ev event.Event) {
		got, _ = ev.Payload.(event.CursorMoved)
	})

	buf.moveTo(bus, overlay.Position{Line: 2})

	if got.BufferID != "demo" {
		t.Errorf("BufferID = %q, expected demo", got.BufferID)
	}
	if got.New.Line != 2 {
		t.Errorf("New.Line = %d, expected 2", got.New.Line)
	}
	if buf.CursorPosition().Line != 2 {
		t.Errorf("cursor = %s, expected line 2", buf.CursorPosition())
	}
}

func TestConsoleRenderer(t *testing.T) {
	r := consoleRenderer{}

	img, err := r.Render("photos/beach.png", "png", host.Constraints{Scale: 0.5})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	demo, ok := img.(demoImage)
	if !ok {
		t.Fatalf("expected demoImage, got %T", img)
	}
	if demo.width != 400 || demo.height != 300 {
		t.Errorf("dimensions = %dx%d, expected 400x300", demo.width, demo.height)
	}
	if demo.Source() != "photos/beach.png" {
		t.Errorf("Source() = %q", demo.Source())
	}

	img, err = r.Render("photos/beach.png", "png", host.Constraints{Scale: 1.0, MaxWidth: 320, MaxHeight: 200})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	demo = img.(demoImage)
	if demo.width != 320 || demo.height != 200 {
		t.Errorf("capped dimensions = %dx%d, expected 320x200", demo.width, demo.height)
	}

	if _, err := r.Render("photos/corrupt-header.png", "png", host.Constraints{Scale: 0.5}); err == nil {
		t.Error("expected an error for a corrupt image")
	}
}

func TestConsoleOverlays(t *testing.T) {
	o := newConsoleOverlays(NullLogger)
	content := overlay.Content{Leading: 1, Placeholder: " ", Trailing: 1}

	h1 := o.Create(overlay.Position{Line: 1, Col: 10}, content)
	h2 := o.Create(overlay.Position{Line: 2, Col: 10}, content)

	placed, destroyed, live := o.counts()
	if placed != 2 || destroyed != 0 || live != 2 {
		t.Errorf("counts = (%d, %d, %d), expected (2, 0, 2)", placed, destroyed, live)
	}

	o.Destroy(h1)
	o.Destroy(h1) // Second destroy of the same handle is a no-op.
	o.Destroy("bogus")

	placed, destroyed, live = o.counts()
	if placed != 2 || destroyed != 1 || live != 1 {
		t.Errorf("counts = (%d, %d, %d), expected (2, 1, 1)", placed, destroyed, live)
	}

	o.Destroy(h2)
	if _, _, live := o.counts(); live != 0 {
		t.Errorf("live = %d after destroying everything, expected 0", live)
	}
}

func TestImageFilePattern(t *testing.T) {
	tests := []struct {
		name    string
		matches bool
	}{
		{"beach.png", true},
		{"beach.PNG", true},
		{"dunes.jpeg", true},
		{"sunset.webp", true},
		{"favicon.ico", true},
		{"README.md", false},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		if got := imageFilePattern.MatchString(tt.name); got != tt.matches {
			t.Errorf("imageFilePattern.MatchString(%q) = %v, expected %v", tt.name, got, tt.matches)
		}
	}
}

func TestSampleListing(t *testing.T) {
	buf := sampleListing()

	if buf.lineCount() != 8 {
		t.Fatalf("lineCount() = %d, expected 8", buf.lineCount())
	}
	if !strings.Contains(buf.lineText(1), "beach.png") {
		t.Errorf("lineText(1) = %q, expected the beach.png entry", buf.lineText(1))
	}
	if buf.lineText(99) != "" {
		t.Errorf("lineText past end = %q, expected empty", buf.lineText(99))
	}
}
