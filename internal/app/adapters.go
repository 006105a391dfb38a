package app

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/host"
	"github.com/dshills/glimpse/internal/overlay"
)

// listingLine is one line of the demo directory listing. file is empty
// for lines that name no file, like headers.
type listingLine struct {
	text string
	file string
}

// listingBuffer is an in-memory directory listing serving as the demo's
// buffer.
type listingBuffer struct {
	id string

	mu     sync.Mutex
	lines  []listingLine
	cursor overlay.Position
}

func newListingBuffer(id string, lines []listingLine) *listingBuffer {
	return &listingBuffer{id: id, lines: lines}
}

// sampleListing builds the listing the demo walks through: a header, a
// few images, two excluded icon files, a file whose render fails, and a
// plain text file.
func sampleListing() *listingBuffer {
	return newListingBuffer("demo", []listingLine{
		{text: "photos/                        <dir>"},
		{text: "  beach.png              214K", file: "photos/beach.png"},
		{text: "  dunes.jpg              180K", file: "photos/dunes.jpg"},
		{text: "  favicon.ico              4K", file: "photos/favicon.ico"},
		{text: "  pointer.cur              2K", file: "photos/pointer.cur"},
		{text: "  corrupt-header.png      99K", file: "photos/corrupt-header.png"},
		{text: "  sunset.webp            310K", file: "photos/sunset.webp"},
		{text: "  README.md                1K", file: "photos/README.md"},
	})
}

func (b *listingBuffer) ID() string { return b.id }

func (b *listingBuffer) CursorPosition() overlay.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

func (b *listingBuffer) LineEndPosition(line uint32) overlay.Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	var col uint32
	if int(line) < len(b.lines) {
		col = uint32(utf8.RuneCountInString(b.lines[line].text))
	}
	return overlay.Position{Line: line, Col: col}
}

func (b *listingBuffer) FileAt(pos overlay.Position) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(pos.Line) >= len(b.lines) {
		return "", false
	}
	file := b.lines[pos.Line].file
	return file, file != ""
}

// moveTo moves the cursor and announces the movement on the bus.
func (b *listingBuffer) moveTo(bus *event.Bus, to overlay.Position) {
	b.mu.Lock()
	old := b.cursor
	b.cursor = to
	b.mu.Unlock()

	bus.Publish(event.TopicCursorMoved, event.CursorMoved{
		BufferID: b.id,
		Old:      old,
		New:      to,
	})
}

func (b *listingBuffer) lineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

func (b *listingBuffer) lineText(line uint32) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(line) >= len(b.lines) {
		return ""
	}
	return strings.TrimSpace(b.lines[line].text)
}

// imageFilePattern matches the file names the demo display treats as
// images.
var imageFilePattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|webp|svg|ico|cur|tiff?)$`)

// consoleDisplay is a display that always supports images and recognizes
// common image file names.
type consoleDisplay struct{}

func (consoleDisplay) ImagesSupported() bool            { return true }
func (consoleDisplay) ImageFilePattern() *regexp.Regexp { return imageFilePattern }

// demoImage is the consoleRenderer's stand-in for a rendered image. The
// demo never decodes pixels; it fabricates plausible dimensions from the
// render constraints.
type demoImage struct {
	source string
	format string
	width  int
	height int
}

func (i demoImage) Source() string { return i.source }

func (i demoImage) String() string {
	return fmt.Sprintf("%s (%dx%d %s)", i.source, i.width, i.height, i.format)
}

// consoleRenderer fabricates images for the demo. Paths containing
// "corrupt" fail, exercising the error path.
type consoleRenderer struct{}

// demoBaseWidth and demoBaseHeight are the pretend native dimensions of
// every demo image, before scaling.
const (
	demoBaseWidth  = 800
	demoBaseHeight = 600
)

func (consoleRenderer) Render(path, formatHint string, c host.Constraints) (overlay.Image, error) {
	if strings.Contains(path, "corrupt") {
		return nil, fmt.Errorf("render %s: corrupt image data", path)
	}

	w := int(float64(demoBaseWidth) * c.Scale)
	h := int(float64(demoBaseHeight) * c.Scale)
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	if c.MaxHeight > 0 && h > c.MaxHeight {
		h = c.MaxHeight
	}

	return demoImage{source: path, format: formatHint, width: w, height: h}, nil
}

// consoleOverlays places overlays by logging them. Handles are sequence
// numbers.
type consoleOverlays struct {
	log *Logger

	mu        sync.Mutex
	nextID    int
	live      map[int]overlay.Position
	placed    int
	destroyed int
}

func newConsoleOverlays(log *Logger) *consoleOverlays {
	return &consoleOverlays{
		log:  log.WithComponent("overlays"),
		live: make(map[int]overlay.Position),
	}
}

func (o *consoleOverlays) Create(at overlay.Position, content overlay.Content) overlay.Handle {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.live[id] = at
	o.placed++
	o.mu.Unlock()

	if content.Image != nil {
		o.log.Info("placed %v at %s", content.Image, at)
	}
	return id
}

func (o *consoleOverlays) Destroy(handle overlay.Handle) {
	id, ok := handle.(int)
	if !ok {
		return
	}

	o.mu.Lock()
	at, live := o.live[id]
	if live {
		delete(o.live, id)
		o.destroyed++
	}
	o.mu.Unlock()

	if live {
		o.log.Info("removed overlay at %s", at)
	}
}

// counts returns how many overlays were placed and destroyed, and how
// many are still live.
func (o *consoleOverlays) counts() (placed, destroyed, live int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.placed, o.destroyed, len(o.live)
}
