package glimpsetest

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/dshills/glimpse/internal/host"
	"github.com/dshills/glimpse/internal/overlay"
)

// defaultImagePattern matches common raster image file names.
var defaultImagePattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|webp|svg|ico|cur|tiff?)$`)

// Display is a fake display with controllable image support.
type Display struct {
	mu        sync.Mutex
	supported bool
	pattern   *regexp.Regexp
}

// NewDisplay creates a display that supports images and matches common
// image file names.
func NewDisplay() *Display {
	return &Display{supported: true, pattern: defaultImagePattern}
}

// SetSupported toggles image support.
func (d *Display) SetSupported(ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supported = ok
}

// SetPattern replaces the image file name pattern.
func (d *Display) SetPattern(re *regexp.Regexp) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pattern = re
}

// ImagesSupported reports whether the display can show images.
func (d *Display) ImagesSupported() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.supported
}

// ImageFilePattern returns the image file name pattern.
func (d *Display) ImageFilePattern() *regexp.Regexp {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pattern
}

// Image is a fake rendered image.
type Image struct {
	source string
	format string
}

// Source returns the path the image was rendered from.
func (i Image) Source() string { return i.source }

// Format returns the format hint the image was rendered with.
func (i Image) Format() string { return i.format }

// RenderCall records one Render invocation.
type RenderCall struct {
	Path        string
	Format      string
	Constraints host.Constraints
}

// Renderer is a fake renderer recording its calls. Individual paths can
// be made to fail.
type Renderer struct {
	mu    sync.Mutex
	calls []RenderCall
	fail  map[string]error
}

// NewRenderer creates a renderer where every render succeeds.
func NewRenderer() *Renderer {
	return &Renderer{fail: make(map[string]error)}
}

// FailWith makes Render return err for the given path.
func (r *Renderer) FailWith(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[path] = err
}

// Render records the call and returns a fake image, or the configured
// error for the path.
func (r *Renderer) Render(path, formatHint string, c host.Constraints) (overlay.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, RenderCall{Path: path, Format: formatHint, Constraints: c})
	if err, ok := r.fail[path]; ok {
		return nil, err
	}
	return Image{source: path, format: formatHint}, nil
}

// Calls returns a copy of the recorded render calls.
func (r *Renderer) Calls() []RenderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RenderCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Overlays is a fake overlay surface tracking live overlays and the
// operations performed on it.
type Overlays struct {
	mu     sync.Mutex
	nextID int
	live   map[int]overlay.Position
	ops    []string
}

// NewOverlays creates an empty overlay surface.
func NewOverlays() *Overlays {
	return &Overlays{live: make(map[int]overlay.Position)}
}

// Create places an overlay and returns its handle.
func (o *Overlays) Create(at overlay.Position, content overlay.Content) overlay.Handle {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.live[id] = at
	o.ops = append(o.ops, fmt.Sprintf("create %s", at))
	return id
}

// Destroy removes an overlay by handle. Unknown handles are ignored.
func (o *Overlays) Destroy(handle overlay.Handle) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id, ok := handle.(int)
	if !ok {
		return
	}
	at, ok := o.live[id]
	if !ok {
		return
	}
	delete(o.live, id)
	o.ops = append(o.ops, fmt.Sprintf("destroy %s", at))
}

// LiveCount returns the number of overlays currently placed.
func (o *Overlays) LiveCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.live)
}

// Ops returns a copy of the recorded operations, oldest first.
func (o *Overlays) Ops() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.ops))
	copy(out, o.ops)
	return out
}
