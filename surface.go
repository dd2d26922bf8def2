package sketch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/sketch/internal/history"
)

// Surface is a drawable raster with a linear undo/redo history.
//
// A surface owns one live buffer, the pixels currently shown, and a
// sequence of immutable checkpoints. Pointer interactions render straight
// into the live buffer and commit a checkpoint when they end; Undo and Redo
// copy a checkpoint back over the live buffer.
//
// Surface is not safe for concurrent use. All calls for one surface must
// come from a single goroutine, the way a UI event loop delivers them.
type Surface struct {
	geom  Geometry
	live  *image.RGBA
	lines *lineRasterizer

	background color.NRGBA
	base       *image.RGBA // edit surfaces: the image being edited

	pen    Pen
	mode   Mode
	active *interaction

	maxRes int

	history   *history.Stack[*Checkpoint]
	onHistory HistoryFunc
}

// New creates a sketch surface: an opaque background, light ink, and a
// FixedResolution raster of DefaultResolution pixels square unless
// configured otherwise.
//
// A FixedResolution surface commits its blank state as the first
// checkpoint immediately. A ViewportMatched surface does so on its first
// Resize.
func New(opts ...Option) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := newSurface(o)
	if o.policy == FixedResolution {
		w, h := fitWithin(float64(o.width), float64(o.height), o.maxRes)
		s.geom.Width, s.geom.Height = w, h
		s.allocate(w, h)
		s.paintBase(s.live)
		s.commit()
	}
	return s
}

// NewEditor creates an edit surface over img. The intrinsic resolution is
// the image's own and never changes; resolution and policy options are
// ignored. The image is the base state: it is the first checkpoint and
// what Clear returns to. Erased pixels become transparent.
//
// An image with an edge longer than the resolution limit is rejected
// with an error wrapping ErrUnsupportedImage.
func NewEditor(img image.Image, opts ...Option) (*Surface, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrUnsupportedImage
	}

	o := defaultOptions()
	o.background = Transparent
	o.pen = DefaultEditPen()
	for _, opt := range opts {
		opt(&o)
	}
	if size := img.Bounds().Size(); size.X > o.maxRes || size.Y > o.maxRes {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels per edge", ErrUnsupportedImage, size.X, size.Y, o.maxRes)
	}

	base := cloneRGBA(clone.AsRGBA(img))
	w, h := base.Rect.Dx(), base.Rect.Dy()

	o.policy = FixedResolution
	s := newSurface(o)
	s.base = base
	s.geom.Width, s.geom.Height = w, h
	s.allocate(w, h)
	s.paintBase(s.live)
	s.commit()
	return s, nil
}

func newSurface(o options) *Surface {
	return &Surface{
		geom:       Geometry{Policy: o.policy, DPR: 1},
		background: o.background,
		pen:        o.pen,
		mode:       o.mode,
		maxRes:     o.maxRes,
		history:    history.New[*Checkpoint](),
		onHistory:  o.onHistory,
	}
}

// Width returns the intrinsic width, 0 before a ViewportMatched surface is
// first sized.
func (s *Surface) Width() int {
	return s.geom.Width
}

// Height returns the intrinsic height, 0 before a ViewportMatched surface
// is first sized.
func (s *Surface) Height() int {
	return s.geom.Height
}

// Geometry returns the current intrinsic/display mapping.
func (s *Surface) Geometry() Geometry {
	return s.geom
}

// Mode returns the mode the next interaction will use.
func (s *Surface) Mode() Mode {
	return s.mode
}

// SetMode selects the mode of the next interaction. An interaction already
// in progress keeps the mode it started with.
func (s *Surface) SetMode(m Mode) {
	s.mode = m
}

// Pen returns the current pen.
func (s *Surface) Pen() Pen {
	return s.pen
}

// SetPen replaces the pen used by the next interaction.
func (s *Surface) SetPen(p Pen) {
	s.pen = p
}

// Snapshot returns a copy of the live buffer, or nil when the surface has
// no raster yet.
func (s *Surface) Snapshot() *image.RGBA {
	if s.live == nil {
		return nil
	}
	return cloneRGBA(s.live)
}

// Locate converts a pointer event into raster coordinates using the
// current geometry. It reports false when the surface is not mounted.
func (s *Surface) Locate(ev PointerEvent) (Point, bool) {
	if s.live == nil {
		return Point{}, false
	}
	return s.geom.Locate(ev)
}

// HandlePointer feeds one pointer event through the tracker into the
// interaction lifecycle. Up and leave events both end the interaction.
func (s *Surface) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		if p, ok := s.Locate(ev); ok {
			s.Start(p)
		}
	case PointerMove:
		if s.active == nil {
			return
		}
		if p, ok := s.Locate(ev); ok {
			s.Move(p)
		}
	case PointerUp, PointerLeave:
		s.End()
	}
}

// Interacting reports whether an interaction is in progress.
func (s *Surface) Interacting() bool {
	return s.active != nil
}

// Start begins an interaction at p, in raster coordinates. An interaction
// still in progress is ended first.
func (s *Surface) Start(p Point) {
	if s.live == nil {
		return
	}
	s.End()
	s.active = s.begin(p)
}

// Move extends the current interaction to p and renders the new geometry.
// It is ignored when no interaction is in progress.
func (s *Surface) Move(p Point) {
	if s.active == nil {
		return
	}
	s.extend(s.active, p)
}

// End finishes the current interaction and commits its result. An
// interaction that changed no pixel commits nothing. End is ignored when
// no interaction is in progress.
func (s *Surface) End() {
	it := s.active
	if it == nil {
		return
	}
	s.active = nil
	if !it.drawn {
		Logger().Debug("sketch: empty interaction dropped", "mode", it.mode)
		return
	}
	s.commit()
}

// Undo steps back one checkpoint and reports whether anything changed.
// The base state is never undone.
func (s *Surface) Undo() bool {
	s.End()
	cp, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(cp)
	Logger().Debug("sketch: undo", "index", s.history.Index(), "len", s.history.Len())
	s.notify()
	return true
}

// Redo steps forward one checkpoint and reports whether anything changed.
func (s *Surface) Redo() bool {
	s.End()
	cp, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(cp)
	Logger().Debug("sketch: redo", "index", s.history.Index(), "len", s.history.Len())
	s.notify()
	return true
}

// Clear discards the whole history, repaints the base state and commits
// it as the only checkpoint. An interaction in progress is abandoned.
func (s *Surface) Clear() {
	if s.live == nil {
		return
	}
	s.active = nil
	s.history.Reset()
	s.paintBase(s.live)
	s.commit()
}

// IsEmpty reports whether nothing beyond the base state is current.
func (s *Surface) IsEmpty() bool {
	return s.history.AtBase()
}

// Availability returns whether Undo and Redo would change anything.
func (s *Surface) Availability() (canUndo, canRedo bool) {
	return s.history.CanUndo(), s.history.CanRedo()
}

// Resize reconciles the surface with a new display rect and device pixel
// ratio. A non-positive dpr is treated as 1. An empty or non-finite
// display, or one whose pixel size overflows, yields an error wrapping
// ErrInvalidGeometry and leaves the surface untouched.
//
// Under ViewportMatched the raster is reallocated at display size times
// dpr and the current checkpoint is resampled once, from its own
// resolution, into the new buffer. The live buffer is never read back, so
// repeated resizes do not compound blur. Under FixedResolution only the
// display mapping changes. The first resize of a ViewportMatched surface
// paints and commits the base state, and a raster larger than the
// resolution limit is scaled down to fit. History length and pointer are
// never changed by a resize.
func (s *Surface) Resize(display Rect, dpr float64) error {
	if display.Empty() || !display.finite() {
		return fmt.Errorf("%w: %gx%g", ErrInvalidGeometry, display.Width, display.Height)
	}
	if math.IsNaN(dpr) || dpr <= 0 {
		dpr = 1
	}
	if px := max(display.Width, display.Height) * dpr; math.IsInf(px, 0) {
		return fmt.Errorf("%w: %gx%g at dpr %g", ErrInvalidGeometry, display.Width, display.Height, dpr)
	}
	w, h := s.geom.intrinsicFor(display, dpr, s.maxRes)

	s.End()
	prev, hasPrev := s.history.Current()

	s.geom.Display = display
	s.geom.DPR = dpr
	if s.live != nil && w == s.live.Rect.Dx() && h == s.live.Rect.Dy() {
		return nil
	}

	s.allocate(w, h)
	s.geom.Width, s.geom.Height = w, h
	Logger().Debug("sketch: raster reallocated", "width", w, "height", h, "dpr", dpr)

	if hasPrev {
		s.restore(prev)
		return nil
	}
	s.paintBase(s.live)
	s.commit()
	return nil
}

// allocate replaces the live buffer and rebuilds the drawing state bound
// to it.
func (s *Surface) allocate(w, h int) {
	s.live = image.NewRGBA(image.Rect(0, 0, w, h))
	s.lines = newLineRasterizer(s.live)
}

// commit snapshots the live buffer as a new checkpoint.
func (s *Surface) commit() {
	s.history.Commit(newCheckpoint(s.live))
	Logger().Debug("sketch: checkpoint committed", "index", s.history.Index(), "len", s.history.Len())
	s.notify()
}

// restore overwrites the live buffer with cp, resampling it in one pass
// when it was taken at another resolution.
func (s *Surface) restore(cp *Checkpoint) {
	if cp.sameSize(s.live) {
		copy(s.live.Pix, cp.img.Pix)
		return
	}
	copy(s.live.Pix, resample(cp.img, s.live.Rect.Dx(), s.live.Rect.Dy()).Pix)
}

// paintBase fills dst with the base state: the edited image for edit
// surfaces, the background color otherwise.
func (s *Surface) paintBase(dst *image.RGBA) {
	if s.base != nil {
		if s.base.Rect.Size() == dst.Rect.Size() {
			copy(dst.Pix, s.base.Pix)
			return
		}
		copy(dst.Pix, resample(s.base, dst.Rect.Dx(), dst.Rect.Dy()).Pix)
		return
	}
	draw.Draw(dst, dst.Rect, image.NewUniform(s.background), image.Point{}, draw.Src)
}

func (s *Surface) notify() {
	if s.onHistory != nil {
		s.onHistory(s.history.CanUndo(), s.history.CanRedo())
	}
}

// resample scales src to w x h with a single linear pass.
func resample(src *image.RGBA, w, h int) *image.RGBA {
	return transform.Resize(src, w, h, transform.Linear)
}
