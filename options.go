package sketch

import "image/color"

// HistoryFunc receives the undo/redo availability of a surface each time
// it changes: after commits, undos, redos and clears.
type HistoryFunc func(canUndo, canRedo bool)

// Option configures a Surface during creation.
//
// Example:
//
//	// Default 1024x1024 sketch surface
//	s := sketch.New()
//
//	// Resolution follows the element size and device pixel ratio
//	s := sketch.New(sketch.WithPolicy(sketch.ViewportMatched),
//	    sketch.WithHistoryFunc(func(canUndo, canRedo bool) { ... }))
type Option func(*options)

// options holds optional configuration for Surface creation.
type options struct {
	policy     Policy
	width      int
	height     int
	background color.NRGBA
	pen        Pen
	mode       Mode
	maxRes     int
	onHistory  HistoryFunc
}

// DefaultResolution is the edge length of a fixed-resolution sketch surface.
const DefaultResolution = 1024

// MaxResolution is the default limit on either intrinsic edge of a
// surface. One 4096x4096 buffer takes 64 MiB, and every checkpoint is
// another.
const MaxResolution = 4096

// defaultOptions returns the options of a sketch surface.
func defaultOptions() options {
	return options{
		policy:     FixedResolution,
		width:      DefaultResolution,
		height:     DefaultResolution,
		background: SketchBackground,
		pen:        DefaultSketchPen(),
		mode:       ModeDraw,
		maxRes:     MaxResolution,
	}
}

// WithPolicy selects how the intrinsic resolution follows the display.
// Under ViewportMatched the surface has no raster until its first Resize.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithResolution sets the intrinsic size of a FixedResolution surface.
// Non-positive dimensions are ignored.
func WithResolution(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithMaxResolution limits either intrinsic edge to n pixels. Larger
// fixed resolutions and viewport sizes are scaled down to fit, keeping
// their aspect ratio; edit surfaces reject larger images. Non-positive
// values are ignored.
func WithMaxResolution(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRes = n
		}
	}
}

// WithBackground sets the color of the blank base state.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
}

// WithPen sets the initial pen.
func WithPen(p Pen) Option {
	return func(o *options) {
		o.pen = p
	}
}

// WithMode sets the initial interaction mode.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithHistoryFunc registers the availability listener.
func WithHistoryFunc(f HistoryFunc) Option {
	return func(o *options) {
		o.onHistory = f
	}
}
