// Package sketch provides drawable raster surfaces with a linear undo/redo
// history.
//
// # Overview
//
// A Surface holds a live pixel buffer and a sequence of immutable
// checkpoints. Pointer interactions render into the live buffer as they
// happen, in draw mode (round-capped lines) or erase mode (circular
// transparent dabs), and commit one checkpoint when they end. Undo and
// Redo restore earlier checkpoints; committing after an undo discards the
// redo tail.
//
// # Quick Start
//
//	import "github.com/gogpu/sketch"
//
//	s := sketch.New()
//	s.Start(sketch.Pt(100, 100))
//	s.Move(sketch.Pt(400, 300))
//	s.End()
//
//	s.Undo()
//	s.Redo()
//
//	png, err := s.ExportRaster()
//
// # Surfaces
//
// New creates a sketch surface: dark opaque background, light ink. NewEditor
// wraps an existing image: magenta ink, and erasing leaves transparency the
// caller can use as a mask. The first checkpoint is always the base state,
// which is never undone.
//
// # Resolution
//
// A surface has an intrinsic pixel size and a displayed rect. Under
// FixedResolution the intrinsic size never changes and only the mapping
// does. Under ViewportMatched the raster is reallocated at display size
// times device pixel ratio on every Resize, and the current checkpoint is
// resampled into it from its own pixels.
//
// # Coordinate System
//
// Raster coordinates have their origin at the top-left, X increasing right
// and Y increasing down. Pointer events arrive in client coordinates and
// are mapped per axis:
//
//	raster = (client - element origin) * (intrinsic / displayed)
//
// # Concurrency
//
// A Surface must be used from one goroutine. Logger and SetLogger are safe
// for concurrent use.
package sketch
