// Command sketchdemo draws a scripted sketch, exercises undo and redo, and
// saves the result as PNG.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/gogpu/sketch"
)

func main() {
	var (
		size   = flag.Int("size", 512, "raster edge length")
		output = flag.String("output", "sketch.png", "output file")
	)
	flag.Parse()

	s := sketch.New(
		sketch.WithResolution(*size, *size),
		sketch.WithHistoryFunc(func(canUndo, canRedo bool) {
			log.Printf("history: undo=%v redo=%v", canUndo, canRedo)
		}),
	)
	// Shown at half size, as on a 2x display, pens are twice as wide in
	// raster pixels.
	half := float64(*size) / 2
	if err := s.Resize(sketch.Rect{Width: half, Height: half}, 2); err != nil {
		log.Fatalf("Failed to mount: %v", err)
	}

	drawSpiral(s, *size)
	drawHouse(s, *size)

	// A scribble that gets undone, then replaced: the redo is gone.
	scribble(s, *size)
	s.Undo()
	drawSun(s, *size)
	if s.Redo() {
		log.Fatal("redo survived a new stroke")
	}

	// Erase a window out of the house.
	s.SetMode(sketch.ModeErase)
	s.Start(sketch.Pt(float64(*size)*0.42, float64(*size)*0.62))
	s.End()
	s.SetMode(sketch.ModeDraw)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := s.EncodePNG(f); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Sketch saved to %s (%dx%d)\n", *output, s.Width(), s.Height())
}

// polyline draws one interaction through pts, given in fractions of size.
func polyline(s *sketch.Surface, size int, pts ...sketch.Point) {
	n := float64(size)
	s.Start(sketch.Pt(pts[0].X*n, pts[0].Y*n))
	for _, p := range pts[1:] {
		s.Move(sketch.Pt(p.X*n, p.Y*n))
	}
	s.End()
}

func drawSpiral(s *sketch.Surface, size int) {
	var pts []sketch.Point
	for i := 0; i < 200; i++ {
		t := float64(i) / 200
		angle := t * 6 * math.Pi
		r := 0.02 + t*0.12
		pts = append(pts, sketch.Pt(0.25+r*math.Cos(angle), 0.25+r*math.Sin(angle)))
	}
	polyline(s, size, pts...)
}

func drawHouse(s *sketch.Surface, size int) {
	polyline(s, size,
		sketch.Pt(0.3, 0.8), sketch.Pt(0.3, 0.55), sketch.Pt(0.5, 0.4),
		sketch.Pt(0.7, 0.55), sketch.Pt(0.7, 0.8), sketch.Pt(0.3, 0.8),
	)
	polyline(s, size, sketch.Pt(0.3, 0.55), sketch.Pt(0.7, 0.55))
}

func scribble(s *sketch.Surface, size int) {
	polyline(s, size, sketch.Pt(0.1, 0.9), sketch.Pt(0.9, 0.1), sketch.Pt(0.1, 0.1))
}

func drawSun(s *sketch.Surface, size int) {
	for i := 0; i < 12; i++ {
		angle := float64(i) * math.Pi / 6
		polyline(s, size,
			sketch.Pt(0.78+0.05*math.Cos(angle), 0.2+0.05*math.Sin(angle)),
			sketch.Pt(0.78+0.1*math.Cos(angle), 0.2+0.1*math.Sin(angle)),
		)
	}
}
