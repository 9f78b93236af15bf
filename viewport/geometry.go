package viewport

import "math"

// Point is a position in display or image space.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is the width and height of the rendering surface.
type Size struct {
	Width, Height float64
}

// Measured reports whether both dimensions are usable.
func (s Size) Measured() bool {
	return s.Width > 0 && s.Height > 0
}

// ImageSpec holds the intrinsic pixel dimensions of the source image.
type ImageSpec struct {
	Width, Height float64
}

// ScaleRange bounds the zoom factor, inclusive on both ends.
type ScaleRange struct {
	Min, Max float64
}

// Clamp limits s to the range.
func (r ScaleRange) Clamp(s float64) float64 {
	return clamp(s, r.Min, r.Max)
}

// Clamp returns the offset closest to candidate that keeps the scaled image
// covering the surface on every axis it can cover, and centred on every axis
// where it is smaller than the surface.
func Clamp(candidate Point, scale float64, surface Size, img ImageSpec) Point {
	return Point{
		X: clampAxis(candidate.X, img.Width*scale, surface.Width),
		Y: clampAxis(candidate.Y, img.Height*scale, surface.Height),
	}
}

func clampAxis(candidate, content, view float64) float64 {
	if content < view {
		return (view - content) / 2
	}
	return clamp(candidate, view-content, 0)
}

// centred is the offset that puts the scaled image in the middle of the surface.
func centred(scale float64, surface Size, img ImageSpec) Point {
	return Point{
		X: (surface.Width - img.Width*scale) / 2,
		Y: (surface.Height - img.Height*scale) / 2,
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// roundScale trims float noise so repeated steps land on the same values.
func roundScale(s float64) float64 {
	return math.Round(s*1e6) / 1e6
}
