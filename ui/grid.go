package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"map-viewport/viewport"
)

// GridSpacing is the distance between overlay lines in image pixels.
const GridSpacing = 500.0

// Mapper is the part of the viewport engine the overlay needs.
type Mapper interface {
	ImageToDisplay(p viewport.Point) viewport.Point
	DisplayToImage(p viewport.Point) viewport.Point
	Image() viewport.ImageSpec
	Origin() viewport.Point
	Surface() viewport.Size
}

// gridLines returns the multiples of spacing within [lo, hi], further limited
// to [0, limit]. Lines are counted from the image's bottom-left corner on the
// vertical axis, so pass flipped bounds for y.
func gridLines(lo, hi, limit, spacing float64) []float64 {
	lo = math.Max(lo, 0)
	hi = math.Min(hi, limit)
	if spacing <= 0 || lo > hi {
		return nil
	}
	var out []float64
	for v := math.Ceil(lo/spacing) * spacing; v <= hi; v += spacing {
		out = append(out, v)
	}
	return out
}

// DrawImageGrid draws lines every spacing image pixels over the visible part
// of the image, with the y lines counted from the bottom edge.
func DrawImageGrid(screen *ebiten.Image, m Mapper, spacing float64) {
	o := m.Origin()
	s := m.Surface()
	img := m.Image()
	tl := m.DisplayToImage(o)
	br := m.DisplayToImage(viewport.Point{X: o.X + s.Width, Y: o.Y + s.Height})

	top := math.Max(o.Y, m.ImageToDisplay(viewport.Point{}).Y)
	bottom := math.Min(o.Y+s.Height, m.ImageToDisplay(viewport.Point{Y: img.Height}).Y)
	left := math.Max(o.X, m.ImageToDisplay(viewport.Point{}).X)
	right := math.Min(o.X+s.Width, m.ImageToDisplay(viewport.Point{X: img.Width}).X)

	for _, x := range gridLines(tl.X, br.X, img.Width, spacing) {
		sx := m.ImageToDisplay(viewport.Point{X: x}).X
		vector.StrokeLine(screen, float32(sx), float32(top), float32(sx), float32(bottom), 1, ColorGrid, false)
	}
	// flipped: display top maps to the highest y value
	for _, y := range gridLines(img.Height-br.Y, img.Height-tl.Y, img.Height, spacing) {
		sy := m.ImageToDisplay(viewport.Point{Y: img.Height - y}).Y
		vector.StrokeLine(screen, float32(left), float32(sy), float32(right), float32(sy), 1, ColorGrid, false)
	}
}
