// Package viewport keeps the pan/zoom transform of a fixed-size image shown
// inside a smaller surface, and maps pointer positions back to image pixels.
//
// All methods are meant to be called from a single goroutine (the UI update
// loop). Every method that changes scale or offset runs the result through
// Clamp before committing it.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidImage = errors.New("viewport: image dimensions must be positive")
	ErrInvalidRange = errors.New("viewport: scale range must satisfy 0 < min <= max")
	ErrInvalidStep  = errors.New("viewport: zoom step must be positive")
)

// DefaultStep is the scale change applied per wheel event.
const DefaultStep = 0.1

// Button identifies the pointer button of a pointer-down event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonOther
)

// Options configure a new Engine.
type Options struct {
	Image        ImageSpec
	Range        ScaleRange
	DefaultScale float64
	Step         float64
}

// State is the committed transform.
type State struct {
	Scale  float64
	Offset Point
}

// Transform is what the host applies when drawing: scale around the image's
// top-left corner, then translate by the offset.
type Transform struct {
	OffsetX, OffsetY float64
	Scale            float64
}

// PointerReport is the image pixel under the pointer, origin bottom-left.
type PointerReport struct {
	X, Y int
}

// Status holds the values shown in the status bar.
type Status struct {
	ZoomPercent    int
	CoordX, CoordY int
}

// Engine owns the viewport state.
type Engine struct {
	image ImageSpec
	rng   ScaleRange
	step  float64

	state   State
	surface Size
	origin  Point

	measured        bool
	pendingRecenter bool

	dragging bool
	anchor   Point

	report     PointerReport
	pointer    Point
	hasPointer bool

	subscribers       []func(State)
	reportSubscribers []func(PointerReport)
}

// New validates opts and returns an engine at the default scale. The offset is
// provisional until the surface is measured.
func New(opts Options) (*Engine, error) {
	if !(opts.Image.Width > 0 && opts.Image.Height > 0) {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidImage, opts.Image.Width, opts.Image.Height)
	}
	if !(opts.Range.Min > 0 && opts.Range.Min <= opts.Range.Max) {
		return nil, fmt.Errorf("%w: got [%v, %v]", ErrInvalidRange, opts.Range.Min, opts.Range.Max)
	}
	step := opts.Step
	if step == 0 {
		step = DefaultStep
	}
	if !(step > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStep, step)
	}
	scale := opts.DefaultScale
	if scale == 0 {
		scale = 1
	}
	return &Engine{
		image: opts.Image,
		rng:   opts.Range,
		step:  step,
		state: State{Scale: opts.Range.Clamp(scale)},

		pendingRecenter: true,
	}, nil
}

// Subscribe registers fn to be called after every committed state change.
func (e *Engine) Subscribe(fn func(State)) {
	e.subscribers = append(e.subscribers, fn)
}

// OnReport registers fn to be called with every new pointer report.
func (e *Engine) OnReport(fn func(PointerReport)) {
	e.reportSubscribers = append(e.reportSubscribers, fn)
}

// commit stores s and re-reports the last pointer position, since the pixel
// under a stationary pointer moves with the transform.
func (e *Engine) commit(s State) {
	e.state = s
	if e.hasPointer {
		e.report = e.reportAt(e.pointer)
	}
	for _, fn := range e.subscribers {
		fn(s)
	}
}

// Measure records the surface size. The first usable size recentres the
// image; later sizes only re-clamp the current offset. A zero or negative
// dimension marks the surface unmeasured and cancels any drag.
func (e *Engine) Measure(size Size) {
	if !size.Measured() {
		e.surface = Size{}
		e.measured = false
		e.dragging = false
		return
	}
	if e.measured && size == e.surface {
		return
	}
	e.surface = size
	e.measured = true
	if e.pendingRecenter {
		e.Recenter()
		return
	}
	e.commit(State{Scale: e.state.Scale, Offset: e.clamp(e.state.Offset, e.state.Scale)})
}

// SetOrigin sets the display position of the surface's top-left corner.
func (e *Engine) SetOrigin(p Point) {
	e.origin = p
}

// AssetReady recentres once the image has finished loading.
func (e *Engine) AssetReady() {
	e.Recenter()
}

// Recenter centres the image at the current scale. It is deferred until the
// surface has been measured and reports whether it ran.
func (e *Engine) Recenter() bool {
	if !e.measured {
		e.pendingRecenter = true
		return false
	}
	e.pendingRecenter = false
	c := centred(e.state.Scale, e.surface, e.image)
	e.commit(State{Scale: e.state.Scale, Offset: e.clamp(c, e.state.Scale)})
	return true
}

// Wheel zooms one step around pos. deltaY > 0 zooms out, deltaY < 0 zooms in.
// It reports whether the state changed.
func (e *Engine) Wheel(deltaY float64, pos Point) bool {
	if deltaY == 0 || !e.measured {
		return false
	}
	step := e.step
	if deltaY > 0 {
		step = -step
	}
	return e.ZoomTo(e.state.Scale+step, pos)
}

// ZoomTo sets the scale to s (clamped to the range) keeping the image point
// under pos fixed, unless clamping the offset forbids it.
func (e *Engine) ZoomTo(s float64, pos Point) bool {
	if !e.measured {
		return false
	}
	newScale := e.rng.Clamp(roundScale(s))
	if newScale == e.state.Scale {
		return false
	}
	local := pos.Sub(e.origin)
	old := e.state
	imagePoint := Point{
		X: (local.X - old.Offset.X) / old.Scale,
		Y: (local.Y - old.Offset.Y) / old.Scale,
	}
	target := Point{
		X: local.X - imagePoint.X*newScale,
		Y: local.Y - imagePoint.Y*newScale,
	}
	e.commit(State{Scale: newScale, Offset: e.clamp(target, newScale)})
	return true
}

// PointerDown starts a drag on the primary button.
func (e *Engine) PointerDown(b Button, pos Point) {
	if b != ButtonPrimary || !e.measured {
		return
	}
	e.dragging = true
	e.anchor = pos.Sub(e.state.Offset)
}

// PointerMove pans while dragging, then reports the image pixel under pos.
func (e *Engine) PointerMove(pos Point) PointerReport {
	e.pointer = pos
	e.hasPointer = true
	if e.dragging {
		candidate := pos.Sub(e.anchor)
		next := e.clamp(candidate, e.state.Scale)
		if next != e.state.Offset {
			e.commit(State{Scale: e.state.Scale, Offset: next})
		}
	}
	e.report = e.reportAt(pos)
	for _, fn := range e.reportSubscribers {
		fn(e.report)
	}
	return e.report
}

// PointerUp ends any drag.
func (e *Engine) PointerUp() {
	e.dragging = false
}

// PointerLeave ends any drag, same as PointerUp, and stops re-reporting.
func (e *Engine) PointerLeave() {
	e.dragging = false
	e.hasPointer = false
}

func (e *Engine) reportAt(pos Point) PointerReport {
	p := e.DisplayToImage(pos)
	return PointerReport{
		X: int(clamp(math.Round(p.X), 0, e.image.Width)),
		Y: int(clamp(math.Round(e.image.Height-p.Y), 0, e.image.Height)),
	}
}

// DisplayToImage maps a display position to unflipped, unclamped image space.
func (e *Engine) DisplayToImage(pos Point) Point {
	local := pos.Sub(e.origin)
	return Point{
		X: (local.X - e.state.Offset.X) / e.state.Scale,
		Y: (local.Y - e.state.Offset.Y) / e.state.Scale,
	}
}

// ImageToDisplay is the inverse of DisplayToImage.
func (e *Engine) ImageToDisplay(p Point) Point {
	return Point{
		X: p.X*e.state.Scale + e.state.Offset.X + e.origin.X,
		Y: p.Y*e.state.Scale + e.state.Offset.Y + e.origin.Y,
	}
}

func (e *Engine) clamp(candidate Point, scale float64) Point {
	return Clamp(candidate, scale, e.surface, e.image)
}

func (e *Engine) State() State          { return e.state }
func (e *Engine) Report() PointerReport { return e.report }
func (e *Engine) Dragging() bool        { return e.dragging }
func (e *Engine) Surface() Size         { return e.surface }
func (e *Engine) Origin() Point         { return e.origin }
func (e *Engine) Image() ImageSpec      { return e.image }
func (e *Engine) Range() ScaleRange     { return e.rng }
func (e *Engine) Measured() bool        { return e.measured }

// Transform returns the offset and scale the host draws with.
func (e *Engine) Transform() Transform {
	return Transform{OffsetX: e.state.Offset.X, OffsetY: e.state.Offset.Y, Scale: e.state.Scale}
}

// Status returns the zoom percentage and the latest reported coordinate.
func (e *Engine) Status() Status {
	return Status{
		ZoomPercent: int(math.Round(e.state.Scale * 100)),
		CoordX:      e.report.X,
		CoordY:      e.report.Y,
	}
}
