package input

import (
	"map-viewport/viewport"
)

// Frame is the input polled during one tick.
type Frame struct {
	CursorX, CursorY int

	// WheelY follows Ebiten: positive when scrolling away from the user.
	WheelY float64

	PrimaryJustPressed  bool
	PrimaryJustReleased bool
	OtherJustPressed    bool

	ZoomIn     bool
	ZoomOut    bool
	Recenter   bool
	ToggleGrid bool
	Screenshot bool
}

// Target receives viewport events. *viewport.Engine satisfies it.
type Target interface {
	Wheel(deltaY float64, pos viewport.Point) bool
	PointerDown(b viewport.Button, pos viewport.Point)
	PointerMove(pos viewport.Point) viewport.PointerReport
	PointerUp()
	PointerLeave()
	Recenter() bool
	Origin() viewport.Point
	Surface() viewport.Size
}

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	IsMouseOver(mx, my int) bool
	RequestScreenshot()
	ToggleGrid()
}

type InputSystem struct {
	target Target
	host   Host

	inside     bool
	moved      bool
	lastMouseX int
	lastMouseY int
}

func NewInputSystem(t Target, h Host) *InputSystem {
	return &InputSystem{target: t, host: h, lastMouseX: -1, lastMouseY: -1}
}

// Inside reports whether the cursor was over the surface on the last dispatch.
func (is *InputSystem) Inside() bool {
	return is.inside
}

// Dispatch turns one frame of polled input into viewport events.
func (is *InputSystem) Dispatch(f Frame) {
	is.handleControlKeys(f)

	pos := viewport.Point{X: float64(f.CursorX), Y: float64(f.CursorY)}
	inside := is.overSurface(f.CursorX, f.CursorY)
	overUI := is.host != nil && is.host.IsMouseOver(f.CursorX, f.CursorY)

	if is.inside && !inside {
		is.target.PointerLeave()
	}
	is.inside = inside

	is.handleZoom(f, pos, inside && !overUI)
	if !inside {
		return
	}
	is.handlePointer(f, pos, overUI)
}

func (is *InputSystem) handleControlKeys(f Frame) {
	if f.Screenshot && is.host != nil {
		is.host.RequestScreenshot()
	}
	if f.ToggleGrid && is.host != nil {
		is.host.ToggleGrid()
	}
	if f.Recenter {
		is.target.Recenter()
	}
}

func (is *InputSystem) handleZoom(f Frame, pos viewport.Point, wheelActive bool) {
	if wheelActive && f.WheelY != 0 {
		is.target.Wheel(-f.WheelY, pos)
	}

	// Keyboard zoom is anchored at the surface centre.
	if f.ZoomIn {
		is.target.Wheel(-1, is.centre())
	}
	if f.ZoomOut {
		is.target.Wheel(1, is.centre())
	}
}

func (is *InputSystem) handlePointer(f Frame, pos viewport.Point, overUI bool) {
	if !overUI {
		if f.PrimaryJustPressed {
			is.target.PointerDown(viewport.ButtonPrimary, pos)
		} else if f.OtherJustPressed {
			is.target.PointerDown(viewport.ButtonOther, pos)
		}
	}

	if f.CursorX != is.lastMouseX || f.CursorY != is.lastMouseY || !is.moved {
		is.target.PointerMove(pos)
		is.lastMouseX, is.lastMouseY = f.CursorX, f.CursorY
		is.moved = true
	}

	if f.PrimaryJustReleased {
		is.target.PointerUp()
	}
}

func (is *InputSystem) overSurface(mx, my int) bool {
	o := is.target.Origin()
	s := is.target.Surface()
	x, y := float64(mx), float64(my)
	return x >= o.X && x < o.X+s.Width && y >= o.Y && y < o.Y+s.Height
}

// centre is the display position of the middle of the surface.
func (is *InputSystem) centre() viewport.Point {
	o := is.target.Origin()
	s := is.target.Surface()
	return viewport.Point{X: o.X + s.Width/2, Y: o.Y + s.Height/2}
}
