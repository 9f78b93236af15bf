package input

import (
	"fmt"
	"testing"

	"map-viewport/viewport"
)

type fakeTarget struct {
	calls []string
}

func (f *fakeTarget) Wheel(deltaY float64, pos viewport.Point) bool {
	f.calls = append(f.calls, fmt.Sprintf("wheel %v %v,%v", deltaY, pos.X, pos.Y))
	return true
}

func (f *fakeTarget) PointerDown(b viewport.Button, pos viewport.Point) {
	f.calls = append(f.calls, fmt.Sprintf("down %d %v,%v", b, pos.X, pos.Y))
}

func (f *fakeTarget) PointerMove(pos viewport.Point) viewport.PointerReport {
	f.calls = append(f.calls, fmt.Sprintf("move %v,%v", pos.X, pos.Y))
	return viewport.PointerReport{}
}

func (f *fakeTarget) PointerUp()    { f.calls = append(f.calls, "up") }
func (f *fakeTarget) PointerLeave() { f.calls = append(f.calls, "leave") }
func (f *fakeTarget) Recenter() bool {
	f.calls = append(f.calls, "recenter")
	return true
}
func (f *fakeTarget) Origin() viewport.Point { return viewport.Point{X: 0, Y: 30} }
func (f *fakeTarget) Surface() viewport.Size { return viewport.Size{Width: 400, Height: 300} }

type fakeHost struct {
	overUI      bool
	screenshots int
	grids       int
}

func (h *fakeHost) IsMouseOver(mx, my int) bool { return h.overUI }
func (h *fakeHost) RequestScreenshot()          { h.screenshots++ }
func (h *fakeHost) ToggleGrid()                 { h.grids++ }

func expectCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected calls %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Call %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDispatchDragSequence(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{})

	is.Dispatch(Frame{CursorX: 100, CursorY: 100, PrimaryJustPressed: true})
	is.Dispatch(Frame{CursorX: 120, CursorY: 90})
	is.Dispatch(Frame{CursorX: 120, CursorY: 90})
	is.Dispatch(Frame{CursorX: 120, CursorY: 90, PrimaryJustReleased: true})

	expectCalls(t, tgt.calls,
		"down 0 100,100",
		"move 100,100",
		"move 120,90",
		"up",
	)
}

func TestDispatchWheelNegatesEbitenDirection(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{})

	is.Dispatch(Frame{CursorX: 50, CursorY: 60, WheelY: 1})
	expectCalls(t, tgt.calls, "wheel -1 50,60", "move 50,60")
}

func TestDispatchIgnoresWheelOutsideSurface(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{})

	// header area, above the surface origin
	is.Dispatch(Frame{CursorX: 50, CursorY: 10, WheelY: 1, PrimaryJustPressed: true})
	if len(tgt.calls) != 0 {
		t.Errorf("Expected no calls outside surface, got %q", tgt.calls)
	}
}

func TestDispatchLeaveEndsDrag(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{})

	is.Dispatch(Frame{CursorX: 100, CursorY: 100, PrimaryJustPressed: true})
	is.Dispatch(Frame{CursorX: 100, CursorY: 400})
	if is.Inside() {
		t.Errorf("Expected cursor to be outside")
	}
	expectCalls(t, tgt.calls, "down 0 100,100", "move 100,100", "leave")
}

func TestDispatchOtherButton(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{})

	is.Dispatch(Frame{CursorX: 10, CursorY: 40, OtherJustPressed: true})
	expectCalls(t, tgt.calls, "down 1 10,40", "move 10,40")
}

func TestDispatchOverUIDoesNotStartDrag(t *testing.T) {
	tgt := &fakeTarget{}
	is := NewInputSystem(tgt, &fakeHost{overUI: true})

	is.Dispatch(Frame{CursorX: 390, CursorY: 40, PrimaryJustPressed: true, WheelY: -1})
	expectCalls(t, tgt.calls, "move 390,40")
}

func TestDispatchKeys(t *testing.T) {
	tgt := &fakeTarget{}
	host := &fakeHost{}
	is := NewInputSystem(tgt, host)

	is.Dispatch(Frame{CursorX: -5, CursorY: -5, ZoomIn: true, ZoomOut: true, Recenter: true, ToggleGrid: true, Screenshot: true})
	expectCalls(t, tgt.calls, "recenter", "wheel -1 200,180", "wheel 1 200,180")
	if host.screenshots != 1 || host.grids != 1 {
		t.Errorf("Expected one screenshot and one grid toggle, got %d and %d", host.screenshots, host.grids)
	}
}

func TestDispatchDrivesEngine(t *testing.T) {
	e, err := viewport.New(viewport.Options{
		Image:        viewport.ImageSpec{Width: 3638, Height: 4855},
		Range:        viewport.ScaleRange{Min: 0.1, Max: 4},
		DefaultScale: 0.8,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Measure(viewport.Size{Width: 1000, Height: 800})
	is := NewInputSystem(e, nil)

	is.Dispatch(Frame{CursorX: 500, CursorY: 400})
	if r := e.Report(); r.X != 1819 || r.Y != 2428 {
		t.Errorf("Expected report (1819, 2428), got (%d, %d)", r.X, r.Y)
	}
	is.Dispatch(Frame{CursorX: 500, CursorY: 400, WheelY: 1})
	if s := e.State().Scale; s != 0.9 {
		t.Errorf("Expected scroll away from user to zoom in to 0.9, got %v", s)
	}
}
