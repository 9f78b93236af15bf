package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Poll gathers the raw Ebiten input for the current tick.
func Poll() Frame {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()

	return Frame{
		CursorX: mx,
		CursorY: my,
		WheelY:  dy,

		PrimaryJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PrimaryJustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		OtherJustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle),

		ZoomIn: inpututil.IsKeyJustPressed(ebiten.KeyEqual) ||
			inpututil.IsKeyJustPressed(ebiten.KeyKPAdd),
		ZoomOut: inpututil.IsKeyJustPressed(ebiten.KeyMinus) ||
			inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract),
		Recenter:   inpututil.IsKeyJustPressed(ebiten.KeyHome),
		ToggleGrid: inpututil.IsKeyJustPressed(ebiten.KeyG),
		Screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}
}
