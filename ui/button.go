package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

// Draw renders the button with its label centred.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, hovered bool) {
	clr := ColorButton
	if hovered {
		clr = ColorButtonHover
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, clr, false)
	if face == nil {
		return
	}
	w := font.MeasureString(face, b.Label).Ceil()
	h := lineHeight(face)
	DrawTextLines(screen, face, b.Label, int(b.X)+(int(b.W)-w)/2, int(b.Y)+(int(b.H)-h)/2, color.White)
}
