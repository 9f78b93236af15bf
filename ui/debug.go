package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// ErrorPanelTTL is how long an error stays on screen.
const ErrorPanelTTL = 8 * time.Second

// DebugPanel shows the most recent error in the bottom-right corner.
type DebugPanel struct {
	Error string
	since time.Time
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
	d.since = time.Now()
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

// Visible reports whether an error should still be drawn at now.
func (d *DebugPanel) Visible(now time.Time) bool {
	return d != nil && d.Error != "" && now.Sub(d.since) < ErrorPanelTTL
}

func (d *DebugPanel) Draw(screen *ebiten.Image, screenW, bottom int, face font.Face) {
	if !d.Visible(time.Now()) {
		return
	}
	pw, ph := 360, 48
	x := screenW - pw - 10
	y := bottom - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), ColorErrorPanel, false)
	if face != nil {
		DrawTextLines(screen, face, d.Error, x+8, y+8, ColorErrorText)
	}
}
