package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"map-viewport/script"
	"map-viewport/viewport"
)

const (
	ButtonSize   = 24.0
	ButtonMargin = 4.0
	TextPaddingX = 10
)

var (
	ColorBackground  = color.RGBA{30, 30, 35, 255}
	ColorBar         = color.RGBA{20, 20, 25, 255}
	ColorBarText     = color.RGBA{220, 220, 220, 255}
	ColorBarDim      = color.RGBA{150, 150, 150, 255}
	ColorButton      = color.RGBA{60, 60, 70, 200}
	ColorButtonHover = color.RGBA{80, 80, 95, 230}
	ColorErrorPanel  = color.RGBA{40, 40, 40, 220}
	ColorErrorText   = color.RGBA{255, 200, 50, 255}
	ColorGrid        = color.RGBA{255, 255, 255, 40}
)

// Callbacks are the actions the header buttons trigger.
type Callbacks struct {
	ZoomIn   func()
	ZoomOut  func()
	Recenter func()
}

// UISystem draws the header and status bars around the map surface and
// handles the header buttons.
type UISystem struct {
	Title        string
	HeaderHeight int
	StatusHeight int
	Debug        *DebugPanel

	face          font.Face
	getScreenSize func() (int, int)
	buttons       []*Button

	status string
}

func NewUISystem(title string, headerHeight, statusHeight int, face font.Face, getScreenSize func() (int, int), cb Callbacks) *UISystem {
	ui := &UISystem{
		Title:         title,
		HeaderHeight:  headerHeight,
		StatusHeight:  statusHeight,
		Debug:         &DebugPanel{},
		face:          face,
		getScreenSize: getScreenSize,
	}
	ui.buttons = []*Button{
		{Label: "+", W: ButtonSize, H: ButtonSize, OnClick: cb.ZoomIn},
		{Label: "-", W: ButtonSize, H: ButtonSize, OnClick: cb.ZoomOut},
		{Label: "o", W: ButtonSize, H: ButtonSize, OnClick: cb.Recenter},
	}
	ui.updateButtonPositions()
	return ui
}

// SurfaceRect returns the origin and size of the map surface between the bars.
func (ui *UISystem) SurfaceRect() (viewport.Point, viewport.Size) {
	w, h := ui.getScreenSize()
	sh := h - ui.HeaderHeight - ui.StatusHeight
	if sh < 0 {
		sh = 0
	}
	return viewport.Point{X: 0, Y: float64(ui.HeaderHeight)},
		viewport.Size{Width: float64(w), Height: float64(sh)}
}

// updateButtonPositions lays the buttons out right to left in the header.
func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float32(w) - ButtonMargin
	y := (float32(ui.HeaderHeight) - ButtonSize) / 2
	if y < 0 {
		y = 0
	}
	for _, b := range ui.buttons {
		x -= b.W
		b.X = x
		b.Y = y
		x -= ButtonMargin
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Click fires the button under (mx, my), if any.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		ui.Click(mx, my)
	}
}

// SetStatus replaces the status bar text.
func (ui *UISystem) SetStatus(s string) {
	ui.status = s
}

func (ui *UISystem) Status() string {
	return ui.status
}

// FormatStatus renders the zoom percentage, the reported image coordinate and,
// when available, the world coordinate.
func FormatStatus(st viewport.Status, world *script.Coord) string {
	s := fmt.Sprintf("Zoom: %d%%   X: %d   Y: %d", st.ZoomPercent, st.CoordX, st.CoordY)
	if world != nil {
		s += fmt.Sprintf("   World: (%.1f, %.1f)", world.X, world.Y)
	}
	return s
}

// FormatHeader renders the title line.
func FormatHeader(title string, img viewport.ImageSpec) string {
	return fmt.Sprintf("%s   %.0f x %.0f", title, img.Width, img.Height)
}

func (ui *UISystem) Draw(screen *ebiten.Image, header string) {
	w, h := ui.getScreenSize()
	ui.updateButtonPositions()

	lh := lineHeight(ui.face)

	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(ui.HeaderHeight), ColorBar, false)
	DrawTextLines(screen, ui.face, header, TextPaddingX, (ui.HeaderHeight-lh)/2, ColorBarText)

	top := h - ui.StatusHeight
	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(ui.StatusHeight), ColorBar, false)
	DrawTextLines(screen, ui.face, ui.status, TextPaddingX, top+(ui.StatusHeight-lh)/2, ColorBarDim)

	mx, my := ebiten.CursorPosition()
	for _, b := range ui.buttons {
		b.Draw(screen, ui.face, b.IsMouseOver(mx, my))
	}
	ui.Debug.Draw(screen, w, top, ui.face)
}
