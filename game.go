package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"map-viewport/asset"
	"map-viewport/config"
	"map-viewport/input"
	"map-viewport/script"
	"map-viewport/ui"
	"map-viewport/viewport"
)

type Game struct {
	cfg      config.Config
	view     *viewport.Engine
	input    *input.InputSystem
	ui       *ui.UISystem
	loader   *asset.Loader
	world    *script.WorldMapper
	mapImage *ebiten.Image

	screenWidth  int
	screenHeight int

	showGrid            bool
	screenshotRequested bool
}

func NewGame(cfg config.Config) (*Game, error) {
	view, err := viewport.New(cfg.Options())
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:          cfg,
		view:         view,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
	}

	face := ui.LoadUIFont(cfg.Font.Path, cfg.Font.Size)
	g.ui = ui.NewUISystem(cfg.Window.Title, cfg.Layout.HeaderHeight, cfg.Layout.StatusHeight, face,
		func() (int, int) { return g.screenWidth, g.screenHeight },
		ui.Callbacks{
			ZoomIn:   func() { g.zoomAtCentre(-1) },
			ZoomOut:  func() { g.zoomAtCentre(1) },
			Recenter: func() { g.view.Recenter() },
		})
	g.input = input.NewInputSystem(view, g)

	if cfg.World.Script != "" {
		w, err := script.LoadFile(cfg.World.Script)
		if err != nil {
			log.Println("world script disabled:", err)
			g.ui.Debug.SetError(err.Error())
		} else {
			g.world = w
		}
	}

	view.Subscribe(func(viewport.State) { g.refreshStatus() })
	view.OnReport(func(viewport.PointerReport) { g.refreshStatus() })
	g.refreshStatus()

	g.loader = asset.NewLoader()
	log.Println("loading map:", cfg.Image.Path)
	g.loader.Request(cfg.Image.Path)
	return g, nil
}

func (g *Game) zoomAtCentre(deltaY float64) {
	o := g.view.Origin()
	s := g.view.Surface()
	g.view.Wheel(deltaY, viewport.Point{X: o.X + s.Width/2, Y: o.Y + s.Height/2})
}

func (g *Game) refreshStatus() {
	st := g.view.Status()
	var world *script.Coord
	if g.world != nil {
		c, err := g.world.Map(st.CoordX, st.CoordY)
		if err != nil {
			log.Println("world script disabled:", err)
			g.ui.Debug.SetError(err.Error())
			g.world = nil
		} else {
			world = &c
		}
	}
	g.ui.SetStatus(ui.FormatStatus(st, world))
}

// IsMouseOver, RequestScreenshot and ToggleGrid implement input.Host.
func (g *Game) IsMouseOver(mx, my int) bool { return g.ui.IsMouseOver(mx, my) }
func (g *Game) RequestScreenshot()          { g.screenshotRequested = true }
func (g *Game) ToggleGrid()                 { g.showGrid = !g.showGrid }

func (g *Game) Update() error {
	g.ui.Update()
	g.input.Dispatch(input.Poll())
	g.pollAsset()
	return nil
}

func (g *Game) pollAsset() {
	r, ok := g.loader.Poll()
	if !ok {
		return
	}
	g.loader.Close()
	if r.Err != nil {
		log.Println("map load failed:", r.Err)
		g.ui.Debug.SetError(r.Err.Error())
		return
	}
	b := r.Image.Bounds()
	spec := g.view.Image()
	if float64(b.Dx()) != spec.Width || float64(b.Dy()) != spec.Height {
		log.Printf("map %s is %dx%d, configured as %.0fx%.0f; coordinates follow the configuration",
			r.Path, b.Dx(), b.Dy(), spec.Width, spec.Height)
	}
	g.mapImage = ebiten.NewImageFromImage(r.Image)
	log.Printf("loaded map %s (%s)", r.Path, r.Format)
	g.view.AssetReady()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ColorBackground)

	origin, size := g.view.Origin(), g.view.Surface()
	rect := image.Rect(int(origin.X), int(origin.Y), int(origin.X+size.Width), int(origin.Y+size.Height))
	surface := screen.SubImage(rect).(*ebiten.Image)

	if g.mapImage != nil {
		t := g.view.Transform()
		img := g.view.Image()
		iw, ih := g.mapImage.Bounds().Dx(), g.mapImage.Bounds().Dy()

		op := &ebiten.DrawImageOptions{}
		// Stretch a mismatched bitmap onto the configured image size.
		op.GeoM.Scale(img.Width/float64(iw), img.Height/float64(ih))
		op.GeoM.Scale(t.Scale, t.Scale)
		op.GeoM.Translate(t.OffsetX+origin.X, t.OffsetY+origin.Y)
		op.Filter = ebiten.FilterLinear
		surface.DrawImage(g.mapImage, op)
	} else {
		ebitenutil.DebugPrintAt(surface, fmt.Sprintf("Loading %s ...", g.cfg.Image.Path), int(origin.X)+10, int(origin.Y)+10)
	}

	if g.showGrid {
		ui.DrawImageGrid(surface, g.view, ui.GridSpacing)
	}

	g.ui.Draw(screen, ui.FormatHeader(g.cfg.Window.Title, g.view.Image()))

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, "screenshot.png"); err != nil {
			log.Println("screenshot error:", err)
		} else {
			log.Println("Screenshot saved as screenshot.png")
		}
	}
}

func saveScreenshot(screen *ebiten.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight

	origin, size := g.ui.SurfaceRect()
	g.view.SetOrigin(origin)
	g.view.Measure(size)
	return outsideWidth, outsideHeight
}
