// Package window shows the universe in a desktop window and lets the user
// paint cells with the mouse.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"simlife/src/engine"
	"simlife/src/universe"
	"simlife/src/view"
)

const hudHeight = 20

//Window implements ebiten.Game and engine.Viewer
type Window struct {
	e       engine.Engine
	mode    view.RenderMode
	palette view.Palette
	title   string

	offscreen *ebiten.Image
	stroking  bool
	lastX     int
	lastY     int
	err       error
}

func New(mode view.RenderMode, palette view.Palette) *Window {
	return &Window{
		mode:    mode,
		palette: palette,
		title:   "The Life",
	}
}

func (w *Window) Register(e engine.Engine) {
	w.e = e
}

//Refresh is a no-op, the window redraws every frame
func (w *Window) Refresh() {}

//Start opens the window and blocks until it is closed
func (w *Window) Start() error {
	cw, ch := w.canvasSize()
	ebiten.SetWindowSize(cw, ch+hudHeight)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(w)
}

func (w *Window) canvasSize() (width int, height int) {
	w.e.View(func(u *universe.Universe) {
		cw, ch := u.CanvasSize()
		width, height = int(cw+0.999), int(ch+0.999)
	})
	return
}

func (w *Window) Update() error {
	if w.err != nil {
		return w.err
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if w.e.Status().RunningMode == engine.RunningStateRun {
			w.e.Stop()
		} else {
			w.e.Run()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		w.e.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		w.e.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.e.SettleWithRandomData()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		w.e.SettleTemplate("glider")
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if w.mode == view.RenderRects {
			w.mode = view.RenderPixels
		} else {
			w.mode = view.RenderRects
		}
	}
	w.updateStroke()
	return nil
}

//updateStroke toggles the cell under a new press and the cells crossed while dragging
func (w *Window) updateStroke() {
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		w.stroking = false
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y, ok := w.cellAt(mx, my-hudHeight)
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.e.ToggleCell(x, y)
		w.stroking = true
		w.lastX, w.lastY = x, y
		return
	}
	if w.stroking && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && (x != w.lastX || y != w.lastY) {
		w.e.ToggleStroke(w.lastX, w.lastY, x, y)
		w.lastX, w.lastY = x, y
	}
}

func (w *Window) cellAt(px int, py int) (x int, y int, ok bool) {
	w.e.View(func(u *universe.Universe) {
		var cx, cy uint32
		cx, cy, ok = u.CellAtPoint(float64(px), float64(py))
		x, y = int(cx), int(cy)
	})
	return
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(toColor(w.palette.Grid))
	field := screen.SubImage(screen.Bounds().Add(imagePoint(0, hudHeight))).(*ebiten.Image)

	var err error
	w.e.View(func(u *universe.Universe) {
		if w.mode == view.RenderPixels {
			p := &pixelSurface{dst: field, offscreen: &w.offscreen}
			if err = u.PaintCells(universe.Dead, w.palette.Dead, p); err == nil {
				err = u.PaintCells(universe.Alive, w.palette.Alive, p)
			}
			return
		}
		u.FillCells(universe.Dead, &rectSurface{dst: field, col: toColor(w.palette.Dead)})
		u.FillCells(universe.Alive, &rectSurface{dst: field, col: toColor(w.palette.Alive)})
	})
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("window: render: %w", err)
	}

	st := w.e.Status()
	hud := fmt.Sprintf("step %d  live %d  %v  [%v]  space run/stop, n step, c clear, r random, g glider, m mode",
		st.IterationNum, st.LiveCells, st.RunningMode, w.mode)
	text.Draw(screen, hud, basicfont.Face7x13, 4, 14, color.Black)
}

func (w *Window) Layout(outsideWidth int, outsideHeight int) (int, int) {
	cw, ch := w.canvasSize()
	return cw, ch + hudHeight
}
