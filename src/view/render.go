package view

import (
	"fmt"
	"math"
	"strings"

	"simlife/src/universe"
)

//RenderMode selects which universe rendering adapter a surface is driven through
type RenderMode int

const (
	RenderRects  RenderMode = iota //FillCells, any square size
	RenderPixels                   //PaintCells, integral square size only
)

func (m RenderMode) String() string {
	if m == RenderPixels {
		return "pixels"
	}
	return "rect"
}

//ParseRenderMode accepts "rect" or "pixels"
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(s) {
	case "rect", "rects", "":
		return RenderRects, nil
	case "pixel", "pixels":
		return RenderPixels, nil
	}
	return RenderRects, fmt.Errorf("view: unknown render mode %q", s)
}

//Palette holds the colors of one rendering
type Palette struct {
	Grid  universe.Color //spacing between the cells
	Dead  universe.Color
	Alive universe.Color
}

var DefaultPalette = Palette{
	Grid:  universe.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
	Dead:  universe.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Alive: universe.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
}

//canvasPixels rounds the universe canvas size up to whole pixels
func canvasPixels(u *universe.Universe) (int, int) {
	w, h := u.CanvasSize()
	return int(math.Ceil(w)), int(math.Ceil(h))
}

//charCanvas is a RectFiller over terminal characters, one character per cell
type charCanvas struct {
	width   int
	height  int
	step    float64
	spacing float64
	alive   []bool
}

func newCharCanvas(u *universe.Universe) *charCanvas {
	return &charCanvas{
		width:   int(u.Width()),
		height:  int(u.Height()),
		step:    u.SquareSize() + u.SquareSpacing(),
		spacing: u.SquareSpacing(),
		alive:   make([]bool, int(u.Width())*int(u.Height())),
	}
}

//FillRect marks the character whose square starts at (x, y)
func (c *charCanvas) FillRect(x float64, y float64, _ float64, _ float64) {
	if c.step <= 0 {
		return
	}
	cx := int(math.Round((x - c.spacing) / c.step))
	cy := int(math.Round((y - c.spacing) / c.step))
	if cx < 0 || cy < 0 || cx >= c.width || cy >= c.height {
		return
	}
	c.alive[cy*c.width+cx] = true
}

func (c *charCanvas) filled(x int, y int) bool {
	return c.alive[y*c.width+x]
}
