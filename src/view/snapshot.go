package view

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"simlife/src/engine"
	"simlife/src/universe"
)

//Snapshot renders the universe off-screen and writes it as an image file
type Snapshot struct {
	Mode    RenderMode
	Palette Palette
}

//ggRects fills the cell squares on a gg drawing context
type ggRects struct {
	dc  *gg.Context
	err error
}

func (r *ggRects) FillRect(x float64, y float64, w float64, h float64) {
	if r.err != nil {
		return
	}
	r.dc.DrawRectangle(x, y, w, h)
	r.err = r.dc.Fill()
}

//rgbaPainter composites pixel buffers over an RGBA image
type rgbaPainter struct {
	dst *image.RGBA
}

func (p *rgbaPainter) PutImageData(img *universe.ImageData, originX int, originY int) error {
	if err := img.Validate(); err != nil {
		return err
	}
	src := &image.NRGBA{
		Pix:    img.Data,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	r := image.Rect(originX, originY, originX+img.Width, originY+img.Height)
	xdraw.Draw(p.dst, r, src, image.Point{}, xdraw.Over)
	return nil
}

func toColor(c universe.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

//Render draws the dead and the alive cells in two passes over the grid color
func (s Snapshot) Render(u *universe.Universe) (image.Image, error) {
	w, h := canvasPixels(u)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("view: empty canvas %dx%d", w, h)
	}
	if s.Mode == RenderPixels {
		return s.renderPixels(u, w, h)
	}
	return s.renderRects(u, w, h)
}

func (s Snapshot) renderRects(u *universe.Universe, w int, h int) (image.Image, error) {
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(gg.FromColor(toColor(s.Palette.Grid)))
	passes := []struct {
		cell universe.Cell
		col  universe.Color
	}{
		{universe.Dead, s.Palette.Dead},
		{universe.Alive, s.Palette.Alive},
	}
	for _, pass := range passes {
		dc.SetColor(toColor(pass.col))
		r := &ggRects{dc: dc}
		u.FillCells(pass.cell, r)
		if r.err != nil {
			return nil, fmt.Errorf("view: fill %v cells: %w", pass.cell, r.err)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, xdraw.Src)
	return out, nil
}

func (s Snapshot) renderPixels(u *universe.Universe, w int, h int) (image.Image, error) {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(toColor(s.Palette.Grid)), image.Point{}, xdraw.Src)
	p := &rgbaPainter{dst: dst}
	if err := u.PaintCells(universe.Dead, s.Palette.Dead, p); err != nil {
		return nil, fmt.Errorf("view: paint dead cells: %w", err)
	}
	if err := u.PaintCells(universe.Alive, s.Palette.Alive, p); err != nil {
		return nil, fmt.Errorf("view: paint alive cells: %w", err)
	}
	return dst, nil
}

//Encode writes img as "png" or "bmp"
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		dc := gg.NewContextForImage(img)
		defer func() { _ = dc.Close() }()
		return dc.EncodePNG(w)
	case "bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("view: unsupported image format %q", format)
}

//FormatFromPath picks the image format from the file extension
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	default:
		return "", fmt.Errorf("view: unsupported snapshot extension %q", ext)
	}
}

//WriteFile renders the engine's universe to path
func (s Snapshot) WriteFile(e engine.Engine, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var img image.Image
	e.View(func(u *universe.Universe) {
		img, err = s.Render(u)
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("view: create snapshot: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("view: encode snapshot: %w", err)
	}
	return f.Close()
}
