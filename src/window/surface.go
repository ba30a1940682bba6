package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"simlife/src/universe"
)

func toColor(c universe.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func imagePoint(x int, y int) image.Point {
	return image.Point{X: x, Y: y}
}

//rectSurface fills cell squares straight on an ebiten image
type rectSurface struct {
	dst *ebiten.Image
	col color.Color
}

func (s *rectSurface) FillRect(x float64, y float64, w float64, h float64) {
	b := s.dst.Bounds().Min
	vector.DrawFilledRect(s.dst, float32(x)+float32(b.X), float32(y)+float32(b.Y), float32(w), float32(h), s.col, false)
}

//pixelSurface uploads the pixel buffer into an offscreen image and draws it over dst
//the offscreen image is kept between frames and recreated when the canvas size changes
type pixelSurface struct {
	dst       *ebiten.Image
	offscreen **ebiten.Image
}

func (s *pixelSurface) PutImageData(img *universe.ImageData, originX int, originY int) error {
	if err := img.Validate(); err != nil {
		return err
	}
	off := *s.offscreen
	if off == nil || off.Bounds().Dx() != img.Width || off.Bounds().Dy() != img.Height {
		if off != nil {
			off.Deallocate()
		}
		off = ebiten.NewImage(img.Width, img.Height)
		*s.offscreen = off
	}
	off.WritePixels(premultiply(img.Data))

	op := &ebiten.DrawImageOptions{}
	b := s.dst.Bounds().Min
	op.GeoM.Translate(float64(originX+b.X), float64(originY+b.Y))
	s.dst.DrawImage(off, op)
	return nil
}

//premultiply converts straight alpha RGBA into the premultiplied form WritePixels expects
func premultiply(data []uint8) []uint8 {
	out := make([]uint8, len(data))
	for i := 0; i < len(data); i += 4 {
		a := uint16(data[i+3])
		out[i] = uint8(uint16(data[i]) * a / 255)
		out[i+1] = uint8(uint16(data[i+1]) * a / 255)
		out[i+2] = uint8(uint16(data[i+2]) * a / 255)
		out[i+3] = data[i+3]
	}
	return out
}
