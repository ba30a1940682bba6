package universe

import "math"

//Color is an 8-bit per channel RGBA color
type Color struct {
	R, G, B, A uint8
}

//RectFiller is a drawing surface able to fill an axis-aligned rectangle
type RectFiller interface {
	FillRect(x float64, y float64, width float64, height float64)
}

//ImageData is a packed RGBA pixel buffer, 4 bytes per pixel, rows top to bottom
type ImageData struct {
	Width  int
	Height int
	Data   []uint8
}

//NewImageData wraps data as a width x height RGBA buffer
func NewImageData(data []uint8, width int, height int) (*ImageData, error) {
	img := &ImageData{Width: width, Height: height, Data: data}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

//Validate reports an *ImageDataError unless Data holds exactly Width x Height RGBA pixels
func (img *ImageData) Validate() error {
	if img.Width <= 0 || img.Height <= 0 || len(img.Data) != img.Width*img.Height*4 {
		return &ImageDataError{Len: len(img.Data), Width: img.Width, Height: img.Height}
	}
	return nil
}

//ImagePainter is a drawing surface able to blit a whole pixel buffer at once
type ImagePainter interface {
	PutImageData(img *ImageData, originX int, originY int) error
}

//CanvasSize returns the size of the surface needed to show the whole grid
func (u *Universe) CanvasSize() (width float64, height float64) {
	step := u.squareSize + u.squareSpacing
	width = float64(u.width)*step + u.squareSpacing
	height = float64(u.height)*step + u.squareSpacing
	return
}

//CellOrigin returns the top-left corner of the square drawn for cell (x, y)
func (u *Universe) CellOrigin(x uint32, y uint32) (float64, float64) {
	step := u.squareSize + u.squareSpacing
	return float64(x)*step + u.squareSpacing, float64(y)*step + u.squareSpacing
}

//CellAtPoint maps a surface point back to the cell under it.
//ok is false when the point falls outside the grid; points on spacing belong to the next cell.
func (u *Universe) CellAtPoint(px float64, py float64) (x uint32, y uint32, ok bool) {
	step := u.squareSize + u.squareSpacing
	if step <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	cx := math.Floor((px - u.squareSpacing) / step)
	cy := math.Floor((py - u.squareSpacing) / step)
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= float64(u.width) || cy >= float64(u.height) {
		return 0, 0, false
	}
	return uint32(cx), uint32(cy), true
}

//FillCells asks the surface to fill one square per cell equal to cell
func (u *Universe) FillCells(cell Cell, surface RectFiller) {
	for y := uint32(0); y < u.height; y++ {
		for x := uint32(0); x < u.width; x++ {
			if u.GetCellAt(x, y) != cell {
				continue
			}
			sx, sy := u.CellOrigin(x, y)
			surface.FillRect(sx, sy, u.squareSize, u.squareSize)
		}
	}
}

//PaintCells renders every cell equal to cell with col into one RGBA buffer covering
//the whole canvas and hands it to the surface in a single call. Pixels outside the
//matching squares are left fully transparent.
func (u *Universe) PaintCells(cell Cell, col Color, surface ImagePainter) error {
	if !isPixelCount(u.squareSize) || !isPixelCount(u.squareSpacing) {
		return ErrFractionalDisplay
	}
	size := int(u.squareSize)
	spacing := int(u.squareSpacing)
	step := size + spacing
	canvasW := int(u.width)*step + spacing
	canvasH := int(u.height)*step + spacing

	data := make([]uint8, canvasW*canvasH*4)
	row := make([]uint8, size*4)
	for i := 0; i < size; i++ {
		row[i*4], row[i*4+1], row[i*4+2], row[i*4+3] = col.R, col.G, col.B, col.A
	}
	for y := uint32(0); y < u.height; y++ {
		for x := uint32(0); x < u.width; x++ {
			if u.GetCellAt(x, y) != cell {
				continue
			}
			px := int(x)*step + spacing
			py := int(y)*step + spacing
			for r := 0; r < size; r++ {
				off := ((py+r)*canvasW + px) * 4
				copy(data[off:off+size*4], row)
			}
		}
	}

	img, err := NewImageData(data, canvasW, canvasH)
	if err != nil {
		return err
	}
	return surface.PutImageData(img, 0, 0)
}

func isPixelCount(v float64) bool {
	return v >= 0 && v == math.Trunc(v) && v <= math.MaxInt32
}
