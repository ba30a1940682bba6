package universe

import "math"

//GetCellAt returns the cell at (x, y), both coordinates wrap around the grid
func (u *Universe) GetCellAt(x uint32, y uint32) Cell {
	return u.cells[u.cellIdx(x, y)]
}

//SetCellAt places the cell at (x, y).
//Coordinates outside [0, width) x [0, height) are ignored, they are not wrapped.
func (u *Universe) SetCellAt(x uint32, y uint32, cell Cell) {
	if x >= u.width || y >= u.height {
		return
	}
	u.cells[u.cellIdx(x, y)] = cell
}

//ToggleCellAt inverses the cell state at point x, y
func (u *Universe) ToggleCellAt(x uint32, y uint32) {
	u.SetCellAt(x, y, u.GetCellAt(x, y).Opposite())
}

//ToggleCellsBetween toggles every cell on the segment from (x1, y1) to (x2, y2)
//except the two end points. The axis with the larger delta is stepped by whole
//cells (x on a tie) and the other one is interpolated and rounded.
func (u *Universe) ToggleCellsBetween(x1 uint32, y1 uint32, x2 uint32, y2 uint32) {
	if x1 == x2 && y1 == y2 {
		return
	}

	deltaX := float64(x2) - float64(x1)
	deltaY := float64(y2) - float64(y1)
	xDrives := math.Abs(deltaX) >= math.Abs(deltaY)

	//walk forward along the driving axis
	if (xDrives && x2 < x1) || (!xDrives && y2 < y1) {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		deltaX, deltaY = -deltaX, -deltaY
	}

	if xDrives {
		y := float64(y1)
		for x := x1 + 1; x < x2; x++ {
			y += deltaY / deltaX
			u.ToggleCellAt(x, roundCoord(y))
		}
		return
	}

	x := float64(x1)
	for y := y1 + 1; y < y2; y++ {
		x += deltaX / deltaY
		u.ToggleCellAt(roundCoord(x), y)
	}
}

//roundCoord rounds half away from zero, saturating at the uint32 range
func roundCoord(v float64) uint32 {
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	if r >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}
