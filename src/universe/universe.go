// Package universe holds the Life grid: a fixed size toroidal field of cells
// advanced one generation per Tick and rendered through host drawing surfaces.
//
// A Universe is not safe for concurrent use, the engine package serializes
// access to it.
package universe

//default display parameters
const (
	DefSquareSize    = 8.0
	DefSquareSpacing = 1.0
)

//Universe is a toroidal grid with a front buffer (cells) and a back buffer
//(nextCells) written by Tick and swapped in afterwards
type Universe struct {
	width     uint32
	height    uint32
	cells     []Cell
	nextCells []Cell

	squareSize    float64
	squareSpacing float64
}

//New creates the width x height universe seeded with the fixed start pattern
//cell i is alive when i%2 == 0 or i%7 == 0. It panics on a zero dimension.
func New(width uint32, height uint32) *Universe {
	if width == 0 || height == 0 {
		panic(ErrZeroDimension)
	}
	n := int(width) * int(height)
	cells := make([]Cell, n)
	for i := range cells {
		if i%2 == 0 || i%7 == 0 {
			cells[i] = Alive
		}
	}
	nextCells := make([]Cell, n)
	copy(nextCells, cells)

	return &Universe{
		width:         width,
		height:        height,
		cells:         cells,
		nextCells:     nextCells,
		squareSize:    DefSquareSize,
		squareSpacing: DefSquareSpacing,
	}
}

func (u *Universe) Width() uint32 {
	return u.width
}

func (u *Universe) Height() uint32 {
	return u.height
}

//Cells returns the current generation in row-major order, the slice must not be modified
func (u *Universe) Cells() []Cell {
	return u.cells
}

func (u *Universe) SquareSize() float64 {
	return u.squareSize
}

func (u *Universe) SquareSpacing() float64 {
	return u.squareSpacing
}

func (u *Universe) SetSquareSize(size float64) {
	u.squareSize = size
}

func (u *Universe) SetSquareSpacing(spacing float64) {
	u.squareSpacing = spacing
}

//LiveCells counts the alive cells of the current generation
func (u *Universe) LiveCells() int {
	live := 0
	for _, c := range u.cells {
		if c == Alive {
			live++
		}
	}
	return live
}

//cellIdx maps any x, y to the buffer index, both coordinates wrap
func (u *Universe) cellIdx(x uint32, y uint32) int {
	return int(y%u.height)*int(u.width) + int(x%u.width)
}

//LiveNeighborCount counts the alive cells around (x, y).
//Offsets are width-1/height-1, 0 and 1, and only the (0, 0) pair is skipped,
//so on a dimension of 1 the cell itself is seen through the other offsets.
func (u *Universe) LiveNeighborCount(x uint32, y uint32) int {
	x %= u.width
	y %= u.height
	count := 0
	for _, dy := range [3]uint32{u.height - 1, 0, 1} {
		for _, dx := range [3]uint32{u.width - 1, 0, 1} {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := uint32((uint64(x) + uint64(dx)) % uint64(u.width))
			ny := uint32((uint64(y) + uint64(dy)) % uint64(u.height))
			if u.cells[int(ny)*int(u.width)+int(nx)] == Alive {
				count++
			}
		}
	}
	return count
}

//nextState applies the Life rule, first match wins
func nextState(cur Cell, n int) Cell {
	switch {
	case n < 2:
		return Dead
	case (cur == Alive && n == 2) || n == 3:
		return Alive
	case n > 3:
		return Dead
	}
	return cur
}

//Tick computes the next generation into the back buffer and swaps the buffers.
//It returns the number of alive cells and whether any cell changed.
func (u *Universe) Tick() (liveCells int, changed bool) {
	for y := uint32(0); y < u.height; y++ {
		for x := uint32(0); x < u.width; x++ {
			idx := int(y)*int(u.width) + int(x)
			cur := u.cells[idx]
			next := nextState(cur, u.LiveNeighborCount(x, y))
			u.nextCells[idx] = next
			if next != cur {
				changed = true
			}
			if next == Alive {
				liveCells++
			}
		}
	}
	u.cells, u.nextCells = u.nextCells, u.cells
	return
}

//ResizeTo reshapes the grid. Every new cell samples the old grid through the
//wrapped read, so growing repeats the old content and shrinking crops it.
func (u *Universe) ResizeTo(width uint32, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroDimension
	}
	n := int(width) * int(height)
	cells := make([]Cell, n)
	nextCells := make([]Cell, n)
	for i := 0; i < n; i++ {
		c := u.GetCellAt(uint32(i%int(width)), uint32(i/int(width)))
		cells[i] = c
		nextCells[i] = c
	}
	u.width, u.height = width, height
	u.cells, u.nextCells = cells, nextCells
	return nil
}

//Clear kills every cell
func (u *Universe) Clear() {
	for y := uint32(0); y < u.height; y++ {
		for x := uint32(0); x < u.width; x++ {
			u.SetCellAt(x, y, Dead)
		}
	}
}
