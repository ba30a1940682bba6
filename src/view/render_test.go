package view

import (
	"testing"

	"simlife/src/universe"
)

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"rect", RenderRects, false},
		{"", RenderRects, false},
		{"Pixels", RenderPixels, false},
		{"pixel", RenderPixels, false},
		{"gpu", RenderRects, true},
	}
	for _, tt := range tests {
		got, err := ParseRenderMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRenderMode(%q) = (%v, %v), want (%v, err %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestCharCanvas(t *testing.T) {
	sizes := []struct{ size, spacing float64 }{{8, 1}, {1, 0}, {2.5, 0.5}}
	for _, s := range sizes {
		u := universe.New(5, 4)
		u.Clear()
		u.SetSquareSize(s.size)
		u.SetSquareSpacing(s.spacing)
		u.SetCellAt(0, 0, universe.Alive)
		u.SetCellAt(4, 3, universe.Alive)
		u.SetCellAt(2, 1, universe.Alive)

		c := newCharCanvas(u)
		u.FillCells(universe.Alive, c)
		for y := 0; y < 4; y++ {
			for x := 0; x < 5; x++ {
				want := u.GetCellAt(uint32(x), uint32(y)) == universe.Alive
				if c.filled(x, y) != want {
					t.Errorf("size %v/%v: (%d,%d) filled %v, want %v", s.size, s.spacing, x, y, c.filled(x, y), want)
				}
			}
		}
	}
}

func TestCharCanvas_IgnoresOutside(t *testing.T) {
	u := universe.New(2, 2)
	c := newCharCanvas(u)
	c.FillRect(-50, 0, 8, 8)
	c.FillRect(1000, 1000, 8, 8)
	for i, f := range c.alive {
		if f {
			t.Errorf("cell %d filled by out of canvas rect", i)
		}
	}
}
