package universe

import (
	"errors"
	"testing"
)

type rect struct{ x, y, w, h float64 }

type rectRecorder struct {
	rects []rect
}

func (r *rectRecorder) FillRect(x float64, y float64, w float64, h float64) {
	r.rects = append(r.rects, rect{x, y, w, h})
}

type imageRecorder struct {
	calls   int
	img     *ImageData
	originX int
	originY int
	err     error
}

func (r *imageRecorder) PutImageData(img *ImageData, originX int, originY int) error {
	r.calls++
	r.img, r.originX, r.originY = img, originX, originY
	return r.err
}

func TestCanvasSize(t *testing.T) {
	u := New(4, 3)
	w, h := u.CanvasSize()
	if w != 4*9+1 || h != 3*9+1 {
		t.Errorf("CanvasSize() = %vx%v, want 37x28", w, h)
	}
}

func TestFillCells_Geometry(t *testing.T) {
	u := newDeadUniverse(4, 3)
	u.SetSquareSize(5)
	u.SetSquareSpacing(2)
	u.SetCellAt(0, 0, Alive)
	u.SetCellAt(3, 2, Alive)

	rec := &rectRecorder{}
	u.FillCells(Alive, rec)
	want := []rect{{2, 2, 5, 5}, {23, 16, 5, 5}}
	if len(rec.rects) != len(want) {
		t.Fatalf("got %d rects, want %d", len(rec.rects), len(want))
	}
	for i := range want {
		if rec.rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, rec.rects[i], want[i])
		}
	}

	dead := &rectRecorder{}
	u.FillCells(Dead, dead)
	if len(dead.rects) != 10 {
		t.Errorf("dead pass drew %d rects, want 10", len(dead.rects))
	}
}

func TestFillCells_FractionalSize(t *testing.T) {
	u := newDeadUniverse(2, 1)
	u.SetSquareSize(2.5)
	u.SetSquareSpacing(0.5)
	u.SetCellAt(1, 0, Alive)
	rec := &rectRecorder{}
	u.FillCells(Alive, rec)
	if len(rec.rects) != 1 || rec.rects[0] != (rect{3.5, 0.5, 2.5, 2.5}) {
		t.Errorf("rects = %+v, want [{3.5 0.5 2.5 2.5}]", rec.rects)
	}
}

func TestPaintCells_Pixels(t *testing.T) {
	u := newDeadUniverse(3, 2)
	u.SetSquareSize(2)
	u.SetSquareSpacing(1)
	u.SetCellAt(1, 1, Alive)
	col := Color{R: 10, G: 20, B: 30, A: 255}

	rec := &imageRecorder{}
	if err := u.PaintCells(Alive, col, rec); err != nil {
		t.Fatalf("PaintCells: %v", err)
	}
	if rec.calls != 1 || rec.originX != 0 || rec.originY != 0 {
		t.Fatalf("PutImageData called %d times at (%d,%d), want once at (0,0)", rec.calls, rec.originX, rec.originY)
	}
	img := rec.img
	if img.Width != 10 || img.Height != 7 || len(img.Data) != 10*7*4 {
		t.Fatalf("image %dx%d with %d bytes, want 10x7 with 280", img.Width, img.Height, len(img.Data))
	}

	painted := 0
	for py := 0; py < img.Height; py++ {
		for px := 0; px < img.Width; px++ {
			off := (py*img.Width + px) * 4
			got := Color{img.Data[off], img.Data[off+1], img.Data[off+2], img.Data[off+3]}
			inside := px >= 4 && px < 6 && py >= 4 && py < 6
			switch {
			case inside && got != col:
				t.Errorf("pixel (%d,%d) = %v, want %v", px, py, got, col)
			case !inside && got != (Color{}):
				t.Errorf("pixel (%d,%d) = %v, want transparent", px, py, got)
			}
			if got == col {
				painted++
			}
		}
	}
	if painted != 4 {
		t.Errorf("painted %d pixels, want 4", painted)
	}
}

func TestPaintCells_MatchesFillGeometry(t *testing.T) {
	u := New(5, 4)
	u.SetSquareSize(3)
	u.SetSquareSpacing(1)

	rects := &rectRecorder{}
	u.FillCells(Alive, rects)
	pixels := &imageRecorder{}
	col := Color{255, 255, 255, 255}
	if err := u.PaintCells(Alive, col, pixels); err != nil {
		t.Fatalf("PaintCells: %v", err)
	}

	img := pixels.img
	painted := 0
	for i := 0; i < len(img.Data); i += 4 {
		if img.Data[i+3] != 0 {
			painted++
		}
	}
	if painted != len(rects.rects)*9 {
		t.Errorf("painted %d pixels, want %d", painted, len(rects.rects)*9)
	}
	for _, r := range rects.rects {
		off := (int(r.y)*img.Width + int(r.x)) * 4
		if img.Data[off+3] != 255 {
			t.Errorf("rect origin (%v,%v) not painted", r.x, r.y)
		}
	}
}

func TestPaintCells_FractionalDisplay(t *testing.T) {
	u := New(2, 2)
	u.SetSquareSize(2.5)
	rec := &imageRecorder{}
	if err := u.PaintCells(Alive, Color{}, rec); !errors.Is(err, ErrFractionalDisplay) {
		t.Errorf("PaintCells = %v, want ErrFractionalDisplay", err)
	}
	if rec.calls != 0 {
		t.Errorf("surface called despite error")
	}
}

func TestPaintCells_PropagatesErrors(t *testing.T) {
	u := New(2, 2)
	failure := errors.New("surface lost")
	rec := &imageRecorder{err: failure}
	if err := u.PaintCells(Alive, Color{}, rec); !errors.Is(err, failure) {
		t.Errorf("PaintCells = %v, want %v", err, failure)
	}

	u.SetSquareSize(0)
	u.SetSquareSpacing(0)
	err := u.PaintCells(Alive, Color{}, &imageRecorder{})
	var idErr *ImageDataError
	if !errors.As(err, &idErr) {
		t.Fatalf("PaintCells on empty canvas = %v, want *ImageDataError", err)
	}
}

func TestNewImageData(t *testing.T) {
	if _, err := NewImageData(make([]uint8, 2*3*4), 2, 3); err != nil {
		t.Errorf("valid buffer rejected: %v", err)
	}
	tests := []struct {
		n, w, h int
	}{
		{23, 2, 3},
		{24, 3, 3},
		{0, 0, 0},
		{16, -2, -2},
	}
	for _, tt := range tests {
		_, err := NewImageData(make([]uint8, tt.n), tt.w, tt.h)
		var idErr *ImageDataError
		if !errors.As(err, &idErr) || idErr.Len != tt.n {
			t.Errorf("NewImageData(%d bytes, %dx%d) = %v, want *ImageDataError", tt.n, tt.w, tt.h, err)
		}
	}
}

func TestImageData_Validate(t *testing.T) {
	tests := []struct {
		img     ImageData
		wantErr bool
	}{
		{ImageData{Width: 1, Height: 1, Data: make([]uint8, 4)}, false},
		{ImageData{Width: 3, Height: 2, Data: make([]uint8, 24)}, false},
		{ImageData{Width: 3, Height: 2, Data: make([]uint8, 23)}, true},
		{ImageData{Width: 0, Height: 2}, true},
		{ImageData{Width: 2, Height: -1, Data: make([]uint8, 8)}, true},
	}
	for _, tt := range tests {
		err := tt.img.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%dx%d, %d bytes) = %v, wantErr %v", tt.img.Width, tt.img.Height, len(tt.img.Data), err, tt.wantErr)
		}
		var idErr *ImageDataError
		if err != nil && !errors.As(err, &idErr) {
			t.Errorf("Validate error %T, want *ImageDataError", err)
		}
	}
}

func TestCellAtPoint(t *testing.T) {
	u := New(4, 3)
	tests := []struct {
		px, py float64
		x, y   uint32
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{1, 1, 0, 0, true},
		{9.5, 1, 0, 0, true},
		{10, 19, 1, 2, true},
		{36, 27, 3, 2, true},
		{37, 5, 0, 0, false},
		{-1, 5, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := u.CellAtPoint(tt.px, tt.py)
		if x != tt.x || y != tt.y || ok != tt.ok {
			t.Errorf("CellAtPoint(%v,%v) = (%d,%d,%v), want (%d,%d,%v)", tt.px, tt.py, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}
