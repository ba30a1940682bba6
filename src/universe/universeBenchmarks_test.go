package universe

import (
	"fmt"
	"testing"
)

var sizes = []uint32{64, 200, 512}

func Benchmark_Tick(b *testing.B) {
	for _, s := range sizes {
		b.Run(fmt.Sprintf("%dx%d", s, s), func(b *testing.B) {
			u := New(s, s)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_LiveNeighborCount(b *testing.B) {
	u := New(200, 200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.LiveNeighborCount(uint32(i)%200, uint32(i/200)%200)
	}
}

type nopFiller struct{}

func (nopFiller) FillRect(float64, float64, float64, float64) {}

type nopPainter struct{}

func (nopPainter) PutImageData(*ImageData, int, int) error { return nil }

func Benchmark_Render(b *testing.B) {
	u := New(200, 200)
	b.Run("rect", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			u.FillCells(Alive, nopFiller{})
		}
	})
	b.Run("pixels", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := u.PaintCells(Alive, Color{A: 0xff}, nopPainter{}); err != nil {
				b.Fatal(err)
			}
		}
	})
}
