package engine

import (
	"testing"
)

var testTemplate = Template{"ts1", "", [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}

const (
	benchWidth  = 200
	benchHeight = 200
)

func newBenchController() *Controller {
	o := DefaultOptions
	o.Interval = 0
	o.Width = benchWidth
	o.Height = benchHeight
	c := NewController(&o, make(chan Status, 10))
	c.AddTemplate(testTemplate)
	return c
}

func universeStep(c *Controller, b *testing.B) {
	stateCh := c.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		c.Clear()
		<-stateCh //wait for clear
		c.SettleTemplate("ts1")
		b.StartTimer()
		c.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	c.Close()
}

func universeRun(c *Controller, b *testing.B) {
	stateCh := c.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		c.Clear()
		<-stateCh //wait for clear
		c.SettleTemplate("ts1")
		b.StartTimer()
		c.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	c.Close()
}

func Benchmark_Step(b *testing.B) {
	universeStep(newBenchController(), b)
}

func Benchmark_Run(b *testing.B) {
	universeRun(newBenchController(), b)
}
