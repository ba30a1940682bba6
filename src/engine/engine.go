// Package engine drives a universe.Universe from a background loop.
//
// All mutations are queued as commands and executed one by one on the
// engine's own goroutine, renders read the grid through View under the same
// lock, so a running simulation and an interactive editor can share a grid.
package engine

import (
	"time"

	"simlife/src/universe"
)

type Engine interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(vc [][]int)
	ToggleCell(x int, y int)
	ToggleStroke(x1 int, y1 int, x2 int, y2 int)
	Resize(width int, height int)
	SetSquareSize(size float64)
	SetSquareSpacing(spacing float64)
	View(fn func(u *universe.Universe))
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Wait()
	Close()
}

//Options represents the engine's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	SquareSize      float64
	SquareSpacing   float64
	RandomSeed      int64                  //0 seeds from the clock
	Advanced        map[string]interface{} //extra details shown by the viewers
}

//Status represents the status of the engine at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Width         int
	Height        int
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e Engine)
	Start() error
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The engine running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 64
	DefHeight             = 48
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	SquareSize:      universe.DefSquareSize,
	SquareSpacing:   universe.DefSquareSpacing,
}
