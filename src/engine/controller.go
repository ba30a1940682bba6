package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"simlife/src/universe"
)

var _ Engine = (*Controller)(nil)

//Controller is the default engine implementation
//the grid is owned by mainLoop: every mutation is a command executed there one at a time
type Controller struct {
	state struct {
		Status
		options Options
		sync.Mutex
	}
	grid struct {
		u *universe.Universe
		sync.Mutex
	}
	mu        sync.Mutex //guards views and templates
	views     []Viewer
	templates map[string]Template
	rnd       *rand.Rand
	stateCh   chan Status
	controlCh chan func()
	closeCh   chan bool
	closeOnce sync.Once
	done      chan struct{}
}

//NewController creates the Controller and starts its command loop
//stateCh receives the Status on every running state switch, it may be nil
func NewController(o *Options, stateCh chan Status) *Controller {
	opts := DefaultOptions
	if o != nil {
		opts = *o
	}
	if opts.Width <= 0 {
		opts.Width = DefWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefHeight
	}
	advanced := make(map[string]interface{}, len(opts.Advanced)+1)
	for k, v := range opts.Advanced {
		advanced[k] = v
	}
	advanced["engine"] = "double buffer"
	opts.Advanced = advanced

	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Controller{
		templates: make(map[string]Template),
		rnd:       rand.New(rand.NewSource(seed)),
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
	}
	for _, tmpl := range BuiltinTemplates {
		c.templates[tmpl.Name] = tmpl
	}

	u := universe.New(uint32(opts.Width), uint32(opts.Height))
	u.SetSquareSize(opts.SquareSize)
	u.SetSquareSpacing(opts.SquareSpacing)
	c.grid.u = u

	c.state.options = opts
	c.state.Width = opts.Width
	c.state.Height = opts.Height
	c.state.LiveCells = u.LiveCells()

	go c.mainLoop()
	return c
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (c *Controller) AddTemplate(tmpl Template) {
	c.mu.Lock()
	c.templates[tmpl.Name] = tmpl
	c.mu.Unlock()
}

//Templates returns the known templates sorted by name
func (c *Controller) Templates() []Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

//Settle settles the universe with data
//vc - array of x,y coordinates, coordinates outside the grid are ignored
func (c *Controller) Settle(vc [][]int) {
	c.enqueue(func() {
		c.mutate(func(u *universe.Universe) {
			settle(u, vc)
		})
	})
}

//SettleTemplate populates the universe with the seeding template, unknown names are ignored
func (c *Controller) SettleTemplate(name string) {
	c.mu.Lock()
	tmpl, ok := c.templates[name]
	c.mu.Unlock()
	if !ok {
		Logger().Warn("unknown template", "name", name)
		return
	}
	c.Settle(tmpl.Coordinates)
}

//SettleWithRandomData clears the universe and populates it with random data
//ignored while the simulation is running
func (c *Controller) SettleWithRandomData() {
	c.enqueue(func() {
		mode := c.runningMode()
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		c.clear()
		c.mutate(func(u *universe.Universe) {
			w, h := int(u.Width()), int(u.Height())
			for i := 0; i < w*h; i++ {
				u.SetCellAt(uint32(c.rnd.Intn(w)), uint32(c.rnd.Intn(h)), universe.Alive)
			}
		})
	})
}

//ToggleCell inverses the cell state at point x, y
func (c *Controller) ToggleCell(x int, y int) {
	if x < 0 || y < 0 {
		return
	}
	c.enqueue(func() {
		c.mutate(func(u *universe.Universe) {
			u.ToggleCellAt(uint32(x), uint32(y))
		})
	})
}

//ToggleStroke continues a pointer stroke from (x1, y1) to (x2, y2)
//the cells in between and the end point are toggled, the start point was toggled by the previous call
func (c *Controller) ToggleStroke(x1 int, y1 int, x2 int, y2 int) {
	if x1 < 0 || y1 < 0 || x2 < 0 || y2 < 0 {
		return
	}
	c.enqueue(func() {
		c.mutate(func(u *universe.Universe) {
			u.ToggleCellsBetween(uint32(x1), uint32(y1), uint32(x2), uint32(y2))
			if x1 != x2 || y1 != y2 {
				u.ToggleCellAt(uint32(x2), uint32(y2))
			}
		})
	})
}

//Resize reshapes the universe, the current content is tiled into the new size
func (c *Controller) Resize(width int, height int) {
	if width <= 0 || height <= 0 {
		Logger().Warn("resize rejected", "width", width, "height", height)
		return
	}
	c.enqueue(func() {
		c.grid.Lock()
		err := c.grid.u.ResizeTo(uint32(width), uint32(height))
		live := c.grid.u.LiveCells()
		c.grid.Unlock()
		if err != nil {
			Logger().Warn("resize rejected", "err", err)
			return
		}
		c.state.Lock()
		c.state.options.Width, c.state.options.Height = width, height
		c.state.Width, c.state.Height = width, height
		c.state.LiveCells = live
		c.state.Unlock()
		Logger().Info("universe resized", "width", width, "height", height)
		c.refreshView()
	})
}

//SetSquareSize changes the rendered cell size
func (c *Controller) SetSquareSize(size float64) {
	c.enqueue(func() {
		c.mutate(func(u *universe.Universe) {
			u.SetSquareSize(size)
		})
		c.state.Lock()
		c.state.options.SquareSize = size
		c.state.Unlock()
	})
}

//SetSquareSpacing changes the rendered gap between cells
func (c *Controller) SetSquareSpacing(spacing float64) {
	c.enqueue(func() {
		c.mutate(func(u *universe.Universe) {
			u.SetSquareSpacing(spacing)
		})
		c.state.Lock()
		c.state.options.SquareSpacing = spacing
		c.state.Unlock()
	})
}

//View runs fn with the universe locked against the command loop
//fn must only read the universe and must not call back into the engine
func (c *Controller) View(fn func(u *universe.Universe)) {
	c.grid.Lock()
	defer c.grid.Unlock()
	fn(c.grid.u)
}

//RegisterViewer registers the viewer - the engine will call the viewer when the state is changed
func (c *Controller) RegisterViewer(v Viewer) {
	c.mu.Lock()
	c.views = append(c.views, v)
	c.mu.Unlock()
	v.Register(c)
}

//StateCh returns the channel with the engine's status updates
func (c *Controller) StateCh() chan Status {
	return c.stateCh
}

//Status returns current engine status represented by Status struct
func (c *Controller) Status() Status {
	c.state.Lock()
	defer c.state.Unlock()
	return c.state.Status
}

//Options returns current engine configuration represented by Options struct
func (c *Controller) Options() Options {
	c.state.Lock()
	defer c.state.Unlock()
	return c.state.options
}

//Run starts the simulation, returns immediately
func (c *Controller) Run() {
	c.enqueue(c.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (c *Controller) Stop() {
	c.enqueue(c.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (c *Controller) Step() {
	c.enqueue(c.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (c *Controller) Clear() {
	c.enqueue(c.clear)
}

//Wait blocks until every command queued before the call has been executed
func (c *Controller) Wait() {
	flushed := make(chan struct{})
	c.enqueue(func() { close(flushed) })
	select {
	case <-flushed:
	case <-c.done:
	}
}

//Close stops the command loop, returns immediately
//commands queued after Close are dropped
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.closeCh <- true
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (c *Controller) mainLoop() {
	for {
		select {
		case cmd := <-c.controlCh:
			cmd()
		case <-c.closeCh:
			close(c.done)
			return
		}
	}
}

//enqueue passes the command to mainLoop, it must not be called from a command
func (c *Controller) enqueue(cmd func()) {
	select {
	case c.controlCh <- cmd:
	case <-c.done:
		Logger().Warn("command dropped, engine is closed")
	}
}

//mutate applies fn to the locked universe and refreshes counters and viewers
func (c *Controller) mutate(fn func(u *universe.Universe)) {
	c.grid.Lock()
	fn(c.grid.u)
	live := c.grid.u.LiveCells()
	c.grid.Unlock()
	c.state.Lock()
	c.state.LiveCells = live
	c.state.Unlock()
	c.refreshView()
}

//settle places alive cells at the given x,y pairs
func settle(u *universe.Universe, vc [][]int) {
	for _, v := range vc {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 {
			continue
		}
		u.SetCellAt(uint32(v[0]), uint32(v[1]), universe.Alive)
	}
}

func (c *Controller) runningMode() RunningState {
	c.state.Lock()
	defer c.state.Unlock()
	return c.state.RunningMode
}

//switchRunningState switch the state of the engine to RunningState
//also writes the new state to the stateCh to signal upper control software
func (c *Controller) switchRunningState(to RunningState) {
	c.state.Lock()
	c.state.RunningMode = to
	st := c.state.Status
	c.state.Unlock()
	if c.stateCh != nil {
		c.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (c *Controller) run() {
	if c.runningMode() == RunningStateRun {
		return
	}
	c.switchRunningState(RunningStateRun)
	Logger().Info("simulation started", "interval", c.Options().Interval)
	go c.runLoop()
}

//runLoop pushes a step command every interval until the running mode changes
//a tick is skipped when the command queue is busy, too many skips in a row finish the run
func (c *Controller) runLoop() {
	maxSkipped := c.Options().MaxSkippedTicks
	interval := c.Options().Interval
	skipped := 0
	stepped := make(chan bool, 1)
	for {
		if c.runningMode() != RunningStateRun {
			return
		}
		if maxSkipped > 0 && skipped > maxSkipped {
			Logger().Warn("too many skipped ticks, finishing", "skipped", skipped)
			c.enqueue(func() {
				if c.runningMode() == RunningStateRun {
					c.switchRunningState(RunningStateFinished)
					c.refreshView()
				}
			})
			return
		}
		select {
		case c.controlCh <- func() {
			if c.runningMode() == RunningStateRun {
				c.step()
			}
			stepped <- true
		}:
			skipped = 0
			select {
			case <-stepped:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		default:
			skipped++
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}
}

//stop stops the running cycle
func (c *Controller) stop() {
	if c.runningMode() == RunningStateRun {
		c.switchRunningState(RunningStateManual)
		Logger().Info("simulation stopped", "iteration", c.Status().IterationNum)
		c.refreshView()
	}
}

//step does the new one state calculation for entire universe
func (c *Controller) step() {
	c.state.Lock()
	rm := c.state.RunningMode
	iter := c.state.IterationNum
	maxSteps := c.state.options.MaxSteps
	c.state.Unlock()
	if rm != RunningStateRun {
		rm = RunningStateManual
	}

	finished := false
	defer func() {
		if finished {
			c.switchRunningState(RunningStateFinished)
		} else {
			c.switchRunningState(rm)
		}
		c.refreshView()
	}()

	if maxSteps != 0 && iter >= maxSteps {
		finished = true
		return
	}

	c.switchRunningState(RunningStateStep)
	c.grid.Lock()
	start := time.Now()
	live, changed := c.grid.u.Tick()
	elapsed := time.Since(start)
	c.grid.Unlock()

	c.state.Lock()
	c.state.IterationNum++
	iter = c.state.IterationNum
	c.state.LiveCells = live
	c.state.IterationTime = elapsed
	c.state.Unlock()
	Logger().Debug("generation computed", "iteration", iter, "live", live, "elapsed", elapsed)

	if live == 0 || !changed || (maxSteps != 0 && iter >= maxSteps) {
		finished = true
		Logger().Info("simulation finished", "iteration", iter, "live", live, "changed", changed)
	}
}

//clear clears the universe data, reset all counters
func (c *Controller) clear() {
	c.grid.Lock()
	c.grid.u.Clear()
	c.grid.Unlock()

	c.state.Lock()
	c.state.IterationNum = 0
	c.state.LiveCells = 0
	c.state.IterationTime = 0
	c.state.Unlock()
	c.switchRunningState(RunningStateManual)
	Logger().Info("universe cleared")
	c.refreshView()
}

//refreshView calls Refresh event for all registered views
func (c *Controller) refreshView() {
	c.mu.Lock()
	views := append([]Viewer(nil), c.views...)
	c.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
