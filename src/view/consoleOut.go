package view

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"simlife/src/engine"
)

//ConsoleOut prints the progress of a non-interactive run
type ConsoleOut struct {
	e         engine.Engine
	w         io.Writer
	p         *message.Printer
	au        aurora.Aurora
	startTime time.Time
	mu        sync.Mutex
	lastShown int
	finished  bool
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{
		w:         w,
		p:         message.NewPrinter(language.English),
		au:        aurora.NewAurora(colors),
		lastShown: -1,
	}
}

func (c *ConsoleOut) Refresh() {
	st := c.e.Status()
	c.mu.Lock()
	defer c.mu.Unlock()
	switch st.RunningMode {
	case engine.RunningStateFinished:
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = c.p.Fprintln(c.w, c.au.Red("\nFinished:").Bold().String())
		c.printHashData(resultData)
	case engine.RunningStateRun:
		c.finished = false
		if st.IterationNum%10 == 0 && st.IterationNum != c.lastShown {
			c.lastShown = st.IterationNum
			_, _ = c.p.Fprintf(c.w, "  Iterations done: %d, live cells: %d\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(e engine.Engine) {
	c.e = e
	o := e.Options()
	_, _ = c.p.Fprintln(c.w, c.au.Cyan("Running configuration:").String())
	_, _ = c.p.Fprintf(c.w, "  Dimension: %d x %d\n", o.Width, o.Height)
	_, _ = c.p.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = c.p.Fprintf(c.w, "  Max iterations: %d steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() error {
	c.mu.Lock()
	c.startTime = time.Now()
	c.mu.Unlock()
	_, _ = c.p.Fprintln(c.w, c.au.Green("\nSimulation started...").String())
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = c.p.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName).String(), d[propName])
	}
}
