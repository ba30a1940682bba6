package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"github.com/integrii/flaggy"

	"simlife/src/engine"
	"simlife/src/view"
	"simlife/src/window"
)

type EnvOptions struct {
	interactive bool
	window      bool
	randomData  bool
	template    string
	renderMode  string
	output      string
	verbose     bool
	logFile     string
	noColor     bool
}

func main() {
	eo, uo := initOptions()

	logCloser, err := initLogger(eo)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logCloser.Close() }()

	var stateCh chan engine.Status
	headless := !eo.interactive && !eo.window
	if headless {
		stateCh = make(chan engine.Status, 10) //the buffered channel to getting the engine status
	}

	e := engine.NewController(uo, stateCh)
	defer e.Close()
	settleInitial(e, eo)

	mode, _ := view.ParseRenderMode(eo.renderMode)
	switch {
	case eo.interactive:
		v, err := view.NewConsoleUI()
		if err != nil {
			log.Panicln(err)
		}
		e.RegisterViewer(v)
		if err := v.Start(); err != nil {
			log.Panicln(err)
		}
	case eo.window:
		w := window.New(mode, view.DefaultPalette)
		e.RegisterViewer(w)
		if err := w.Start(); err != nil {
			log.Panicln(err)
		}
	default:
		runHeadless(e, stateCh, eo.noColor)
		if eo.output != "" {
			s := view.Snapshot{Mode: mode, Palette: view.DefaultPalette}
			if err := s.WriteFile(e, eo.output); err != nil {
				log.Fatalf("snapshot: %v", err)
			}
			fmt.Printf("Snapshot written to %s\n", eo.output)
		}
	}
}

//settleInitial replaces the seed pattern when a template or random data is requested
func settleInitial(e engine.Engine, eo *EnvOptions) {
	switch {
	case eo.randomData:
		e.SettleWithRandomData()
	case eo.template != "":
		e.Clear()
		e.SettleTemplate(eo.template)
	}
}

//runHeadless runs the simulation until it finishes, printing the progress
func runHeadless(e engine.Engine, stateCh chan engine.Status, noColor bool) {
	out := view.NewConsoleOut(os.Stdout, !noColor)
	e.RegisterViewer(out)
	_ = out.Start()
	e.Run()
	for st := range stateCh {
		if st.RunningMode == engine.RunningStateFinished {
			break
		}
	}
	e.Wait()
}

func initOptions() (eo *EnvOptions, uo *engine.Options) {
	o := engine.DefaultOptions
	uo = &o
	eo = &EnvOptions{renderMode: view.RenderRects.String()}

	templateNames := make([]string, 0, len(engine.BuiltinTemplates))
	for _, t := range engine.BuiltinTemplates {
		templateNames = append(templateNames, t.Name)
	}

	flaggy.SetName("simlife")
	flaggy.SetDescription("\"The Life\" game on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Float64(&uo.SquareSize, "q", "squareSize", "Rendered cell size in pixels")
	flaggy.Float64(&uo.SquareSpacing, "p", "spacing", "Rendered gap between cells in pixels")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive terminal mode")
	flaggy.Bool(&eo.window, "g", "window", "Start the graphical window")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.template, "t", "template", "Settle with a template ["+strings.Join(templateNames, "|")+"]")
	flaggy.String(&eo.renderMode, "m", "renderMode", "Rendering of window and snapshot [rect|pixels]")
	flaggy.String(&eo.output, "o", "output", "Write a .png or .bmp snapshot after a non-interactive run")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Debug logging")
	flaggy.String(&eo.logFile, "l", "logFile", "Write the log to the file instead of stderr")
	flaggy.Bool(&eo.noColor, "c", "noColor", "Disable colored output")

	flaggy.Parse()

	if err := validateOptions(eo, uo); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}

func validateOptions(eo *EnvOptions, uo *engine.Options) error {
	if uo.Width <= 0 || uo.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	if uo.SquareSize < 0 || uo.SquareSpacing < 0 || uo.SquareSize+uo.SquareSpacing == 0 {
		return errors.New("square size and spacing must not be negative and not both zero")
	}
	if eo.interactive && eo.window {
		return errors.New("interactive and window modes are exclusive")
	}
	mode, err := view.ParseRenderMode(eo.renderMode)
	if err != nil {
		return err
	}
	if mode == view.RenderPixels && (uo.SquareSize != math.Trunc(uo.SquareSize) || uo.SquareSpacing != math.Trunc(uo.SquareSpacing)) {
		return errors.New("pixels render mode needs whole square size and spacing")
	}
	if eo.template != "" && !knownTemplate(eo.template) {
		return fmt.Errorf("unknown template %q", eo.template)
	}
	if eo.output != "" {
		if eo.interactive || eo.window {
			return errors.New("snapshot output is only written by non-interactive runs")
		}
		if _, err := view.FormatFromPath(eo.output); err != nil {
			return err
		}
	}
	return nil
}

func knownTemplate(name string) bool {
	for _, t := range engine.BuiltinTemplates {
		if t.Name == name {
			return true
		}
	}
	return false
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

//initLogger wires slog into the engine and the gg renderer
//the terminal UI owns the screen, so it only logs when a file is given
func initLogger(eo *EnvOptions) (io.Closer, error) {
	var w io.Writer
	var closer io.Closer = nopCloser{}
	switch {
	case eo.logFile != "":
		f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w, closer = f, f
	case eo.interactive:
		return closer, nil
	default:
		w = os.Stderr
	}

	level := slog.LevelWarn
	if eo.verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(l)
	gg.SetLogger(l)
	return closer, nil
}
