package main

import (
	"testing"

	"simlife/src/engine"
)

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		eo      EnvOptions
		mod     func(o *engine.Options)
		wantErr bool
	}{
		{"defaults", EnvOptions{renderMode: "rect"}, nil, false},
		{"zero width", EnvOptions{}, func(o *engine.Options) { o.Width = 0 }, true},
		{"negative size", EnvOptions{}, func(o *engine.Options) { o.SquareSize = -1 }, true},
		{"no square", EnvOptions{}, func(o *engine.Options) { o.SquareSize, o.SquareSpacing = 0, 0 }, true},
		{"both frontends", EnvOptions{interactive: true, window: true}, nil, true},
		{"unknown mode", EnvOptions{renderMode: "svg"}, nil, true},
		{"fractional pixels", EnvOptions{renderMode: "pixels"}, func(o *engine.Options) { o.SquareSize = 2.5 }, true},
		{"fractional rects", EnvOptions{renderMode: "rect"}, func(o *engine.Options) { o.SquareSize = 2.5 }, false},
		{"template", EnvOptions{template: "glider"}, nil, false},
		{"unknown template", EnvOptions{template: "spaceship"}, nil, true},
		{"png output", EnvOptions{output: "out.png"}, nil, false},
		{"jpg output", EnvOptions{output: "out.jpg"}, nil, true},
		{"output in window", EnvOptions{output: "out.png", window: true}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := engine.DefaultOptions
			if tt.mod != nil {
				tt.mod(&o)
			}
			eo := tt.eo
			err := validateOptions(&eo, &o)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettleInitial(t *testing.T) {
	o := engine.DefaultOptions
	o.Width, o.Height = 10, 10
	e := engine.NewController(&o, nil)
	defer e.Close()

	settleInitial(e, &EnvOptions{template: "blinker"})
	e.Wait()
	if got := e.Status().LiveCells; got != 3 {
		t.Errorf("blinker live cells = %d, want 3", got)
	}

	settleInitial(e, &EnvOptions{})
	e.Wait()
	if got := e.Status().LiveCells; got != 3 {
		t.Errorf("no settle option changed the grid: %d live cells", got)
	}
}
