// Package term drives the scene from a terminal. Mouse cells are mapped to
// pixel centers with a fixed cell size, so picking runs unchanged.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/config"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

type Frontend struct {
	screen tcell.Screen
	state  *world.State
	runner *coresys.Runner
	cellW  float64
	cellH  float64
	tick   time.Duration
	log    *zap.Logger
}

// New wraps an initialized screen.
func New(screen tcell.Screen, cfg config.TerminalConfig, tick time.Duration, state *world.State, runner *coresys.Runner, log *zap.Logger) *Frontend {
	f := &Frontend{
		screen: screen,
		state:  state,
		runner: runner,
		cellW:  float64(cfg.CellWidth),
		cellH:  float64(cfg.CellHeight),
		tick:   tick,
		log:    log,
	}
	screen.EnableMouse()
	f.resize()
	return f
}

// Run ticks the runner until ctx ends or the user quits.
func (f *Frontend) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !f.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			f.runner.Tick(now.Sub(last))
			last = now
			f.draw()
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (f *Frontend) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev.Key(), ev.Rune()) {
			return false
		}
	case *tcell.EventMouse:
		f.moveTo(ev.Position())
	case *tcell.EventResize:
		f.resize()
		f.screen.Sync()
	}
	return true
}

func isQuitKey(k tcell.Key, r rune) bool {
	return k == tcell.KeyEscape || k == tcell.KeyCtrlC || (k == tcell.KeyRune && r == 'q')
}

// moveTo places the pointer on cell (cx, cy); cells off screen clear it.
func (f *Frontend) moveTo(cx, cy int) {
	cols, rows := f.screen.Size()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		f.state.Pointer.Leave()
		return
	}
	x, y := f.cellToPixel(cx, cy)
	f.state.Pointer.MoveTo(x, y)
}

// cellToPixel returns the pixel at the center of cell (cx, cy).
func (f *Frontend) cellToPixel(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * f.cellW, (float64(cy) + 0.5) * f.cellH
}

func (f *Frontend) resize() {
	cols, rows := f.screen.Size()
	f.state.Screen = world.ScreenDimensions{
		Width:  float64(cols) * f.cellW,
		Height: float64(rows) * f.cellH,
	}
}

func (f *Frontend) draw() {
	f.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	f.state.UITexts.Each(func(_ ecs.EntityID, t *component.UIText) {
		cx := int(float64(t.X) / f.cellW)
		cy := int(float64(t.Y) / f.cellH)
		for i, r := range []rune(t.Text) {
			f.screen.SetContent(cx+i, cy, r, nil, style)
		}
	})
	f.screen.Show()
}
