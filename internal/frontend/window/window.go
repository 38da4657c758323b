// Package window drives the scene from a desktop window.
package window

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/config"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/world"
)

// Game implements ebiten.Game. One ebiten update is one runner frame.
type Game struct {
	ctx    context.Context
	state  *world.State
	runner *coresys.Runner
	width  int
	height int
	last   time.Time
}

func NewGame(ctx context.Context, state *world.State, runner *coresys.Runner) *Game {
	return &Game{ctx: ctx, state: state, runner: runner}
}

// Run opens the window and blocks until it closes or ctx ends.
func Run(ctx context.Context, cfg config.WindowConfig, tick time.Duration, state *world.State, runner *coresys.Runner) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if tick > 0 {
		ebiten.SetTPS(int(time.Second / tick))
	}
	state.Screen = world.ScreenDimensions{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	return ebiten.RunGame(NewGame(ctx, state, runner))
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	x, y := ebiten.CursorPosition()
	g.track(x, y)

	now := time.Now()
	dt := time.Duration(0)
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now
	g.runner.Tick(dt)
	return nil
}

// track moves the pointer, or clears it when the cursor is outside the
// window.
func (g *Game) track(x, y int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		g.state.Pointer.Leave()
		return
	}
	g.state.Pointer.MoveTo(float64(x), float64(y))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.state.UITexts.Each(func(_ ecs.EntityID, t *component.UIText) {
		ebitenutil.DebugPrintAt(screen, t.Text, t.X, t.Y)
	})
}

// Layout keeps one logical pixel per window pixel and records the size
// for picking.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.state.Screen = world.ScreenDimensions{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}
