package data

import (
	"context"
	"sync"
	"time"

	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/world"
)

// SheetLoaded is delivered once per sheet reference, with Err set on failure.
type SheetLoaded struct {
	Handle  component.SheetHandle
	Path    string
	Sprites []world.Sprite
	Err     error
}

// Loader resolves sprite sheets and UI slot requests off the game loop.
// Results are handed back over channels that AssetSystem drains in
// PhaseInput, so early frames run without them.
type Loader struct {
	sheets chan SheetLoaded
	slots  chan UISlotDef
	wg     sync.WaitGroup
}

// StartLoader begins loading everything sc references.
func StartLoader(ctx context.Context, sc *Scene) *Loader {
	l := &Loader{
		sheets: make(chan SheetLoaded, len(sc.Sheets)),
		slots:  make(chan UISlotDef, len(sc.UI)),
	}
	for _, ref := range sc.Sheets {
		ref := ref
		path := sc.SheetPath(ref)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if !wait(ctx, ref.Delay) {
				return
			}
			sprites, err := LoadSpriteSheet(path)
			l.sheets <- SheetLoaded{
				Handle:  component.SheetHandle(ref.Handle),
				Path:    path,
				Sprites: sprites,
				Err:     err,
			}
		}()
	}
	for _, def := range sc.UI {
		def := def
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if !wait(ctx, def.Delay) {
				return
			}
			l.slots <- def
		}()
	}
	return l
}

func (l *Loader) Sheets() <-chan SheetLoaded { return l.sheets }
func (l *Loader) Slots() <-chan UISlotDef    { return l.slots }

// Wait blocks until every request has been delivered or cancelled.
func (l *Loader) Wait() { l.wg.Wait() }

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
