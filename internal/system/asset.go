package system

import (
	"time"

	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/data"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

// AssetSource delivers sheets and UI slots as they finish loading.
type AssetSource interface {
	Sheets() <-chan data.SheetLoaded
	Slots() <-chan data.UISlotDef
}

// AssetSystem installs whatever the loader has finished since last frame.
// Phase 0 (Input), so picking sees new sheets the same frame.
type AssetSystem struct {
	src   AssetSource
	state *world.State
	log   *zap.Logger
}

func NewAssetSystem(src AssetSource, state *world.State, log *zap.Logger) *AssetSystem {
	return &AssetSystem{src: src, state: state, log: log}
}

func (s *AssetSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *AssetSystem) Update(_ time.Duration) {
	for {
		select {
		case sl := <-s.src.Sheets():
			if sl.Err != nil {
				s.log.Error("sprite sheet load failed",
					zap.String("sheet", string(sl.Handle)),
					zap.String("path", sl.Path),
					zap.Error(sl.Err),
				)
				continue
			}
			s.state.Sheets.Put(sl.Handle, sl.Sprites)
			s.log.Debug("sprite sheet ready",
				zap.String("sheet", string(sl.Handle)),
				zap.Int("sprites", len(sl.Sprites)),
			)
		default:
			goto doneSheets
		}
	}
doneSheets:

	for {
		select {
		case def := <-s.src.Slots():
			if _, exists := s.state.UI.Find(def.Key); exists {
				s.log.Warn("duplicate ui slot ignored", zap.String("key", def.Key))
				continue
			}
			s.state.SpawnUIText(def.Key, def.Text, def.X, def.Y)
			s.log.Debug("ui slot ready", zap.String("key", def.Key))
		default:
			return
		}
	}
}
