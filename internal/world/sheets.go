package world

import "github.com/hoverpick/hoverpick/internal/component"

// Sprite is one sprite record of a sheet, sized in world units.
type Sprite struct {
	Width  float64
	Height float64
}

// SpriteSheets maps sheet handles to their sprites. Sheets arrive
// asynchronously from the asset loader; until then lookups fail.
type SpriteSheets struct {
	sheets map[component.SheetHandle][]Sprite
}

func NewSpriteSheets() *SpriteSheets {
	return &SpriteSheets{sheets: make(map[component.SheetHandle][]Sprite)}
}

// Put installs or replaces a sheet.
func (r *SpriteSheets) Put(h component.SheetHandle, sprites []Sprite) {
	r.sheets[h] = sprites
}

// Loaded reports whether the sheet has arrived.
func (r *SpriteSheets) Loaded(h component.SheetHandle) bool {
	_, ok := r.sheets[h]
	return ok
}

// Resolve returns the size of sprite index of sheet h.
func (r *SpriteSheets) Resolve(h component.SheetHandle, index int) (w, hgt float64, ok bool) {
	sprites, found := r.sheets[h]
	if !found || index < 0 || index >= len(sprites) {
		return 0, 0, false
	}
	sp := sprites[index]
	return sp.Width, sp.Height, true
}

// Count returns the number of loaded sheets.
func (r *SpriteSheets) Count() int { return len(r.sheets) }
