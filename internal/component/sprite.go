package component

// SheetHandle names a sprite sheet in the world's SpriteSheets registry.
type SheetHandle string

// SpriteRender references one sprite of a sheet. The sheet may not be
// loaded yet; lookups go through the registry every frame.
type SpriteRender struct {
	Sheet SheetHandle
	Index int
}
