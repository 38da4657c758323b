package data

import (
	"fmt"
	"os"

	"github.com/hoverpick/hoverpick/internal/world"
	"gopkg.in/yaml.v3"
)

type spriteEntry struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type spriteSheetFile struct {
	Sprites []spriteEntry `yaml:"sprites"`
}

// LoadSpriteSheet loads one sheet file. Sprite order in the file is the
// sprite index SpriteRender refers to.
func LoadSpriteSheet(path string) ([]world.Sprite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite sheet %s: %w", path, err)
	}
	var file spriteSheetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse sprite sheet %s: %w", path, err)
	}
	out := make([]world.Sprite, 0, len(file.Sprites))
	for i, e := range file.Sprites {
		if e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("sprite sheet %s: sprite %d has non-positive size", path, i)
		}
		out = append(out, world.Sprite{Width: e.Width, Height: e.Height})
	}
	return out, nil
}
