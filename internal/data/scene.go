package data

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	"github.com/hoverpick/hoverpick/internal/world"
	"gopkg.in/yaml.v3"
)

// CameraDef describes one camera in scene.yaml.
type CameraDef struct {
	Name          string    `yaml:"name"`
	Active        bool      `yaml:"active"`
	Projection    string    `yaml:"projection"` // "perspective" (default) or "orthographic"
	FovYDeg       float64   `yaml:"fov_y_deg"`
	Viewport      []float64 `yaml:"viewport"`   // [w, h], perspective aspect source
	OrthoSize     []float64 `yaml:"ortho_size"` // [w, h] in world units
	Near          float64   `yaml:"near"`
	Far           float64   `yaml:"far"`
	Translation   []float64 `yaml:"translation"`
	RotationEuler []float64 `yaml:"rotation_euler"`
}

// ObjectDef is a named, pickable sprite object.
type ObjectDef struct {
	Name          string    `yaml:"name"`
	Translation   []float64 `yaml:"translation"`
	RotationEuler []float64 `yaml:"rotation_euler"`
	Scale         []float64 `yaml:"scale"`
	Sheet         string    `yaml:"sheet"`
	Sprite        int       `yaml:"sprite"`
}

type LightDef struct {
	Translation []float64 `yaml:"translation"`
	Intensity   float64   `yaml:"intensity"`
	Color       []float64 `yaml:"color"`
}

// SheetRef points at a sprite sheet file, relative to the scene file.
type SheetRef struct {
	Handle string        `yaml:"handle"`
	Path   string        `yaml:"path"`
	Delay  time.Duration `yaml:"delay"`
}

// UISlotDef requests one UI text slot from the loader.
type UISlotDef struct {
	Key   string        `yaml:"key"`
	Text  string        `yaml:"text"`
	X     int           `yaml:"x"`
	Y     int           `yaml:"y"`
	Delay time.Duration `yaml:"delay"`
}

// Scene is the parsed scene.yaml.
type Scene struct {
	Cameras []CameraDef `yaml:"cameras"`
	Objects []ObjectDef `yaml:"objects"`
	Lights  []LightDef  `yaml:"lights"`
	Sheets  []SheetRef  `yaml:"sheets"`
	UI      []UISlotDef `yaml:"ui"`

	dir string
}

// LoadScene loads scene.yaml.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	sc, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// ParseScene decodes scene yaml without touching the filesystem.
func ParseScene(raw []byte) (*Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	active := 0
	for _, c := range sc.Cameras {
		if c.Active {
			active++
		}
	}
	if active > 1 {
		return nil, fmt.Errorf("%d cameras marked active, at most one allowed", active)
	}
	return &sc, nil
}

// SheetPath resolves a sheet reference against the scene directory.
func (sc *Scene) SheetPath(ref SheetRef) string {
	if filepath.IsAbs(ref.Path) || sc.dir == "" {
		return ref.Path
	}
	return filepath.Join(sc.dir, ref.Path)
}

// SpawnStats counts what Spawn created.
type SpawnStats struct {
	Cameras int
	Objects int
	Lights  int
	Active  ecs.EntityID
}

// Spawn creates the scene's cameras, objects and lights in st. UI slots and
// sprite sheets are not created here; they arrive through the Loader.
func (sc *Scene) Spawn(st *world.State) (SpawnStats, error) {
	var stats SpawnStats
	for i, def := range sc.Cameras {
		cam, tf, err := def.build()
		if err != nil {
			return stats, fmt.Errorf("camera %d (%s): %w", i, def.Name, err)
		}
		id := st.SpawnCamera(cam, tf)
		if def.Active {
			st.Active.Set(id)
			stats.Active = id
		}
		stats.Cameras++
	}
	for i, def := range sc.Objects {
		if def.Name == "" {
			return stats, fmt.Errorf("object %d: name required", i)
		}
		tf, err := transformOf(def.Translation, def.RotationEuler, def.Scale)
		if err != nil {
			return stats, fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}
		st.SpawnPickable(def.Name, tf, component.SpriteRender{
			Sheet: component.SheetHandle(def.Sheet),
			Index: def.Sprite,
		})
		stats.Objects++
	}
	for i, def := range sc.Lights {
		tf, err := transformOf(def.Translation, nil, nil)
		if err != nil {
			return stats, fmt.Errorf("light %d: %w", i, err)
		}
		color, err := vec3(def.Color, mgl64.Vec3{1, 1, 1})
		if err != nil {
			return stats, fmt.Errorf("light %d color: %w", i, err)
		}
		st.SpawnLight(component.Light{Intensity: def.Intensity, Color: color}, tf)
		stats.Lights++
	}
	return stats, nil
}

func (def CameraDef) build() (component.Camera, component.Transform, error) {
	var cam component.Camera
	switch def.Projection {
	case "", "perspective":
		vp, err := vec2(def.Viewport, 1024, 768)
		if err != nil {
			return cam, component.Transform{}, fmt.Errorf("viewport: %w", err)
		}
		cam = component.Standard3D(vp[0], vp[1])
		if def.FovYDeg != 0 {
			cam.FovY = def.FovYDeg * math.Pi / 180
		}
	case "orthographic":
		size, err := vec2(def.OrthoSize, 20, 15)
		if err != nil {
			return cam, component.Transform{}, fmt.Errorf("ortho_size: %w", err)
		}
		cam = component.Standard2D(size[0], size[1])
	default:
		return cam, component.Transform{}, fmt.Errorf("unknown projection %q", def.Projection)
	}
	cam.Name = def.Name
	if def.Near != 0 {
		cam.Near = def.Near
	}
	if def.Far != 0 {
		cam.Far = def.Far
	}
	if cam.Near >= cam.Far {
		return cam, component.Transform{}, fmt.Errorf("near %v must be below far %v", cam.Near, cam.Far)
	}
	tf, err := transformOf(def.Translation, def.RotationEuler, nil)
	return cam, tf, err
}

func transformOf(translation, euler, scale []float64) (component.Transform, error) {
	pos, err := vec3(translation, mgl64.Vec3{})
	if err != nil {
		return component.Transform{}, fmt.Errorf("translation: %w", err)
	}
	rot, err := vec3(euler, mgl64.Vec3{})
	if err != nil {
		return component.Transform{}, fmt.Errorf("rotation_euler: %w", err)
	}
	sc, err := vec3(scale, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return component.Transform{}, fmt.Errorf("scale: %w", err)
	}
	tf := component.NewTransform(pos.X(), pos.Y(), pos.Z())
	tf.SetRotationEuler(rot.X(), rot.Y(), rot.Z())
	tf.Scale = sc
	return tf, nil
}

func vec3(v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, fmt.Errorf("want 3 components, got %d", len(v))
}

func vec2(v []float64, w, h float64) ([2]float64, error) {
	switch len(v) {
	case 0:
		return [2]float64{w, h}, nil
	case 2:
		if v[0] <= 0 || v[1] <= 0 {
			return [2]float64{}, fmt.Errorf("size must be positive, got %v", v)
		}
		return [2]float64{v[0], v[1]}, nil
	}
	return [2]float64{}, fmt.Errorf("want 2 components, got %d", len(v))
}
