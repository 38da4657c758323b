package persist

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "view"
	prefsProperty = "prefs.yaml"
)

// Prefs is per-user view state kept between runs.
type Prefs struct {
	ActiveCamera string `yaml:"active_camera"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

// PrefsStore reads and writes Prefs through gdata. A nil manager makes it
// an in-memory no-op store.
type PrefsStore struct {
	m *gdata.Manager
}

// OpenPrefs opens the per-user data directory for appName.
func OpenPrefs(appName string) (*PrefsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	return &PrefsStore{m: m}, nil
}

// NewPrefsStore wraps an existing manager; m may be nil.
func NewPrefsStore(m *gdata.Manager) *PrefsStore {
	return &PrefsStore{m: m}
}

// Load returns stored prefs, or ok=false when none were saved.
func (s *PrefsStore) Load() (Prefs, bool, error) {
	var p Prefs
	if s.m == nil || !s.m.ObjectPropExists(prefsObject, prefsProperty) {
		return p, false, nil
	}
	raw, err := s.m.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return p, false, fmt.Errorf("load prefs: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, false, fmt.Errorf("parse prefs: %w", err)
	}
	return p, true, nil
}

func (s *PrefsStore) Save(p Prefs) error {
	if s.m == nil {
		return nil
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := s.m.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
