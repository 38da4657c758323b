package world

import (
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// UIFinder indexes UI text slots by key.
type UIFinder struct {
	byKey map[string]ecs.EntityID
	texts *ecs.PtrComponentStore[component.UIText]
}

func newUIFinder(texts *ecs.PtrComponentStore[component.UIText]) *UIFinder {
	return &UIFinder{
		byKey: make(map[string]ecs.EntityID),
		texts: texts,
	}
}

// Find returns the entity holding the slot key.
func (f *UIFinder) Find(key string) (ecs.EntityID, bool) {
	id, ok := f.byKey[key]
	return id, ok
}

// Remove drops id from the index; called through the ECS registry on destroy.
func (f *UIFinder) Remove(id ecs.EntityID) {
	for k, v := range f.byKey {
		if v == id {
			delete(f.byKey, k)
		}
	}
}

// Text returns the current text of a slot.
func (f *UIFinder) Text(key string) (string, bool) {
	id, ok := f.byKey[key]
	if !ok {
		return "", false
	}
	t, ok := f.texts.Get(id)
	if !ok {
		return "", false
	}
	return t.Text, true
}

// SetText replaces the text of slot key. It returns false when the slot
// does not exist yet; that is not an error.
func (f *UIFinder) SetText(key, text string) bool {
	id, ok := f.byKey[key]
	if !ok {
		return false
	}
	t, ok := f.texts.Get(id)
	if !ok {
		return false
	}
	if t.Text != text {
		t.Text = text
		t.Version++
	}
	return true
}
