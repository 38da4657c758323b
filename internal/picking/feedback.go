package picking

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// UI slot keys written by the feedback sink.
const (
	SlotMousePosition = "mouse_position"
	SlotUnderMouse    = "under_mouse"
)

// UITextSink writes slot text. SetText returns false when the slot does not
// exist yet.
type UITextSink interface {
	SetText(key, text string) bool
}

// FormatWorldPosition renders X and Y with no decimals. Rounding is
// half-to-even on the exact float value and a negative value that rounds to
// zero keeps its sign: (12.5, 0.5) → "(12, 0)", (12.49, -0.2) → "(12, -0)".
func FormatWorldPosition(p mgl64.Vec3) string {
	return fmt.Sprintf("(%.0f, %.0f)", p.X(), p.Y())
}

// WriteFeedback updates both slots from one successful frame. It returns
// how many slots existed and were written.
func WriteFeedback(sink UITextSink, p mgl64.Vec3, hit HitResult) int {
	n := 0
	if sink.SetText(SlotMousePosition, FormatWorldPosition(p)) {
		n++
	}
	name := ""
	if hit.Found {
		name = hit.Name
	}
	if sink.SetText(SlotUnderMouse, name) {
		n++
	}
	return n
}
