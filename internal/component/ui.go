package component

// UIText is one on-screen text slot, addressed by Key through world.UIFinder.
// X/Y are the top-left draw position in window pixels.
type UIText struct {
	Key  string
	Text string
	X, Y int

	// Version increments on every text change so outputs can send deltas.
	Version uint64
}
