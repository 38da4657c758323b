package component

// Light is carried for scene completeness; picking never reads it.
type Light struct {
	Intensity float64
	Color     [3]float64
}
