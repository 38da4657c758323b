package component

// Named is an immutable label set when the entity is spawned.
type Named struct {
	Name string
}
