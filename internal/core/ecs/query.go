package ecs

// Each2 iterates over entities that have both component A and B, in
// ascending EntityID order. It walks the smaller store and probes the other.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for _, id := range sa.IDs() {
			if b, ok := sb.data[id]; ok {
				fn(id, sa.data[id], b)
			}
		}
		return
	}
	for _, id := range sb.IDs() {
		if a, ok := sa.data[id]; ok {
			fn(id, a, sb.data[id])
		}
	}
}

// First2 returns the lowest EntityID that has both A and B.
func First2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B]) (EntityID, *A, *B, bool) {
	if sa.Len() <= sb.Len() {
		for _, id := range sa.IDs() {
			if b, ok := sb.data[id]; ok {
				return id, sa.data[id], b, true
			}
		}
		return 0, nil, nil, false
	}
	for _, id := range sb.IDs() {
		if a, ok := sa.data[id]; ok {
			return id, a, sb.data[id], true
		}
	}
	return 0, nil, nil, false
}

// Get2 looks up both components of a single entity.
func Get2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], id EntityID) (*A, *B, bool) {
	a, ok := sa.data[id]
	if !ok {
		return nil, nil, false
	}
	b, ok := sb.data[id]
	if !ok {
		return nil, nil, false
	}
	return a, b, true
}

// Each3 iterates over entities that have components A, B, and C in
// ascending EntityID order, driving the loop from the smallest store.
func Each3[A, B, C any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], sc *PtrComponentStore[C], fn func(EntityID, *A, *B, *C)) {
	ids := sa.IDs()
	if sb.Len() < len(ids) {
		ids = sb.IDs()
	}
	if sc.Len() < len(ids) {
		ids = sc.IDs()
	}
	for _, id := range ids {
		a, ok := sa.data[id]
		if !ok {
			continue
		}
		b, ok := sb.data[id]
		if !ok {
			continue
		}
		c, ok := sc.data[id]
		if !ok {
			continue
		}
		fn(id, a, b, c)
	}
}
