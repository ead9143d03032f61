package engine

// Window is a parsed availability row: the entity may be scheduled inside
// [StartMin, EndMin) on Day.
type Window struct {
	EntityID string
	Day      int
	StartMin int
	EndMin   int
}

type slotSet map[int]struct{}

// Index answers "is this entity free at (day, slot)" in O(1). Entities
// with no window on a day default to fully available that day; entities
// not present in the id list are never free.
type Index struct {
	free map[string]map[int]slotSet
}

// BuildIndex precomputes free slot sets for every (entity, day) pair. A
// slot is free under a window when it fits entirely inside it; windows for
// the same pair are unioned.
func BuildIndex(grid *Grid, entityIDs []string, windows []Window) *Index {
	idx := &Index{free: make(map[string]map[int]slotSet, len(entityIDs))}

	known := make(map[string]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		known[id] = struct{}{}
		days := make(map[int]slotSet, len(grid.Days()))
		for _, day := range grid.Days() {
			days[day] = fullSlotSet(grid.NumSlots())
		}
		idx.free[id] = days
	}

	// Pairs with at least one window start from empty and accumulate.
	restricted := make(map[string]map[int]bool)
	for _, w := range windows {
		if _, ok := known[w.EntityID]; !ok {
			continue
		}
		days, ok := idx.free[w.EntityID]
		if !ok {
			continue
		}
		if _, ok := days[w.Day]; !ok {
			continue
		}
		if restricted[w.EntityID] == nil {
			restricted[w.EntityID] = make(map[int]bool)
		}
		if !restricted[w.EntityID][w.Day] {
			days[w.Day] = make(slotSet)
			restricted[w.EntityID][w.Day] = true
		}
		for _, slot := range grid.Slots() {
			if slot.StartMin >= w.StartMin && slot.EndMin <= w.EndMin {
				days[w.Day][slot.Index] = struct{}{}
			}
		}
	}

	return idx
}

// IsFree reports whether the entity may be scheduled at (day, slot).
func (idx *Index) IsFree(entityID string, day, slot int) bool {
	days, ok := idx.free[entityID]
	if !ok {
		return false
	}
	slots, ok := days[day]
	if !ok {
		return false
	}
	_, ok = slots[slot]
	return ok
}

// FreeSet returns a mutable copy of the free slots for (entity, day),
// letting allocators consume slots without touching the index.
func (idx *Index) FreeSet(entityID string, day int) map[int]struct{} {
	days, ok := idx.free[entityID]
	if !ok {
		return map[int]struct{}{}
	}
	slots, ok := days[day]
	if !ok {
		return map[int]struct{}{}
	}
	copied := make(map[int]struct{}, len(slots))
	for s := range slots {
		copied[s] = struct{}{}
	}
	return copied
}

func fullSlotSet(n int) slotSet {
	set := make(slotSet, n)
	for i := 0; i < n; i++ {
		set[i] = struct{}{}
	}
	return set
}
