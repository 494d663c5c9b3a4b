package world

// CollisionPair records that two objects were in contact during a given
// iteration. Pairs live in slots owned by the CollisionList's arena and are
// rebound rather than reallocated when a new pair appears.
type CollisionPair struct {
	First  Object
	Second Object

	lastActiveIteration uint64
}

// LastActiveIteration returns the iteration the pair was last registered.
func (p *CollisionPair) LastActiveIteration() uint64 { return p.lastActiveIteration }

func (p *CollisionPair) refresh(iteration uint64) {
	p.lastActiveIteration = iteration
}

// CollisionList is a deduplicated registry of potentially-colliding object
// pairs. Pair storage is an arena of slots with a free-index stack; evicted
// slots are pushed back and rebound on the next registration.
//
// The list never removes pairs on its own: CallForEachPair only classifies
// pairs by age (active this iteration, or broken exactly one iteration
// ago). Slots are recycled through RemoveObject when a body leaves the
// world.
type CollisionList struct {
	// pairs maps first-object-id -> second-object-id -> arena slot.
	pairs map[int]map[int]int

	slots []CollisionPair
	free  []int

	currentIteration uint64
}

func NewCollisionList() *CollisionList {
	return &CollisionList{pairs: make(map[int]map[int]int)}
}

// BeginIteration sets the tracker's notion of "now". The world calls this
// once per step, before any pairs are re-registered.
func (cl *CollisionList) BeginIteration(iteration uint64) {
	cl.currentIteration = iteration
}

// canonicalOrder sorts a pair so that the lookup key is deterministic:
// movable objects come first (they collide more often), and within equal
// movability the lower id comes first.
func canonicalOrder(a, b Object) (Object, Object) {
	if a.CanMove() != b.CanMove() {
		if a.CanMove() {
			return a, b
		}
		return b, a
	}
	if a.ID() <= b.ID() {
		return a, b
	}
	return b, a
}

// AddPair registers a contact between a and b for the current iteration.
// Registering the same pair in either order touches the same entry.
func (cl *CollisionList) AddPair(a, b Object) *CollisionPair {
	first, second := canonicalOrder(a, b)
	return cl.getOrCreatePair(first, second)
}

func (cl *CollisionList) getOrCreatePair(first, second Object) *CollisionPair {
	inner, ok := cl.pairs[first.ID()]
	if !ok {
		inner = make(map[int]int)
		cl.pairs[first.ID()] = inner
	}

	slot, ok := inner[second.ID()]
	if !ok {
		slot = cl.alloc()
		p := &cl.slots[slot]
		p.First = first
		p.Second = second
		inner[second.ID()] = slot
	}

	p := &cl.slots[slot]
	p.refresh(cl.currentIteration)
	return p
}

func (cl *CollisionList) alloc() int {
	if n := len(cl.free); n > 0 {
		slot := cl.free[n-1]
		cl.free = cl.free[:n-1]
		return slot
	}
	cl.slots = append(cl.slots, CollisionPair{})
	return len(cl.slots) - 1
}

func (cl *CollisionList) release(slot int) {
	cl.slots[slot] = CollisionPair{}
	cl.free = append(cl.free, slot)
}

// CallForEachPair classifies every stored pair by age. Pairs refreshed this
// iteration fire onActive; pairs last seen exactly one iteration ago fire
// onBroken (the contact just ended). Older pairs are left untouched.
func (cl *CollisionList) CallForEachPair(onActive, onBroken func(p *CollisionPair)) {
	for _, inner := range cl.pairs {
		for _, slot := range inner {
			p := &cl.slots[slot]
			switch cl.currentIteration - p.lastActiveIteration {
			case 0:
				if onActive != nil {
					onActive(p)
				}
			case 1:
				if onBroken != nil {
					onBroken(p)
				}
			}
		}
	}
}

// RemoveObject evicts every pair involving id and returns the slots to the
// free stack.
func (cl *CollisionList) RemoveObject(id int) {
	if inner, ok := cl.pairs[id]; ok {
		for _, slot := range inner {
			cl.release(slot)
		}
		delete(cl.pairs, id)
	}
	for firstID, inner := range cl.pairs {
		if slot, ok := inner[id]; ok {
			cl.release(slot)
			delete(inner, id)
			if len(inner) == 0 {
				delete(cl.pairs, firstID)
			}
		}
	}
}

// Len returns the number of stored pairs.
func (cl *CollisionList) Len() int {
	n := 0
	for _, inner := range cl.pairs {
		n += len(inner)
	}
	return n
}
