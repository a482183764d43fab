package tessera

// entityTable maps live entity ids to (archetype, slot) pairs and owns the
// recycling freelist (§4.3).
//
// Grounded on the teacher's entity.go id/generation bookkeeping
// (globalEntities, relationships.recycled) reshaped to the spec's explicit
// id[e]/archetype[e]/order[e] arrays — table.EntryIndex was evaluated and
// not reused here for the same reason column.go gives for table.Table (see
// SPEC_FULL.md).
type entityTable struct {
	ids         []EntityID  // ids[e-1] == e if e is alive, else 0
	archetypes  []Signature // archetypes[e-1] is e's current archetype signature
	orders      []int       // orders[e-1] is e's slot index within its archetype
	freelist    []EntityID  // LIFO stack of recyclable ids
	inFreelist  []bool      // inFreelist[e-1] guards reuse() against double-push
	reuse       bool
	nextID      EntityID
}

func newEntityTable() *entityTable {
	return &entityTable{nextID: 1}
}

func (t *entityTable) setReuse(on bool) {
	t.reuse = on
}

func (t *entityTable) growTo(e EntityID) {
	n := int(e)
	if n <= len(t.ids) {
		return
	}
	grow := func(s []EntityID) []EntityID {
		out := make([]EntityID, n)
		copy(out, s)
		return out
	}
	t.ids = grow(t.ids)
	growSig := make([]Signature, n)
	copy(growSig, t.archetypes)
	t.archetypes = growSig
	growOrd := make([]int, n)
	copy(growOrd, t.orders)
	t.orders = growOrd
	growFlag := make([]bool, n)
	copy(growFlag, t.inFreelist)
	t.inFreelist = growFlag
}

// alive reports whether e currently identifies a live entity (I6, P1).
func (t *entityTable) alive(e EntityID) bool {
	if e == NullEntity || int(e) > len(t.ids) {
		return false
	}
	return t.ids[e-1] == e
}

// create allocates a fresh id: recycled from the freelist if reuse is
// enabled and the freelist is non-empty, otherwise the next unused id,
// skipping any id whose slot is already marked alive (defensive against
// externally provided ids, per spec.md §4.3).
func (t *entityTable) create() (EntityID, error) {
	if t.reuse && len(t.freelist) > 0 {
		e := t.freelist[len(t.freelist)-1]
		t.freelist = t.freelist[:len(t.freelist)-1]
		t.growTo(e)
		t.inFreelist[e-1] = false
		t.ids[e-1] = e
		t.archetypes[e-1] = 0
		return e, nil
	}

	for {
		e := t.nextID
		if int(e) > Config.MaxEntities {
			return 0, EntityExhaustedError{Cap: Config.MaxEntities}
		}
		t.nextID++
		t.growTo(e)
		if t.ids[e-1] == e {
			continue // already alive: externally provided id, skip it
		}
		t.ids[e-1] = e
		t.archetypes[e-1] = 0
		return e, nil
	}
}

// setLocation records e's current archetype signature and slot index.
func (t *entityTable) setLocation(e EntityID, sig Signature, order int) {
	t.archetypes[e-1] = sig
	t.orders[e-1] = order
}

// location returns e's current archetype signature and slot index.
func (t *entityTable) location(e EntityID) (Signature, int) {
	return t.archetypes[e-1], t.orders[e-1]
}

// release clears e's bookkeeping and, if recycling is enabled, pushes it
// onto the freelist.
func (t *entityTable) release(e EntityID) {
	t.ids[e-1] = 0
	t.archetypes[e-1] = 0
	t.orders[e-1] = 0
	if t.reuse && !t.inFreelist[e-1] {
		t.freelist = append(t.freelist, e)
		t.inFreelist[e-1] = true
	}
}

// sweepReuse pushes every currently dead id not already queued onto the
// freelist, in ascending id order (explicit batch recycling, §4.3).
func (t *entityTable) sweepReuse() {
	for i := range t.ids {
		e := EntityID(i + 1)
		if t.ids[i] == 0 && !t.inFreelist[i] {
			t.freelist = append(t.freelist, e)
			t.inFreelist[i] = true
		}
	}
}
