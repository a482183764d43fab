package tessera

// noColumn is the sentinel column index for a component absent from an
// archetype.
const noColumn = -1

// archetypeRecord is the per-archetype storage described in spec.md §3.
//
// Grounded on the teacher's archetype.go (the thin id+storage-handle
// wrapper), extended with the explicit components_id/components_order/
// entities/columns/superset_ids fields spec.md names, since the teacher
// delegates all of that to table.Table (rejected for this core — see
// SPEC_FULL.md).
type archetypeRecord struct {
	id         ArchetypeID
	signature  Signature
	components []ComponentID // canonical ascending order
	order      [MaxComponentTypes + 1]int // order[cid] -> column index, noColumn if absent
	entities   []EntityID    // dense slot array
	columns    []*column     // columns[k] parallel to components[k]
	supersets  []ArchetypeID // ids of archetypes whose signature strictly contains this one
}

func newArchetypeRecord(id ArchetypeID, sig Signature, reg *componentRegistry) *archetypeRecord {
	comps := sig.Components()
	a := &archetypeRecord{
		id:         id,
		signature:  sig,
		components: comps,
		entities:   make([]EntityID, 0, Config.InitialColumnCapacity),
		columns:    make([]*column, len(comps)),
	}
	for i := range a.order {
		a.order[i] = noColumn
	}
	for k, cid := range comps {
		info := reg.info(cid)
		a.columns[k] = newColumn(info.bytesize, Config.InitialColumnCapacity)
		a.order[cid] = k
	}
	return a
}

// numEntities returns the number of live entities in this archetype.
func (a *archetypeRecord) numEntities() int {
	return len(a.entities)
}

// columnFor returns the column backing component cid, or nil if cid isn't
// part of this archetype.
func (a *archetypeRecord) columnFor(cid ComponentID) *column {
	k := a.order[cid]
	if k == noColumn {
		return nil
	}
	return a.columns[k]
}

// appendEntitySlot grows the slot array, appends e at the tail, and returns
// its new slot index. It does not touch any component column; callers
// allocate matching column slots separately via columnFor(cid).appendZero().
func (a *archetypeRecord) appendEntitySlot(e EntityID) int {
	if len(a.entities) == cap(a.entities) {
		newCap := cap(a.entities) * Config.GrowthFactor
		if newCap == 0 {
			newCap = Config.InitialColumnCapacity
		}
		grown := make([]EntityID, len(a.entities), newCap)
		copy(grown, a.entities)
		a.entities = grown
	}
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

// removeSlot deletes slot i using the scramble policy across the slot array
// and every column in lockstep. It returns the entity id that ended up
// promoted into slot i (if any), so the caller can fix up that entity's
// order[] bookkeeping; ok is false when i was the last slot (nothing
// promoted).
func (a *archetypeRecord) removeSlot(i int) (promoted EntityID, ok bool) {
	last := len(a.entities) - 1
	var movedEntity EntityID
	moved := i < last
	if moved {
		movedEntity = a.entities[last]
		a.entities[i] = movedEntity
	}
	a.entities[last] = NullEntity
	a.entities = a.entities[:last]

	for _, col := range a.columns {
		col.swapRemove(i)
	}
	if moved {
		return movedEntity, true
	}
	return NullEntity, false
}
