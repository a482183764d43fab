package tessera

// migrate is the single protocol (§4.4) behind add_components, remove_
// components, and create_with_components: move entity e from its current
// archetype to the one named by newSig.
//
// Grounded on the teacher's entity.go AddComponent/RemoveComponent
// (compute new component set -> get-or-create destination archetype ->
// TransferEntries -> update bookkeeping) shape, collapsed into the one
// shared function spec.md §4.4 mandates instead of the teacher's three
// near-duplicate methods.
func migrate(w *World, e EntityID, newSig Signature) error {
	oldSig, oldSlot := w.entities.location(e)
	if oldSig == newSig {
		return nil // step 1: no-op when the component set doesn't change
	}

	oldArch := w.registry.get(w.archetypeIDOrIntern(oldSig))

	// step 2: finalize components being removed.
	removed := oldSig.Subtract(newSig)
	for _, cid := range removed.Components() {
		info := w.components.info(cid)
		if info.free == nil {
			continue
		}
		col := oldArch.columnFor(cid)
		ptr := col.at(oldSlot)
		w.guard.withLock(guardBitHook, func() { info.free(ptr) })
	}

	// step 3: intern the destination archetype.
	newArchID := w.registry.intern(newSig)
	newArch := w.registry.get(newArchID)

	// step 4: acquire a new slot at the tail of the destination archetype.
	newSlot := newArch.appendEntitySlot(e)

	// step 5: copy shared columns, append+zero columns being added. A
	// mid-loop AllocationFailureError leaves newArch's slot partially
	// populated and e's bookkeeping still pointing at oldArch; this is the
	// same out-of-memory exposure reflect.New itself would otherwise panic
	// with, just reported instead of crashing the process.
	added := newSig.Subtract(oldSig)
	for _, cid := range newArch.components {
		col := newArch.columnFor(cid)
		if oldSig.Has(cid) {
			srcCol := oldArch.columnFor(cid)
			if err := copyColumn(col, srcCol, oldSlot); err != nil {
				return err
			}
		} else {
			if _, err := col.appendZero(); err != nil {
				return err
			}
		}
	}

	// step 6: remove the old slot with the scramble policy.
	promoted, moved := oldArch.removeSlot(oldSlot)
	if moved {
		w.entities.setLocation(promoted, oldArch.signature, oldSlot)
	}

	// step 7: update the entity's bookkeeping.
	w.entities.setLocation(e, newSig, newSlot)

	// step 8: initialize components being added.
	for _, cid := range added.Components() {
		info := w.components.info(cid)
		if info.init == nil {
			continue
		}
		ptr := newArch.columnFor(cid).at(newSlot)
		w.guard.withLock(guardBitHook, func() { info.init(ptr) })
	}

	return nil
}
