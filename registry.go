package tessera

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// archetypeRegistry interns each distinct Signature observed, assigns it a
// dense ArchetypeID, and maintains the superset index (§4.1).
//
// Grounded on the teacher's storage.go `archetypes` struct (nextID,
// asSlice, idsGroupedByMask) and NewOrExistingArchetype/tableFor
// intern-or-create shape, split into a creation-free archetypeOf lookup
// (spec.md §4.1) the teacher doesn't expose, plus the superset_ids index
// the teacher has no equivalent of (it evaluates ad hoc Query nodes
// instead, which spec.md §1 puts out of scope for the core).
type archetypeRegistry struct {
	byID        []*archetypeRecord
	bySignature map[Signature]ArchetypeID
	components  *componentRegistry
}

func newArchetypeRegistry(components *componentRegistry) *archetypeRegistry {
	r := &archetypeRegistry{
		bySignature: make(map[Signature]ArchetypeID),
		components:  components,
	}
	// I4: the empty archetype exists for the lifetime of the world.
	r.intern(0)
	return r
}

// intern returns sig's archetype id, creating and registering a new record
// if this is the first time sig has been observed (I3, I4).
func (r *archetypeRegistry) intern(sig Signature) ArchetypeID {
	if id, ok := r.bySignature[sig]; ok {
		return id
	}
	id := ArchetypeID(len(r.byID))
	rec := newArchetypeRecord(id, sig, r.components)
	r.byID = append(r.byID, rec)
	r.bySignature[sig] = id
	r.rebuildSupersets()
	return id
}

// archetypeOf looks up sig's archetype id without creating one. ok is false
// if sig has never been interned.
func (r *archetypeRegistry) archetypeOf(sig Signature) (ArchetypeID, bool) {
	id, ok := r.bySignature[sig]
	return id, ok
}

// get returns the archetype record for id. id should always come from
// intern/archetypeOf or an entity's own bookkeeping, so an out-of-range id
// means an invariant has already broken somewhere upstream; mirrors the
// teacher's entity() table-lookup panic in entity.go.
func (r *archetypeRegistry) get(id ArchetypeID) *archetypeRecord {
	if int(id) >= len(r.byID) {
		panic(bark.AddTrace(fmt.Errorf("archetype id %d out of range (%d interned)", id, len(r.byID))))
	}
	return r.byID[id]
}

func (r *archetypeRegistry) count() int {
	return len(r.byID)
}

// supersetsOf returns the ids of every already-interned archetype whose
// signature is a strict superset of sig, without interning sig itself.
// Used by the dispatcher for a system signature that has never been
// observed as an exact archetype (§2: "the Dispatcher only reads the
// Registry").
func (r *archetypeRegistry) supersetsOf(sig Signature) []ArchetypeID {
	var out []ArchetypeID
	for _, a := range r.byID {
		if a.signature.IsStrictSupersetOf(sig) {
			out = append(out, a.id)
		}
	}
	return out
}

// rebuildSupersets recomputes superset_ids for every interned archetype.
// O(N^2) in the archetype count, acceptable per spec.md §4.1/§9 since N is
// small in practice; an incremental update is a valid optimization this
// implementation doesn't need.
func (r *archetypeRegistry) rebuildSupersets() {
	for _, a := range r.byID {
		a.supersets = a.supersets[:0]
	}
	for _, a := range r.byID {
		for _, b := range r.byID {
			if b.id == a.id {
				continue
			}
			if b.signature.IsStrictSupersetOf(a.signature) {
				a.supersets = append(a.supersets, b.id)
			}
		}
	}
}
