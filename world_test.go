package tessera

import (
	"testing"
	"unsafe"
)

func TestWorldFreeRunsFreeHooksOverLiveEntities(t *testing.T) {
	w := NewWorld()
	var frees int
	h, _ := RegisterComponent[testPosition](w, nil, func(ptr unsafe.Pointer) {
		frees++
	})

	w.EntityCreateWith(h.Signature())
	w.EntityCreateWith(h.Signature())
	dead, _ := w.EntityCreateWith(h.Signature())
	w.EntityDestroy(dead) // frees dead's component now; Free must not free it again

	frees = 0
	w.Free()

	if frees != 2 {
		t.Fatalf("Free should run the free hook once per still-live entity, ran %d times", frees)
	}
}

func TestWorldFreeResetsToFreshEmptyArchetype(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	w.EntityCreateWith(pos.Signature())

	w.Free()

	if got := w.registry.count(); got != 1 {
		t.Fatalf("after Free, only the empty archetype should remain interned, got %d archetypes", got)
	}
	e, err := w.EntityCreate()
	if err != nil {
		t.Fatalf("world should remain usable after Free: %v", err)
	}
	sig, _ := w.entities.location(e)
	if sig != 0 {
		t.Fatalf("a freshly created entity after Free should land in the empty archetype")
	}
}

func TestColumnPointerLooksUpByArchetypeAndComponent(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	vel, _ := RegisterComponent[testVelocity](w, nil, nil)

	e, _ := w.EntityCreateWith(pos.Signature())
	Get[testPosition](w, e, pos).X = 9

	sig, _ := w.entities.location(e)
	archID, _ := w.registry.archetypeOf(sig)

	base := w.ColumnPointer(archID, pos.ID())
	if base == nil {
		t.Fatalf("ColumnPointer should return a non-nil base pointer for a component the archetype carries")
	}
	if got := (*testPosition)(base).X; got != 9 {
		t.Fatalf("ColumnPointer's base pointer should address slot 0's data, got X=%v", got)
	}

	if w.ColumnPointer(archID, vel.ID()) != nil {
		t.Fatalf("ColumnPointer should return nil for a component the archetype doesn't carry")
	}
}

func TestEntityAddRemoveOnDeadEntityErrors(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	e, _ := w.EntityCreate()
	w.EntityDestroy(e)

	if _, err := w.EntityAdd(e, pos.Signature()); err == nil {
		t.Fatalf("EntityAdd on a dead entity should error")
	}
	if _, err := w.EntityRemove(e, pos.Signature()); err == nil {
		t.Fatalf("EntityRemove on a dead entity should error")
	}
}

func TestEntityExhaustion(t *testing.T) {
	w := NewWorld()
	old := Config.MaxEntities
	Config.MaxEntities = 2
	defer func() { Config.MaxEntities = old }()

	if _, err := w.EntityCreate(); err != nil {
		t.Fatalf("create 1: %v", err)
	}
	if _, err := w.EntityCreate(); err != nil {
		t.Fatalf("create 2: %v", err)
	}
	if _, err := w.EntityCreate(); err == nil {
		t.Fatalf("expected EntityExhaustedError once MaxEntities is reached")
	}
}
