package tessera

import (
	"testing"
	"unsafe"
)

func TestEntityAddRemoveRoundTrip(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	vel, _ := RegisterComponent[testVelocity](w, nil, nil)

	e, err := w.EntityCreateWith(pos.Signature())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	Get[testPosition](w, e, pos).X = 7

	if _, err := w.EntityAdd(e, vel.Signature()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := Get[testPosition](w, e, pos).X; got != 7 {
		t.Fatalf("adding a component must preserve existing component data, got X=%v", got)
	}
	if Get[testVelocity](w, e, vel) == nil {
		t.Fatalf("entity should carry velocity after EntityAdd")
	}

	if _, err := w.EntityRemove(e, vel.Signature()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if Get[testVelocity](w, e, vel) != nil {
		t.Fatalf("entity should no longer carry velocity after EntityRemove")
	}
	if got := Get[testPosition](w, e, pos).X; got != 7 {
		t.Fatalf("removing velocity must preserve position data, got X=%v", got)
	}
}

func TestEntityAddIsNoOpForAlreadyPresentComponent(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	e, _ := w.EntityCreateWith(pos.Signature())
	Get[testPosition](w, e, pos).X = 42

	if _, err := w.EntityAdd(e, pos.Signature()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := Get[testPosition](w, e, pos).X; got != 42 {
		t.Fatalf("re-adding an already-present component must not reinitialize it, got X=%v", got)
	}
}

func TestComponentInitAndFreeHooksFire(t *testing.T) {
	w := NewWorld()
	var inits, frees int
	h, err := RegisterComponent[testPosition](w, func(ptr unsafe.Pointer) {
		inits++
		(*testPosition)(ptr).X = -1
	}, func(ptr unsafe.Pointer) {
		frees++
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	e, err := w.EntityCreateWith(h.Signature())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inits != 1 {
		t.Fatalf("init hook should run exactly once on creation, ran %d times", inits)
	}
	if got := Get[testPosition](w, e, h).X; got != -1 {
		t.Fatalf("init hook should have run before the caller observes the component, got X=%v", got)
	}

	w.EntityDestroy(e)
	if frees != 1 {
		t.Fatalf("free hook should run exactly once on destroy, ran %d times", frees)
	}
}

func TestComponentFreeHookFiresOnRemove(t *testing.T) {
	w := NewWorld()
	var frees int
	h, _ := RegisterComponent[testPosition](w, nil, func(ptr unsafe.Pointer) {
		frees++
	})
	other, _ := RegisterComponent[testVelocity](w, nil, nil)

	e, _ := w.EntityCreateWith(h.Signature().Union(other.Signature()))
	if _, err := w.EntityRemove(e, h.Signature()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if frees != 1 {
		t.Fatalf("removing a component should run its free hook exactly once, ran %d times", frees)
	}
}

func TestMigrateIsNoOpWhenSignatureUnchanged(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	e, _ := w.EntityCreateWith(pos.Signature())
	_, slotBefore := w.entities.location(e)

	if err := migrate(w, e, pos.Signature()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_, slotAfter := w.entities.location(e)
	if slotBefore != slotAfter {
		t.Fatalf("migrating to the same signature must be a no-op, slot moved from %d to %d", slotBefore, slotAfter)
	}
}

func TestHooksCannotMutateWorld(t *testing.T) {
	w := NewWorld()
	var h ComponentHandle[testPosition]
	var err error
	h, err = RegisterComponent[testPosition](w, func(ptr unsafe.Pointer) {
		if _, createErr := w.EntityCreateWith(h.Signature()); createErr == nil {
			t.Fatalf("EntityCreateWith should fail while an init hook holds the guard")
		}
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := w.EntityCreateWith(h.Signature()); err != nil {
		t.Fatalf("create: %v", err)
	}
}
