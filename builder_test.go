package tessera

import "testing"

func TestBuilderWithAccumulatesSignature(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	vel, _ := RegisterComponent[testVelocity](w, nil, nil)

	b := NewBuilder(w).With(pos.ID(), vel.ID())
	want := pos.Signature().Union(vel.Signature())
	if b.Signature() != want {
		t.Fatalf("Signature() = %v, want %v", b.Signature(), want)
	}

	e, err := b.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sig, _ := w.entities.location(e)
	if sig != want {
		t.Fatalf("built entity's archetype = %v, want %v", sig, want)
	}
}

func TestBuilderWithNamed(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)
	w.RegisterComponentName("position", pos.ID())

	e, err := NewBuilder(w).WithNamed("position").New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sig, _ := w.entities.location(e)
	if sig != pos.Signature() {
		t.Fatalf("built entity's archetype = %v, want %v", sig, pos.Signature())
	}
}

func TestBuilderWithNamedUnknownNameIsSticky(t *testing.T) {
	w := NewWorld()
	b := NewBuilder(w).WithNamed("nope").With(1)

	if _, err := b.New(); err == nil {
		t.Fatalf("expected UnknownComponentNameError from the earlier WithNamed call")
	}
	if _, err := b.NewN(3); err == nil {
		t.Fatalf("NewN should also surface the sticky error")
	}
}

func TestBuilderNewN(t *testing.T) {
	w := NewWorld()
	pos, _ := RegisterComponent[testPosition](w, nil, nil)

	ids, err := NewBuilder(w).With(pos.ID()).NewN(5)
	if err != nil {
		t.Fatalf("NewN: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("NewN(5) should return 5 entity ids, got %d", len(ids))
	}
	seen := make(map[EntityID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("NewN should produce distinct entity ids, got duplicate %d", id)
		}
		seen[id] = true
	}
}
