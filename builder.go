package tessera

// builder.go is the thin variadic convenience layer spec.md §9 invites:
// the core above exposes only single-entity, single-archetype primitives
// (EntityCreateWith(Signature), EntityAdd(e, Signature)); Builder folds a
// variable-arity list of component ids, or component names, into the one
// Signature those primitives want.
//
// No close teacher analogue — the teacher's variadic surface is just Go's
// native `...Component` spread throughout its API, not a folding front-end.
// Grounded instead on edwinsyarief-lazyecs/builder.go's Builder[T]/
// NewBuilder shape (a small struct wrapping a *World plus a precomputed
// archetype handle), generalized from one compile-time type parameter to
// an arbitrary runtime list of ids or names.

// RegisterComponentName associates a lookup name with an already-registered
// component id, enabling Builder.WithNamed.
func (w *World) RegisterComponentName(name string, id ComponentID) {
	w.components.registerName(name, id)
}

// ComponentByName looks up a component id previously associated with name
// via RegisterComponentName.
func (w *World) ComponentByName(name string) (ComponentID, bool) {
	return w.components.lookupName(name)
}

// Builder accumulates a Signature across repeated With/WithNamed calls and
// creates entities from it.
type Builder struct {
	world *World
	sig   Signature
	err   error
}

// NewBuilder starts a builder with the empty signature.
func NewBuilder(world *World) *Builder {
	return &Builder{world: world}
}

// With folds the given component ids into the builder's signature.
func (b *Builder) With(ids ...ComponentID) *Builder {
	for _, id := range ids {
		b.sig = b.sig.With(id)
	}
	return b
}

// WithNamed folds the components registered under names into the builder's
// signature. The first unknown name sets a sticky error, surfaced by New.
func (b *Builder) WithNamed(names ...string) *Builder {
	for _, name := range names {
		id, ok := b.world.ComponentByName(name)
		if !ok {
			if b.err == nil {
				b.err = UnknownComponentNameError{Name: name}
			}
			continue
		}
		b.sig = b.sig.With(id)
	}
	return b
}

// Signature returns the signature accumulated so far.
func (b *Builder) Signature() Signature {
	return b.sig
}

// New creates one entity in the accumulated archetype.
func (b *Builder) New() (EntityID, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.world.EntityCreateWith(b.sig)
}

// NewN creates n entities in the accumulated archetype.
func (b *Builder) NewN(n int) ([]EntityID, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]EntityID, n)
	for i := 0; i < n; i++ {
		e, err := b.world.EntityCreateWith(b.sig)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
