package tessera

import (
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/table"
)

// InitHook is called once, on a freshly zeroed component slot, right after
// an entity gains the component and before any system observes it.
type InitHook func(ptr unsafe.Pointer)

// FreeHook is called once, before a component's slot is deallocated on
// entity destroy or component removal, so it can release owned resources.
type FreeHook func(ptr unsafe.Pointer)

// componentInfo is the registry record for one component type (§3).
type componentInfo struct {
	id       ComponentID
	bytesize uintptr
	init     InitHook
	free     FreeHook
}

// componentRegistry assigns dense component ids in [1, MaxComponentTypes].
//
// The spec-literal primitive (register) takes a bare bytesize and has
// nothing to deduplicate against — it always mints a new id. The generic
// convenience layer built on top of it (RegisterComponent[T]) additionally
// keys registrations by Go type through a table.Schema, the same way the
// teacher's storage.NewEntities dedupes repeated schema.Register calls for
// an already-known table.ElementType — so registering the same Go type
// twice returns the original handle instead of minting a second id.
type componentRegistry struct {
	schema    table.Schema
	elemTypes map[reflect.Type]table.ElementType
	byType    map[reflect.Type]ComponentID
	byName    map[string]ComponentID
	infos     []componentInfo // infos[id-1]
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		schema:    table.Factory.NewSchema(),
		elemTypes: make(map[reflect.Type]table.ElementType),
		byName:    make(map[string]ComponentID),
		byType:    make(map[reflect.Type]ComponentID),
	}
}

// register is the spec-literal primitive: register_component(world,
// bytesize, init_hook, free_hook) -> component_id.
func (r *componentRegistry) register(bytesize uintptr, init InitHook, free FreeHook) (ComponentID, error) {
	if bytesize == 0 {
		return 0, ZeroSizeComponentError{}
	}
	if len(r.infos) >= Config.MaxComponents {
		return 0, ComponentCapExceededError{Cap: Config.MaxComponents}
	}
	id := ComponentID(len(r.infos) + 1)
	r.infos = append(r.infos, componentInfo{id: id, bytesize: bytesize, init: init, free: free})
	return id, nil
}

func (r *componentRegistry) info(id ComponentID) componentInfo {
	return r.infos[id-1]
}

func (r *componentRegistry) registerName(name string, id ComponentID) {
	r.byName[name] = id
}

func (r *componentRegistry) lookupName(name string) (ComponentID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *componentRegistry) count() int {
	return len(r.infos)
}

// registerType is the generic sugar layer's entry point: dedupe by Go type
// via the table.Schema identity token, then take the component's dense id
// straight from the schema's own row index for that token — the same bit
// index the teacher threads through NewOrExistingArchetype/RowIndexFor
// (storage.go:78-79) — rather than keeping a second, independent counter
// next to it. The spec-literal register above still needs its own counter
// for a bare bytesize with no table.ElementType behind it; as long as a
// world only ever registers components through the typed path (every
// call site in this package does), the two stay in lockstep because both
// assign ids in the same append-only registration order.
func registerType[T any](r *componentRegistry, init InitHook, free FreeHook) (ComponentID, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := r.byType[typ]; ok {
		return id, nil
	}
	if unsafe.Sizeof(*new(T)) == 0 {
		return 0, ZeroSizeComponentError{}
	}
	elem, ok := r.elemTypes[typ]
	if !ok {
		elem = table.FactoryNewElementType[T]()
		r.elemTypes[typ] = elem
	}
	r.schema.Register(elem)

	id := ComponentID(r.schema.RowIndexFor(elem) + 1)
	if int(id) > Config.MaxComponents {
		return 0, ComponentCapExceededError{Cap: Config.MaxComponents}
	}
	for len(r.infos) < int(id) {
		r.infos = append(r.infos, componentInfo{})
	}
	r.infos[id-1] = componentInfo{id: id, bytesize: unsafe.Sizeof(*new(T)), init: init, free: free}
	r.byType[typ] = id
	return id, nil
}

// ComponentHandle is the typed front-end over a registered component,
// mirroring the teacher's AccessibleComponent[T].
type ComponentHandle[T any] struct {
	id ComponentID
}

// ID returns the component's dense id.
func (h ComponentHandle[T]) ID() ComponentID { return h.id }

// Signature returns a Signature containing only this component.
func (h ComponentHandle[T]) Signature() Signature {
	return Signature(0).With(h.id)
}

// RegisterComponent registers Go type T as a component on world, returning a
// typed handle. Registering the same T again returns the original handle.
func RegisterComponent[T any](w *World, init InitHook, free FreeHook) (ComponentHandle[T], error) {
	id, err := registerType[T](w.components, init, free)
	if err != nil {
		return ComponentHandle[T]{}, err
	}
	return ComponentHandle[T]{id: id}, nil
}

// Get returns a pointer to entity e's component T, or nil if e doesn't carry
// it or isn't alive.
func Get[T any](w *World, e EntityID, h ComponentHandle[T]) *T {
	ptr := w.EntityGet(e, h.id)
	if ptr == nil {
		return nil
	}
	return (*T)(ptr)
}
