package tessera

import "unsafe"

// World is the container described in spec.md §2: the archetype registry,
// component storage, entity table, and dispatcher, plus the component type
// registry and reentrancy guard that tie them together.
//
// Grounded on the teacher's storage.go `newStorage`/`Storage` shape (the
// single struct a caller constructs once and threads through every
// operation) and factory.go's top-level-constructor convention.
type World struct {
	components *componentRegistry
	registry   *archetypeRegistry
	entities   *entityTable
	dispatcher *dispatcher
	guard      guard
}

// NewWorld creates a world with: one pipeline (id 0) with one phase in it
// (id 0), the empty archetype (id 0), and no components or systems. The
// null entity (id 0) is reserved (§6).
func NewWorld() *World {
	components := newComponentRegistry()
	w := &World{
		components: components,
		registry:   newArchetypeRegistry(components),
		entities:   newEntityTable(),
		dispatcher: newDispatcher(),
	}
	return w
}

// Free releases world resources, running free hooks over every live
// entity's components first (world_free, §6).
func (w *World) Free() {
	for e := EntityID(1); int(e) <= len(w.entities.ids); e++ {
		if !w.entities.alive(e) {
			continue
		}
		sig, slot := w.entities.location(e)
		archID, ok := w.registry.archetypeOf(sig)
		if !ok {
			continue
		}
		arch := w.registry.get(archID)
		for _, cid := range arch.components {
			info := w.components.info(cid)
			if info.free == nil {
				continue
			}
			ptr := arch.columnFor(cid).at(slot)
			w.guard.withLock(guardBitHook, func() { info.free(ptr) })
		}
	}
	w.entities = newEntityTable()
	w.registry = newArchetypeRegistry(w.components)
}

// SetReuse toggles entity id recycling (world_set_reuse, §6).
func (w *World) SetReuse(on bool) {
	w.entities.setReuse(on)
}

// archetypeIDOrIntern returns sig's archetype id, interning it if this is
// somehow the first time it's observed (defensive: every signature an
// entity table hands back should already be interned).
func (w *World) archetypeIDOrIntern(sig Signature) ArchetypeID {
	if id, ok := w.registry.archetypeOf(sig); ok {
		return id
	}
	return w.registry.intern(sig)
}

// --- Registration (§6) ---

// RegisterComponent is the spec-literal primitive:
// register_component(world, bytesize, init_hook, free_hook) -> component_id.
func (w *World) RegisterComponent(bytesize uintptr, init InitHook, free FreeHook) (ComponentID, error) {
	return w.components.register(bytesize, init, free)
}

// RegisterPipeline creates a new pipeline (register_pipeline, §6).
func (w *World) RegisterPipeline() PipelineID {
	return w.dispatcher.registerPipeline()
}

// RegisterPhase appends a phase to pipeline (register_phase, §6).
func (w *World) RegisterPhase(pipeline PipelineID) (PhaseID, error) {
	return w.dispatcher.registerPhase(pipeline)
}

// RegisterSystem registers fn to run over archetype sig (and, unless
// exclusive, every strict superset of it) within pipeline/phase
// (register_system, §6).
func (w *World) RegisterSystem(fn SystemFunc, pipeline PipelineID, phase PhaseID, exclusive bool, sig Signature) (SystemID, error) {
	return w.dispatcher.registerSystem(fn, pipeline, phase, exclusive, sig)
}

// --- Entities (§6) ---

// EntityCreate creates a new entity in the empty archetype (entity_create).
func (w *World) EntityCreate() (EntityID, error) {
	return w.EntityCreateWith(0)
}

// EntityCreateWith creates a new entity directly in the archetype named by
// sig, running init hooks for every component in sig (entity_create_with).
func (w *World) EntityCreateWith(sig Signature) (EntityID, error) {
	if w.guard.locked() {
		return 0, WorldLockedError{}
	}
	e, err := w.entities.create()
	if err != nil {
		return 0, err
	}
	archID := w.registry.intern(0)
	arch := w.registry.get(archID)
	slot := arch.appendEntitySlot(e)
	w.entities.setLocation(e, 0, slot)

	if sig != 0 {
		if err := migrate(w, e, sig); err != nil {
			return 0, err
		}
	}
	return e, nil
}

// EntityDestroy destroys e, running finalizers over every component it
// carries. A no-op success for e == 0 or an already-dead entity
// (entity_destroy, B2).
func (w *World) EntityDestroy(e EntityID) bool {
	if e == NullEntity || !w.entities.alive(e) {
		return true
	}
	if w.guard.locked() {
		return false
	}
	sig, slot := w.entities.location(e)
	archID := w.archetypeIDOrIntern(sig)
	arch := w.registry.get(archID)

	for _, cid := range arch.components {
		info := w.components.info(cid)
		if info.free == nil {
			continue
		}
		ptr := arch.columnFor(cid).at(slot)
		w.guard.withLock(guardBitHook, func() { info.free(ptr) })
	}

	promoted, moved := arch.removeSlot(slot)
	if moved {
		w.entities.setLocation(promoted, sig, slot)
	}
	w.entities.release(e)
	return true
}

// EntityAdd adds the components in sig that e doesn't already carry
// (entity_add). Components already present are left untouched (§9 Open
// Questions: no-op, not re-init).
func (w *World) EntityAdd(e EntityID, sig Signature) (EntityID, error) {
	if !w.entities.alive(e) {
		return 0, EntityNotFoundError{Entity: e}
	}
	if w.guard.locked() {
		return 0, WorldLockedError{}
	}
	cur, _ := w.entities.location(e)
	if err := migrate(w, e, cur.Union(sig)); err != nil {
		return 0, err
	}
	return e, nil
}

// EntityRemove removes every component in sig that e currently carries
// (entity_remove).
func (w *World) EntityRemove(e EntityID, sig Signature) (bool, error) {
	if !w.entities.alive(e) {
		return false, EntityNotFoundError{Entity: e}
	}
	if w.guard.locked() {
		return false, WorldLockedError{}
	}
	cur, _ := w.entities.location(e)
	if err := migrate(w, e, cur.Subtract(sig)); err != nil {
		return false, err
	}
	return true, nil
}

// EntityGet returns a pointer to entity e's component cid, or nil if e
// isn't alive or doesn't carry it (entity_get).
func (w *World) EntityGet(e EntityID, cid ComponentID) unsafe.Pointer {
	if !w.entities.alive(e) {
		return nil
	}
	sig, slot := w.entities.location(e)
	if !sig.Has(cid) {
		return nil
	}
	archID, ok := w.registry.archetypeOf(sig)
	if !ok {
		return nil
	}
	col := w.registry.get(archID).columnFor(cid)
	if col == nil {
		return nil
	}
	return col.at(slot)
}

// ReuseDeadIDs is the explicit batch recycling sweep (reuse(), §4.3;
// exposed under World as a supplemented feature, see SPEC_FULL.md).
func (w *World) ReuseDeadIDs() {
	w.entities.sweepReuse()
}

// --- Stepping (§6) ---

// StepPipeline steps every phase of pipeline, in ascending phase id order.
func (w *World) StepPipeline(pipeline PipelineID, dt int64, data any) error {
	return stepPipeline(w, pipeline, dt, data)
}

// StepPipelinePhase steps a single phase of pipeline.
func (w *World) StepPipelinePhase(pipeline PipelineID, phase PhaseID, dt int64, data any) error {
	return stepPipelinePhase(w, pipeline, phase, dt, data)
}

// StepWorld steps every pipeline, in ascending pipeline id order.
func (w *World) StepWorld(dt int64, data any) {
	stepWorld(w, dt, data)
}

// CustomRun invokes an ad hoc system callback outside any pipeline, with the
// same exact-archetype-plus-supersets matching semantics as a registered
// system (custom_run).
func (w *World) CustomRun(fn SystemFunc, sig Signature, exclusive bool, dt int64, data any) {
	customRun(w, fn, sig, exclusive, dt, data)
}

// Scheduled returns the systems the dispatcher scheduled during the most
// recent pipeline/phase step, when Config.Debug is enabled.
func (w *World) Scheduled() []SystemFunc {
	return w.dispatcher.scheduled
}

// Executed returns the systems the dispatcher actually invoked during the
// most recent step, when Config.Debug is enabled. In debug mode systems are
// invoked over zero-entity archetypes too, so those calls are recorded here.
func (w *World) Executed() []SystemFunc {
	return w.dispatcher.executed
}

// ColumnPointer returns the base pointer of component cid's column within
// archetype t, or nil if cid isn't part of t. This is the lookup a system
// uses to obtain its component columns (§4.6's "System-to-input contract").
func (w *World) ColumnPointer(t ArchetypeID, cid ComponentID) unsafe.Pointer {
	col := w.registry.get(t).columnFor(cid)
	if col == nil {
		return nil
	}
	return col.at(0)
}
