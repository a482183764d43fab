package tessera

// SystemFunc is the callback a system invokes. It receives the world, the
// delta-time, the opaque user data, the archetype currently being iterated,
// and that archetype's entity count. numEntities == 0 implies archetype may
// be NoArchetype (a signature with no entities and no interned record yet,
// reported only in debug builds); a system must check numEntities before
// resolving column pointers from archetype.
type SystemFunc func(w *World, dt int64, data any, archetype ArchetypeID, numEntities int)

// systemRecord is the §3 "System record".
type systemRecord struct {
	id        SystemID
	fn        SystemFunc
	signature Signature
	pipeline  PipelineID
	phase     PhaseID
	exclusive bool
}

// phaseRecord holds the systems registered in one phase, in registration
// order.
type phaseRecord struct {
	systems []SystemID
}

// pipelineRecord is an ordered sequence of phases.
//
// No direct teacher equivalent — the teacher has no scheduler at all, only
// ad hoc Query+Cursor iteration. Built in the teacher's plain-struct,
// dense-small-id idiom; grounded on cursor.go's iteration-state-machine
// shape for how run_system below walks one archetype's slot range, and on
// original_source/tnecs.c for the scheduled-vs-executed diagnostics and the
// ordering guarantees (see SPEC_FULL.md SUPPLEMENTED FEATURES).
type pipelineRecord struct {
	phases []*phaseRecord
}

// dispatcher owns every pipeline/phase/system and the debug-mode
// scheduled/executed diagnostic lists.
type dispatcher struct {
	systems   []*systemRecord // systems[id]
	pipelines []*pipelineRecord

	scheduled []SystemFunc
	executed  []SystemFunc
}

func newDispatcher() *dispatcher {
	d := &dispatcher{}
	// Pipeline 0, phase 0, exist at world creation (§6).
	d.registerPipeline()
	d.registerPhase(0)
	return d
}

func (d *dispatcher) registerPipeline() PipelineID {
	id := PipelineID(len(d.pipelines))
	d.pipelines = append(d.pipelines, &pipelineRecord{})
	return id
}

func (d *dispatcher) registerPhase(pipeline PipelineID) (PhaseID, error) {
	if int(pipeline) >= len(d.pipelines) {
		return 0, UnknownPipelineError{Pipeline: pipeline}
	}
	p := d.pipelines[pipeline]
	id := PhaseID(len(p.phases))
	p.phases = append(p.phases, &phaseRecord{
		systems: make([]SystemID, 0, Config.InitialPhaseCapacity),
	})
	return id, nil
}

func (d *dispatcher) registerSystem(fn SystemFunc, pipeline PipelineID, phase PhaseID, exclusive bool, sig Signature) (SystemID, error) {
	if int(pipeline) >= len(d.pipelines) {
		return 0, UnknownPipelineError{Pipeline: pipeline}
	}
	p := d.pipelines[pipeline]
	if int(phase) >= len(p.phases) {
		return 0, UnknownPhaseError{Pipeline: pipeline, Phase: phase}
	}
	id := SystemID(len(d.systems))
	rec := &systemRecord{id: id, fn: fn, signature: sig, pipeline: pipeline, phase: phase, exclusive: exclusive}
	d.systems = append(d.systems, rec)
	p.phases[phase].systems = append(p.phases[phase].systems, id)
	return id, nil
}

func (d *dispatcher) resetDiagnostics() {
	if !Config.Debug {
		return
	}
	d.scheduled = d.scheduled[:0]
	d.executed = d.executed[:0]
}

// runSystem is run_system (§4.6): invoke sys over its exact archetype, then,
// unless it's exclusive, over every strict superset archetype, in ascending
// archetype id order (§5's ordering guarantee).
func runSystem(w *World, sys *systemRecord, dt int64, data any) {
	archID, ok := w.registry.archetypeOf(sys.signature)
	if !ok {
		// sys.signature has never been interned as an exact archetype, so
		// it necessarily matches zero entities — but archetypes that are
		// strict supersets of it may already exist and do carry entities.
		// Found by scanning the registry rather than interning sys.signature
		// here, since the dispatcher only reads the Registry (§2).
		if Config.Debug {
			w.dispatcher.scheduled = append(w.dispatcher.scheduled, sys.fn)
			w.dispatcher.executed = append(w.dispatcher.executed, sys.fn)
			sys.fn(w, dt, data, NoArchetype, 0)
		}
		if sys.exclusive {
			return
		}
		supersets := w.registry.supersetsOf(sys.signature)
		sortArchetypeIDs(supersets)
		for _, t := range supersets {
			if Config.Debug {
				w.dispatcher.scheduled = append(w.dispatcher.scheduled, sys.fn)
			}
			invokeOne(w, sys, dt, data, t)
		}
		return
	}

	if Config.Debug {
		w.dispatcher.scheduled = append(w.dispatcher.scheduled, sys.fn)
	}
	invokeOne(w, sys, dt, data, archID)

	if sys.exclusive {
		return
	}
	arch := w.registry.get(archID)
	supersets := append([]ArchetypeID(nil), arch.supersets...)
	sortArchetypeIDs(supersets)
	for _, t := range supersets {
		if Config.Debug {
			w.dispatcher.scheduled = append(w.dispatcher.scheduled, sys.fn)
		}
		invokeOne(w, sys, dt, data, t)
	}
}

func invokeOne(w *World, sys *systemRecord, dt int64, data any, archID ArchetypeID) {
	n := w.registry.get(archID).numEntities()
	if n == 0 && !Config.Debug {
		return // release builds skip dispatch over empty archetypes
	}
	if Config.Debug {
		w.dispatcher.executed = append(w.dispatcher.executed, sys.fn)
	}
	sys.fn(w, dt, data, archID, n)
}

func sortArchetypeIDs(ids []ArchetypeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// stepPipelinePhase runs every system in one phase, in registration order.
func stepPipelinePhase(w *World, pipeline PipelineID, phase PhaseID, dt int64, data any) error {
	if int(pipeline) >= len(w.dispatcher.pipelines) {
		return UnknownPipelineError{Pipeline: pipeline}
	}
	p := w.dispatcher.pipelines[pipeline]
	if int(phase) >= len(p.phases) {
		return UnknownPhaseError{Pipeline: pipeline, Phase: phase}
	}
	w.dispatcher.resetDiagnostics()
	for _, sysID := range p.phases[phase].systems {
		runSystem(w, w.dispatcher.systems[sysID], dt, data)
	}
	return nil
}

// stepPipeline runs every phase of pipeline, in ascending phase id order.
func stepPipeline(w *World, pipeline PipelineID, dt int64, data any) error {
	if int(pipeline) >= len(w.dispatcher.pipelines) {
		return UnknownPipelineError{Pipeline: pipeline}
	}
	w.dispatcher.resetDiagnostics()
	p := w.dispatcher.pipelines[pipeline]
	for phase := range p.phases {
		for _, sysID := range p.phases[phase].systems {
			runSystem(w, w.dispatcher.systems[sysID], dt, data)
		}
	}
	return nil
}

// stepWorld runs every pipeline, in ascending pipeline id order.
func stepWorld(w *World, dt int64, data any) {
	for pipeline := range w.dispatcher.pipelines {
		_ = stepPipeline(w, PipelineID(pipeline), dt, data)
	}
}

// customRun invokes an ad hoc system callback outside any pipeline, with the
// same exact-archetype-plus-supersets matching semantics.
func customRun(w *World, fn SystemFunc, sig Signature, exclusive bool, dt int64, data any) {
	ad := &systemRecord{fn: fn, signature: sig, exclusive: exclusive}
	runSystem(w, ad, dt, data)
}
