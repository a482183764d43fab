/*
Package tessera provides a tiny, archetype-based Entity-Component-System (ECS)
runtime.

Tessera hosts a World that stores entities (opaque 64-bit identifiers),
user-defined components (plain data records grouped by the set of components
each entity carries — its archetype), and systems (callbacks invoked over
batches of entities that match an archetype). Systems are scheduled in
user-defined pipelines, each ordered into phases.

Core Concepts:

  - Entity: an opaque id naming a conceptual "thing". Carries no data itself.
  - Component: a fixed-size record of data attached to an entity.
  - Archetype: the set of component types attached to an entity, encoded as
    a 64-bit bitmask (a Signature).
  - System: a callback invoked by the dispatcher over every archetype that
    matches its declared component set.
  - Pipeline / Phase: an ordered schedule of systems, stepped as a unit.

Basic Usage:

	world := tessera.Factory.NewWorld()

	position, _ := tessera.RegisterComponent[Position](world, nil, nil)
	velocity, _ := tessera.RegisterComponent[Velocity](world, nil, nil)

	e, _ := world.EntityCreateWith(position.Signature().Union(velocity.Signature()))
	pos := tessera.Get[Position](world, e, position)
	pos.X, pos.Y = 1, 2

	moveID, _ := world.RegisterSystem(moveSystem, 0, 0, true,
		position.Signature().Union(velocity.Signature()))
	_ = moveID

	world.StepWorld(1, nil)

Tessera is the data engine underneath a larger game/simulation framework but
also works standalone. It is single-threaded and cooperative: every public
operation runs to completion before the next begins, and column pointers
handed to a system are valid only for the duration of that one call.
*/
package tessera
