package tessera

// factory implements the factory pattern for tessera worlds, mirroring the
// teacher's factory.go verbatim (package-level value, value-receiver
// methods, generic constructors named FactoryNew*).
type factory struct{}

// Factory is the global factory instance for creating worlds.
var Factory factory

// NewWorld creates a new World (world_new, §6).
func (f factory) NewWorld() *World {
	return NewWorld()
}

// FactoryNewComponent registers Go type T as a component on world and
// returns its typed handle, with no lifecycle hooks.
func FactoryNewComponent[T any](world *World) ComponentHandle[T] {
	h, err := RegisterComponent[T](world, nil, nil)
	if err != nil {
		panic(err)
	}
	return h
}
