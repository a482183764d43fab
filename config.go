package tessera

// Config holds global tuning knobs for the world engine.
var Config config = config{
	InitialColumnCapacity: 8,
	GrowthFactor:          2,
	MaxComponents:         MaxComponentTypes,
	MaxEntities:           100_000_000,
	InitialPhaseCapacity:  4,
	Debug:                 false,
}

type config struct {
	// InitialColumnCapacity is the number of elements a freshly allocated
	// column (or entity slot array) starts with.
	InitialColumnCapacity int

	// GrowthFactor is the multiplier applied to a column's capacity when it
	// fills up.
	GrowthFactor int

	// MaxComponents caps the number of distinct component types a world may
	// register. Never exceeds MaxComponentTypes (63): bit 63 of a Signature
	// is permanently reserved.
	MaxComponents int

	// MaxEntities caps the entity id space.
	MaxEntities int

	// InitialPhaseCapacity is the number of system slots a freshly
	// registered phase preallocates before its system list grows.
	InitialPhaseCapacity int

	// Debug enables the dispatcher's scheduled/executed diagnostic lists.
	Debug bool
}

// SetDebug toggles the dispatcher's scheduled/executed diagnostic lists.
func (c *config) SetDebug(on bool) {
	c.Debug = on
}

// SetMaxComponents lowers the component cap below MaxComponentTypes. Values
// above MaxComponentTypes are clamped.
func (c *config) SetMaxComponents(n int) {
	if n > MaxComponentTypes {
		n = MaxComponentTypes
	}
	c.MaxComponents = n
}
