package tessera

import "fmt"

// ZeroSizeComponentError is returned by RegisterComponent when the
// component's byte size is zero.
type ZeroSizeComponentError struct{}

func (e ZeroSizeComponentError) Error() string {
	return "component bytesize must be greater than zero"
}

// ComponentCapExceededError is returned when registering a component would
// exceed Config.MaxComponents.
type ComponentCapExceededError struct {
	Cap int
}

func (e ComponentCapExceededError) Error() string {
	return fmt.Sprintf("component cap exceeded: max %d component types", e.Cap)
}

// UnknownPipelineError is returned for an unregistered pipeline id.
type UnknownPipelineError struct {
	Pipeline PipelineID
}

func (e UnknownPipelineError) Error() string {
	return fmt.Sprintf("unknown pipeline id %d", e.Pipeline)
}

// UnknownPhaseError is returned for an unregistered phase id within a
// pipeline.
type UnknownPhaseError struct {
	Pipeline PipelineID
	Phase    PhaseID
}

func (e UnknownPhaseError) Error() string {
	return fmt.Sprintf("unknown phase %d in pipeline %d", e.Phase, e.Pipeline)
}

// EntityExhaustedError is returned when the entity id space is saturated.
type EntityExhaustedError struct {
	Cap int
}

func (e EntityExhaustedError) Error() string {
	return fmt.Sprintf("entity id space exhausted: cap %d", e.Cap)
}

// AllocationFailureError is returned by column growth (column.go's grow,
// via appendZero/copyColumn) when a column would have to grow past
// maxColumnBytes, instead of handing reflect.New an unbounded size.
type AllocationFailureError struct {
	Reason string
}

func (e AllocationFailureError) Error() string {
	return fmt.Sprintf("allocation failure: %s", e.Reason)
}

// WorldLockedError is returned when a mutating operation is attempted while
// an init or free hook holds the reentrancy guard open.
type WorldLockedError struct{}

func (e WorldLockedError) Error() string {
	return "world is locked: cannot mutate from within a component hook"
}

// UnknownComponentNameError is returned by Builder.WithNamed for a name with
// no RegisterComponentName association.
type UnknownComponentNameError struct {
	Name string
}

func (e UnknownComponentNameError) Error() string {
	return fmt.Sprintf("no component registered under name %q", e.Name)
}

// EntityNotFoundError is returned by operations addressing a dead or unknown
// entity id (entity_get uses a nil return instead, per spec).
type EntityNotFoundError struct {
	Entity EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not alive", e.Entity)
}
