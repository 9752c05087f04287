package viewer

import (
	"sync"

	"model-stage/internal/mathutil"
)

// Capability is the external embeddable viewer element type. Migration may
// only start once it reports itself as defined.
type Capability interface {
	Defined() bool
	// WhenDefined is closed once the element type is registered.
	WhenDefined() <-chan struct{}
}

// Registry is a Capability that becomes defined on the first Define call.
type Registry struct {
	once    sync.Once
	defined chan struct{}
}

// NewRegistry returns an undefined Registry.
func NewRegistry() *Registry {
	return &Registry{defined: make(chan struct{})}
}

// DefinedRegistry returns a Registry that is already defined.
func DefinedRegistry() *Registry {
	r := NewRegistry()
	r.Define()
	return r
}

// Define marks the element type as registered. Further calls are no-ops.
func (r *Registry) Define() {
	r.once.Do(func() {
		tracer().Debugf("%s element type defined", TagName)
		close(r.defined)
	})
}

func (r *Registry) Defined() bool {
	select {
	case <-r.defined:
		return true
	default:
		return false
	}
}

func (r *Registry) WhenDefined() <-chan struct{} {
	return r.defined
}

// Box3 is an axis-aligned model bounding box in model units.
type Box3 struct {
	Min, Max mathutil.Vec3
}

// Size returns the box extents along x, y and z.
func (b Box3) Size() mathutil.Vec3 {
	return b.Max.Sub(b.Min)
}
