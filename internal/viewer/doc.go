/*
Package viewer wraps one live <model-viewer> element.

A Handle owns the element's observable state: position, size, transform and
opacity live in the inline style, camera and material settings live in plain
attributes. Everything that moves or inspects a viewer goes through the
handle, which serializes access, so there is no second copy of the state to
keep in sync.

The 3-D rendering itself belongs to an external capability. This package only
models what the layout engine needs from it: a "defined" readiness signal, a
per-viewer load signal, the model's bounding box and its animation names.
*/
package viewer

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'stage.viewer'
func tracer() tracing.Trace {
	return tracing.Select("stage.viewer")
}
