/*
Package transform moves, sizes, scales and turns live viewers.

Every operation resolves percentages against the frame current at call time
and mutates the handle in place. A nil handle or unreadable numeric input is
a caller error and silently does nothing.
*/
package transform

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'stage.transform'
func tracer() tracing.Trace {
	return tracing.Select("stage.transform")
}
