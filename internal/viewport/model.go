package viewport

import (
	"math"

	"model-stage/internal/mathutil"
)

// DefaultModelBuffer leaves a margin around a model scaled to its viewer.
const DefaultModelBuffer = 0.9

// FitModelScale returns the transform scale that makes a model with extents
// size fit inside a viewerW×viewerH viewer, Padding excluded. Depth is
// compared against the viewer height. It returns 0 when the model has a
// degenerate extent or the viewer is too small to hold anything.
func FitModelScale(viewerW, viewerH float64, size mathutil.Vec3, buffer float64) float64 {
	if buffer <= 0 {
		buffer = DefaultModelBuffer
	}
	w := viewerW - Padding
	h := viewerH - Padding
	if w <= 0 || h <= 0 {
		return 0
	}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return 0
	}
	s := math.Min(w/size[0], math.Min(h/size[1], h/size[2]))
	return s * buffer
}
