package mathutil

import "math"

// WidenFOV converts a vertical field of view (degrees) into the angle that
// keeps the subject's apparent size when the viewport aspect is w/h:
//
//	fov' = 2·atan( (w/h)·tan(fov/2) )
func WidenFOV(fovDeg, w, h float64) float64 {
	half := Deg2Rad(fovDeg / 2)
	return Rad2Deg(2 * math.Atan((w/h)*math.Tan(half)))
}
