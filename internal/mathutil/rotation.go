package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Heading returns the yaw in degrees that turns a subject sitting at
// (cx, cy) toward the screen point (px, py). 0° faces down the screen.
func Heading(cx, cy, px, py float64) float64 {
	return Rad2Deg(math.Atan2(cx-px, py-cy))
}
