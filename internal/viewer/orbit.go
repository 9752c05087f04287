package viewer

import (
	"strings"

	"model-stage/internal/geometry"
)

// Orbit is the camera position relative to the model: yaw and pitch in
// degrees, distance in meters. It encodes as "<yaw>deg <pitch>deg <dist>m".
type Orbit struct {
	Yaw, Pitch, Distance float64
}

func (o Orbit) String() string {
	return geometry.FormatFloat(o.Yaw) + "deg " +
		geometry.FormatFloat(o.Pitch) + "deg " +
		geometry.FormatFloat(o.Distance) + "m"
}

// OrbitComponent indexes one token of an encoded orbit.
type OrbitComponent int

const (
	OrbitYaw OrbitComponent = iota
	OrbitPitch
	OrbitDistance
)

// ParseOrbit decodes an orbit string. Missing tokens take the value from
// DefaultOrbit; unreadable ones become NaN.
func ParseOrbit(s string) Orbit {
	parts := orbitTokens(s)
	return Orbit{
		Yaw:      geometry.ParseFloat(parts[OrbitYaw]),
		Pitch:    geometry.ParseFloat(parts[OrbitPitch]),
		Distance: geometry.ParseFloat(parts[OrbitDistance]),
	}
}

// ReplaceOrbitComponent swaps one token of an encoded orbit and leaves the
// other two untouched, so repeated edits compose.
func ReplaceOrbitComponent(orbit string, c OrbitComponent, value float64) string {
	parts := orbitTokens(orbit)
	unit := "deg"
	if c == OrbitDistance {
		unit = "m"
	}
	parts[c] = geometry.FormatFloat(value) + unit
	return strings.Join(parts[:], " ")
}

func orbitTokens(s string) [3]string {
	if strings.TrimSpace(s) == "" {
		s = DefaultOrbit
	}
	defaults := strings.Fields(DefaultOrbit)
	fields := strings.Fields(s)
	var parts [3]string
	for i := range parts {
		if i < len(fields) {
			parts[i] = fields[i]
		} else {
			parts[i] = defaults[i]
		}
	}
	return parts
}

// FieldOfView encodes a field of view in degrees ("45deg").
func FieldOfView(deg float64) string {
	return geometry.FormatFloat(deg) + "deg"
}
