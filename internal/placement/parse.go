package placement

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"model-stage/internal/geometry"
)

// ErrInvalid marks a placeholder whose declaration cannot be placed.
var ErrInvalid = errors.New("invalid placement")

// Parse builds a Spec from placeholder attributes. A missing src or a missing
// or non-numeric z makes the declaration invalid; those are never defaulted.
func Parse(attrs map[string]string) (Spec, error) {
	src := attrs[AttrSource]
	if src == "" {
		return Spec{}, fmt.Errorf("placement: %w: missing %s", ErrInvalid, AttrSource)
	}
	zAttr := attrs[AttrZ]
	z := geometry.ParseFloat(zAttr)
	if zAttr == "" || math.IsNaN(z) {
		return Spec{}, fmt.Errorf("placement: %w: %s=%q is not numeric", ErrInvalid, AttrZ, zAttr)
	}

	s := Spec{
		SourceRef: src,
		ID:        attrs[AttrID],
		Z:         z,
		Rotation: Rotation{
			X: rotation(attrs[AttrRotationX]),
			Y: rotation(attrs[AttrRotationY]),
			Z: rotation(attrs[AttrRotationZ]),
		},
		AreaFraction: areaFraction(attrs[AttrSize]),
		AspectRatio:  parseRatio(attrs[AttrRatio]),
	}
	s.PositionX, s.PositionY = parsePos(attrs[AttrPos])
	return s, nil
}

func rotation(v string) float64 {
	r := geometry.ParseFloat(v)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// areaFraction reads "80%" (or a bare "80") as 0.8. Unreadable sizes fall back
// to the full box and negative ones collapse to zero.
func areaFraction(v string) float64 {
	if v == "" {
		v = DefaultSize
	}
	f := geometry.ParseFloat(v) / 100
	if math.IsNaN(f) {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

func parseRatio(v string) *Ratio {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	r := Ratio{W: 1, H: 1}
	parts := strings.Split(v, ",")
	if w := geometry.ParseFloat(parts[0]) / 100; w > 0 {
		r.W = w
	}
	if len(parts) > 1 {
		if h := geometry.ParseFloat(parts[1]) / 100; h > 0 {
			r.H = h
		}
	}
	return &r
}

func parsePos(v string) (float64, float64) {
	if v == "" {
		v = DefaultPos
	}
	parts := strings.Split(v, ",")
	x := geometry.ParseFloat(parts[0])
	y := math.NaN()
	if len(parts) > 1 {
		y = geometry.ParseFloat(parts[1])
	}
	if math.IsNaN(x) {
		x = DefaultPosition
	}
	if math.IsNaN(y) {
		y = DefaultPosition
	}
	return x, y
}
