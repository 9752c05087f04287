package placement

// Rotation holds declared rotations in degrees.
type Rotation struct {
	X, Y, Z float64
}

// Ratio is a declared aspect ratio. Each component is a percentage scaled to
// 0..1; a missing or non-positive component is stored as 1.
type Ratio struct {
	W, H float64
}

// Value returns W/H.
func (r Ratio) Value() float64 {
	return r.W / r.H
}

// Spec describes where and how one placeholder wants its model to appear.
type Spec struct {
	SourceRef string
	ID        string

	// PositionX/PositionY are percentages of the frame the viewer centers on.
	PositionX, PositionY float64
	Z                    float64
	Rotation             Rotation

	// AreaFraction is the share of the frame (0..1) the viewer box may use.
	AreaFraction float64
	// AspectRatio is nil when no ratio was declared.
	AspectRatio *Ratio
}

// Placeholder attribute names and defaults.
const (
	AttrSource    = "src"
	AttrZ         = "z"
	AttrSize      = "size"
	AttrRotationX = "rotation-x"
	AttrRotationY = "rotation-y"
	AttrRotationZ = "rotation-z"
	AttrRatio     = "ratio"
	AttrPos       = "pos"
	AttrID        = "id"

	DefaultSize     = "100%"
	DefaultPos      = "50,50"
	DefaultPosition = 50.0
)
