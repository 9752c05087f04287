package viewport

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"model-stage/internal/geometry"
	"model-stage/internal/mathutil"
	"model-stage/internal/placement"
)

var frame1000x800 = geometry.Frame{Width: 1000, Height: 800}

func TestBoxWithoutRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	w, h := Box(frame1000x800, 1, nil)
	assert.InDelta(t, 930, w, 1e-9)
	assert.InDelta(t, 750, h, 1e-9)
}

func TestBoxContainFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	// box 900x720 is wider than 1:1, height constrains
	w, h := Box(frame1000x800, 1, &placement.Ratio{W: 1, H: 1})
	assert.InDelta(t, 750, w, 1e-9)
	assert.InDelta(t, 750, h, 1e-9)

	// 16:9 in 900x720: 900/720 = 1.25 < 1.777, width constrains
	w, h = Box(frame1000x800, 1, &placement.Ratio{W: 1.6, H: 0.9})
	assert.InDelta(t, 930, w, 1e-9)
	assert.InDelta(t, 900/(1.6/0.9)+30, h, 1e-9)
}

func TestBoxZeroArea(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	w, h := Box(frame1000x800, 0, nil)
	assert.Equal(t, 0.0, w)
	assert.Equal(t, 0.0, h)

	w, h = Box(frame1000x800, 0, &placement.Ratio{W: 2, H: 1})
	assert.Equal(t, 0.0, w)
	assert.Equal(t, 0.0, h)
	assert.Equal(t, BaseFOV, FieldOfView(w, h))
}

func TestFieldOfViewWide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	fov := FieldOfView(930, 750)
	want := 2 * math.Atan((930.0/750.0)*math.Tan(22.5*math.Pi/180)) * (180 / math.Pi)
	assert.InDelta(t, want, fov, 0.1)
	assert.InDelta(t, 54.37, fov, 0.1)
	assert.Greater(t, fov, BaseFOV)
}

// Tall viewers keep the base angle. The missing vertical compensation is a
// known asymmetry and kept as is.
func TestFieldOfViewTallKeepsBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	assert.Equal(t, BaseFOV, FieldOfView(300, 900))
	assert.Equal(t, BaseFOV, FieldOfView(500, 500))
}

func TestFitCentersOnDeclaredPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	spec := placement.Spec{
		SourceRef:    "a.glb",
		PositionX:    25,
		PositionY:    50,
		Z:            2,
		Rotation:     placement.Rotation{X: 10, Y: 45},
		AreaFraction: 0.5,
	}
	g := Fit(spec, frame1000x800)
	// box 450x360 + 30
	assert.InDelta(t, 480, g.Width, 1e-9)
	assert.InDelta(t, 390, g.Height, 1e-9)
	assert.InDelta(t, 250-240, g.Left, 1e-9)
	assert.InDelta(t, 400-195, g.Top, 1e-9)
	assert.InDelta(t, mathutil.WidenFOV(45, 480, 390), g.FieldOfView, 1e-9)
	assert.Equal(t, Orbit{YawDeg: 45, PitchDeg: 10, DistanceMeters: 5}, g.Orbit)
	assert.Equal(t, g.Width, g.Rect().Width)
}

func TestFitDimensionsNeverNegative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	for _, f := range []float64{0, 0.01, 0.3, 1, 2} {
		for _, r := range []*placement.Ratio{nil, {W: 0.2, H: 3}, {W: 4, H: 1}} {
			g := Fit(placement.Spec{AreaFraction: f, AspectRatio: r, PositionX: 50, PositionY: 50, Z: 1}, frame1000x800)
			assert.GreaterOrEqual(t, g.Width, 0.0)
			assert.GreaterOrEqual(t, g.Height, 0.0)
		}
	}
}

func TestFitModelScale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.viewport")
	defer teardown()

	// 330x230 viewer leaves 300x200
	s := FitModelScale(330, 230, mathutil.Vec3{3, 1, 1}, 0.9)
	assert.InDelta(t, 100*0.9, s, 1e-9)

	s = FitModelScale(330, 230, mathutil.Vec3{1, 1, 4}, 0)
	assert.InDelta(t, 50*DefaultModelBuffer, s, 1e-9)

	assert.Equal(t, 0.0, FitModelScale(20, 20, mathutil.Vec3{1, 1, 1}, 1))
	assert.Equal(t, 0.0, FitModelScale(330, 230, mathutil.Vec3{1, 0, 1}, 1))
}
