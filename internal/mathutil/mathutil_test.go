package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegreeConversion(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Deg2Rad(90), 1e-12)
	assert.InDelta(t, 180, Rad2Deg(math.Pi), 1e-12)
}

func TestHeading(t *testing.T) {
	assert.InDelta(t, 0, Heading(0, 0, 0, 10), 1e-9)
	assert.InDelta(t, 90, Heading(0, 0, -10, 0), 1e-9)
	assert.InDelta(t, -90, Heading(0, 0, 10, 0), 1e-9)
	assert.InDelta(t, 180, math.Abs(Heading(0, 0, 0, -10)), 1e-9)
}

func TestWidenFOV(t *testing.T) {
	assert.InDelta(t, 45, WidenFOV(45, 100, 100), 1e-9)
	assert.InDelta(t, 54.372, WidenFOV(45, 930, 750), 1e-3)
	assert.Less(t, WidenFOV(45, 50, 100), 45.0)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
	assert.Equal(t, 100.0, Clamp(104, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
	assert.True(t, math.IsNaN(Clamp(math.NaN(), 0, 100)))
}

func TestVec3Sub(t *testing.T) {
	assert.Equal(t, Vec3{1, 2, 3}, Vec3{2, 4, 6}.Sub(Vec3{1, 2, 3}))
}
