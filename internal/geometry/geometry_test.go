package geometry

import (
	"math"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCoordinateLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	for _, v := range []string{"0", "12", "-7.5", "300px", " 42 ", "1e2"} {
		assert.Equal(t, ParseFloat(v), ResolveCoordinate(v, 1000, 200), "value %q", v)
	}
	assert.Equal(t, 300.0, ResolveCoordinate("300px", 1000, 200))
}

func TestResolveCoordinatePercent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	cases := []struct {
		p, axis, size float64
	}{
		{50, 1000, 200},
		{0, 800, 100},
		{100, 800, 100},
		{12.5, 1920, 333},
	}
	for _, c := range cases {
		got := ResolveCoordinate(Percent(c.p), c.axis, c.size)
		assert.InDelta(t, c.p/100*c.axis-c.size/2, got, 1e-9)
	}
	assert.Equal(t, 400.0, ResolveCoordinate(" 50% ", 1000, 200))
}

func TestResolveCoordinateMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	assert.True(t, math.IsNaN(ResolveCoordinate("abc", 1000, 10)))
	assert.True(t, math.IsNaN(ResolveCoordinate("", 1000, 10)))
	assert.True(t, math.IsNaN(ResolveCoordinate("x%", 1000, 10)))
}

func TestResolveSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	assert.Equal(t, 400.0, ResolveSize("50%", 99, 800))
	assert.Equal(t, 120.0, ResolveSize("", 120, 800))
	assert.Equal(t, 250.0, ResolveSize("250", 120, 800))
	// no clamp
	assert.Equal(t, 1600.0, ResolveSize("200%", 120, 800))
	assert.True(t, math.IsNaN(ResolveSize("wide", 120, 800)))
}

func TestCenterPercentInvertsPercentCoordinate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	left := ResolveCoordinate("37.5%", 1200, 240)
	assert.InDelta(t, 37.5, CenterPercent(left, 1200, 240), 1e-9)
}

func TestParseFloatPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	assert.Equal(t, 12.5, ParseFloat("12.5px"))
	assert.Equal(t, 40.0, ParseFloat("40%"))
	assert.Equal(t, 3.0, ParseFloat("3e"))
	assert.Equal(t, 0.5, ParseFloat(".5deg"))
	assert.True(t, math.IsInf(ParseFloat("Infinity"), 1))
	assert.True(t, math.IsNaN(ParseFloat("-")))
	assert.True(t, math.IsNaN(ParseFloat(".")))
}

func TestRectIntersectsAndDistance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	a := Rect{Left: 0, Top: 0, Width: 100, Height: 100}
	b := Rect{Left: 100, Top: 50, Width: 10, Height: 10}
	c := Rect{Left: 300, Top: 0, Width: 100, Height: 100}
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.Equal(t, 300.0, a.CenterDistance(c))
}

func TestWindowNotifiesSubscribers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.geometry")
	defer teardown()

	w := NewWindow(800, 600)
	frames, cancel := w.Subscribe()
	defer cancel()

	w.Resize(1024, 768)
	w.Resize(640, 480)
	select {
	case f := <-frames:
		assert.Equal(t, Frame{Width: 640, Height: 480}, f)
	case <-time.After(time.Second):
		require.Fail(t, "no frame received")
	}
	assert.Equal(t, 480.0, w.Frame().Min())
}
