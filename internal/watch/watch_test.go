package watch

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-stage/internal/geometry"
	"model-stage/internal/viewer"
)

const tick = 2 * time.Millisecond

func box(left, top string) *viewer.Handle {
	h := viewer.NewElement()
	h.SetStyles(
		viewer.StyleLeft, left,
		viewer.StyleTop, top,
		viewer.StyleWidth, "100px",
		viewer.StyleHeight, "100px",
	)
	return h
}

// collect ranges over seq on its own goroutine and forwards every value
// until ctx ends.
func collect[T any](ctx context.Context, seq iter.Seq[T]) <-chan T {
	ch := make(chan T, 16)
	go func() {
		defer close(ch)
		for v := range seq {
			select {
			case ch <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream ended")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}
	var zero T
	return zero
}

func TestPositionsSkipsBaseline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := box("0px", "0px")
	events := collect(ctx, Positions(ctx, h, tick))
	time.Sleep(10 * tick)
	h.SetStyle(viewer.StyleLeft, "40px")
	assert.Equal(t, Position{Left: "40px", Top: "0px"}, next(t, events))

	h.SetStyle(viewer.StyleTop, "8px")
	assert.Equal(t, Position{Left: "40px", Top: "8px"}, next(t, events))

	cancel()
	for range events {
	}
}

func TestBreakStopsSampling(t *testing.T) {
	h := box("0px", "0px")
	go func() {
		time.Sleep(10 * tick)
		h.SetStyle(viewer.StyleTransform, "scale(2)")
	}()

	var got []string
	for s := range Scales(context.Background(), h, tick) {
		got = append(got, s)
		break
	}
	assert.Equal(t, []string{"scale(2)"}, got)
}

func TestAttributeStreams(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := box("0px", "0px")
	orbits := collect(ctx, Orbits(ctx, h, tick))
	materials := collect(ctx, Materials(ctx, h, tick))
	visibility := collect(ctx, Visibility(ctx, h, tick))
	bounds := collect(ctx, Bounds(ctx, h, tick))
	time.Sleep(10 * tick)

	h.SetAttr(viewer.AttrCameraOrbit, "1deg 2deg 3m")
	h.SetAttr(viewer.AttrTexture, "wood.png")
	h.SetStyle(viewer.StyleDisplay, "none")
	h.SetStyle(viewer.StyleWidth, "150px")

	assert.Equal(t, "1deg 2deg 3m", next(t, orbits))
	assert.Equal(t, Material{Texture: "wood.png"}, next(t, materials))
	assert.Equal(t, "none", next(t, visibility))
	assert.Equal(t, geometry.Rect{Width: 150, Height: 100}, next(t, bounds))
}

func TestIntersectionsAndDistance(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a := box("0px", "0px")
	b := box("500px", "0px")

	hits := make(chan geometry.Rect, 16)
	go func() {
		for ra, rb := range Intersections(ctx, a, b, tick) {
			assert.True(t, ra.Intersects(rb))
			hits <- rb
			return
		}
	}()
	near := collect(ctx, WithinDistance(ctx, a, b, 200, tick))

	time.Sleep(10 * tick)
	select {
	case <-hits:
		t.Fatal("boxes do not overlap yet")
	default:
	}

	b.SetStyle(viewer.StyleLeft, "150px")
	assert.InDelta(t, 150, next(t, near), 1e-9)

	b.SetStyle(viewer.StyleLeft, "50px")
	rb := next(t, hits)
	assert.Equal(t, 50.0, rb.Left)
}

func TestSamplesStopOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	for range Samples(ctx, tick, func() int { return 1 }) {
		n++
		if n == 3 {
			cancel()
		}
	}
	assert.GreaterOrEqual(t, n, 3)
}
