/*
Package watch turns viewer state into streams of change events by periodic
sampling.

Streams are lazy iter.Seq values: nothing is sampled until a range loop
starts, every range starts a fresh sampler with a fresh baseline, and
breaking out of the loop stops it. Exact change timing is not part of the
contract; a change that is undone between two samples is not reported.
*/
package watch

import (
	"context"
	"iter"
	"time"

	"model-stage/internal/geometry"
	"model-stage/internal/viewer"
)

// DefaultInterval is the sampling period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Changes samples every interval and yields each value that differs from the
// previous sample. The first sample is the baseline and is not yielded.
func Changes[T comparable](ctx context.Context, interval time.Duration, sample func() T) iter.Seq[T] {
	return func(yield func(T) bool) {
		last := sample()
		for v := range Samples(ctx, interval, sample) {
			if v == last {
				continue
			}
			last = v
			if !yield(v) {
				return
			}
		}
	}
}

// Samples yields sample() every interval until ctx ends or the consumer
// stops.
func Samples[T any](ctx context.Context, interval time.Duration, sample func() T) iter.Seq[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return func(yield func(T) bool) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !yield(sample()) {
					return
				}
			}
		}
	}
}

// Position is the raw left/top style of a viewer.
type Position struct {
	Left, Top string
}

// Size is the raw width/height style of a viewer.
type Size struct {
	Width, Height string
}

// Material is the material and texture of a viewer.
type Material struct {
	Material, Texture string
}

// Positions reports moves of h.
func Positions(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[Position] {
	return Changes(ctx, interval, func() Position {
		return Position{Left: h.Style(viewer.StyleLeft), Top: h.Style(viewer.StyleTop)}
	})
}

// Sizes reports resizes of h.
func Sizes(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[Size] {
	return Changes(ctx, interval, func() Size {
		return Size{Width: h.Style(viewer.StyleWidth), Height: h.Style(viewer.StyleHeight)}
	})
}

// Scales reports changes of the transform of h.
func Scales(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[string] {
	return styleChanges(ctx, h, viewer.StyleTransform, interval)
}

// Opacities reports opacity changes of h.
func Opacities(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[string] {
	return styleChanges(ctx, h, viewer.StyleOpacity, interval)
}

// Visibility reports changes of the display style of h.
func Visibility(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[string] {
	return styleChanges(ctx, h, viewer.StyleDisplay, interval)
}

// Orbits reports camera orbit changes of h.
func Orbits(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[string] {
	return Changes(ctx, interval, func() string {
		v, _ := h.Attr(viewer.AttrCameraOrbit)
		return v
	})
}

// Materials reports material or texture changes of h.
func Materials(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[Material] {
	return Changes(ctx, interval, func() Material {
		m, _ := h.Attr(viewer.AttrMaterial)
		t, _ := h.Attr(viewer.AttrTexture)
		return Material{Material: m, Texture: t}
	})
}

// Bounds reports changes of the pixel box of h.
func Bounds(ctx context.Context, h *viewer.Handle, interval time.Duration) iter.Seq[geometry.Rect] {
	return Changes(ctx, interval, h.Rect)
}

// Intersections yields the two boxes on every sample at which a and b
// overlap.
func Intersections(ctx context.Context, a, b *viewer.Handle, interval time.Duration) iter.Seq2[geometry.Rect, geometry.Rect] {
	return func(yield func(geometry.Rect, geometry.Rect) bool) {
		sample := func() [2]geometry.Rect { return [2]geometry.Rect{a.Rect(), b.Rect()} }
		for r := range Samples(ctx, interval, sample) {
			if !r[0].Intersects(r[1]) {
				continue
			}
			if !yield(r[0], r[1]) {
				return
			}
		}
	}
}

// WithinDistance yields the center distance of a and b on every sample at
// which it is at most d pixels.
func WithinDistance(ctx context.Context, a, b *viewer.Handle, d float64, interval time.Duration) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		sample := func() float64 { return a.Rect().CenterDistance(b.Rect()) }
		for dist := range Samples(ctx, interval, sample) {
			if dist > d {
				continue
			}
			if !yield(dist) {
				return
			}
		}
	}
}

func styleChanges(ctx context.Context, h *viewer.Handle, prop string, interval time.Duration) iter.Seq[string] {
	return Changes(ctx, interval, func() string {
		return h.Style(prop)
	})
}
