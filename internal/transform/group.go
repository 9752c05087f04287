package transform

import (
	"context"

	"model-stage/internal/geometry"
	"model-stage/internal/viewer"
	"model-stage/internal/viewport"
)

// MoveAll moves every handle to x, y.
func (c *Controller) MoveAll(hs []*viewer.Handle, x, y string) {
	for _, h := range hs {
		c.Move(h, x, y)
	}
}

// ScaleAll applies SetScale to every handle.
func (c *Controller) ScaleAll(hs []*viewer.Handle, depth float64) {
	for _, h := range hs {
		c.SetScale(h, depth)
	}
}

// SetColor sets the model color of a viewer.
func SetColor(h *viewer.Handle, color string) {
	if h != nil {
		h.SetAttr(viewer.AttrColor, color)
	}
}

// SetMaterial sets the model material of a viewer.
func SetMaterial(h *viewer.Handle, material string) {
	if h != nil {
		h.SetAttr(viewer.AttrMaterial, material)
	}
}

// SetEnvironment lights every viewer with the HDR image at path. An empty
// path is ignored.
func SetEnvironment(hs []*viewer.Handle, path string) {
	if path == "" {
		return
	}
	for _, h := range hs {
		h.SetAttr(viewer.AttrEnvironmentImage, path)
	}
}

// SetLight points the skybox light of every viewer along (x°, y°, z m) and
// softens its shadow.
func SetLight(hs []*viewer.Handle, x, y, z float64) {
	dir := viewer.Orbit{Yaw: x, Pitch: y, Distance: z}.String()
	for _, h := range hs {
		h.SetAttr(viewer.AttrShadowSoftness, "1")
		h.SetStyle(viewer.StyleLightDirection, dir)
	}
}

// FitModel waits for the viewer to load, then scales it so its model's
// bounding box fits the viewer with buffer headroom (0 means the default)
// and adds a Padding margin. It returns without change when ctx ends first
// or the viewer reports no usable bounding box.
func (c *Controller) FitModel(ctx context.Context, h *viewer.Handle, buffer float64) {
	if h == nil {
		return
	}
	select {
	case <-h.Loaded():
	case <-ctx.Done():
		return
	}
	box, ok := h.BoundingBox()
	if !ok {
		return
	}
	r := h.Rect()
	s := viewport.FitModelScale(r.Width, r.Height, box.Size(), buffer)
	if s <= 0 {
		tracer().Debugf("viewer %q: degenerate model fit", h.ID())
		return
	}
	h.SetStyles(
		viewer.StyleTransform, ScaleTransform(s),
		viewer.StyleMargin, geometry.FormatFloat(viewport.Padding)+"px",
	)
}

// AutoResize keeps the viewer fullscreen: it resizes now and again after
// every window resize until ctx ends.
func (c *Controller) AutoResize(ctx context.Context, h *viewer.Handle, win *geometry.Window) {
	if h == nil {
		return
	}
	frames, cancel := win.Subscribe()
	resize := func(f geometry.Frame) {
		h.SetPixels(viewer.StyleWidth, f.Width)
		h.SetPixels(viewer.StyleHeight, f.Height)
	}
	resize(win.Frame())
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case f := <-frames:
				resize(f)
			}
		}
	}()
}
