package transform

import (
	"math"
	"strings"

	"model-stage/internal/geometry"
	"model-stage/internal/viewer"
)

// Mover animates a viewer toward a center position (percent of frame) and
// depth. The transition engine implements it.
type Mover interface {
	MoveTo(h *viewer.Handle, xPercent, yPercent, depth float64)
}

// Controller bundles the frame and the mover the operations need.
type Controller struct {
	Frame  geometry.FrameSource
	Motion Mover
}

// New returns a Controller over frame. motion may be nil, in which case
// stepped moves jump straight to their target.
func New(frame geometry.FrameSource, motion Mover) *Controller {
	return &Controller{Frame: frame, Motion: motion}
}

// Move places the viewer at x, y. Percentages center the viewer on that
// point of the frame; literals are pixel offsets of its top-left corner.
func (c *Controller) Move(h *viewer.Handle, x, y string) {
	if h == nil {
		return
	}
	f := c.Frame.Frame()
	r := h.Rect()
	h.SetPixels(viewer.StyleLeft, geometry.ResolveCoordinate(x, f.Width, r.Width))
	h.SetPixels(viewer.StyleTop, geometry.ResolveCoordinate(y, f.Height, r.Height))
}

// MovePercent centers the viewer on (x%, y%) of the frame.
func (c *Controller) MovePercent(h *viewer.Handle, x, y float64) {
	c.Move(h, geometry.Percent(x), geometry.Percent(y))
}

// Resize sets width and height independently, each either a percentage of
// the matching frame axis or literal pixels.
func (c *Controller) Resize(h *viewer.Handle, width, height string) {
	if h == nil {
		return
	}
	f := c.Frame.Frame()
	h.SetPixels(viewer.StyleWidth, geometry.ResolveSize(strings.TrimSpace(width), math.NaN(), f.Width))
	h.SetPixels(viewer.StyleHeight, geometry.ResolveSize(strings.TrimSpace(height), math.NaN(), f.Height))
}

// ResizeUniform makes the viewer a square of percent% of the smaller frame
// axis, so it never outgrows either dimension.
func (c *Controller) ResizeUniform(h *viewer.Handle, percent float64) {
	if h == nil {
		return
	}
	size := percent / 100 * c.Frame.Frame().Min()
	h.SetPixels(viewer.StyleWidth, size)
	h.SetPixels(viewer.StyleHeight, size)
}

// Axis names a camera orbit component.
type Axis int

const (
	// AxisX is the pitch, in degrees.
	AxisX Axis = iota
	// AxisY is the yaw, in degrees.
	AxisY
	// AxisZ is the camera distance, in meters.
	AxisZ
)

func (a Axis) component() viewer.OrbitComponent {
	switch a {
	case AxisX:
		return viewer.OrbitPitch
	case AxisY:
		return viewer.OrbitYaw
	default:
		return viewer.OrbitDistance
	}
}

// RotateAxis replaces one component of the camera orbit and keeps the other
// two, so calls for different axes compose.
func (c *Controller) RotateAxis(h *viewer.Handle, axis Axis, value float64) {
	if h == nil || math.IsNaN(value) {
		return
	}
	h.UpdateAttr(viewer.AttrCameraOrbit, func(orbit string, _ bool) string {
		return viewer.ReplaceOrbitComponent(orbit, axis.component(), value)
	})
}

// SetScale shrinks the viewer as depth grows: the transform scale is 1/depth.
func (c *Controller) SetScale(h *viewer.Handle, depth float64) {
	if h == nil {
		return
	}
	s := 1 / depth
	if math.IsNaN(s) || math.IsInf(s, 0) {
		tracer().Debugf("ignoring scale for depth %v", depth)
		return
	}
	h.SetStyle(viewer.StyleTransform, ScaleTransform(s))
}

// ScaleTransform formats a uniform CSS scale.
func ScaleTransform(s float64) string {
	return "scale(" + geometry.FormatFloat(s) + ")"
}

// ParseScaleTransform reads the factor of a "scale(x)" transform, 1 when the
// transform is empty or of another form.
func ParseScaleTransform(t string) float64 {
	t = strings.TrimSpace(t)
	if !strings.HasPrefix(t, "scale(") {
		return 1
	}
	s := geometry.ParseFloat(strings.TrimPrefix(t, "scale("))
	if math.IsNaN(s) {
		return 1
	}
	return s
}

// Center puts the viewer in the middle of the frame.
func (c *Controller) Center(h *viewer.Handle) {
	if h == nil {
		return
	}
	f := c.Frame.Frame()
	r := h.Rect()
	h.SetPixels(viewer.StyleLeft, (f.Width-r.Width)/2)
	h.SetPixels(viewer.StyleTop, (f.Height-r.Height)/2)
}

// Fullscreen stretches the viewer over the whole frame.
func (c *Controller) Fullscreen(h *viewer.Handle) {
	if h == nil {
		return
	}
	f := c.Frame.Frame()
	h.SetPixels(viewer.StyleLeft, 0)
	h.SetPixels(viewer.StyleTop, 0)
	h.SetPixels(viewer.StyleWidth, f.Width)
	h.SetPixels(viewer.StyleHeight, f.Height)
}
