package transform

import (
	"math"

	"model-stage/internal/geometry"
	"model-stage/internal/mathutil"
	"model-stage/internal/viewer"
)

const (
	// DepthStep is the depth change of one MoveAlongDepthAxis call.
	DepthStep = 0.12
	// MinDepth keeps the scale from degenerating when a subject comes close.
	MinDepth = 0.2
	// LateralStep is the X change, in percentage points, of one lateral step.
	LateralStep = 5.0
	// HeadingDepthFactor couples ground-plane motion to depth.
	HeadingDepthFactor = 0.024
	// DefaultHeadingDistance is the distance of a heading move when none is given.
	DefaultHeadingDistance = 5.0
)

// CenterPercent returns where the viewer's center sits, in percent of the
// current frame, together with its recorded depth.
func (c *Controller) CenterPercent(h *viewer.Handle) (x, y, depth float64) {
	f := c.Frame.Frame()
	r := h.Rect()
	x = geometry.CenterPercent(r.Left, f.Width, r.Width)
	y = geometry.CenterPercent(r.Top, f.Height, r.Height)
	return x, y, h.Depth()
}

// MoveAlongDepthAxis moves the subject into (delta > 0) or out of the screen.
// Receding moves it up by delta points, clamped at the top edge, and adds
// DepthStep; anything else moves it down, clamped at the bottom edge, and
// takes DepthStep away without going below MinDepth.
func (c *Controller) MoveAlongDepthAxis(h *viewer.Handle, delta float64) {
	if h == nil || math.IsNaN(delta) {
		return
	}
	x, y, z := c.CenterPercent(h)
	y -= delta
	if delta > 0 {
		y = math.Max(y, 0)
		z += DepthStep
	} else {
		y = math.Min(y, 100)
		z = math.Max(z-DepthStep, MinDepth)
	}
	c.moveTo(h, x, y, z)
}

// MoveAlongLateralAxis steps the subject LateralStep points right (sign > 0)
// or left, clamped to [0,100], keeping its depth.
func (c *Controller) MoveAlongLateralAxis(h *viewer.Handle, sign float64) {
	if h == nil || math.IsNaN(sign) {
		return
	}
	x, y, z := c.CenterPercent(h)
	if sign > 0 {
		x += LateralStep
	} else {
		x -= LateralStep
	}
	x = mathutil.Clamp(x, 0, 100)
	c.moveTo(h, x, y, z)
}

// MoveByHeadingAndDistance walks the subject distance units along its current
// yaw plus heading. The sideways part moves it across the screen; the
// forward part moves it down the screen and shrinks its depth by
// HeadingDepthFactor per unit, which reads as perspective foreshortening.
func (c *Controller) MoveByHeadingAndDistance(h *viewer.Handle, heading, distance float64) {
	if h == nil || math.IsNaN(heading) || math.IsNaN(distance) {
		return
	}
	yaw := h.Orbit().Yaw
	if math.IsNaN(yaw) {
		yaw = 0
	}
	rad := mathutil.Deg2Rad(yaw + heading)
	dx := -math.Sin(rad) * distance
	dz := math.Cos(rad) * distance

	r := h.Rect()
	z := h.Depth() - dz*HeadingDepthFactor
	h.SetPixels(viewer.StyleLeft, r.Left+dx)
	h.SetPixels(viewer.StyleTop, r.Top+dz)
	h.SetAttr(viewer.AttrDepth, geometry.FormatFloat(z))
	c.SetScale(h, z)
}

// PointAt turns the viewer's yaw so the subject faces the screen point
// (px, py), as when tracking the pointer.
func (c *Controller) PointAt(h *viewer.Handle, px, py float64) {
	if h == nil {
		return
	}
	cx, cy := h.Rect().Center()
	c.RotateAxis(h, AxisY, mathutil.Heading(cx, cy, px, py))
}

func (c *Controller) moveTo(h *viewer.Handle, x, y, z float64) {
	if c.Motion != nil {
		c.Motion.MoveTo(h, x, y, z)
		return
	}
	h.SetAttr(viewer.AttrDepth, geometry.FormatFloat(z))
	c.SetScale(h, z)
	c.MovePercent(h, x, y)
}
