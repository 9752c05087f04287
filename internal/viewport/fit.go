// Package viewport derives on-screen geometry and camera settings for a
// model viewer from a placement declaration and the current frame.
package viewport

import (
	"math"

	"model-stage/internal/geometry"
	"model-stage/internal/mathutil"
	"model-stage/internal/placement"
)

const (
	// ShrinkBuffer is taken off both frame axes before fitting.
	ShrinkBuffer = 0.1
	// Padding is added to each fitted dimension for interaction chrome.
	Padding = 30.0
	// BaseFOV is the vertical field of view of a square viewer, degrees.
	BaseFOV = 45.0
	// DepthToDistance turns declared depth into camera distance (meters).
	DepthToDistance = 2.5
)

// Orbit is the camera placement derived for a viewer.
type Orbit struct {
	YawDeg, PitchDeg, DistanceMeters float64
}

// Geometry is the full derived layout of one viewer.
type Geometry struct {
	Left, Top, Width, Height float64
	FieldOfView              float64
	Orbit                    Orbit
}

// Rect returns the geometry's pixel box.
func (g Geometry) Rect() geometry.Rect {
	return geometry.Rect{Left: g.Left, Top: g.Top, Width: g.Width, Height: g.Height}
}

// Box computes the viewer size for an area fraction of the frame and an
// optional aspect ratio, padding included.
func Box(frame geometry.Frame, areaFraction float64, ratio *placement.Ratio) (float64, float64) {
	boxW := frame.Width * areaFraction * (1 - ShrinkBuffer)
	boxH := frame.Height * areaFraction * (1 - ShrinkBuffer)
	if boxW < 0 || math.IsNaN(boxW) {
		boxW = 0
	}
	if boxH < 0 || math.IsNaN(boxH) {
		boxH = 0
	}

	w, h := boxW, boxH
	if ratio != nil {
		w, h = containFit(boxW, boxH, ratio.Value())
	}

	// a zero-area box stays invisible
	if w == 0 || h == 0 {
		return w, h
	}
	return w + Padding, h + Padding
}

// containFit returns the largest w×h rectangle with w/h == ratio that fits
// inside boxW×boxH.
func containFit(boxW, boxH, ratio float64) (float64, float64) {
	if boxH == 0 {
		return 0, 0
	}
	if boxW/boxH > ratio {
		return boxH * ratio, boxH
	}
	return boxW, boxW / ratio
}

// FieldOfView returns the vertical field of view for a w×h viewer. Wide
// viewers get a widened angle so the subject keeps its apparent size; tall
// viewers keep BaseFOV without a matching correction.
func FieldOfView(w, h float64) float64 {
	if w > h {
		return mathutil.WidenFOV(BaseFOV, w, h)
	}
	return BaseFOV
}

// CameraDistance converts a declared depth into orbit distance.
func CameraDistance(z float64) float64 {
	return z * DepthToDistance
}

// Fit computes the viewer geometry for spec within frame.
func Fit(spec placement.Spec, frame geometry.Frame) Geometry {
	w, h := Box(frame, spec.AreaFraction, spec.AspectRatio)
	return Geometry{
		Left:        geometry.ResolveCoordinate(geometry.Percent(spec.PositionX), frame.Width, w),
		Top:         geometry.ResolveCoordinate(geometry.Percent(spec.PositionY), frame.Height, h),
		Width:       w,
		Height:      h,
		FieldOfView: FieldOfView(w, h),
		Orbit: Orbit{
			YawDeg:         spec.Rotation.Y,
			PitchDeg:       spec.Rotation.X,
			DistanceMeters: CameraDistance(spec.Z),
		},
	}
}
