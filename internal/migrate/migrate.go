/*
Package migrate replaces declarative <object> placeholders with configured
<model-viewer> elements.

Migration is one-shot: it runs after the viewer capability is defined,
computes each viewer's geometry against the frame current at that moment and
never re-runs on its own when the window is resized later.
*/
package migrate

import (
	"context"
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"

	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/placement"
	"model-stage/internal/viewer"
	"model-stage/internal/viewport"
)

// tracer writes to trace with key 'stage.migrate'
func tracer() tracing.Trace {
	return tracing.Select("stage.migrate")
}

// Migrator converts the placeholders of one document.
type Migrator struct {
	Doc        *document.Document
	Frame      geometry.FrameSource
	Capability viewer.Capability
}

// Result summarizes one migration run.
type Result struct {
	Viewers []*viewer.Handle
	// Hidden lists placeholders with an invalid declaration.
	Hidden []*html.Node
}

// Run waits until the viewer capability is defined, then migrates every
// placeholder. It returns ctx.Err() if the context ends first.
func (m *Migrator) Run(ctx context.Context) (Result, error) {
	if err := m.waitDefined(ctx); err != nil {
		return Result{}, err
	}
	return m.migrate(), nil
}

func (m *Migrator) waitDefined(ctx context.Context) error {
	if m.Capability == nil || m.Capability.Defined() {
		return nil
	}
	tracer().Infof("waiting for %s to be defined", viewer.TagName)
	select {
	case <-m.Capability.WhenDefined():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Migrator) migrate() Result {
	var res Result
	for _, obj := range m.Doc.Placeholders() {
		// fallback content of an already replaced placeholder
		if !m.Doc.Attached(obj) {
			tracer().Debugf("skipping nested placeholder %q", document.Attrs(obj)[placement.AttrSource])
			continue
		}
		spec, err := placement.Parse(document.Attrs(obj))
		if err != nil {
			if !errors.Is(err, placement.ErrInvalid) {
				tracer().Errorf("unexpected placement error: %v", err)
			}
			tracer().Debugf("hiding placeholder: %v", err)
			m.Doc.Hide(obj)
			res.Hidden = append(res.Hidden, obj)
			continue
		}

		// re-read per placeholder so every box sees the live frame
		geo := viewport.Fit(spec, m.Frame.Frame())
		h := Build(spec, geo)
		if err := m.Doc.Replace(obj, h); err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		tracer().Debugf("migrated %s to %.0fx%.0f at (%.0f,%.0f), fov %.2f",
			spec.SourceRef, geo.Width, geo.Height, geo.Left, geo.Top, geo.FieldOfView)
		res.Viewers = append(res.Viewers, h)
	}
	tracer().Infof("migrated %d placeholder(s), hid %d", len(res.Viewers), len(res.Hidden))
	return res
}

// Build creates a detached viewer configured with geo and the fixed
// interaction defaults.
func Build(spec placement.Spec, geo viewport.Geometry) *viewer.Handle {
	h := viewer.NewElement()
	if spec.ID != "" {
		h.SetAttr(viewer.AttrID, spec.ID)
	}
	h.SetAttr(viewer.AttrSource, spec.SourceRef)

	h.SetStyles(
		viewer.StylePosition, "absolute",
		viewer.StyleOverflow, "visible",
		viewer.StyleMaxWidth, "100vw",
		viewer.StyleMaxHeight, "100vh",
		viewer.StyleBackground, "transparent",
		viewer.StyleClipPath, "inset(10px)",
	)
	h.SetPixels(viewer.StyleLeft, geo.Left)
	h.SetPixels(viewer.StyleTop, geo.Top)
	h.SetPixels(viewer.StyleWidth, geo.Width)
	h.SetPixels(viewer.StyleHeight, geo.Height)

	orbit := viewer.Orbit{
		Yaw:      geo.Orbit.YawDeg,
		Pitch:    geo.Orbit.PitchDeg,
		Distance: geo.Orbit.DistanceMeters,
	}
	h.SetAttr(viewer.AttrCameraOrbit, orbit.String())
	h.SetAttr(viewer.AttrFieldOfView, viewer.FieldOfView(geo.FieldOfView))
	applyInteractionDefaults(h)
	return h
}

func applyInteractionDefaults(h *viewer.Handle) {
	h.SetAttr(viewer.AttrDisableZoom, "")
	h.SetAttr(viewer.AttrDisablePan, "")
	h.SetAttr(viewer.AttrInteractionPrompt, "none")
	h.SetAttr(viewer.AttrShadowIntensity, "1")
	h.SetAttr(viewer.AttrAR, "false")
	h.SetAttr(viewer.AttrReveal, "auto")
	h.SetAttr(viewer.AttrPoster, "")
	h.SetAttr(viewer.AttrDisableTap, "")
}
