package migrate

import (
	"crypto/rand"
	"encoding/hex"

	"model-stage/internal/document"
	"model-stage/internal/viewer"
)

// Options configures a viewer created directly rather than migrated from a
// placeholder. Empty fields take the defaults noted on each.
type Options struct {
	Src         string
	ID          string // generated "model_<hex>" when empty
	Left, Top   string // "50%"
	Width       string // "300px"
	Height      string // "300px"
	CameraOrbit string // "0deg 90deg 2.5m"
	FieldOfView string // "45deg"
	Material    string
	Color       string
	Texture     string
}

// CreateModel appends a new viewer to the document body. It returns nil when
// opts carries no source.
func CreateModel(doc *document.Document, opts Options) *viewer.Handle {
	if opts.Src == "" {
		return nil
	}
	h := viewer.NewElement()
	id := opts.ID
	if id == "" {
		id = "model_" + randomSuffix()
	}
	h.SetAttr(viewer.AttrID, id)
	h.SetAttr(viewer.AttrSource, opts.Src)
	h.SetStyles(
		viewer.StylePosition, "absolute",
		viewer.StyleLeft, or(opts.Left, "50%"),
		viewer.StyleTop, or(opts.Top, "50%"),
		viewer.StyleWidth, or(opts.Width, "300px"),
		viewer.StyleHeight, or(opts.Height, "300px"),
	)
	h.SetAttr(viewer.AttrCameraOrbit, or(opts.CameraOrbit, "0deg 90deg 2.5m"))
	h.SetAttr(viewer.AttrFieldOfView, or(opts.FieldOfView, "45deg"))
	applyInteractionDefaults(h)
	if opts.Material != "" {
		h.SetAttr(viewer.AttrMaterial, opts.Material)
	}
	if opts.Color != "" {
		h.SetAttr(viewer.AttrColor, opts.Color)
	}
	if opts.Texture != "" {
		h.SetAttr(viewer.AttrTexture, opts.Texture)
	}
	if err := doc.Append(h); err != nil {
		tracer().Errorf("create model %s: %v", id, err)
		return nil
	}
	return h
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func randomSuffix() string {
	var b [5]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])[:9]
}
