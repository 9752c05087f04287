package migrate

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/placement"
	"model-stage/internal/viewer"
	"model-stage/internal/viewport"
)

const page = `<html><body>
<object src="a.glb" z="2" size="50%" pos="25,50" id="m1"></object>
<object src="b.glb"></object>
<object z="1"></object>
<object src="d.glb" z="deep"></object>
<object src="e.glb" z="1" ratio="160,90"></object>
</body></html>`

func newMigrator(t *testing.T, capability viewer.Capability) *Migrator {
	doc, err := document.ParseString(page)
	require.NoError(t, err)
	return &Migrator{
		Doc:        doc,
		Frame:      geometry.FixedFrame{Width: 1000, Height: 800},
		Capability: capability,
	}
}

func TestMigrateValidAndInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	m := newMigrator(t, viewer.DefinedRegistry())
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Viewers, 2)
	require.Len(t, res.Hidden, 3)

	for _, n := range res.Hidden {
		assert.Equal(t, "none", viewer.NodeStyle(n, viewer.StyleDisplay))
	}
	assert.Len(t, m.Doc.Placeholders(), 3, "invalid placeholders stay in the tree")

	h := res.Viewers[0]
	assert.Equal(t, "m1", h.ID())
	src, _ := h.Attr(viewer.AttrSource)
	assert.Equal(t, "a.glb", src)
	assert.Equal(t, geometry.Rect{Left: 10, Top: 205, Width: 480, Height: 390}, h.Rect())
	orbit, _ := h.Attr(viewer.AttrCameraOrbit)
	assert.Equal(t, "0deg 0deg 5m", orbit)
	fov, _ := h.Attr(viewer.AttrFieldOfView)
	assert.Equal(t, viewer.FieldOfView(viewport.FieldOfView(480, 390)), fov)
	assert.Equal(t, "absolute", h.Style(viewer.StylePosition))
	assert.Equal(t, "inset(10px)", h.Style(viewer.StyleClipPath))
	prompt, _ := h.Attr(viewer.AttrInteractionPrompt)
	assert.Equal(t, "none", prompt)
	_, zoom := h.Attr(viewer.AttrDisableZoom)
	assert.True(t, zoom)

	wide := res.Viewers[1].Rect()
	assert.InDelta(t, 900+viewport.Padding, wide.Width, 1e-9)
	assert.InDelta(t, 900/(1.6/0.9)+viewport.Padding, wide.Height, 1e-9)
	assert.Equal(t, "", res.Viewers[1].ID(), "no id is invented for migrated viewers")
}

func TestMigrateWaitsForCapability(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	reg := viewer.NewRegistry()
	m := newMigrator(t, reg)
	done := make(chan Result, 1)
	go func() {
		res, err := m.Run(context.Background())
		assert.NoError(t, err)
		done <- res
	}()

	select {
	case <-done:
		t.Fatal("migration ran before the capability was defined")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Len(t, m.Doc.Placeholders(), 5)

	reg.Define()
	select {
	case res := <-done:
		assert.Len(t, res.Viewers, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("migration did not start after Define")
	}
}

func TestMigrateContextCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	m := newMigrator(t, viewer.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, m.Doc.Placeholders(), 5)
}

func TestNestedPlaceholderFallbackIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	doc, err := document.ParseString(`<html><body>
<object src="outer.glb" z="1" id="outer"><object src="inner.glb" z="1" id="inner"></object></object>
</body></html>`)
	require.NoError(t, err)
	m := &Migrator{Doc: doc, Frame: geometry.FixedFrame{Width: 1000, Height: 800}}
	res, err := m.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Viewers, 1)
	assert.Equal(t, "outer", res.Viewers[0].ID())
	assert.Len(t, doc.Viewers(), 1)
	out := doc.String()
	assert.Contains(t, out, `src="outer.glb"`)
	assert.NotContains(t, out, "inner.glb")
}

func TestBuildSkipsNaNGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	h := Build(placement.Spec{SourceRef: "x.glb"}, viewport.Geometry{Left: math.NaN(), Top: 4, Width: 10, Height: 10})
	assert.Equal(t, "", h.Style(viewer.StyleLeft))
	assert.Equal(t, "4px", h.Style(viewer.StyleTop))
}

func TestCreateModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.migrate")
	defer teardown()

	doc, err := document.ParseString(page)
	require.NoError(t, err)
	assert.Nil(t, CreateModel(doc, Options{}))

	h := CreateModel(doc, Options{Src: "new.glb", Color: "#ff0000"})
	require.NotNil(t, h)
	assert.True(t, strings.HasPrefix(h.ID(), "model_"))
	assert.Len(t, h.ID(), len("model_")+9)
	assert.Equal(t, "50%", h.Style(viewer.StyleLeft))
	assert.Equal(t, "300px", h.Style(viewer.StyleWidth))
	orbit, _ := h.Attr(viewer.AttrCameraOrbit)
	assert.Equal(t, "0deg 90deg 2.5m", orbit)
	color, _ := h.Attr(viewer.AttrColor)
	assert.Equal(t, "#ff0000", color)
	assert.Same(t, h, doc.ByID(h.ID()))

	named := CreateModel(doc, Options{Src: "n.glb", ID: "named", Width: "120px"})
	require.NotNil(t, named)
	assert.Equal(t, "named", named.ID())
	assert.Equal(t, "120px", named.Style(viewer.StyleWidth))
}
