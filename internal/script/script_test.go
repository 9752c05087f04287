package script

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-stage/internal/animation"
	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/migrate"
	"model-stage/internal/transition"
	"model-stage/internal/viewer"
)

const page = `<html><body>
<object src="robot.glb" z="1" id="robot" size="50%"></object>
<object src="cat.glb" z="2" id="cat" size="20%" pos="10,10"></object>
</body></html>`

var frame = geometry.FixedFrame{Width: 1000, Height: 800}

func setup(t *testing.T) *Runner {
	doc, err := document.ParseString(page)
	require.NoError(t, err)
	m := migrate.Migrator{Doc: doc, Frame: frame, Capability: viewer.DefinedRegistry()}
	_, err = m.Run(context.Background())
	require.NoError(t, err)

	anim := animation.DefaultConfig()
	anim.Settle = time.Millisecond
	anim.DefaultDuration = 5 * time.Millisecond
	anim.QueueGap = 5 * time.Millisecond
	return NewRunner(doc, frame, []transition.Option{transition.WithInterval(0)}, anim)
}

func run(t *testing.T, r *Runner, src string) error {
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Run(ctx, s)
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	s, err := Parse([]byte(`{"steps":[{"op":"center","id":"robot"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Step{{Op: "center", ID: "robot"}}, s.Steps)

	_, err = Parse([]byte(`{"steps":[{"op":"explode"}]}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`{`))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps":[]}`), 0644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func TestLayoutSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	require.NoError(t, run(t, r, `{"steps":[
		{"op":"resize","id":"robot","args":["100px","100px"]},
		{"op":"move","id":"robot","args":["50%","50%"]},
		{"op":"rotate","id":"robot","args":["y","30"]},
		{"op":"scale","id":"*","args":["2"]},
		{"op":"color","id":"cat","args":["#ff0000"]},
		{"op":"light","id":"*","args":["1","2","3"]},
		{"op":"center","id":"nobody"}
	]}`))

	robot := r.Doc.ByID("robot")
	assert.Equal(t, geometry.Rect{Left: 450, Top: 350, Width: 100, Height: 100}, robot.Rect())
	assert.Equal(t, 30.0, robot.Orbit().Yaw)
	cat := r.Doc.ByID("cat")
	assert.Equal(t, "scale(0.5)", cat.Style(viewer.StyleTransform))
	color, _ := cat.Attr(viewer.AttrColor)
	assert.Equal(t, "#ff0000", color)
	assert.Equal(t, "1deg 2deg 3m", robot.Style(viewer.StyleLightDirection))
}

func TestSteppedMovesFinish(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	require.NoError(t, run(t, r, `{"steps":[
		{"op":"resize","id":"robot","args":["100px","100px"]},
		{"op":"center","id":"robot"},
		{"op":"smooth-move","id":"robot","args":["100","50","2"]},
		{"op":"lateral","id":"robot","args":["-1"]}
	]}`))

	robot := r.Doc.ByID("robot")
	assert.False(t, r.Engine.Active(robot))
	assert.Equal(t, "900px", robot.Style(viewer.StyleLeft))
	depth, _ := robot.Attr(viewer.AttrDepth)
	assert.Equal(t, "2", depth)
}

func TestSnapshotAndAnimation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	require.NoError(t, run(t, r, `{"steps":[
		{"op":"save","id":"robot","args":["start"]},
		{"op":"fullscreen","id":"robot"},
		{"op":"material","id":"robot","args":["gold"]},
		{"op":"restore","id":"robot","args":["start"]},
		{"op":"load","id":"robot","args":["Wave","Run"]},
		{"op":"play","id":"robot","args":["Wave","5"]},
		{"op":"queue","id":"robot","args":["Run","Wave"]},
		{"op":"play-default","id":"robot"}
	]}`))

	robot := r.Doc.ByID("robot")
	assert.Equal(t, "480px", robot.Style(viewer.StyleWidth))
	material, _ := robot.Attr(viewer.AttrMaterial)
	assert.Equal(t, "gold", material, "restore keeps attributes the snapshot did not hold")
	assert.Equal(t, animation.Resting, r.Player.Status(robot).Phase)
}

func TestPlayOnUnloadedViewerDoesNotBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	s, err := Parse([]byte(`{"steps":[
		{"op":"play","id":"robot","args":["Wave","5"]},
		{"op":"queue","id":"robot","args":["Run"]},
		{"op":"fit-model","id":"robot"},
		{"op":"color","id":"robot","args":["#00ff00"]}
	]}`))
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, r.Run(context.Background(), s))
	assert.Less(t, time.Since(start), time.Second)

	robot := r.Doc.ByID("robot")
	color, _ := robot.Attr(viewer.AttrColor)
	assert.Equal(t, "#00ff00", color)
	assert.Equal(t, animation.Idle, r.Player.Status(robot).Phase)

	robot.MarkLoaded()
	require.Eventually(t, func() bool {
		return r.Player.Status(robot).Phase == animation.Resting
	}, 2*time.Second, time.Millisecond)
}

func TestCreateAndFitModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	require.NoError(t, run(t, r, `{"steps":[
		{"op":"create","id":"extra","args":["extra.glb"]},
		{"op":"resize","id":"extra","args":["230px","130px"]},
		{"op":"bbox","id":"extra","args":["4","1","1"]},
		{"op":"load","id":"extra"},
		{"op":"fit-model","id":"extra"}
	]}`))

	extra := r.Doc.ByID("extra")
	require.NotNil(t, extra)
	assert.Equal(t, "scale(45)", extra.Style(viewer.StyleTransform))
}

func TestMalformedSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	assert.Error(t, run(t, r, `{"steps":[{"op":"move","id":"robot","args":["1"]}]}`))
	assert.Error(t, run(t, r, `{"steps":[{"op":"rotate","id":"robot","args":["w","1"]}]}`))
	assert.Error(t, run(t, r, `{"steps":[{"op":"restore","id":"robot","args":["never"]}]}`))
	assert.Error(t, run(t, r, `{"steps":[{"op":"save","id":"*","args":["all"]}]}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, Script{Steps: []Step{{Op: "center", ID: "robot"}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObserve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "stage.script")
	defer teardown()

	r := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	seen := map[string]geometry.Rect{}
	wait := Observe(ctx, r.Doc, time.Millisecond, func(id string, rect geometry.Rect) {
		mu.Lock()
		defer mu.Unlock()
		seen[id] = rect
	})
	time.Sleep(10 * time.Millisecond)
	r.Ctrl.Fullscreen(r.Doc.ByID("cat"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen["cat"] == geometry.Rect{Width: 1000, Height: 800}
	}, 2*time.Second, time.Millisecond)
	cancel()
	wait()
	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, "robot")
}
