package script

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"model-stage/internal/animation"
	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/mathutil"
	"model-stage/internal/migrate"
	"model-stage/internal/snapshot"
	"model-stage/internal/transform"
	"model-stage/internal/transition"
	"model-stage/internal/viewer"
)

// Runner executes scripts against one document.
type Runner struct {
	Doc    *document.Document
	Ctrl   *transform.Controller
	Engine *transition.Engine
	Player *animation.Player
	// PlayDuration is used by "play" steps that give no duration.
	PlayDuration time.Duration

	snapshots map[string]snapshot.State
}

// NewRunner wires a controller whose stepped moves are animated by a
// transition engine built from topts.
func NewRunner(doc *document.Document, frame geometry.FrameSource, topts []transition.Option, anim animation.Config) *Runner {
	engine := transition.NewEngine(frame, topts...)
	return &Runner{
		Doc:          doc,
		Ctrl:         transform.New(frame, engine),
		Engine:       engine,
		Player:       animation.NewPlayer(anim),
		PlayDuration: anim.DefaultDuration,
		snapshots:    make(map[string]snapshot.State),
	}
}

// Run executes the steps of s in order. It stops at the first malformed
// step or when ctx ends. Steps addressing an unknown viewer are skipped.
func (r *Runner) Run(ctx context.Context, s Script) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		o, ok := ops[st.Op]
		if !ok {
			return fmt.Errorf("script: step %d: unknown op %q", i, st.Op)
		}
		if len(st.Args) < o.min || (o.max >= 0 && len(st.Args) > o.max) {
			return fmt.Errorf("script: step %d: %s takes %s argument(s), got %d",
				i, st.Op, o.arity(), len(st.Args))
		}
		var hs []*viewer.Handle
		if !o.global {
			hs = r.handles(st.ID)
			if len(hs) == 0 {
				tracer().Infof("step %d: %s: no viewer %q, skipped", i, st.Op, st.ID)
				continue
			}
		}
		tracer().Debugf("step %d: %s %s %v", i, st.Op, st.ID, st.Args)
		if err := o.run(r, ctx, hs, st); err != nil {
			return fmt.Errorf("script: step %d: %s: %w", i, st.Op, err)
		}
	}
	return nil
}

func (r *Runner) handles(id string) []*viewer.Handle {
	if id == All {
		return r.Doc.Viewers()
	}
	return r.Doc.Lookup(id)
}

// settle waits for every transition started on hs.
func (r *Runner) settle(hs []*viewer.Handle) {
	for _, h := range hs {
		r.Engine.Wait(h)
	}
}

type op struct {
	min, max int // max < 0: unbounded
	global   bool
	run      func(r *Runner, ctx context.Context, hs []*viewer.Handle, st Step) error
}

func (o op) arity() string {
	switch {
	case o.max < 0:
		return fmt.Sprintf("at least %d", o.min)
	case o.min == o.max:
		return fmt.Sprint(o.min)
	default:
		return fmt.Sprintf("%d to %d", o.min, o.max)
	}
}

// each wraps a per-handle operation.
func each(fn func(r *Runner, h *viewer.Handle, a []string)) func(*Runner, context.Context, []*viewer.Handle, Step) error {
	return func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		for _, h := range hs {
			fn(r, h, st.Args)
		}
		return nil
	}
}

// stepped wraps an operation that may start transitions and waits for them.
func stepped(fn func(r *Runner, h *viewer.Handle, a []string)) func(*Runner, context.Context, []*viewer.Handle, Step) error {
	return func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		for _, h := range hs {
			fn(r, h, st.Args)
		}
		r.settle(hs)
		return nil
	}
}

func num(s string) float64 {
	return geometry.ParseFloat(s)
}

func millis(s string) time.Duration {
	v := num(s)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return time.Duration(v * float64(time.Millisecond))
}

func axis(s string) (transform.Axis, error) {
	switch strings.ToLower(s) {
	case "x", "pitch":
		return transform.AxisX, nil
	case "y", "yaw":
		return transform.AxisY, nil
	case "z", "distance":
		return transform.AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

var ops = map[string]op{
	"load": {min: 0, max: -1, run: each(func(_ *Runner, h *viewer.Handle, a []string) {
		if len(a) > 0 {
			h.SetAnimations(a)
		}
		h.MarkLoaded()
	})},
	"bbox": {min: 3, max: 3, run: each(func(_ *Runner, h *viewer.Handle, a []string) {
		size := mathutil.Vec3{num(a[0]), num(a[1]), num(a[2])}
		h.SetBoundingBox(viewer.Box3{Max: size})
	})},
	"move": {min: 2, max: 2, run: func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		r.Ctrl.MoveAll(hs, st.Args[0], st.Args[1])
		return nil
	}},
	"resize": {min: 2, max: 2, run: each(func(r *Runner, h *viewer.Handle, a []string) {
		r.Ctrl.Resize(h, a[0], a[1])
	})},
	"resize-uniform": {min: 1, max: 1, run: each(func(r *Runner, h *viewer.Handle, a []string) {
		r.Ctrl.ResizeUniform(h, num(a[0]))
	})},
	"rotate": {min: 2, max: 2, run: func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		ax, err := axis(st.Args[0])
		if err != nil {
			return err
		}
		for _, h := range hs {
			r.Ctrl.RotateAxis(h, ax, num(st.Args[1]))
		}
		return nil
	}},
	"scale": {min: 1, max: 1, run: func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		r.Ctrl.ScaleAll(hs, num(st.Args[0]))
		return nil
	}},
	"center": {run: each(func(r *Runner, h *viewer.Handle, _ []string) {
		r.Ctrl.Center(h)
	})},
	"fullscreen": {run: each(func(r *Runner, h *viewer.Handle, _ []string) {
		r.Ctrl.Fullscreen(h)
	})},
	"depth": {min: 1, max: 1, run: stepped(func(r *Runner, h *viewer.Handle, a []string) {
		r.Ctrl.MoveAlongDepthAxis(h, num(a[0]))
	})},
	"lateral": {min: 1, max: 1, run: stepped(func(r *Runner, h *viewer.Handle, a []string) {
		r.Ctrl.MoveAlongLateralAxis(h, num(a[0]))
	})},
	"heading": {min: 1, max: 2, run: each(func(r *Runner, h *viewer.Handle, a []string) {
		d := transform.DefaultHeadingDistance
		if len(a) > 1 {
			d = num(a[1])
		}
		r.Ctrl.MoveByHeadingAndDistance(h, num(a[0]), d)
	})},
	"point-at": {min: 2, max: 2, run: each(func(r *Runner, h *viewer.Handle, a []string) {
		r.Ctrl.PointAt(h, num(a[0]), num(a[1]))
	})},
	"smooth-move": {min: 3, max: 3, run: stepped(func(r *Runner, h *viewer.Handle, a []string) {
		r.Engine.SmoothMove(h, num(a[0]), num(a[1]), num(a[2]))
	})},
	"color": {min: 1, max: 1, run: each(func(_ *Runner, h *viewer.Handle, a []string) {
		transform.SetColor(h, a[0])
	})},
	"material": {min: 1, max: 1, run: each(func(_ *Runner, h *viewer.Handle, a []string) {
		transform.SetMaterial(h, a[0])
	})},
	"environment": {min: 1, max: 1, run: func(_ *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		transform.SetEnvironment(hs, st.Args[0])
		return nil
	}},
	"light": {min: 3, max: 3, run: func(_ *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		transform.SetLight(hs, num(st.Args[0]), num(st.Args[1]), num(st.Args[2]))
		return nil
	}},
	"fit-model": {min: 0, max: 1, run: func(r *Runner, ctx context.Context, hs []*viewer.Handle, st Step) error {
		buffer := 0.0
		if len(st.Args) > 0 {
			buffer = num(st.Args[0])
		}
		for _, h := range hs {
			if !h.IsLoaded() {
				tracer().Infof("viewer %q not loaded yet, fitting on load", h.ID())
				go r.Ctrl.FitModel(ctx, h, buffer)
				continue
			}
			r.Ctrl.FitModel(ctx, h, buffer)
		}
		return nil
	}},
	"play": {min: 1, max: 2, run: func(r *Runner, ctx context.Context, hs []*viewer.Handle, st Step) error {
		d := r.PlayDuration
		if len(st.Args) > 1 {
			d = millis(st.Args[1])
		}
		return r.await(ctx, hs, func(h *viewer.Handle) <-chan struct{} {
			return r.Player.Play(h, st.Args[0], d)
		})
	}},
	"play-default": {run: func(r *Runner, ctx context.Context, hs []*viewer.Handle, _ Step) error {
		return r.await(ctx, hs, r.Player.PlayDefault)
	}},
	"play-random": {run: func(r *Runner, ctx context.Context, hs []*viewer.Handle, _ Step) error {
		return r.await(ctx, hs, r.Player.PlayRandom)
	}},
	"queue": {min: 1, max: -1, run: func(r *Runner, ctx context.Context, hs []*viewer.Handle, st Step) error {
		return r.await(ctx, hs, func(h *viewer.Handle) <-chan struct{} {
			return r.Player.Queue(ctx, h, st.Args)
		})
	}},
	"save": {min: 1, max: 1, run: func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		if len(hs) != 1 {
			return fmt.Errorf("save needs exactly one viewer, got %d", len(hs))
		}
		s, _ := snapshot.Capture(hs[0])
		r.snapshots[st.Args[0]] = s
		return nil
	}},
	"restore": {min: 1, max: 1, run: func(r *Runner, _ context.Context, hs []*viewer.Handle, st Step) error {
		s, ok := r.snapshots[st.Args[0]]
		if !ok {
			return fmt.Errorf("no snapshot %q", st.Args[0])
		}
		for _, h := range hs {
			snapshot.Restore(h, s)
		}
		return nil
	}},
	"create": {min: 1, max: 2, global: true, run: func(r *Runner, _ context.Context, _ []*viewer.Handle, st Step) error {
		opts := migrate.Options{Src: st.Args[0], ID: st.ID}
		if len(st.Args) > 1 {
			opts.Material = st.Args[1]
		}
		if migrate.CreateModel(r.Doc, opts) == nil {
			return fmt.Errorf("cannot create viewer for %q", st.Args[0])
		}
		return nil
	}},
	"wait": {min: 1, max: 1, global: true, run: func(_ *Runner, ctx context.Context, _ []*viewer.Handle, st Step) error {
		t := time.NewTimer(millis(st.Args[0]))
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}},
}

// await starts fn on every handle and waits until the returned channels of
// loaded handles closed or ctx ends. A run on a viewer that has not loaded
// stays pending on its load signal and is not waited for.
func (r *Runner) await(ctx context.Context, hs []*viewer.Handle, fn func(*viewer.Handle) <-chan struct{}) error {
	chans := make([]<-chan struct{}, 0, len(hs))
	for _, h := range hs {
		ch := fn(h)
		if !h.IsLoaded() {
			tracer().Infof("viewer %q not loaded yet, animation starts on load", h.ID())
			continue
		}
		chans = append(chans, ch)
	}
	for _, ch := range chans {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
