/*
Package transition animates viewers between positions and depths.

A transition is a discrete-time loop: it converts the viewer's current pixel
box back to frame percentages, then applies a fixed number of equal
increments, one per tick, and finally snaps exactly onto the target so
floating point drift from repeated addition never shows. Percentages are
re-resolved against the live frame on every tick.

The engine owns every transition it starts. Starting a new one on a handle
cancels the running one first and waits for it to stop, so two transitions
never write to the same viewer at once.
*/
package transition

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/npillmayer/schuko/tracing"

	"model-stage/internal/geometry"
	"model-stage/internal/transform"
	"model-stage/internal/viewer"
)

// tracer writes to trace with key 'stage.transition'
func tracer() tracing.Trace {
	return tracing.Select("stage.transition")
}

// Engine runs transitions and holds cancellation rights over them.
type Engine struct {
	ctrl     *transform.Controller
	defaults Options

	mu     sync.Mutex
	active map[*viewer.Handle]*Transition
}

// NewEngine returns an engine resolving percentages against frame.
func NewEngine(frame geometry.FrameSource, opts ...Option) *Engine {
	d := defaultOptions()
	for _, opt := range opts {
		opt(&d)
	}
	return &Engine{
		ctrl:     transform.New(frame, nil),
		defaults: d,
		active:   make(map[*viewer.Handle]*Transition),
	}
}

// Transition is one running or finished animation.
type Transition struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	completed bool
}

// Done is closed when the transition finished or was cancelled.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the transition stops.
func (t *Transition) Wait() {
	<-t.done
}

// Cancel stops the transition after its current update.
func (t *Transition) Cancel() {
	t.cancel()
}

// Completed reports whether the transition reached its final snap.
func (t *Transition) Completed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

func finished() *Transition {
	t := &Transition{cancel: func() {}, done: make(chan struct{})}
	close(t.done)
	return t
}

// MoveTo starts a transition with the engine defaults; it satisfies
// transform.Mover.
func (e *Engine) MoveTo(h *viewer.Handle, xPercent, yPercent, depth float64) {
	e.SmoothMove(h, xPercent, yPercent, depth)
}

// SmoothMove animates h from where it is to a center at (targetX%, targetY%)
// of the frame and targetDepth. It returns at once; the updates run on their
// own goroutine. A transition already running on h is cancelled first.
func (e *Engine) SmoothMove(h *viewer.Handle, targetX, targetY, targetDepth float64, opts ...Option) *Transition {
	if h == nil {
		return finished()
	}
	o := e.defaults
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Transition{cancel: cancel, done: make(chan struct{})}

	e.mu.Lock()
	prev := e.active[h]
	e.active[h] = t
	e.mu.Unlock()
	if prev != nil {
		tracer().Debugf("viewer %q: cancelling running transition", h.ID())
		prev.Cancel()
		prev.Wait()
	}

	x, y, z := e.ctrl.CenterPercent(h)
	p := plan{
		fromX: x, fromY: y, fromZ: z,
		toX: targetX, toY: targetY, toZ: targetDepth,
	}
	go e.run(ctx, h, t, p, o)
	return t
}

// Cancel stops the transition running on h, if any, and waits for it.
func (e *Engine) Cancel(h *viewer.Handle) {
	e.mu.Lock()
	t := e.active[h]
	e.mu.Unlock()
	if t != nil {
		t.Cancel()
		t.Wait()
	}
}

// Wait blocks until no transition runs on h.
func (e *Engine) Wait(h *viewer.Handle) {
	for {
		e.mu.Lock()
		t := e.active[h]
		e.mu.Unlock()
		if t == nil {
			return
		}
		t.Wait()
	}
}

// Active reports whether a transition is running on h.
func (e *Engine) Active(h *viewer.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.active[h]
	return ok
}

type plan struct {
	fromX, fromY, fromZ float64
	toX, toY, toZ       float64
}

func (e *Engine) run(ctx context.Context, h *viewer.Handle, t *Transition, p plan, o Options) {
	defer close(t.done)
	defer e.release(h, t)
	defer t.cancel()

	dx := (p.toX - p.fromX) / float64(o.Steps)
	dy := (p.toY - p.fromY) / float64(o.Steps)
	dz := (p.toZ - p.fromZ) / float64(o.Steps)
	x, y, z := p.fromX, p.fromY, p.fromZ

	var spring harmonica.Spring
	var progress, velocity float64
	if o.Spring {
		spring = harmonica.NewSpring(harmonica.FPS(o.Steps), 6.0, 1.0)
	}

	for i := 0; i < o.Steps; i++ {
		if i > 0 && !sleep(ctx, o.Interval) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if o.Spring {
			progress, velocity = spring.Update(progress, velocity, 1)
			x = p.fromX + (p.toX-p.fromX)*progress
			y = p.fromY + (p.toY-p.fromY)*progress
			z = p.fromZ + (p.toZ-p.fromZ)*progress
		} else {
			x += dx
			y += dy
			z += dz
		}
		e.apply(h, x, y, z)
		if o.OnStep != nil {
			o.OnStep(Step{Index: i, X: x, Y: y, Depth: z})
		}
	}

	if !sleep(ctx, o.Interval) {
		return
	}
	e.apply(h, p.toX, p.toY, p.toZ)
	t.mu.Lock()
	t.completed = true
	t.mu.Unlock()
	if o.OnStep != nil {
		o.OnStep(Step{Index: o.Steps, Final: true, X: p.toX, Y: p.toY, Depth: p.toZ})
	}
}

func (e *Engine) apply(h *viewer.Handle, x, y, z float64) {
	h.SetAttr(viewer.AttrDepth, geometry.FormatFloat(z))
	e.ctrl.SetScale(h, z)
	e.ctrl.MovePercent(h, x, y)
}

func (e *Engine) release(h *viewer.Handle, t *Transition) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active[h] == t {
		delete(e.active, h)
	}
}

// sleep waits for d or until ctx ends; it reports whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
