/*
Package animation plays named model animations on viewers.

Each viewer follows a small state machine:

	Idle ──Play(name)──▶ Playing(name) ──duration+settle──▶ Resting(default)

Resting plays the configured default animation in the default pose. Playing
again from any state cancels the pending return to Resting first; the player
owns that cancellation, no timer is left behind.
*/
package animation

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"model-stage/internal/viewer"
)

// tracer writes to trace with key 'stage.animation'
func tracer() tracing.Trace {
	return tracing.Select("stage.animation")
}

// Phase is the state of a viewer's animation state machine.
type Phase int

const (
	Idle Phase = iota
	Playing
	Resting
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Resting:
		return "resting"
	default:
		return "idle"
	}
}

// Status is the current phase and animation of one viewer.
type Status struct {
	Phase     Phase
	Animation string
}

// Config holds the player settings.
type Config struct {
	DefaultName     string        // animation played when resting
	DefaultPose     string        // pose set when resting
	Crossfade       time.Duration // blend time between animations
	Settle          time.Duration // delay after the duration before resting
	DefaultDuration time.Duration // used by PlayDefault, PlayRandom and Queue
	QueueGap        time.Duration // spacing between queued animations
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		DefaultName:     "Dance_Loop",
		DefaultPose:     "rest",
		Crossfade:       200 * time.Millisecond,
		Settle:          300 * time.Millisecond,
		DefaultDuration: time.Second,
		QueueGap:        1100 * time.Millisecond,
	}
}

// Player drives the state machines of any number of viewers.
type Player struct {
	cfg Config

	mu     sync.Mutex
	runs   map[*viewer.Handle]*run
	status map[*viewer.Handle]Status
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer returns a player using cfg.
func NewPlayer(cfg Config) *Player {
	return &Player{
		cfg:    cfg,
		runs:   make(map[*viewer.Handle]*run),
		status: make(map[*viewer.Handle]Status),
	}
}

// Status returns the state of h. Viewers never played are Idle.
func (p *Player) Status(h *viewer.Handle) Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status[h]
}

// Play plays name on h for d, waiting for the model to load first, then
// returns h to its resting animation. It does not block; the returned
// channel closes when the run ends, either resting or cancelled. A nil
// handle, empty name or non-positive duration does nothing.
func (p *Player) Play(h *viewer.Handle, name string, d time.Duration) <-chan struct{} {
	if h == nil || name == "" || d <= 0 {
		done := make(chan struct{})
		close(done)
		return done
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	prev := p.runs[h]
	p.runs[h] = r
	p.mu.Unlock()
	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	go p.drive(ctx, h, r, name, d)
	return r.done
}

// Cancel stops any pending run on h, leaving its attributes as they are.
func (p *Player) Cancel(h *viewer.Handle) {
	p.mu.Lock()
	r := p.runs[h]
	p.mu.Unlock()
	if r != nil {
		r.cancel()
		<-r.done
	}
}

func (p *Player) drive(ctx context.Context, h *viewer.Handle, r *run, name string, d time.Duration) {
	defer close(r.done)
	defer p.release(h, r)
	defer r.cancel()

	select {
	case <-h.Loaded():
	case <-ctx.Done():
		return
	}

	h.SetAttr(viewer.AttrAnimationName, name)
	h.SetAttr(viewer.AttrAutoplay, "true")
	h.SetAttr(viewer.AttrAnimationCrossfade, strconv.FormatInt(p.cfg.Crossfade.Milliseconds(), 10))
	p.setStatus(h, Status{Phase: Playing, Animation: name})
	tracer().Debugf("viewer %q: playing %s for %v", h.ID(), name, d)

	if !sleep(ctx, d) || !sleep(ctx, p.cfg.Settle) {
		return
	}

	h.SetAttr(viewer.AttrAnimationName, p.cfg.DefaultName)
	h.RemoveAttr(viewer.AttrAutoplay)
	h.RemoveAttr(viewer.AttrAnimationCrossfade)
	h.SetAttr(viewer.AttrPose, p.cfg.DefaultPose)
	p.setStatus(h, Status{Phase: Resting, Animation: p.cfg.DefaultName})
}

// PlayDefault plays the first animation the model offers.
func (p *Player) PlayDefault(h *viewer.Handle) <-chan struct{} {
	if h == nil {
		return p.Play(nil, "", 0)
	}
	anims := h.Animations()
	if len(anims) == 0 {
		return p.Play(nil, "", 0)
	}
	return p.Play(h, anims[0], p.cfg.DefaultDuration)
}

// PlayRandom plays one of the model's animations chosen at random.
func (p *Player) PlayRandom(h *viewer.Handle) <-chan struct{} {
	if h == nil {
		return p.Play(nil, "", 0)
	}
	anims := h.Animations()
	if len(anims) == 0 {
		return p.Play(nil, "", 0)
	}
	return p.Play(h, anims[rand.IntN(len(anims))], p.cfg.DefaultDuration)
}

// Queue plays names one after another, QueueGap apart, until the list is
// exhausted or ctx ends. The returned channel closes when the last one was
// started.
func (p *Player) Queue(ctx context.Context, h *viewer.Handle, names []string) <-chan struct{} {
	done := make(chan struct{})
	if h == nil || len(names) == 0 {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		for i, name := range names {
			if i > 0 && !sleep(ctx, p.cfg.QueueGap) {
				return
			}
			p.Play(h, name, p.cfg.DefaultDuration)
		}
	}()
	return done
}

func (p *Player) setStatus(h *viewer.Handle, s Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[h] = s
}

func (p *Player) release(h *viewer.Handle, r *run) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.runs[h] == r {
		delete(p.runs, h)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
