package geometry

import "sync"

// Frame is the reference rectangle percentages resolve against, usually the
// screen viewport at call time.
type Frame struct {
	Width  float64
	Height float64
}

// Min returns the smaller frame axis.
func (f Frame) Min() float64 {
	if f.Width < f.Height {
		return f.Width
	}
	return f.Height
}

// FrameSource yields the current frame. Implementations are read on every
// geometry computation so results track the live window size.
type FrameSource interface {
	Frame() Frame
}

// FixedFrame is a FrameSource that never changes.
type FixedFrame Frame

func (f FixedFrame) Frame() Frame {
	return Frame(f)
}

// Window is a resizable FrameSource. Subscribers are notified after every
// Resize with the new frame.
type Window struct {
	mu     sync.RWMutex
	frame  Frame
	nextID int
	subs   map[int]chan Frame
}

// NewWindow creates a window of the given size.
func NewWindow(width, height float64) *Window {
	return &Window{
		frame: Frame{Width: width, Height: height},
		subs:  make(map[int]chan Frame),
	}
}

func (w *Window) Frame() Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.frame
}

// Resize updates the window size and notifies subscribers. A subscriber that
// has not consumed the previous notification only sees the latest frame.
func (w *Window) Resize(width, height float64) {
	w.mu.Lock()
	w.frame = Frame{Width: width, Height: height}
	f := w.frame
	subs := make([]chan Frame, 0, len(w.subs))
	for _, ch := range w.subs {
		subs = append(subs, ch)
	}
	w.mu.Unlock()

	for _, ch := range subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- f:
		default:
		}
	}
}

// Subscribe returns a channel receiving frames after each resize and a
// function that ends the subscription.
func (w *Window) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, 1)
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}
