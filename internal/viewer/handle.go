package viewer

import (
	"math"
	"sync"

	"golang.org/x/net/html"

	"model-stage/internal/geometry"
)

// Handle is a reference to one live viewer element. It is safe for
// concurrent use; every accessor takes the handle's lock.
type Handle struct {
	mu   sync.Mutex
	node *html.Node

	loadOnce sync.Once
	loaded   chan struct{}

	bbox       Box3
	hasBBox    bool
	animations []string
}

// New wraps an element node. The node becomes owned by the handle: callers
// must not edit its attributes directly afterwards.
func New(node *html.Node) *Handle {
	return &Handle{
		node:   node,
		loaded: make(chan struct{}),
	}
}

// NewElement creates a detached <model-viewer> node and wraps it.
func NewElement() *Handle {
	return New(&html.Node{
		Type: html.ElementNode,
		Data: TagName,
	})
}

// Node returns the underlying element.
func (h *Handle) Node() *html.Node {
	return h.node
}

// ID returns the element id, "" if none.
func (h *Handle) ID() string {
	v, _ := h.Attr(AttrID)
	return v
}

// Attr returns an attribute value and whether it is present.
func (h *Handle) Attr(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return getAttr(h.node, name)
}

// SetAttr sets an attribute, adding it when absent.
func (h *Handle) SetAttr(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	setAttr(h.node, name, value)
}

// RemoveAttr deletes an attribute if present.
func (h *Handle) RemoveAttr(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	removeAttr(h.node, name)
}

// UpdateAttr replaces an attribute with fn(current) under a single lock.
func (h *Handle) UpdateAttr(name string, fn func(value string, ok bool) string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := getAttr(h.node, name)
	setAttr(h.node, name, fn(v, ok))
}

// Style returns an inline style property, "" when unset.
func (h *Handle) Style(prop string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, _ := getAttr(h.node, "style")
	return lookupDeclaration(parseStyle(s), prop)
}

// SetStyle sets an inline style property. An empty value removes it.
func (h *Handle) SetStyle(prop, value string) {
	h.SetStyles(prop, value)
}

// SetStyles sets several properties at once, given as prop/value pairs.
func (h *Handle) SetStyles(pairs ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, _ := getAttr(h.node, "style")
	decls := parseStyle(s)
	for i := 0; i+1 < len(pairs); i += 2 {
		decls = setDeclaration(decls, pairs[i], pairs[i+1])
	}
	if len(decls) == 0 {
		removeAttr(h.node, "style")
		return
	}
	setAttr(h.node, "style", formatStyle(decls))
}

// SetPixels sets a style property to v pixels. NaN leaves the property
// unchanged, the way a layout engine rejects "NaNpx".
func (h *Handle) SetPixels(prop string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		tracer().Debugf("ignoring %s=%v on viewer %q", prop, v, h.ID())
		return
	}
	h.SetStyle(prop, geometry.FormatFloat(v)+"px")
}

// Rect returns the viewer's absolute box. Unset or unreadable values count
// as 0, matching offsetLeft/offsetWidth of an unstyled element.
func (h *Handle) Rect() geometry.Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, _ := getAttr(h.node, "style")
	decls := parseStyle(s)
	return geometry.Rect{
		Left:   pixels(lookupDeclaration(decls, StyleLeft)),
		Top:    pixels(lookupDeclaration(decls, StyleTop)),
		Width:  nonNegative(pixels(lookupDeclaration(decls, StyleWidth))),
		Height: nonNegative(pixels(lookupDeclaration(decls, StyleHeight))),
	}
}

// Depth returns the recorded depth ("z" attribute), 1 when unset or invalid.
func (h *Handle) Depth() float64 {
	v, _ := h.Attr(AttrDepth)
	z := geometry.ParseFloat(v)
	if math.IsNaN(z) || z == 0 {
		return 1
	}
	return z
}

// Orbit returns the decoded camera orbit, DefaultOrbit when unset.
func (h *Handle) Orbit() Orbit {
	v, _ := h.Attr(AttrCameraOrbit)
	return ParseOrbit(v)
}

// MarkLoaded signals that the external viewer finished loading its model.
func (h *Handle) MarkLoaded() {
	h.loadOnce.Do(func() {
		close(h.loaded)
	})
}

// Loaded is closed once the model finished loading.
func (h *Handle) Loaded() <-chan struct{} {
	return h.loaded
}

// IsLoaded reports whether MarkLoaded was called.
func (h *Handle) IsLoaded() bool {
	select {
	case <-h.loaded:
		return true
	default:
		return false
	}
}

// SetBoundingBox records the model bounding box reported by the viewer.
func (h *Handle) SetBoundingBox(b Box3) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bbox, h.hasBBox = b, true
}

// BoundingBox returns the model bounding box, if the viewer reported one.
func (h *Handle) BoundingBox() (Box3, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bbox, h.hasBBox
}

// SetAnimations records the animation names the loaded model offers.
func (h *Handle) SetAnimations(names []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.animations = append([]string(nil), names...)
}

// Animations returns the animation names the loaded model offers.
func (h *Handle) Animations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.animations...)
}

// Lock and Unlock guard the underlying node for readers outside this
// package, such as the document renderer.
func (h *Handle) Lock()   { h.mu.Lock() }
func (h *Handle) Unlock() { h.mu.Unlock() }

func pixels(v string) float64 {
	p := geometry.ParseFloat(v)
	if math.IsNaN(p) {
		return 0
	}
	return p
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
