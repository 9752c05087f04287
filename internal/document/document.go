// Package document holds the HTML tree that placeholders are migrated in.
package document

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"

	"model-stage/internal/viewer"
)

// PlaceholderTag is the element type that declares a model placement.
const PlaceholderTag = "object"

// tracer writes to trace with key 'stage.document'
func tracer() tracing.Trace {
	return tracing.Select("stage.document")
}

// Document is a parsed HTML tree plus the viewer handles living in it.
type Document struct {
	mu      sync.Mutex
	root    *html.Node
	handles map[*html.Node]*viewer.Handle
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	return &Document{
		root:    root,
		handles: make(map[*html.Node]*viewer.Handle),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load reads an HTML document from disk.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Placeholders returns the placeholder elements in document order.
func (d *Document) Placeholders() []*html.Node {
	return htmlquery.Find(d.root, "//"+PlaceholderTag)
}

// Attached reports whether n is still part of the document tree.
func (d *Document) Attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// Attrs returns the attributes of an element as a map.
func Attrs(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// Hide takes an element out of the layout without removing it.
func (d *Document) Hide(n *html.Node) {
	viewer.SetNodeStyle(n, viewer.StyleDisplay, "none")
}

// Replace swaps old for the viewer's element in place and registers the
// handle. old must be attached to the tree.
func (d *Document) Replace(old *html.Node, h *viewer.Handle) error {
	parent := old.Parent
	if parent == nil || !d.Attached(old) {
		return fmt.Errorf("document: replace <%s>: node is detached", old.Data)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	parent.InsertBefore(h.Node(), old)
	parent.RemoveChild(old)
	d.handles[h.Node()] = h
	return nil
}

// Append adds the viewer's element as the last child of <body>.
func (d *Document) Append(h *viewer.Handle) error {
	body := htmlquery.FindOne(d.root, "//body")
	if body == nil {
		return fmt.Errorf("document: append: no <body>")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	body.AppendChild(h.Node())
	d.handles[h.Node()] = h
	return nil
}

// Viewers returns a handle for every viewer element in document order.
// Viewers that were already present in the source get a handle on first use.
func (d *Document) Viewers() []*viewer.Handle {
	nodes := htmlquery.Find(d.root, "//"+viewer.TagName)
	d.mu.Lock()
	defer d.mu.Unlock()
	handles := make([]*viewer.Handle, 0, len(nodes))
	for _, n := range nodes {
		handles = append(handles, d.handleFor(n))
	}
	return handles
}

// ByID returns the viewer with the given id, nil if there is none.
func (d *Document) ByID(id string) *viewer.Handle {
	if id == "" {
		return nil
	}
	for _, h := range d.Viewers() {
		if h.ID() == id {
			return h
		}
	}
	tracer().Debugf("no viewer with id %q", id)
	return nil
}

// Lookup resolves several ids, skipping unknown ones.
func (d *Document) Lookup(ids ...string) []*viewer.Handle {
	var handles []*viewer.Handle
	for _, id := range ids {
		if h := d.ByID(id); h != nil {
			handles = append(handles, h)
		}
	}
	return handles
}

// Render writes the document as HTML. Every viewer is locked while the tree
// is serialized so a running transition cannot tear an attribute.
func (d *Document) Render(w io.Writer) error {
	handles := d.Viewers()
	for _, h := range handles {
		h.Lock()
	}
	defer func() {
		for _, h := range handles {
			h.Unlock()
		}
	}()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("document: render: %w", err)
	}
	return nil
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *Document) handleFor(n *html.Node) *viewer.Handle {
	if h, ok := d.handles[n]; ok {
		return h
	}
	h := viewer.New(n)
	d.handles[n] = h
	return h
}
