package script

import (
	"context"
	"sync"
	"time"

	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/watch"
)

// Observe reports every box change of the document's viewers until ctx ends.
// report may be called from several goroutines at once. The returned
// function blocks until all observers stopped.
func Observe(ctx context.Context, doc *document.Document, interval time.Duration, report func(id string, r geometry.Rect)) (wait func()) {
	var wg sync.WaitGroup
	for _, h := range doc.Viewers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range watch.Bounds(ctx, h, interval) {
				report(h.ID(), r)
			}
		}()
	}
	return wg.Wait
}
