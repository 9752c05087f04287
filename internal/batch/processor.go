package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/migrate"
	"model-stage/internal/preview"
	"model-stage/internal/viewer"
)

// Config holds all shared settings for a batch run.
type Config struct {
	// BaseDir is the input root; documents below it keep their relative
	// path under OutputDir. Others are written by file name only.
	BaseDir      string
	OutputDir    string
	Frame        geometry.Frame
	Preview      bool
	PreviewWidth int
	Workers      int
	// Progress receives periodic progress lines; nil disables reporting.
	Progress func(done, total int, rate float64)
}

// Result holds the outcome of migrating one document.
type Result struct {
	Source  string
	Output  string
	Preview string
	Viewers []ViewerInfo
	Hidden  int
	Success bool
	Error   string
}

// ViewerInfo describes one migrated viewer.
type ViewerInfo struct {
	ID          string `json:"id,omitempty"`
	Src         string `json:"src"`
	Left        string `json:"left"`
	Top         string `json:"top"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	CameraOrbit string `json:"camera_orbit"`
	FieldOfView string `json:"field_of_view"`
}

// Run migrates all documents using a worker pool.
func Run(ctx context.Context, cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						cfg.Progress(int(p), total, float64(p)/elapsed)
					}
				}
			}
		}()
	}

	outputs := make([]string, total)
	owner := make(map[string]string, total)
	for i, p := range paths {
		out := outputPath(cfg, p)
		if prev, ok := owner[out]; ok {
			results[i] = Result{
				Source: p,
				Error:  fmt.Sprintf("output %s already used by %s", out, prev),
			}
			continue
		}
		owner[out] = p
		outputs[i] = out
	}

	// Worker pool
	pathChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processDocument(ctx, cfg, paths[idx], outputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		if outputs[i] == "" {
			processed.Add(1)
			continue
		}
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

// outputPath maps an input document to its file under OutputDir.
func outputPath(cfg Config, path string) string {
	rel := filepath.Base(path)
	if cfg.BaseDir != "" {
		base, errBase := filepath.Abs(cfg.BaseDir)
		abs, errAbs := filepath.Abs(path)
		if errBase == nil && errAbs == nil {
			r, err := filepath.Rel(base, abs)
			if err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
				rel = r
			}
		}
	}
	return filepath.Join(cfg.OutputDir, rel)
}

func processDocument(ctx context.Context, cfg Config, path, output string) Result {
	res := Result{Source: path}

	doc, err := document.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	m := migrate.Migrator{
		Doc:        doc,
		Frame:      geometry.FixedFrame(cfg.Frame),
		Capability: viewer.DefinedRegistry(),
	}
	migrated, err := m.Run(ctx)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Hidden = len(migrated.Hidden)

	var rects []geometry.Rect
	for _, h := range migrated.Viewers {
		res.Viewers = append(res.Viewers, describe(h))
		rects = append(rects, h.Rect())
	}

	res.Output = output
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	f, err := os.Create(res.Output)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()
	if err := doc.Render(f); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview {
		img := preview.Thumbnail(preview.Render(cfg.Frame, rects), cfg.PreviewWidth)
		res.Preview = strings.TrimSuffix(output, filepath.Ext(output)) + ".webp"
		if err := preview.WriteWebP(res.Preview, img); err != nil {
			res.Error = fmt.Sprintf("WebP encode: %v", err)
			return res
		}
	}

	res.Success = true
	return res
}

func describe(h *viewer.Handle) ViewerInfo {
	attr := func(name string) string {
		v, _ := h.Attr(name)
		return v
	}
	return ViewerInfo{
		ID:          h.ID(),
		Src:         attr(viewer.AttrSource),
		Left:        h.Style(viewer.StyleLeft),
		Top:         h.Style(viewer.StyleTop),
		Width:       h.Style(viewer.StyleWidth),
		Height:      h.Style(viewer.StyleHeight),
		CameraOrbit: attr(viewer.AttrCameraOrbit),
		FieldOfView: attr(viewer.AttrFieldOfView),
	}
}
