package capture

import (
	"image"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'stage.capture'
func tracer() tracing.Trace {
	return tracing.Select("stage.capture")
}

// VisiblePixels returns every pixel with non-zero alpha, row by row,
// relative to the image origin.
func VisiblePixels(img *image.NRGBA) []image.Point {
	b := img.Bounds()
	var pts []image.Point
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] > 0 {
				pts = append(pts, image.Pt(x-b.Min.X, y-b.Min.Y))
			}
		}
	}
	return pts
}

// VisibleBounds returns the smallest rectangle holding every visible pixel,
// relative to the image origin. It is empty for a fully transparent image.
func VisibleBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	for _, p := range VisiblePixels(img) {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// Coverage returns the share of visible pixels, 0..1.
func Coverage(img *image.NRGBA) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	return float64(len(VisiblePixels(img))) / float64(total)
}
