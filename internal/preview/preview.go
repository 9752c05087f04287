// Package preview draws the viewer layout of a document as an image, so the
// result of a migration can be checked without a browser.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"model-stage/internal/geometry"
)

// palette cycles through distinguishable box colors.
var palette = []color.NRGBA{
	{R: 0xe6, G: 0x4b, B: 0x35, A: 0xff},
	{R: 0x4d, G: 0xbb, B: 0xd5, A: 0xff},
	{R: 0x00, G: 0xa0, B: 0x87, A: 0xff},
	{R: 0xf3, G: 0x9b, B: 0x7f, A: 0xff},
	{R: 0x84, G: 0x91, B: 0xb4, A: 0xff},
	{R: 0x91, G: 0xd1, B: 0xc2, A: 0xff},
}

const (
	fillAlpha = 0x40
	border    = 2
)

// Render draws every rect onto a transparent canvas the size of frame: a
// translucent fill plus a solid border. Parts outside the frame are clipped.
func Render(frame geometry.Frame, rects []geometry.Rect) *image.NRGBA {
	w := int(math.Round(frame.Width))
	h := int(math.Round(frame.Height))
	canvas := image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))

	for i, r := range rects {
		box := pixelRect(r).Intersect(canvas.Bounds())
		if box.Empty() {
			continue
		}
		c := palette[i%len(palette)]
		fill := c
		fill.A = fillAlpha
		draw.Draw(canvas, box, image.NewUniform(fill), image.Point{}, draw.Over)

		edge := image.NewUniform(c)
		inner := box.Inset(border)
		for _, side := range []image.Rectangle{
			image.Rect(box.Min.X, box.Min.Y, box.Max.X, inner.Min.Y),
			image.Rect(box.Min.X, inner.Max.Y, box.Max.X, box.Max.Y),
			image.Rect(box.Min.X, box.Min.Y, inner.Min.X, box.Max.Y),
			image.Rect(inner.Max.X, box.Min.Y, box.Max.X, box.Max.Y),
		} {
			draw.Draw(canvas, side, edge, image.Point{}, draw.Src)
		}
	}
	return canvas
}

func pixelRect(r geometry.Rect) image.Rectangle {
	if math.IsNaN(r.Left) || math.IsNaN(r.Top) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// Thumbnail scales img down so its width is at most maxW, keeping the aspect
// ratio. Alpha is premultiplied while filtering so transparent edges do not
// darken.
func Thumbnail(img *image.NRGBA, maxW int) *image.NRGBA {
	b := img.Bounds()
	if maxW <= 0 || b.Dx() <= maxW {
		return img
	}
	h := int(math.Round(float64(b.Dy()) * float64(maxW) / float64(b.Dx())))
	if h < 1 {
		h = 1
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, maxW, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dst, image.Point{}, draw.Src)
	return out
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: webp encode: %w", err)
	}
	return nil
}

// WriteWebP saves img as WebP at path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer f.Close()
	return EncodeWebP(f, img)
}
