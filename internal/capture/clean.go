package capture

import (
	"image"

	"golang.org/x/image/draw"
)

// RemoveSpecks clears isolated visible blobs, such as antialiasing debris
// around a rendered model. A blob survives when it holds at least minShare
// of all visible pixels. Blobs are 8-connected. The input is not modified.
func RemoveSpecks(img *image.NRGBA, minShare float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	visible := func(x, y int) bool {
		return img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] > 0
	}

	blob := make([]int, w*h) // 0 = unvisited, else blob number
	var sizes []int
	total := 0
	stack := make([]image.Point, 0, 256)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if blob[y*w+x] != 0 || !visible(x, y) {
				continue
			}
			id := len(sizes) + 1
			size := 0
			blob[y*w+x] = id
			stack = append(stack[:0], image.Pt(x, y))
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				for ny := p.Y - 1; ny <= p.Y+1; ny++ {
					for nx := p.X - 1; nx <= p.X+1; nx++ {
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if blob[ny*w+nx] == 0 && visible(nx, ny) {
							blob[ny*w+nx] = id
							stack = append(stack, image.Pt(nx, ny))
						}
					}
				}
			}
			sizes = append(sizes, size)
			total += size
		}
	}
	if len(sizes) <= 1 {
		return img
	}

	keep := int(float64(total) * minShare)
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	removed := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := blob[y*w+x]
			if id == 0 || sizes[id-1] >= keep {
				continue
			}
			i := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			copy(out.Pix[i:i+4], []uint8{0, 0, 0, 0})
			removed++
		}
	}
	tracer().Debugf("removed %d speck pixel(s) of %d blobs", removed, len(sizes))
	return out
}

// Crop returns the visible part of img as a new image anchored at the
// origin. A fully transparent image is returned unchanged.
func Crop(img *image.NRGBA) *image.NRGBA {
	vb := VisibleBounds(img)
	if vb.Empty() {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, vb.Dx(), vb.Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min.Add(vb.Min), draw.Src)
	return out
}
