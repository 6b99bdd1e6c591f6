// Package match locates rendered cluster snippets inside a rendered string.
//
// All images are expected with ink high and background zero, i.e. the
// inversion of a black-on-white render.
package match

import (
	"image"
	"math"
)

// Result is the outcome of a template search.
type Result struct {
	// X, Y is the offset of the template's top-left pixel in the canvas.
	X, Y int

	// SSD is the masked sum of squared differences at (X, Y).
	SSD int64

	// Clamped is set when the candidate range was empty and (X, Y) was
	// clamped into the canvas without searching.
	Clamped bool
}

// Search finds the offset of tmpl inside canvas that minimizes the sum of
// squared differences over the template's nonzero pixels.
//
// Only template columns that land inside the window [ws, we) of canvas
// columns contribute, so ink that bleeds in from neighboring clusters does
// not dominate the match. Rows range over [0, H-th] and columns over
// [max(0, ws-tw+1), min(W-tw, we-1)]. Ties keep the first candidate in
// raster order.
func Search(canvas, tmpl *image.Gray, ws, we int) Result {
	cw, ch := canvas.Rect.Dx(), canvas.Rect.Dy()
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()

	startX := max(0, ws-tw+1)
	endX := min(cw-tw, we-1)
	endY := ch - th
	if endX < startX || endY < 0 {
		return Result{X: clamp(ws, 0, max(0, cw-tw)), Clamped: true}
	}

	best := Result{SSD: math.MaxInt64}
	for y := 0; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			txStart := max(0, ws-x)
			txEnd := min(tw, we-x)

			var ssd int64
			for ty := range th {
				trow := tmpl.Pix[tmpl.PixOffset(tmpl.Rect.Min.X, tmpl.Rect.Min.Y+ty):]
				crow := canvas.Pix[canvas.PixOffset(canvas.Rect.Min.X+x, canvas.Rect.Min.Y+y+ty):]
				for tx := txStart; tx < txEnd; tx++ {
					if tv := trow[tx]; tv != 0 {
						d := int64(tv) - int64(crow[tx])
						ssd += d * d
					}
				}
				if ssd >= best.SSD {
					break
				}
			}

			if ssd < best.SSD {
				best = Result{X: x, Y: y, SSD: ssd}
			}
		}
	}
	return best
}

// Boundary returns the first column, scanning left to right, at which pair
// has strictly more ink than solo in any row. solo is a render of one
// cluster and pair the same cluster followed by its successor, so the
// column marks where the successor's ink begins. Pixels outside either
// image count as zero. If pair never exceeds solo, the width of pair is
// returned.
func Boundary(solo, pair *image.Gray) int {
	pw, ph := pair.Rect.Dx(), pair.Rect.Dy()
	for x := range pw {
		for y := range ph {
			if at(pair, x, y) > at(solo, x, y) {
				return x
			}
		}
	}
	return pw
}

// at returns the pixel at (x, y) relative to the image origin, or zero
// outside the image.
func at(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return 0
	}
	return img.Pix[img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
