package image

import "image"

// White is the background value of a rendered text image.
const White = 255

// InkBounds returns the smallest rectangle holding every pixel of img that
// differs from White. Each edge is found by scanning inward from that side
// of the image. The result is empty when the image has no ink.
func InkBounds(img *image.Gray) image.Rectangle {
	r := img.Rect
	rowInked := func(y int) bool {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X-1, y)+1]
		for _, v := range row {
			if v != White {
				return true
			}
		}
		return false
	}
	colInked := func(x, y0, y1 int) bool {
		for y := y0; y < y1; y++ {
			if img.Pix[img.PixOffset(x, y)] != White {
				return true
			}
		}
		return false
	}
	if r.Empty() {
		return image.Rectangle{}
	}

	top := r.Min.Y
	for top < r.Max.Y && !rowInked(top) {
		top++
	}
	if top == r.Max.Y {
		return image.Rectangle{}
	}
	bottom := r.Max.Y
	for !rowInked(bottom - 1) {
		bottom--
	}
	left := r.Min.X
	for !colInked(left, top, bottom) {
		left++
	}
	right := r.Max.X
	for !colInked(right-1, top, bottom) {
		right--
	}
	return image.Rect(left, top, right, bottom)
}

// Crop returns a copy of the r part of img with its origin at (0, 0).
// r is clipped to the image bounds.
func Crop(img *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(img.Rect)
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := range r.Dy() {
		src := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()], img.Pix[src:src+r.Dx()])
	}
	return out
}

// CropInk crops img to InkBounds. ok is false when the image has no ink.
func CropInk(img *image.Gray) (cropped *image.Gray, ok bool) {
	r := InkBounds(img)
	if r.Empty() {
		return nil, false
	}
	return Crop(img, r), true
}

// Invert returns a copy of img, with its origin at (0, 0), in which every
// value v is replaced by 255-v so that ink is high and background is zero.
func Invert(img *image.Gray) *image.Gray {
	r := img.Rect
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := range r.Dy() {
		src := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		dst := out.Pix[y*out.Stride : y*out.Stride+r.Dx()]
		for x := range dst {
			dst[x] = White - src[x]
		}
	}
	return out
}

// Blank returns a white image of the given size.
func Blank(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = White
	}
	return img
}
