// Package tensor holds the output of a render call and the canvas geometry
// every backend places pixels with.
//
// A Tensor is laid out as [channel][row][col] of uint8. Channel 0 is the
// composited grayscale canvas: 255 is background, darker is ink. Channels
// 1..C are binary occupancy masks, one per cluster, holding 0 or 1.
package tensor

import (
	"bytes"
	"fmt"
	"image"
)

// Background is the channel-0 value of a pixel without ink.
const Background = 255

// Tensor is a dense [channel][row][col] uint8 tensor.
//
// Backends fill a tensor during a render call and hand it to the caller,
// who owns it exclusively from then on.
type Tensor struct {
	channels int
	height   int
	width    int
	pix      []uint8
}

// New creates a zeroed tensor.
func New(channels, height, width int) *Tensor {
	if channels < 0 || height < 0 || width < 0 {
		panic(fmt.Sprintf("tensor: negative dimensions %dx%dx%d", channels, height, width))
	}
	return &Tensor{
		channels: channels,
		height:   height,
		width:    width,
		pix:      make([]uint8, channels*height*width),
	}
}

// Channels returns the number of channels.
func (t *Tensor) Channels() int { return t.channels }

// Height returns the number of rows.
func (t *Tensor) Height() int { return t.height }

// Width returns the number of columns.
func (t *Tensor) Width() int { return t.width }

// Shape returns (channels, height, width).
func (t *Tensor) Shape() (int, int, int) {
	return t.channels, t.height, t.width
}

func (t *Tensor) offset(c, row, col int) int {
	return (c*t.height+row)*t.width + col
}

// At returns the value at (c, row, col).
func (t *Tensor) At(c, row, col int) uint8 {
	return t.pix[t.offset(c, row, col)]
}

// Set stores v at (c, row, col).
func (t *Tensor) Set(c, row, col int, v uint8) {
	t.pix[t.offset(c, row, col)] = v
}

// Fill sets every pixel of channel c to v.
func (t *Tensor) Fill(c int, v uint8) {
	plane := t.plane(c)
	for i := range plane {
		plane[i] = v
	}
}

// plane returns channel c without copying.
func (t *Tensor) plane(c int) []uint8 {
	n := t.height * t.width
	return t.pix[c*n : (c+1)*n : (c+1)*n]
}

// SetPlane copies a row-major height*width plane into channel c.
func (t *Tensor) SetPlane(c int, src []uint8) {
	if len(src) != t.height*t.width {
		panic(fmt.Sprintf("tensor: plane size %d, want %d", len(src), t.height*t.width))
	}
	copy(t.plane(c), src)
}

// Channel returns a copy of channel c in row-major order.
func (t *Tensor) Channel(c int) []uint8 {
	return bytes.Clone(t.plane(c))
}

// Gray returns a copy of channel c as an image. Mask channels are scaled
// so that set pixels are black on white, matching channel 0.
func (t *Tensor) Gray(c int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, t.width, t.height))
	plane := t.plane(c)
	for row := range t.height {
		dst := img.Pix[row*img.Stride : row*img.Stride+t.width]
		src := plane[row*t.width : (row+1)*t.width]
		if c == 0 {
			copy(dst, src)
			continue
		}
		for i, v := range src {
			if v != 0 {
				dst[i] = 0
			} else {
				dst[i] = Background
			}
		}
	}
	return img
}

// MaskBounds returns the smallest rectangle of (col, row) coordinates
// enclosing every nonzero pixel of channel c. It is empty when the channel
// has no set pixels.
func (t *Tensor) MaskBounds(c int) image.Rectangle {
	var r image.Rectangle
	plane := t.plane(c)
	for row := range t.height {
		for col := range t.width {
			if plane[row*t.width+col] != 0 {
				r = r.Union(image.Rect(col, row, col+1, row+1))
			}
		}
	}
	return r
}

// Equal reports whether t and o have the same shape and contents.
func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.channels == o.channels && t.height == o.height && t.width == o.width &&
		bytes.Equal(t.pix, o.pix)
}
