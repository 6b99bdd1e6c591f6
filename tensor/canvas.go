package tensor

import "fmt"

// Canvas is the pixel frame shared by every channel of one render call.
// It is derived from an ink bounding box given in glyph space, where y
// grows upward; canvas rows grow downward.
type Canvas struct {
	XMin   int
	YMax   int
	Width  int
	Height int
}

// CanvasFor returns the canvas covering the box [xMin,xMax) x [yMin,yMax).
func CanvasFor(xMin, xMax, yMin, yMax int) (Canvas, error) {
	if xMax < xMin || yMax < yMin {
		return Canvas{}, fmt.Errorf("tensor: inverted box x[%d,%d) y[%d,%d)", xMin, xMax, yMin, yMax)
	}
	return Canvas{
		XMin:   xMin,
		YMax:   yMax,
		Width:  xMax - xMin,
		Height: yMax - yMin,
	}, nil
}

// Place maps the top-left corner of a bitmap placed at (left, top) in
// glyph space to canvas (col, row). Bitmap row r, column k then lands at
// (col+k, row+r).
func (c Canvas) Place(left, top int) (col, row int) {
	return left - c.XMin, c.YMax - top
}

// Contains reports whether (col, row) lies on the canvas.
func (c Canvas) Contains(col, row int) bool {
	return col >= 0 && col < c.Width && row >= 0 && row < c.Height
}

// NewTensor allocates a tensor of the canvas size with one image channel
// plus masks mask channels. Channel 0 starts as background.
func (c Canvas) NewTensor(masks int) *Tensor {
	t := New(1+masks, c.Height, c.Width)
	t.Fill(0, Background)
	return t
}
