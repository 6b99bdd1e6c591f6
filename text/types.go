package text

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// TextBox is an integer pixel rectangle in glyph space, where y grows
// upward from the baseline. XMax and YMax are exclusive.
type TextBox struct {
	XMin, XMax int
	YMin, YMax int
}

// emptyBox returns the identity element for Union: a box that every
// other box extends.
func emptyBox() TextBox {
	return TextBox{
		XMin: math.MaxInt, XMax: math.MinInt,
		YMin: math.MaxInt, YMax: math.MinInt,
	}
}

// Width returns the horizontal extent of the box.
func (b TextBox) Width() int {
	if b.Empty() {
		return 0
	}
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box.
func (b TextBox) Height() int {
	if b.Empty() {
		return 0
	}
	return b.YMax - b.YMin
}

// Empty reports whether the box encloses no pixels.
func (b TextBox) Empty() bool {
	return b.XMin >= b.XMax || b.YMin >= b.YMax
}

// Translate returns the box moved by (dx, dy).
func (b TextBox) Translate(dx, dy int) TextBox {
	return TextBox{
		XMin: b.XMin + dx, XMax: b.XMax + dx,
		YMin: b.YMin + dy, YMax: b.YMax + dy,
	}
}

// Union returns the smallest box enclosing both b and o.
// Empty boxes are ignored.
func (b TextBox) Union(o TextBox) TextBox {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return TextBox{
		XMin: min(b.XMin, o.XMin), XMax: max(b.XMax, o.XMax),
		YMin: min(b.YMin, o.YMin), YMax: max(b.YMax, o.YMax),
	}
}

// Contains reports whether o lies entirely inside b.
func (b TextBox) Contains(o TextBox) bool {
	if o.Empty() {
		return true
	}
	return o.XMin >= b.XMin && o.XMax <= b.XMax && o.YMin >= b.YMin && o.YMax <= b.YMax
}

func (b TextBox) String() string {
	return fmt.Sprintf("x[%d,%d) y[%d,%d)", b.XMin, b.XMax, b.YMin, b.YMax)
}

// ClusterWindow is the horizontal pixel span a cluster occupies according
// to the shaper's advances. It is a hint derived from metrics, not ink:
// the ink of a cluster may extend past its window.
type ClusterWindow struct {
	X   int
	End int
}

// Width returns End - X.
func (w ClusterWindow) Width() int {
	return w.End - w.X
}

// pixel rounds a 26.6 fixed-point value to the nearest whole pixel,
// rounding halves up.
func pixel(v fixed.Int26_6) int {
	return int(v+32) >> 6
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
