package match

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

// gray builds an image from rows of values.
func gray(rows ...[]uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		copy(img.Pix[y*img.Stride:], row)
	}
	return img
}

// blit copies src into dst at (x0, y0).
func blit(dst, src *image.Gray, x0, y0 int) {
	for y := range src.Rect.Dy() {
		for x := range src.Rect.Dx() {
			dst.SetGray(x0+x, y0+y, src.GrayAt(x, y))
		}
	}
}

// ringTemplate is a 5x5 ring of ink with a hollow center.
func ringTemplate() *image.Gray {
	return gray(
		[]uint8{0, 200, 255, 200, 0},
		[]uint8{200, 0, 0, 0, 200},
		[]uint8{255, 0, 0, 0, 255},
		[]uint8{200, 0, 0, 0, 200},
		[]uint8{0, 200, 255, 200, 0},
	)
}

func TestSearch_RecoversTemplateWithNoise(t *testing.T) {
	tmpl := ringTemplate()
	rng := rand.New(rand.NewPCG(1, 2))

	offsets := []image.Point{{0, 0}, {7, 3}, {25, 11}, {13, 1}}
	for _, off := range offsets {
		canvas := image.NewGray(image.Rect(0, 0, 30, 16))
		for i := range canvas.Pix {
			canvas.Pix[i] = uint8(rng.IntN(256))
		}
		blit(canvas, tmpl, off.X, off.Y)
		// Noise under the template's zero pixels does not count.
		canvas.SetGray(off.X+2, off.Y+2, color.Gray{Y: 99})
		canvas.SetGray(off.X, off.Y, color.Gray{Y: 17})

		got := Search(canvas, tmpl, 0, 30)
		if got.X != off.X || got.Y != off.Y {
			t.Errorf("offset %v: Search = (%d, %d)", off, got.X, got.Y)
		}
		if got.SSD != 0 || got.Clamped {
			t.Errorf("offset %v: SSD = %d, clamped = %v", off, got.SSD, got.Clamped)
		}
	}
}

func TestSearch_WindowIncludesOffset(t *testing.T) {
	tmpl := ringTemplate()
	canvas := image.NewGray(image.Rect(0, 0, 40, 8))
	blit(canvas, tmpl, 3, 1)
	blit(canvas, tmpl, 21, 2)

	tests := []struct {
		name   string
		ws, we int
		want   image.Point
	}{
		{"whole canvas", 0, 40, image.Pt(3, 1)},
		{"first copy", 2, 9, image.Pt(3, 1)},
		{"second copy", 20, 27, image.Pt(21, 2)},
		{"window at second copy's right edge", 25, 26, image.Pt(21, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(canvas, tmpl, tt.ws, tt.we)
			if got.X != tt.want.X || got.Y != tt.want.Y {
				t.Errorf("Search(%d, %d) = (%d, %d), want %v", tt.ws, tt.we, got.X, got.Y, tt.want)
			}
		})
	}
}

func TestSearch_TiesFavorRasterOrder(t *testing.T) {
	tmpl := gray([]uint8{9, 9})
	canvas := gray(
		[]uint8{0, 0, 0, 0, 0, 9, 9},
		[]uint8{9, 9, 0, 0, 0, 0, 0},
		[]uint8{0, 0, 0, 9, 9, 0, 0},
	)
	got := Search(canvas, tmpl, 0, 7)
	if got.X != 5 || got.Y != 0 {
		t.Errorf("Search = (%d, %d), want (5, 0)", got.X, got.Y)
	}

	// Same row: the leftmost wins.
	row := gray([]uint8{9, 9, 0, 9, 9})
	if got := Search(row, tmpl, 0, 5); got.X != 0 {
		t.Errorf("Search in row = %d, want 0", got.X)
	}
}

func TestSearch_IgnoresColumnsOutsideWindow(t *testing.T) {
	// A 3 column glyph followed by 2 columns of a neighbor's bleed.
	tmpl := gray(
		[]uint8{200, 200, 200, 100, 100},
		[]uint8{200, 200, 200, 100, 100},
	)
	canvas := image.NewGray(image.Rect(0, 0, 20, 2))
	blit(canvas, gray([]uint8{200, 200, 200}, []uint8{200, 200, 200}), 10, 0)

	got := Search(canvas, tmpl, 10, 13)
	if got.X != 10 || got.Y != 0 || got.SSD != 0 {
		t.Errorf("windowed Search = %+v, want X=10 SSD=0", got)
	}

	if full := Search(canvas, tmpl, 0, 20); full.SSD == 0 {
		t.Errorf("unwindowed Search = %+v, bleed should cost", full)
	}
}

func TestSearch_ClampedRange(t *testing.T) {
	tmpl := image.NewGray(image.Rect(0, 0, 8, 2))
	canvas := image.NewGray(image.Rect(0, 0, 6, 4))

	got := Search(canvas, tmpl, 3, 5)
	if !got.Clamped {
		t.Fatalf("Search = %+v, want clamped", got)
	}
	if got.X != 0 || got.Y != 0 {
		t.Errorf("clamped offset = (%d, %d), want (0, 0)", got.X, got.Y)
	}

	// Template taller than the canvas.
	tall := image.NewGray(image.Rect(0, 0, 2, 9))
	got = Search(canvas, tall, 3, 5)
	if !got.Clamped || got.X != 3 {
		t.Errorf("Search(tall) = %+v, want clamped at x=3", got)
	}
}

func TestBoundary(t *testing.T) {
	// Inverted renders: "a" alone and "a b" with the b pushed right.
	solo := gray(
		[]uint8{0, 80, 255, 80, 0, 0},
		[]uint8{0, 255, 255, 255, 0, 0},
	)
	pair := gray(
		[]uint8{0, 80, 255, 80, 0, 0, 0, 0, 120, 255, 0},
		[]uint8{0, 255, 255, 255, 0, 0, 0, 0, 255, 255, 0},
	)
	if got := Boundary(solo, pair); got != 8 {
		t.Errorf("Boundary() = %d, want 8", got)
	}
}

func TestBoundary_AntialiasDifferences(t *testing.T) {
	// Lighter edges in the pair render do not end the cluster early.
	solo := gray([]uint8{0, 90, 255, 0, 0, 0})
	pair := gray([]uint8{0, 60, 255, 0, 0, 40})
	if got := Boundary(solo, pair); got != 5 {
		t.Errorf("Boundary() = %d, want 5", got)
	}
}

func TestBoundary_NoSuccessorInk(t *testing.T) {
	solo := gray([]uint8{0, 255, 0})
	pair := gray([]uint8{0, 255, 0, 0})
	if got := Boundary(solo, pair); got != 4 {
		t.Errorf("Boundary() = %d, want pair width 4", got)
	}
}

func TestBoundary_OriginIndependent(t *testing.T) {
	solo := gray([]uint8{0, 255, 0, 0})
	pair := gray([]uint8{0, 255, 0, 0, 7})
	sub := image.NewGray(image.Rect(0, 0, 9, 3))
	blit(sub, pair, 4, 1)
	shifted := sub.SubImage(image.Rect(4, 1, 9, 2)).(*image.Gray)

	if got := Boundary(solo, shifted); got != 4 {
		t.Errorf("Boundary(sub-image) = %d, want 4", got)
	}
}
