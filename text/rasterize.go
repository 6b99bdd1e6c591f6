package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphBitmap is an 8-bit coverage bitmap of one glyph.
//
// Left and Top place the bitmap relative to the glyph origin in glyph
// space (y up): column 0 starts at x = Left and row 0 ends at y = Top,
// following the FreeType bitmap_left/bitmap_top convention.
type GlyphBitmap struct {
	Pix    []uint8
	Stride int
	Width  int
	Rows   int
	Left   int
	Top    int
}

// Coverage returns the coverage of the pixel at (col, row).
func (b *GlyphBitmap) Coverage(col, row int) uint8 {
	return b.Pix[row*b.Stride+col]
}

// InkBox returns the bitmap extent in glyph space.
func (b *GlyphBitmap) InkBox() TextBox {
	return TextBox{
		XMin: b.Left, XMax: b.Left + b.Width,
		YMin: b.Top - b.Rows, YMax: b.Top,
	}
}

// GlyphRasterizer turns glyph ids into coverage bitmaps at a fixed pixel
// size. For every glyph, GlyphInkBox must equal RasterizeGlyph(gid).InkBox().
type GlyphRasterizer interface {
	RasterizeGlyph(gid GlyphID) (*GlyphBitmap, error)
	GlyphInkBox(gid GlyphID) (TextBox, error)
}

// Rasterizer rasterizes glyph outlines of a FontSource with
// golang.org/x/image/vector.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	font *sfnt.Font
	ppem fixed.Int26_6
	buf  sfnt.Buffer
	rast vector.Rasterizer
}

// Rasterizer creates a rasterizer for glyphs at ppem pixels per em.
func (s *FontSource) Rasterizer(ppem float64) (*Rasterizer, error) {
	s.copyCheck()
	f, err := s.outlineFont()
	if err != nil {
		return nil, err
	}
	if ppem <= 0 {
		return nil, fmt.Errorf("text: invalid pixel size %v", ppem)
	}
	return &Rasterizer{font: f, ppem: floatToFixed(ppem)}, nil
}

// GlyphInkBox returns the pixel-aligned bounds of the glyph's outline.
// Glyphs without an outline (such as space) have an empty box.
func (r *Rasterizer) GlyphInkBox(gid GlyphID) (TextBox, error) {
	segs, err := r.load(gid)
	if err != nil {
		return TextBox{}, err
	}
	if len(segs) == 0 {
		return TextBox{}, nil
	}
	return quantize(segs.Bounds()), nil
}

// RasterizeGlyph renders the glyph's outline into a coverage bitmap whose
// extent is exactly GlyphInkBox(gid).
func (r *Rasterizer) RasterizeGlyph(gid GlyphID) (*GlyphBitmap, error) {
	segs, err := r.load(gid)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return &GlyphBitmap{}, nil
	}

	box := quantize(segs.Bounds())
	width, rows := box.Width(), box.Height()

	// Bias from glyph space (y down, origin at the dot) into rasterizer
	// space, whose top-left corner is the bitmap's top-left pixel.
	biasX := -fixed.I(box.XMin)
	biasY := fixed.I(box.YMax)

	r.rast.Reset(width, rows)
	r.rast.DrawOp = draw.Src
	started := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				r.rast.ClosePath()
			}
			started = true
			r.rast.MoveTo(toRaster(seg.Args[0], biasX, biasY))
		case sfnt.SegmentOpLineTo:
			r.rast.LineTo(toRaster(seg.Args[0], biasX, biasY))
		case sfnt.SegmentOpQuadTo:
			bx, by := toRaster(seg.Args[0], biasX, biasY)
			cx, cy := toRaster(seg.Args[1], biasX, biasY)
			r.rast.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := toRaster(seg.Args[0], biasX, biasY)
			cx, cy := toRaster(seg.Args[1], biasX, biasY)
			dx, dy := toRaster(seg.Args[2], biasX, biasY)
			r.rast.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if started {
		r.rast.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, rows))
	r.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphBitmap{
		Pix:    mask.Pix,
		Stride: mask.Stride,
		Width:  width,
		Rows:   rows,
		Left:   box.XMin,
		Top:    box.YMax,
	}, nil
}

func (r *Rasterizer) load(gid GlyphID) (sfnt.Segments, error) {
	segs, err := r.font.LoadGlyph(&r.buf, sfnt.GlyphIndex(gid), r.ppem, nil)
	if err != nil {
		return nil, &RasterError{GID: gid, Err: err}
	}
	return segs, nil
}

// quantize converts y-down sub-pixel bounds into a y-up pixel box that
// encloses them.
func quantize(b fixed.Rectangle26_6) TextBox {
	return TextBox{
		XMin: b.Min.X.Floor(),
		XMax: b.Max.X.Ceil(),
		YMin: -b.Max.Y.Ceil(),
		YMax: -b.Min.Y.Floor(),
	}
}

// toRaster maps a y-down glyph-space point into rasterizer space.
// biasY is the box top in y-up pixels; y-down glyph coordinates are
// measured from the baseline, so the row coordinate is y + top.
func toRaster(p fixed.Point26_6, biasX, biasY fixed.Int26_6) (float32, float32) {
	return float32(p.X+biasX) / 64, float32(p.Y+biasY) / 64
}
