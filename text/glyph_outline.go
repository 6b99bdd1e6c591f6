package text

import (
	"iter"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlinePoint represents a point in a glyph outline, in pixels at the
// extraction size, y growing downward.
type OutlinePoint struct {
	X, Y float32
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// PathBuilder receives the segments of an outline. Close is called at the
// end of every contour.
type PathBuilder interface {
	MoveTo(to OutlinePoint)
	LineTo(to OutlinePoint)
	QuadTo(ctrl, to OutlinePoint)
	CubicTo(ctrl0, ctrl1, to OutlinePoint)
	Close()
}

// OutlineExtractor extracts glyph outlines from a font source.
// It is not safe for concurrent use.
type OutlineExtractor struct {
	font *sfnt.Font
	ppem fixed.Int26_6
	buf  sfnt.Buffer
}

// OutlineExtractor creates an extractor producing outlines at ppem pixels
// per em. Extracting at UnitsPerEm yields coordinates in font units.
func (s *FontSource) OutlineExtractor(ppem float64) (*OutlineExtractor, error) {
	s.copyCheck()
	f, err := s.outlineFont()
	if err != nil {
		return nil, err
	}
	return &OutlineExtractor{font: f, ppem: floatToFixed(ppem)}, nil
}

// Segments returns the outline of gid as a lazy sequence. The glyph is
// loaded when the sequence is first ranged over; a load failure ends the
// sequence early and is reported by the returned error function. The
// sequence can be consumed only once.
func (e *OutlineExtractor) Segments(gid GlyphID) (iter.Seq[OutlineSegment], func() error) {
	var (
		used bool
		err  error
	)
	seq := func(yield func(OutlineSegment) bool) {
		if used {
			return
		}
		used = true

		segs, loadErr := e.font.LoadGlyph(&e.buf, sfnt.GlyphIndex(gid), e.ppem, nil)
		if loadErr != nil {
			err = &RasterError{GID: gid, Err: loadErr}
			return
		}
		for _, seg := range segs {
			if !yield(convertSegment(seg)) {
				return
			}
		}
	}
	return seq, func() error { return err }
}

// Decompose feeds every segment of seq to b, closing each contour.
func Decompose(seq iter.Seq[OutlineSegment], b PathBuilder) {
	open := false
	for seg := range seq {
		switch seg.Op {
		case OutlineOpMoveTo:
			if open {
				b.Close()
			}
			open = true
			b.MoveTo(seg.Points[0])
		case OutlineOpLineTo:
			b.LineTo(seg.Points[0])
		case OutlineOpQuadTo:
			b.QuadTo(seg.Points[0], seg.Points[1])
		case OutlineOpCubicTo:
			b.CubicTo(seg.Points[0], seg.Points[1], seg.Points[2])
		}
	}
	if open {
		b.Close()
	}
}

// convertSegment converts an sfnt segment to our format.
func convertSegment(seg sfnt.Segment) OutlineSegment {
	out := OutlineSegment{}
	switch seg.Op {
	case sfnt.SegmentOpMoveTo:
		out.Op = OutlineOpMoveTo
		out.Points[0] = fixedPointToOutline(seg.Args[0])
	case sfnt.SegmentOpLineTo:
		out.Op = OutlineOpLineTo
		out.Points[0] = fixedPointToOutline(seg.Args[0])
	case sfnt.SegmentOpQuadTo:
		out.Op = OutlineOpQuadTo
		out.Points[0] = fixedPointToOutline(seg.Args[0])
		out.Points[1] = fixedPointToOutline(seg.Args[1])
	case sfnt.SegmentOpCubeTo:
		out.Op = OutlineOpCubicTo
		out.Points[0] = fixedPointToOutline(seg.Args[0])
		out.Points[1] = fixedPointToOutline(seg.Args[1])
		out.Points[2] = fixedPointToOutline(seg.Args[2])
	}
	return out
}

// fixedPointToOutline converts a fixed.Point26_6 to OutlinePoint.
func fixedPointToOutline(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float32(p.X) / 64.0,
		Y: float32(p.Y) / 64.0,
	}
}

// ClusterPaths builds one path per cluster from the outlines of its
// glyphs. Each cluster's path starts at its own pen origin, so the
// returned advances (one per cluster except the last) are needed to lay
// the paths out again.
func (l *Layout) ClusterPaths(e *OutlineExtractor) ([]*Path, []float64, error) {
	paths := make([]*Path, 0, len(l.clusters))
	advances := make([]float64, 0, max(len(l.clusters)-1, 0))
	for i, c := range l.clusters {
		p := &Path{}
		var x fixed.Int26_6
		for _, gi := range c.Glyphs {
			g := l.glyphs[gi]
			p.offset = OutlinePoint{
				X: float32(fixedToFloat(x + g.XOffset)),
				Y: float32(fixedToFloat(-g.YOffset)),
			}
			seq, errFn := e.Segments(g.GID)
			Decompose(seq, p)
			if err := errFn(); err != nil {
				return nil, nil, err
			}
			x += g.XAdvance
		}
		paths = append(paths, p)
		if i < len(l.clusters)-1 {
			advances = append(advances, fixedToFloat(x))
		}
	}
	return paths, advances, nil
}
