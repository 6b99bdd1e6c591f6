package text

import "golang.org/x/image/math/fixed"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// Glyph is one entry of a shaped glyph sequence.
// Advances and offsets are in 26.6 fixed point pixels, y growing upward.
type Glyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the source cluster id: the rune index of the first rune
	// shaped into this glyph's cluster.
	Cluster int

	// XAdvance, YAdvance move the pen after this glyph.
	XAdvance, YAdvance fixed.Int26_6

	// XOffset, YOffset displace this glyph from the pen without moving it.
	XOffset, YOffset fixed.Int26_6
}

// Cluster is an atomic shaping unit: a base character with its marks, or a
// ligature. Glyphs holds indices into the layout's glyph sequence, in
// sequence order.
type Cluster struct {
	ID     int
	Glyphs []int
}
