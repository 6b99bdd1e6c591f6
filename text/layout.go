package text

import (
	"image"
	"slices"

	"golang.org/x/image/math/fixed"
)

// Layout is the immutable result of shaping one text at one pixel size:
// the glyph sequence, its partition into clusters, and the pixel origin of
// every glyph.
type Layout struct {
	text     string
	glyphs   []Glyph
	clusters []Cluster
	origins  []image.Point
}

// InkMetrics summarizes the ink of a layout.
type InkMetrics struct {
	// Box is the union of all glyph ink boxes, in glyph space.
	Box TextBox

	// MaxClusterWidth is the widest ink extent of a single cluster.
	MaxClusterWidth int
}

// NewLayout builds a layout from the output of a shaping engine.
// Glyphs must be in visual order. Glyphs are grouped into clusters by
// their Cluster id and the clusters are ordered by id, which is the source
// text position.
func NewLayout(text string, glyphs []Glyph) *Layout {
	l := &Layout{
		text:   text,
		glyphs: slices.Clone(glyphs),
	}
	l.clusters = partition(l.glyphs)
	l.origins = make([]image.Point, len(l.glyphs))

	// Pen positions follow cluster order, glyph order within a cluster.
	var pen fixed.Int26_6
	for _, c := range l.clusters {
		for _, gi := range c.Glyphs {
			g := l.glyphs[gi]
			l.origins[gi] = image.Point{
				X: pixel(pen + g.XOffset),
				Y: pixel(g.YOffset),
			}
			pen += g.XAdvance
		}
	}
	return l
}

// partition groups glyph indices by cluster id, ascending.
func partition(glyphs []Glyph) []Cluster {
	byID := make(map[int][]int)
	for i, g := range glyphs {
		byID[g.Cluster] = append(byID[g.Cluster], i)
	}
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	clusters := make([]Cluster, len(ids))
	for i, id := range ids {
		clusters[i] = Cluster{ID: id, Glyphs: byID[id]}
	}
	return clusters
}

// Text returns the shaped text.
func (l *Layout) Text() string {
	return l.text
}

// NumGlyphs returns the length of the glyph sequence.
func (l *Layout) NumGlyphs() int {
	return len(l.glyphs)
}

// Glyph returns glyph i of the sequence.
func (l *Layout) Glyph(i int) Glyph {
	return l.glyphs[i]
}

// Glyphs returns a copy of the glyph sequence.
func (l *Layout) Glyphs() []Glyph {
	return slices.Clone(l.glyphs)
}

// NumClusters returns the number of clusters.
func (l *Layout) NumClusters() int {
	return len(l.clusters)
}

// Cluster returns cluster i. The glyph index slice must not be modified.
func (l *Layout) Cluster(i int) Cluster {
	return l.clusters[i]
}

// Clusters returns a copy of the cluster partition.
func (l *Layout) Clusters() []Cluster {
	out := make([]Cluster, len(l.clusters))
	for i, c := range l.clusters {
		out[i] = Cluster{ID: c.ID, Glyphs: slices.Clone(c.Glyphs)}
	}
	return out
}

// Origin returns the whole-pixel origin of glyph i in glyph space: the pen
// position plus the glyph offset, rounded. Every consumer that places
// glyphs uses this so that measuring and drawing agree.
func (l *Layout) Origin(i int) (x, y int) {
	p := l.origins[i]
	return p.X, p.Y
}

// ClusterWindows returns the pixel span of every cluster derived from
// cumulative advances alone. Windows are contiguous: the first starts at
// 0 and each ends where the next begins.
func (l *Layout) ClusterWindows() []ClusterWindow {
	windows := make([]ClusterWindow, len(l.clusters))
	var advance fixed.Int26_6
	for i, c := range l.clusters {
		var clusterAdvance fixed.Int26_6
		for _, gi := range c.Glyphs {
			clusterAdvance += l.glyphs[gi].XAdvance
		}
		windows[i] = ClusterWindow{
			X:   pixel(advance),
			End: pixel(advance + clusterAdvance),
		}
		advance += clusterAdvance
	}
	return windows
}

// ClusterStrings returns the source text of every cluster. Cluster i spans
// from its own source position to the next cluster's.
func (l *Layout) ClusterStrings() []string {
	// starts[r] is the byte offset of rune r; the final entry is len(text).
	starts := make([]int, 0, len(l.text)+1)
	for i := range l.text {
		starts = append(starts, i)
	}
	starts = append(starts, len(l.text))

	byteAt := func(runeIndex int) int {
		if runeIndex >= len(starts) {
			return len(l.text)
		}
		return starts[runeIndex]
	}

	strs := make([]string, len(l.clusters))
	for i, c := range l.clusters {
		end := len(l.text)
		if i < len(l.clusters)-1 {
			end = byteAt(l.clusters[i+1].ID)
		}
		strs[i] = l.text[byteAt(c.ID):end]
	}
	return strs
}

// MaxAdvance returns the largest single-glyph advance in whole pixels.
func (l *Layout) MaxAdvance() int {
	m := 0
	for _, g := range l.glyphs {
		m = max(m, pixel(g.XAdvance))
	}
	return m
}

// InkBox measures the ink of the layout with r. Each glyph's ink box is
// moved to the glyph's origin and folded into a running union. The result
// is the authoritative canvas extent for rendering this layout.
func (l *Layout) InkBox(r GlyphRasterizer) (InkMetrics, error) {
	box := emptyBox()
	maxWidth := 0
	for _, c := range l.clusters {
		clusterBox := emptyBox()
		for _, gi := range c.Glyphs {
			ink, err := r.GlyphInkBox(l.glyphs[gi].GID)
			if err != nil {
				return InkMetrics{}, err
			}
			x, y := l.Origin(gi)
			clusterBox = clusterBox.Union(ink.Translate(x, y))
		}
		maxWidth = max(maxWidth, clusterBox.Width())
		box = box.Union(clusterBox)
	}
	if box.Empty() {
		return InkMetrics{}, ErrNoInk
	}
	return InkMetrics{Box: box, MaxClusterWidth: maxWidth}, nil
}
