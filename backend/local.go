package backend

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ztaaha/basic-text-datagen/tensor"
	"github.com/ztaaha/basic-text-datagen/text"
)

// NameLocal is the name of the local rasterization backend.
const NameLocal = "local"

// Local renders by rasterizing glyph outlines cluster by cluster.
//
// Local is safe for concurrent use as long as each job has its own
// rasterizer.
type Local struct {
	logger atomic.Pointer[slog.Logger]
}

// NewLocal creates a local backend. A nil logger discards output.
func NewLocal(logger *slog.Logger) *Local {
	b := &Local{}
	b.SetLogger(logger)
	return b
}

// Name returns the backend identifier.
func (b *Local) Name() string {
	return NameLocal
}

// SetLogger replaces the backend's logger. Pass nil to disable logging.
func (b *Local) SetLogger(l *slog.Logger) {
	if l == nil {
		l = NopLogger()
	}
	b.logger.Store(l)
}

// Render rasterizes every glyph of the layout onto a canvas sized to the
// layout's ink box. Each covered pixel darkens channel 0 and sets the
// mask of the glyph's cluster.
func (b *Local) Render(ctx context.Context, job *Job) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	layout := job.Layout

	ink, err := layout.InkBox(job.Rasterizer)
	if err != nil {
		return nil, err
	}
	box := ink.Box
	canvas, err := tensor.CanvasFor(box.XMin, box.XMax, box.YMin, box.YMax)
	if err != nil {
		return nil, err
	}
	out := canvas.NewTensor(layout.NumClusters())

	for ci := range layout.NumClusters() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		channel := 1 + ci
		for _, gi := range layout.Cluster(ci).Glyphs {
			if err := b.drawGlyph(out, canvas, layout, gi, channel, job.Rasterizer); err != nil {
				return nil, err
			}
		}
	}

	b.logger.Load().Debug("local render",
		"text", layout.Text(),
		"size", job.Size,
		"clusters", layout.NumClusters(),
		"width", canvas.Width,
		"height", canvas.Height,
	)
	return &Result{Tensor: out, Windows: layout.ClusterWindows()}, nil
}

// drawGlyph composites glyph gi onto channel 0 and marks its coverage in
// the mask channel.
func (b *Local) drawGlyph(out *tensor.Tensor, canvas tensor.Canvas, layout *text.Layout, gi, channel int, r text.GlyphRasterizer) error {
	gid := layout.Glyph(gi).GID
	bm, err := r.RasterizeGlyph(gid)
	if err != nil {
		return err
	}
	x, y := layout.Origin(gi)
	col0, row0 := canvas.Place(x+bm.Left, y+bm.Top)

	for row := range bm.Rows {
		for col := range bm.Width {
			cov := bm.Coverage(col, row)
			if cov == 0 {
				continue
			}
			cc, cr := col0+col, row0+row
			if !canvas.Contains(cc, cr) {
				return &text.RasterError{
					GID: gid,
					Err: fmt.Errorf("pixel (%d, %d) outside %dx%d canvas", cc, cr, canvas.Width, canvas.Height),
				}
			}
			out.Set(channel, cr, cc, 1)
			out.Set(0, cr, cc, blend(out.At(0, cr, cc), cov))
		}
	}
	return nil
}

// blend darkens a channel-0 value by coverage cov.
func blend(old, cov uint8) uint8 {
	return div255(uint32(old)*uint32(255-cov) + 128)
}

// div255 divides by 255 for values produced by blend.
func div255(v uint32) uint8 {
	return uint8(((v >> 8) + v) >> 8) //nolint:gosec // v <= 255*255+128, result fits
}
