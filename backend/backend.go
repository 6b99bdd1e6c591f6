package backend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ztaaha/basic-text-datagen/tensor"
	"github.com/ztaaha/basic-text-datagen/text"
)

// Common backend errors.
var (
	// ErrNoLayout is returned when a job carries no shaped layout.
	ErrNoLayout = errors.New("backend: job has no layout")

	// ErrNoRasterizer is returned when a job carries no glyph rasterizer.
	ErrNoRasterizer = errors.New("backend: job has no rasterizer")
)

// Backend turns a shaped layout into an output tensor.
//
// Implementations must not retain the job or the returned result after
// Render returns: the caller owns the result exclusively.
type Backend interface {
	// Name returns the backend identifier (e.g., "local", "remote").
	Name() string

	// Render produces the tensor for one job. Any failure aborts the
	// whole call; no partial tensor is returned.
	Render(ctx context.Context, job *Job) (*Result, error)
}

// Job is one render request.
type Job struct {
	// Layout is the shaped text.
	Layout *text.Layout

	// Rasterizer measures and draws glyphs at the layout's pixel size.
	Rasterizer text.GlyphRasterizer

	// Size is the requested font size in points.
	Size float64
}

// Validate reports whether the job can be rendered.
func (j *Job) Validate() error {
	if j == nil || j.Layout == nil {
		return ErrNoLayout
	}
	if j.Rasterizer == nil {
		return ErrNoRasterizer
	}
	return nil
}

// Result is the output of a render call.
type Result struct {
	// Tensor has 1 + cluster count channels: the grayscale canvas
	// followed by one occupancy mask per cluster.
	Tensor *tensor.Tensor

	// Windows are the cluster windows the backend worked with: the
	// advance-based windows of the layout for the local backend, the
	// search windows in canvas columns for the remote backend.
	Windows []text.ClusterWindow

	// Alignments records how each cluster was placed by backends that
	// infer placement. It is nil for backends that place glyphs directly.
	Alignments []Alignment
}

// Alignment describes where a cluster's template was found on the canvas.
type Alignment struct {
	// Boundary is the column where the next cluster's ink starts in the
	// paired render, or the solo render's width for the last cluster.
	Boundary int

	// X, Y is the template's top-left corner on the canvas.
	X, Y int

	// Width, Height is the template size.
	Width, Height int

	// SSD is the masked sum of squared differences at (X, Y).
	SSD int64

	// Clamped is set when no search was possible and the placement was
	// clamped onto the canvas.
	Clamped bool
}

// LoggerSetter is implemented by backends that accept a logger.
type LoggerSetter interface {
	SetLogger(*slog.Logger)
}

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }
