// Package remote implements a backend that renders through an external
// text rendering service and recovers per-cluster placement by template
// matching.
//
// The service is asked for the whole text and for every cluster on its
// own. The whole-text image becomes the canvas. Each cluster's own image
// is cropped to its ink and searched for on the canvas near the position
// the local shaper predicts for that cluster.
package remote

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ztaaha/basic-text-datagen/backend"
	imgutil "github.com/ztaaha/basic-text-datagen/internal/image"
	"github.com/ztaaha/basic-text-datagen/internal/parallel"
	"github.com/ztaaha/basic-text-datagen/tensor"
	"github.com/ztaaha/basic-text-datagen/text"
)

// Name is the name of the remote backend.
const Name = "remote"

// Backend renders through a remote service.
//
// Backend is safe for concurrent use.
type Backend struct {
	cfg       config
	serviceID string
	endpoint  string
	log       atomic.Pointer[slog.Logger]
}

// New creates a backend rendering with the service font serviceID.
func New(serviceID string, opts ...Option) (*Backend, error) {
	if serviceID == "" {
		return nil, ErrNoServiceID
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: invalid base URL: %w", err)
	}

	b := &Backend{
		cfg:       cfg,
		serviceID: serviceID,
		endpoint:  base.JoinPath(serviceID).String(),
	}
	b.SetLogger(cfg.logger)
	return b, nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return Name
}

// ServiceID returns the service font id.
func (b *Backend) ServiceID() string {
	return b.serviceID
}

// SetLogger replaces the backend's logger. Pass nil to disable logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = backend.NopLogger()
	}
	b.log.Store(l)
}

func (b *Backend) logger() *slog.Logger {
	return b.log.Load()
}

// responses holds the raw bodies of one render call, in request order.
type responses struct {
	full []byte
	solo [][]byte
	pair [][]byte // nil for the last cluster
}

// Render requests the snippets of the job's text, builds the canvas from
// the whole-text image and aligns every cluster on it.
//
// The layout must be shaped at the pixel size the service renders at: its
// cluster windows bound the search for each cluster.
func (b *Backend) Render(ctx context.Context, job *backend.Job) (*backend.Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	layout := job.Layout
	if layout.NumClusters() == 0 {
		return nil, text.ErrNoInk
	}

	ink, err := layout.InkBox(job.Rasterizer)
	if err != nil {
		return nil, err
	}
	spacing := int(b.cfg.spacingFactor * float64(ink.MaxClusterWidth))
	size := int(math.Round(job.Size))

	strs := layout.ClusterStrings()
	resp, err := b.fetchAll(ctx, layout.Text(), strs, size, spacing)
	if err != nil {
		return nil, err
	}

	page, err := decode(layout.Text(), resp.full)
	if err != nil {
		return nil, err
	}
	canvasImg, ok := imgutil.CropInk(page)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBlankImage, layout.Text())
	}
	canvas := tensor.Canvas{Width: canvasImg.Rect.Dx(), Height: canvasImg.Rect.Dy()}
	out := canvas.NewTensor(len(strs))
	out.SetPlane(0, canvasImg.Pix)
	surface := imgutil.Invert(canvasImg)

	windows := searchWindows(layout.ClusterWindows(), ink.Box.XMin, canvas.Width)
	alignments := make([]backend.Alignment, len(strs))

	jobs := make([]func() error, len(strs))
	for i := range strs {
		jobs[i] = func() error {
			c := clusterJob{
				text:    strs[i],
				channel: 1 + i,
				window:  windows[i],
				solo:    resp.solo[i],
				pair:    resp.pair[i],
			}
			a, err := c.align(surface, out)
			if err != nil {
				return err
			}
			alignments[i] = a
			return nil
		}
	}

	pool := parallel.NewWorkerPool(b.cfg.workers)
	workers := pool.Workers()
	err = pool.Run(jobs)
	pool.Close()
	if err != nil {
		return nil, err
	}

	for i, a := range alignments {
		level := slog.LevelDebug
		if a.Clamped {
			level = slog.LevelWarn
		}
		b.logger().Log(ctx, level, "cluster aligned",
			"cluster", i, "text", strs[i], "x", a.X, "y", a.Y, "ssd", a.SSD, "clamped", a.Clamped)
	}
	b.logger().Info("remote render",
		"text", layout.Text(), "size", size, "clusters", len(strs),
		"workers", workers, "width", canvas.Width, "height", canvas.Height)

	return &backend.Result{Tensor: out, Windows: windows, Alignments: alignments}, nil
}

// fetchAll issues every request of a render call concurrently and waits
// for all of them. Failures are reported in request order: the full text
// first, then each cluster's solo and pair requests.
func (b *Backend) fetchAll(ctx context.Context, full string, strs []string, size, spacing int) (*responses, error) {
	n := len(strs)
	resp := &responses{
		solo: make([][]byte, n),
		pair: make([][]byte, n),
	}
	errs := make([]error, 1+2*n)

	var g errgroup.Group
	if b.cfg.maxRequests > 0 {
		g.SetLimit(b.cfg.maxRequests)
	}
	get := func(slot int, dst *[]byte, s snippet) {
		g.Go(func() error {
			body, err := b.fetch(ctx, s, size)
			if err != nil {
				errs[slot] = err
				return err
			}
			*dst = body
			return nil
		})
	}

	get(0, &resp.full, snippet{text: full})
	for i, s := range strs {
		get(1+2*i, &resp.solo[i], snippet{text: s})
		if i < n-1 {
			get(2+2*i, &resp.pair[i], snippet{text: s + strs[i+1], spacing: spacing})
		}
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return resp, nil
}

// searchWindows moves the advance windows into the canvas frame, whose
// column 0 is the leftmost ink column, and stretches the last window to
// the canvas edge.
func searchWindows(windows []text.ClusterWindow, inkLeft, width int) []text.ClusterWindow {
	out := make([]text.ClusterWindow, len(windows))
	for i, w := range windows {
		out[i] = text.ClusterWindow{X: w.X - inkLeft, End: w.End - inkLeft}
	}
	if n := len(out); n > 0 {
		out[n-1].End = width
	}
	return out
}

// decode decodes a service response.
func decode(requested string, body []byte) (*image.Gray, error) {
	img, err := imgutil.DecodeBytes(body)
	if err != nil {
		return nil, &RequestError{Text: requested, StatusCode: http.StatusOK, Err: err}
	}
	return img, nil
}

// blankAllowed reports whether a cluster may render without ink.
func blankAllowed(s string) bool {
	return strings.TrimSpace(s) == ""
}
