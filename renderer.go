package datagen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ztaaha/basic-text-datagen/backend"
	"github.com/ztaaha/basic-text-datagen/backend/remote"
	"github.com/ztaaha/basic-text-datagen/text"
)

// Renderer holds a font and a text and renders them into per-cluster
// tensors with either backend.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	cfg    config
	shaper *text.Shaper
	source *text.FontSource
	owned  bool
	local  *backend.Local
}

// New creates a Renderer with no font and empty text.
func New(opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Renderer{
		cfg:    cfg,
		shaper: text.NewShaper(text.WithLanguage(cfg.language)),
		local:  backend.NewLocal(nil),
	}
	propagateLogger(r.local, r.logger())
	return r
}

func (r *Renderer) logger() *slog.Logger {
	if r.cfg.logger != nil {
		return r.cfg.logger
	}
	return Logger()
}

// SetLogger overrides the renderer's logger. Pass nil to fall back to the
// package logger.
func (r *Renderer) SetLogger(l *slog.Logger) {
	r.cfg.logger = l
	propagateLogger(r.local, r.logger())
}

// SetFont makes src the font. The caller keeps ownership of src. A font
// previously loaded by LoadFont is closed. Setting the current font again
// changes nothing.
func (r *Renderer) SetFont(src *text.FontSource) error {
	return r.swapFont(src, false)
}

// LoadFont loads the font file at path. The renderer owns the loaded font
// and closes it on the next font change or on Close.
func (r *Renderer) LoadFont(path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return err
	}
	return r.swapFont(src, true)
}

// LoadFontData is LoadFont for font bytes.
func (r *Renderer) LoadFontData(data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return err
	}
	return r.swapFont(src, true)
}

func (r *Renderer) swapFont(src *text.FontSource, owned bool) error {
	if src != nil && src == r.source {
		return nil
	}
	prev, prevOwned := r.source, r.owned
	r.source, r.owned = nil, false

	err := r.shaper.SetFont(src)
	if err == nil && src != nil {
		r.source, r.owned = src, owned
	}
	if prevOwned && prev != nil {
		_ = prev.Close()
	}
	if err != nil && owned {
		_ = src.Close()
	}
	return err
}

// Font returns the current font, or nil.
func (r *Renderer) Font() *text.FontSource {
	return r.source
}

// SetText sets the text to render.
func (r *Renderer) SetText(s string) {
	r.shaper.SetText(s)
}

// Text returns the current text.
func (r *Renderer) Text() string {
	return r.shaper.Text()
}

// Layout shapes the text at size points for a device of dpi dots per inch.
// The layout is memoized until the font, the text, or the size changes.
func (r *Renderer) Layout(size, dpi float64) (*text.Layout, error) {
	if r.source == nil {
		return nil, ErrNoFont
	}
	return r.shaper.Shape(size, dpi)
}

// ClusterStrings returns the text of every cluster in order.
func (r *Renderer) ClusterStrings() ([]string, error) {
	l, err := r.designLayout()
	if err != nil {
		return nil, err
	}
	return l.ClusterStrings(), nil
}

// ClusterWindows returns the advance-based pixel window of every cluster
// at size points and dpi dots per inch.
func (r *Renderer) ClusterWindows(size, dpi float64) ([]text.ClusterWindow, error) {
	l, err := r.Layout(size, dpi)
	if err != nil {
		return nil, err
	}
	return l.ClusterWindows(), nil
}

// MaxAdvance returns the widest cluster advance in pixels at size points
// and dpi dots per inch.
func (r *Renderer) MaxAdvance(size, dpi float64) (int, error) {
	l, err := r.Layout(size, dpi)
	if err != nil {
		return 0, err
	}
	return l.MaxAdvance(), nil
}

// TextPaths returns the outline of every cluster in font units with y
// growing upward, each starting at its own origin, and the advance from
// each cluster to the next.
func (r *Renderer) TextPaths() ([]*text.Path, []float64, error) {
	l, err := r.designLayout()
	if err != nil {
		return nil, nil, err
	}
	e, err := r.source.OutlineExtractor(float64(r.source.UnitsPerEm()))
	if err != nil {
		return nil, nil, err
	}
	paths, advances, err := l.ClusterPaths(e)
	if err != nil {
		return nil, nil, err
	}
	for i, p := range paths {
		paths[i] = p.Transform(func(x, y float32) (float32, float32) { return x, -y })
	}
	return paths, advances, nil
}

// designLayout shapes at one pixel per font unit.
func (r *Renderer) designLayout() (*text.Layout, error) {
	if r.source == nil {
		return nil, ErrNoFont
	}
	return r.shaper.Shape(float64(r.source.UnitsPerEm()), 72)
}

// Render renders the text at size points with the backend selected by
// mode. The returned result is owned by the caller.
//
// Example:
//
//	mode, err := datagen.Remote("my-font-id")
//	if err != nil {
//	    return err
//	}
//	res, err := r.Render(ctx, 32, mode)
func (r *Renderer) Render(ctx context.Context, size float64, mode Mode) (*backend.Result, error) {
	if mode == nil {
		return nil, &ModeError{Reason: "no mode given"}
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if r.source == nil {
		return nil, ErrNoFont
	}
	if r.Text() == "" {
		return nil, ErrNoText
	}
	if size <= 0 {
		return nil, fmt.Errorf("datagen: invalid size %v", size)
	}

	b, dpi, err := r.backendFor(mode)
	if err != nil {
		return nil, err
	}
	layout, err := r.shaper.Shape(size, dpi)
	if err != nil {
		return nil, err
	}
	rast, err := r.source.Rasterizer(size * dpi / 72)
	if err != nil {
		return nil, err
	}

	res, err := b.Render(ctx, &backend.Job{Layout: layout, Rasterizer: rast, Size: size})
	if err != nil {
		return nil, fmt.Errorf("datagen: %s render: %w", mode, err)
	}
	r.logger().Debug("rendered",
		"mode", mode.String(), "font", r.source.Name(), "size", size,
		"clusters", layout.NumClusters())
	return res, nil
}

// backendFor returns the backend of mode and the resolution it renders at.
func (r *Renderer) backendFor(mode Mode) (backend.Backend, float64, error) {
	switch m := mode.(type) {
	case LocalMode:
		propagateLogger(r.local, r.logger())
		return r.local, r.cfg.localDPI, nil
	case RemoteMode:
		opts := []remote.Option{
			remote.WithLanguage(r.cfg.language),
			remote.WithWorkers(r.cfg.workers),
			remote.WithLogger(r.logger()),
		}
		if r.cfg.client != nil {
			opts = append(opts, remote.WithHTTPClient(r.cfg.client))
		}
		if r.cfg.serviceURL != "" {
			opts = append(opts, remote.WithBaseURL(r.cfg.serviceURL))
		}
		b, err := remote.New(m.serviceID, opts...)
		if err != nil {
			return nil, 0, err
		}
		return b, r.cfg.remoteDPI, nil
	default:
		return nil, 0, &ModeError{Mode: mode.String(), Reason: "unsupported"}
	}
}

// Close releases the shaping resources and the font if the renderer
// loaded it.
func (r *Renderer) Close() error {
	src, owned := r.source, r.owned
	r.source, r.owned = nil, false
	r.shaper.Close()
	if owned && src != nil {
		return src.Close()
	}
	return nil
}
