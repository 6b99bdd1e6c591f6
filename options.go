package datagen

import (
	"log/slog"
	"net/http"

	xlanguage "golang.org/x/text/language"
)

// Default resolutions. Local glyphs are rasterized at 72 dpi, so one
// point is one pixel; the remote service renders at 96 dpi.
const (
	DefaultLocalDPI  = 72
	DefaultRemoteDPI = 96
)

// Option configures a Renderer.
//
// Example:
//
//	r := datagen.New(
//	    datagen.WithLanguage(language.German),
//	    datagen.WithLogger(slog.Default()),
//	)
type Option func(*config)

type config struct {
	logger     *slog.Logger
	client     *http.Client
	serviceURL string
	language   xlanguage.Tag
	workers    int
	localDPI   float64
	remoteDPI  float64
}

func defaultConfig() config {
	return config{
		language:  xlanguage.English,
		localDPI:  DefaultLocalDPI,
		remoteDPI: DefaultRemoteDPI,
	}
}

// WithLogger sets the renderer's logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHTTPClient sets the client used by the remote mode.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithServiceURL overrides the base URL of the rendering service.
func WithServiceURL(u string) Option {
	return func(c *config) {
		c.serviceURL = u
	}
}

// WithLanguage sets the language used for shaping and sent to the
// rendering service.
func WithLanguage(tag xlanguage.Tag) Option {
	return func(c *config) {
		c.language = tag
	}
}

// WithWorkers sets the number of goroutines aligning clusters in remote
// mode. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLocalDPI sets the resolution of local renders.
func WithLocalDPI(dpi float64) Option {
	return func(c *config) {
		if dpi > 0 {
			c.localDPI = dpi
		}
	}
}

// WithRemoteDPI sets the resolution the rendering service works at, used
// to shape the layout whose windows bound the template search.
func WithRemoteDPI(dpi float64) Option {
	return func(c *config) {
		if dpi > 0 {
			c.remoteDPI = dpi
		}
	}
}
