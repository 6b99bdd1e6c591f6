package remote

import (
	"log/slog"
	"net/http"

	xlanguage "golang.org/x/text/language"
)

// DefaultBaseURL is the rendering service endpoint; the font id is
// appended as the last path element.
const DefaultBaseURL = "https://sig.monotype.com/render/105/font"

// DefaultWidth is the canvas width requested from the service.
const DefaultWidth = 4000

// DefaultSpacingFactor scales the widest cluster's ink to the tracking
// used for paired requests.
const DefaultSpacingFactor = 1.5

// Option configures a Backend.
type Option func(*config)

type config struct {
	client        *http.Client
	baseURL       string
	language      xlanguage.Tag
	width         int
	spacingFactor float64
	workers       int
	maxRequests   int
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		client:        http.DefaultClient,
		baseURL:       DefaultBaseURL,
		language:      xlanguage.English,
		width:         DefaultWidth,
		spacingFactor: DefaultSpacingFactor,
	}
}

// WithHTTPClient sets the client used for service requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.client = c
		}
	}
}

// WithBaseURL overrides the service endpoint.
func WithBaseURL(u string) Option {
	return func(cfg *config) {
		cfg.baseURL = u
	}
}

// WithLanguage sets the userLang parameter sent to the service.
func WithLanguage(tag xlanguage.Tag) Option {
	return func(cfg *config) {
		cfg.language = tag
	}
}

// WithWidth sets the canvas width requested from the service.
func WithWidth(w int) Option {
	return func(cfg *config) {
		if w > 0 {
			cfg.width = w
		}
	}
}

// WithSpacingFactor sets the multiple of the widest cluster's ink width
// used as tracking for paired requests.
func WithSpacingFactor(f float64) Option {
	return func(cfg *config) {
		if f > 0 {
			cfg.spacingFactor = f
		}
	}
}

// WithWorkers sets the number of goroutines aligning clusters.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// WithMaxRequests limits the number of requests in flight. Zero or
// negative means unlimited.
func WithMaxRequests(n int) Option {
	return func(cfg *config) {
		cfg.maxRequests = n
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}
