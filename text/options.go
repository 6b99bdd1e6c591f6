package text

import (
	"github.com/go-text/typesetting/shaping"
	xlanguage "golang.org/x/text/language"
)

// ShaperOption configures a Shaper.
type ShaperOption func(*shaperConfig)

// shaperConfig holds configuration for Shaper.
type shaperConfig struct {
	language xlanguage.Tag
	features []shaping.FontFeature
}

// defaultShaperConfig returns the default shaper configuration.
func defaultShaperConfig() shaperConfig {
	return shaperConfig{
		language: xlanguage.English,
	}
}

// WithLanguage sets the language the text is shaped for.
// Language affects locale-specific substitutions (e.g. Turkish dotted i).
func WithLanguage(tag xlanguage.Tag) ShaperOption {
	return func(c *shaperConfig) {
		c.language = tag
	}
}

// WithFeatures enables or disables OpenType features for every shaping
// call, for example liga=0 to keep ligatures split into their letters.
func WithFeatures(features ...shaping.FontFeature) ShaperOption {
	return func(c *shaperConfig) {
		c.features = append(c.features, features...)
	}
}
