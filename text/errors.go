package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when shaping is requested before a font is set.
	ErrNoFont = errors.New("text: no font loaded")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")

	// ErrNoInk is returned when a text has no visible pixels at all,
	// so no canvas can be established for it.
	ErrNoInk = errors.New("text: text has no ink")
)

// ShapingError reports an internal failure of the shaping engine.
type ShapingError struct {
	Text   string
	Reason string
}

func (e *ShapingError) Error() string {
	return fmt.Sprintf("text: shaping %q failed: %s", e.Text, e.Reason)
}

// RasterError reports a glyph that could not be loaded or rasterized.
type RasterError struct {
	GID GlyphID
	Err error
}

func (e *RasterError) Error() string {
	return fmt.Sprintf("text: glyph %d: %v", e.GID, e.Err)
}

func (e *RasterError) Unwrap() error {
	return e.Err
}
