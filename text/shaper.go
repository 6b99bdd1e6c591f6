package text

import (
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Shaper turns the current text into a Layout using go-text/typesetting's
// HarfBuzz implementation.
//
// The shaper owns the HarfBuzz buffer and a go-text font.Face for the
// current font. The last layout is memoized: Shape re-shapes only when the
// font, the text, or the requested pixel size changed since the previous
// call. SetFont and SetText drop the memoized layout.
//
// A Shaper is not safe for concurrent use.
type Shaper struct {
	config shaperConfig
	hb     shaping.HarfbuzzShaper

	source *FontSource
	face   *font.Face

	text   string
	key    layoutKey
	layout *Layout
}

// layoutKey identifies the pixel size a layout was shaped at.
type layoutKey struct {
	size float64
	dpi  float64
}

// NewShaper creates a Shaper with no font and empty text.
func NewShaper(opts ...ShaperOption) *Shaper {
	config := defaultShaperConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Shaper{config: config}
}

// SetFont makes src the shaping font. Passing nil unloads the font.
// The memoized layout and the previous font face are released.
func (s *Shaper) SetFont(src *FontSource) error {
	s.source = nil
	s.face = nil
	s.layout = nil
	if src == nil {
		return nil
	}
	f, err := src.shapingFont()
	if err != nil {
		return err
	}
	s.source = src
	s.face = font.NewFace(f)
	return nil
}

// Font returns the current font source, or nil.
func (s *Shaper) Font() *FontSource {
	return s.source
}

// SetText sets the text to shape.
func (s *Shaper) SetText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.layout = nil
}

// Text returns the current text.
func (s *Shaper) Text() string {
	return s.text
}

// Shape shapes the current text at size points for a device of dpi dots
// per inch, i.e. at size*dpi/72 pixels per em.
func (s *Shaper) Shape(size, dpi float64) (*Layout, error) {
	if s.source == nil || s.face == nil {
		return nil, ErrNoFont
	}
	key := layoutKey{size: size, dpi: dpi}
	if s.layout != nil && s.key == key {
		return s.layout, nil
	}
	if size <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("text: invalid size %v at %v dpi", size, dpi)
	}

	runes := []rune(s.text)
	if len(runes) == 0 {
		s.layout = NewLayout("", nil)
		s.key = key
		return s.layout, nil
	}
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    di.DirectionLTR,
		Face:         s.face,
		FontFeatures: s.config.features,
		Size:         floatToFixed(size * dpi / 72),
		Script:       detectScript(runes),
		Language:     language.NewLanguage(s.config.language.String()),
	}

	out, err := s.shape(input)
	if err != nil {
		return nil, err
	}
	if len(out.Glyphs) == 0 {
		return nil, &ShapingError{Text: s.text, Reason: "no glyphs produced"}
	}

	glyphs := make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph ids in sfnt fonts are 16-bit
			Cluster:  g.TextIndex(),
			XAdvance: g.Advance,
			XOffset:  g.XOffset,
			YOffset:  g.YOffset,
		}
	}

	s.layout = NewLayout(s.text, glyphs)
	s.key = key
	return s.layout, nil
}

// shape runs the HarfBuzz shaper, converting an engine panic into a
// ShapingError so that a malformed font fails the call instead of the
// process.
func (s *Shaper) shape(input shaping.Input) (out shaping.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ShapingError{Text: s.text, Reason: fmt.Sprint(r)}
		}
	}()
	return s.hb.Shape(input), nil
}

// Close releases the font face and the memoized layout. The FontSource is
// owned by the caller and is not closed.
func (s *Shaper) Close() {
	_ = s.SetFont(nil)
}

// detectScript inspects the runes and returns the script of the first
// non-space character. This is a simple heuristic; for mixed-script text,
// users should split runs by script before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
