package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// The same bytes are parsed twice: once by go-text/typesetting for shaping
// and once by golang.org/x/image/font/sfnt for outlines and bounds. Glyph
// ids agree between the two because both index the same glyph table.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	mu     sync.RWMutex
	data   []byte
	shaped *font.Font
	outl   *sfnt.Font
	name   string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	outl, err := parseOutlines(dataCopy)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:   dataCopy,
		shaped: face.Font,
		outl:   outl,
	}
	s.addr = s
	s.name = fontName(outl)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// UnitsPerEm returns the design grid size of the font.
func (s *FontSource) UnitsPerEm() int {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.outl == nil {
		return 0
	}
	return int(s.outl.UnitsPerEm())
}

// Close releases the parsed font data.
// Shapers and rasterizers created from the source fail after Close.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.shaped = nil
	s.outl = nil
	return nil
}

// shapingFont returns the go-text font, or ErrSourceClosed.
func (s *FontSource) shapingFont() (*font.Font, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shaped == nil {
		return nil, ErrSourceClosed
	}
	return s.shaped, nil
}

// outlineFont returns the sfnt font, or ErrSourceClosed.
func (s *FontSource) outlineFont() (*sfnt.Font, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.outl == nil {
		return nil, ErrSourceClosed
	}
	return s.outl, nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
