package text

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// parseOutlines parses font data with golang.org/x/image/font/sfnt.
func parseOutlines(data []byte) (*sfnt.Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return f, nil
}

// fontName extracts the family name, falling back to the full name.
func fontName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
