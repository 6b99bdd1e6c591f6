// Package text shapes text into clusters and measures and rasterizes the
// glyphs of a shaped layout.
//
// The pipeline is:
//
//   - FontSource: font bytes parsed once for shaping (go-text/typesetting)
//     and once for outlines (golang.org/x/image/font/sfnt)
//   - Shaper: HarfBuzz shaping of the current text into a Layout, memoized
//     per pixel size
//   - Layout: immutable glyphs and clusters with advance-based windows and
//     the ink bounding box of the text
//   - Rasterizer: per-size glyph ink boxes and 8-bit coverage bitmaps
//   - OutlineExtractor: glyph outlines as a lazy sequence of segments
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	shaper := text.NewShaper()
//	defer shaper.Close()
//	if err := shaper.SetFont(source); err != nil {
//	    log.Fatal(err)
//	}
//	shaper.SetText("office")
//
//	layout, err := shaper.Shape(24, 72)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(layout.ClusterStrings())
//
// # Coordinates
//
// Advances and offsets are 26.6 fixed point pixels. Ink boxes and bitmap
// placement use whole pixels with y growing upward from the baseline;
// outline points have y growing downward.
package text
