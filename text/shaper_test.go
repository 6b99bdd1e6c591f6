package text

import (
	"errors"
	"testing"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xlanguage "golang.org/x/text/language"
)

// testShaper returns a Shaper with Go Regular loaded and text set.
func testShaper(t *testing.T, text string, opts ...ShaperOption) *Shaper {
	t.Helper()

	s := NewShaper(opts...)
	if err := s.SetFont(testSource(t)); err != nil {
		t.Fatalf("SetFont() error = %v", err)
	}
	s.SetText(text)
	t.Cleanup(s.Close)
	return s
}

func TestShaper_NoFont(t *testing.T) {
	s := NewShaper()
	s.SetText("Hello")
	if _, err := s.Shape(16, 72); !errors.Is(err, ErrNoFont) {
		t.Errorf("Shape() error = %v, want ErrNoFont", err)
	}
}

func TestShaper_UnloadFont(t *testing.T) {
	s := testShaper(t, "Hello")
	if _, err := s.Shape(16, 72); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFont(nil); err != nil {
		t.Fatal(err)
	}
	if s.Font() != nil {
		t.Error("Font() after unload should be nil")
	}
	if _, err := s.Shape(16, 72); !errors.Is(err, ErrNoFont) {
		t.Errorf("Shape() after unload error = %v, want ErrNoFont", err)
	}
}

func TestShaper_InvalidSize(t *testing.T) {
	s := testShaper(t, "Hello")
	for _, size := range []float64{0, -4} {
		if _, err := s.Shape(size, 72); err == nil {
			t.Errorf("Shape(%v) succeeded, want error", size)
		}
	}
}

func TestShaper_BasicLatin(t *testing.T) {
	s := testShaper(t, "Hello")
	l, err := s.Shape(32, 72)
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	if l.Text() != "Hello" {
		t.Errorf("Text() = %q, want Hello", l.Text())
	}
	if l.NumGlyphs() != 5 || l.NumClusters() != 5 {
		t.Fatalf("got %d glyphs in %d clusters, want 5 and 5", l.NumGlyphs(), l.NumClusters())
	}
	for i := range l.NumGlyphs() {
		g := l.Glyph(i)
		if g.GID == 0 {
			t.Errorf("glyph %d is .notdef", i)
		}
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d: XAdvance = %v, want > 0", i, g.XAdvance)
		}
		if g.Cluster != i {
			t.Errorf("glyph %d: Cluster = %d, want %d", i, g.Cluster, i)
		}
	}
	// The two l glyphs are the same glyph.
	if l.Glyph(2).GID != l.Glyph(3).GID {
		t.Errorf("l glyphs differ: %d vs %d", l.Glyph(2).GID, l.Glyph(3).GID)
	}
}

func TestShaper_Memoized(t *testing.T) {
	s := testShaper(t, "Hello")

	first, err := s.Shape(24, 72)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Shape(24, 72)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Shape() with unchanged inputs should return the memoized layout")
	}

	s.SetText("Hello")
	if third, _ := s.Shape(24, 72); third != first {
		t.Error("SetText with the same text should keep the memoized layout")
	}

	bigger, err := s.Shape(48, 72)
	if err != nil {
		t.Fatal(err)
	}
	if bigger == first {
		t.Error("Shape() at a new size returned the old layout")
	}

	s.SetText("World")
	world, err := s.Shape(48, 72)
	if err != nil {
		t.Fatal(err)
	}
	if world == bigger || world.Text() != "World" {
		t.Error("SetText with new text should drop the memoized layout")
	}
}

func TestShaper_DPIScalesAdvances(t *testing.T) {
	s := testShaper(t, "W")

	at72, err := s.Shape(20, 72)
	if err != nil {
		t.Fatal(err)
	}
	adv72 := at72.Glyph(0).XAdvance

	at144, err := s.Shape(20, 144)
	if err != nil {
		t.Fatal(err)
	}
	adv144 := at144.Glyph(0).XAdvance

	// Rounding happens per value, allow one 26.6 unit per doubling.
	if diff := adv144 - 2*adv72; diff < -2 || diff > 2 {
		t.Errorf("advance at 144dpi = %v, at 72dpi = %v; want a 2x ratio", adv144, adv72)
	}
}

func TestShaper_Partition(t *testing.T) {
	texts := []string{"Hello, World!", "fi fl ffi", "AVATAR", "héllo wörld", "a"}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			s := testShaper(t, text)
			l, err := s.Shape(30, 72)
			if err != nil {
				t.Fatal(err)
			}

			count := 0
			prevID := -1
			for _, c := range l.Clusters() {
				if c.ID <= prevID {
					t.Errorf("cluster ids not ascending: %d after %d", c.ID, prevID)
				}
				prevID = c.ID
				for _, gi := range c.Glyphs {
					if l.Glyph(gi).Cluster != c.ID {
						t.Errorf("glyph %d has cluster %d, grouped under %d", gi, l.Glyph(gi).Cluster, c.ID)
					}
					count++
				}
			}
			if count != l.NumGlyphs() {
				t.Errorf("clusters hold %d glyphs, layout has %d", count, l.NumGlyphs())
			}

			joined := ""
			for _, str := range l.ClusterStrings() {
				joined += str
			}
			if joined != text {
				t.Errorf("ClusterStrings() joined = %q, want %q", joined, text)
			}
		})
	}
}

func TestShaper_EmptyText(t *testing.T) {
	s := testShaper(t, "")
	l, err := s.Shape(16, 72)
	if err != nil {
		t.Fatalf("Shape(\"\") error = %v", err)
	}
	if l.NumGlyphs() != 0 || l.NumClusters() != 0 {
		t.Errorf("empty text: %d glyphs, %d clusters", l.NumGlyphs(), l.NumClusters())
	}
}

func TestShaper_Options(t *testing.T) {
	s := testShaper(t, "Hi",
		WithLanguage(xlanguage.Turkish),
		WithFeatures(shaping.FontFeature{Tag: ot.MustNewTag("kern"), Value: 0}),
	)
	if s.config.language != xlanguage.Turkish {
		t.Errorf("language = %v, want tr", s.config.language)
	}
	if len(s.config.features) != 1 {
		t.Errorf("features = %v, want one", s.config.features)
	}
	if _, err := s.Shape(16, 72); err != nil {
		t.Errorf("Shape() with options error = %v", err)
	}
}

func TestShaper_Kerning(t *testing.T) {
	kerned := testShaper(t, "AV")
	plain := testShaper(t, "AV", WithFeatures(shaping.FontFeature{Tag: ot.MustNewTag("kern"), Value: 0}))

	lk, err := kerned.Shape(64, 72)
	if err != nil {
		t.Fatal(err)
	}
	lp, err := plain.Shape(64, 72)
	if err != nil {
		t.Fatal(err)
	}
	if lk.Glyph(0).XAdvance > lp.Glyph(0).XAdvance {
		t.Errorf("kerned A advance %v exceeds unkerned %v", lk.Glyph(0).XAdvance, lp.Glyph(0).XAdvance)
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		text string
		want language.Script
	}{
		{"Hello", language.Latin},
		{"  Привет", language.Cyrillic},
		{"Ωμέγα", language.Greek},
		{"", language.Latin},
	}
	for _, tt := range tests {
		if got := detectScript([]rune(tt.text)); got != tt.want {
			t.Errorf("detectScript(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
