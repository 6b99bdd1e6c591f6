package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pt(x, y float32) OutlinePoint { return OutlinePoint{X: x, Y: y} }

func trianglePath() *Path {
	p := &Path{}
	p.MoveTo(pt(0, 0))
	p.LineTo(pt(10, 0))
	p.QuadTo(pt(10, 6), pt(4, 6))
	p.Close()
	return p
}

func TestPath_String(t *testing.T) {
	want := "M 0 0 L 10 0 Q 10 6 4 6 Z"
	if got := trianglePath().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p := &Path{}
	p.MoveTo(pt(0.5, -1.25))
	p.CubicTo(pt(1, 1), pt(2, 2), pt(3, 3))
	if got, want := p.String(), "M 0.5 -1.25 C 1 1 2 2 3 3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPath_Offset(t *testing.T) {
	p := &Path{offset: pt(100, -5)}
	p.MoveTo(pt(1, 2))
	p.LineTo(pt(3, 4))
	if got, want := p.String(), "M 101 -3 L 103 -1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPath_Relative(t *testing.T) {
	p := trianglePath()
	p.MoveTo(pt(20, 20))
	p.LineTo(pt(25, 20))

	got := p.Relative().String()
	want := "m 0 0 l 10 0 q 0 6 -6 6 Z m 20 20 l 5 0"
	if got != want {
		t.Errorf("Relative() = %q, want %q", got, want)
	}
	if p.String() == got {
		t.Error("Relative() modified the receiver")
	}
}

func TestPath_RelativeAfterClose(t *testing.T) {
	p := &Path{}
	p.MoveTo(pt(5, 5))
	p.LineTo(pt(15, 5))
	p.Close()
	p.LineTo(pt(5, 10))

	// After Z the current point returns to the subpath start.
	if got, want := p.Relative().String(), "m 5 5 l 10 0 Z l 0 5"; got != want {
		t.Errorf("Relative() = %q, want %q", got, want)
	}
}

func TestPath_ToCubic(t *testing.T) {
	p := &Path{}
	p.MoveTo(pt(0, 0))
	p.QuadTo(pt(3, 6), pt(6, 0))

	cmds := p.ToCubic().Commands()
	want := Command{Type: CmdCubic, To: pt(6, 0), Ctrl0: pt(2, 4), Ctrl1: pt(4, 4)}
	if diff := cmp.Diff(want, cmds[1]); diff != "" {
		t.Errorf("ToCubic() mismatch (-want +got):\n%s", diff)
	}

	rel := p.Relative().ToCubic().Commands()
	wantRel := Command{Type: CmdCubicRel, To: pt(6, 0), Ctrl0: pt(2, 4), Ctrl1: pt(4, 4)}
	if diff := cmp.Diff(wantRel, rel[1]); diff != "" {
		t.Errorf("relative ToCubic() mismatch (-want +got):\n%s", diff)
	}
}

func TestPath_Transform(t *testing.T) {
	flip := func(x, y float32) (float32, float32) { return 2 * x, 10 - y }
	got := trianglePath().Transform(flip).String()
	want := "M 0 10 L 20 10 Q 20 4 8 4 Z"
	if got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
}
