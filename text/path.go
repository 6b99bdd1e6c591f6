package text

import (
	"strconv"
	"strings"
)

// CommandType is the kind of a path command. Relative kinds store points
// as offsets from the previous end point.
type CommandType uint8

const (
	CmdMove CommandType = iota
	CmdLine
	CmdQuad
	CmdCubic
	CmdClose
	CmdMoveRel
	CmdLineRel
	CmdQuadRel
	CmdCubicRel
)

// letters maps command types to their SVG path letters.
var letters = [...]string{
	CmdMove: "M", CmdLine: "L", CmdQuad: "Q", CmdCubic: "C", CmdClose: "Z",
	CmdMoveRel: "m", CmdLineRel: "l", CmdQuadRel: "q", CmdCubicRel: "c",
}

// Command is one path command. Ctrl0 and Ctrl1 are used by curves only.
type Command struct {
	Type  CommandType
	To    OutlinePoint
	Ctrl0 OutlinePoint
	Ctrl1 OutlinePoint
}

// Path is a vector path built from glyph outlines. It implements
// PathBuilder; points handed to it are translated by the current offset.
type Path struct {
	cmds   []Command
	offset OutlinePoint
}

// Commands returns the commands of the path. The slice must not be modified.
func (p *Path) Commands() []Command {
	return p.cmds
}

func (p *Path) at(pt OutlinePoint) OutlinePoint {
	return OutlinePoint{X: pt.X + p.offset.X, Y: pt.Y + p.offset.Y}
}

// MoveTo implements PathBuilder.
func (p *Path) MoveTo(to OutlinePoint) {
	p.cmds = append(p.cmds, Command{Type: CmdMove, To: p.at(to)})
}

// LineTo implements PathBuilder.
func (p *Path) LineTo(to OutlinePoint) {
	p.cmds = append(p.cmds, Command{Type: CmdLine, To: p.at(to)})
}

// QuadTo implements PathBuilder.
func (p *Path) QuadTo(ctrl, to OutlinePoint) {
	p.cmds = append(p.cmds, Command{Type: CmdQuad, To: p.at(to), Ctrl0: p.at(ctrl)})
}

// CubicTo implements PathBuilder.
func (p *Path) CubicTo(ctrl0, ctrl1, to OutlinePoint) {
	p.cmds = append(p.cmds, Command{Type: CmdCubic, To: p.at(to), Ctrl0: p.at(ctrl0), Ctrl1: p.at(ctrl1)})
}

// Close implements PathBuilder.
func (p *Path) Close() {
	p.cmds = append(p.cmds, Command{Type: CmdClose})
}

// String formats the path as SVG path data, e.g. "M 0 0 L 10 0 Z".
func (p *Path) String() string {
	var sb strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(letters[c.Type])
		switch c.Type {
		case CmdQuad, CmdQuadRel:
			writePoints(&sb, c.Ctrl0, c.To)
		case CmdCubic, CmdCubicRel:
			writePoints(&sb, c.Ctrl0, c.Ctrl1, c.To)
		case CmdClose:
		default:
			writePoints(&sb, c.To)
		}
	}
	return sb.String()
}

func writePoints(sb *strings.Builder, pts ...OutlinePoint) {
	for _, pt := range pts {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(float64(pt.X), 'g', -1, 32))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(float64(pt.Y), 'g', -1, 32))
	}
}

// Relative returns a copy of the path with every absolute command turned
// into its relative form. Commands that are already relative are copied
// unchanged.
func (p *Path) Relative() *Path {
	rel := &Path{cmds: make([]Command, 0, len(p.cmds))}
	var cur, start OutlinePoint
	sub := func(a, b OutlinePoint) OutlinePoint { return OutlinePoint{X: a.X - b.X, Y: a.Y - b.Y} }
	add := func(a, b OutlinePoint) OutlinePoint { return OutlinePoint{X: a.X + b.X, Y: a.Y + b.Y} }

	for _, c := range p.cmds {
		switch c.Type {
		case CmdMove:
			rel.cmds = append(rel.cmds, Command{Type: CmdMoveRel, To: sub(c.To, cur)})
			cur = c.To
			start = cur
		case CmdLine:
			rel.cmds = append(rel.cmds, Command{Type: CmdLineRel, To: sub(c.To, cur)})
			cur = c.To
		case CmdQuad:
			rel.cmds = append(rel.cmds, Command{Type: CmdQuadRel, To: sub(c.To, cur), Ctrl0: sub(c.Ctrl0, cur)})
			cur = c.To
		case CmdCubic:
			rel.cmds = append(rel.cmds, Command{
				Type: CmdCubicRel, To: sub(c.To, cur), Ctrl0: sub(c.Ctrl0, cur), Ctrl1: sub(c.Ctrl1, cur),
			})
			cur = c.To
		case CmdClose:
			rel.cmds = append(rel.cmds, c)
			cur = start
		default:
			rel.cmds = append(rel.cmds, c)
			cur = add(cur, c.To)
			if c.Type == CmdMoveRel {
				start = cur
			}
		}
	}
	return rel
}

// ToCubic returns a copy of the path with quadratic curves raised to
// equivalent cubic curves.
func (p *Path) ToCubic() *Path {
	out := &Path{cmds: make([]Command, len(p.cmds))}
	var cur OutlinePoint
	lerp := func(a, b OutlinePoint) OutlinePoint {
		return OutlinePoint{X: a.X + (b.X-a.X)*2/3, Y: a.Y + (b.Y-a.Y)*2/3}
	}
	for i, c := range p.cmds {
		switch c.Type {
		case CmdQuad:
			c = Command{Type: CmdCubic, To: c.To, Ctrl0: lerp(cur, c.Ctrl0), Ctrl1: lerp(c.To, c.Ctrl0)}
		case CmdQuadRel:
			// Relative points are measured from the segment start.
			c = Command{Type: CmdCubicRel, To: c.To, Ctrl0: lerp(OutlinePoint{}, c.Ctrl0), Ctrl1: lerp(c.To, c.Ctrl0)}
		}
		out.cmds[i] = c
		switch c.Type {
		case CmdClose:
		case CmdMoveRel, CmdLineRel, CmdQuadRel, CmdCubicRel:
			cur = OutlinePoint{X: cur.X + c.To.X, Y: cur.Y + c.To.Y}
		default:
			cur = c.To
		}
	}
	return out
}

// Transform returns a copy of the path with fn applied to every point.
func (p *Path) Transform(fn func(x, y float32) (float32, float32)) *Path {
	out := &Path{cmds: make([]Command, len(p.cmds))}
	tp := func(pt OutlinePoint) OutlinePoint {
		x, y := fn(pt.X, pt.Y)
		return OutlinePoint{X: x, Y: y}
	}
	for i, c := range p.cmds {
		switch c.Type {
		case CmdClose:
		case CmdCubic, CmdCubicRel:
			c.Ctrl1 = tp(c.Ctrl1)
			c.Ctrl0 = tp(c.Ctrl0)
			c.To = tp(c.To)
		case CmdQuad, CmdQuadRel:
			c.Ctrl0 = tp(c.Ctrl0)
			c.To = tp(c.To)
		default:
			c.To = tp(c.To)
		}
		out.cmds[i] = c
	}
	return out
}
