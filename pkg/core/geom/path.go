package geom

import (
	"strconv"
	"strings"
)

// Op identifies a path command.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCube
	OpClose
)

// Command is a single path command. Pts holds one point for move/line,
// three (control, control, end) for cubic, none for close.
type Command struct {
	Op  Op
	Pts [3]Point
}

// Path is an ordered list of commands. The zero value is an empty path.
type Path struct {
	cmds []Command
}

func (p *Path) MoveTo(pt Point) { p.cmds = append(p.cmds, Command{Op: OpMove, Pts: [3]Point{pt}}) }
func (p *Path) LineTo(pt Point) { p.cmds = append(p.cmds, Command{Op: OpLine, Pts: [3]Point{pt}}) }
func (p *Path) CubeTo(c1, c2, end Point) {
	p.cmds = append(p.cmds, Command{Op: OpCube, Pts: [3]Point{c1, c2, end}})
}
func (p *Path) Close() { p.cmds = append(p.cmds, Command{Op: OpClose}) }

// Commands returns the path's commands. The slice must not be modified.
func (p Path) Commands() []Command { return p.cmds }

// Len returns the number of commands.
func (p Path) Len() int { return len(p.cmds) }

// Closed reports whether the last command closes the path.
func (p Path) Closed() bool {
	return len(p.cmds) > 0 && p.cmds[len(p.cmds)-1].Op == OpClose
}

// String renders the path as SVG path data. Coordinates are written with
// one decimal place.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case OpMove:
			b.WriteString("M ")
			writePoint(&b, c.Pts[0])
		case OpLine:
			b.WriteString("L ")
			writePoint(&b, c.Pts[0])
		case OpCube:
			b.WriteString("C ")
			writePoint(&b, c.Pts[0])
			b.WriteByte(' ')
			writePoint(&b, c.Pts[1])
			b.WriteByte(' ')
			writePoint(&b, c.Pts[2])
		case OpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(strconv.FormatFloat(pt.X, 'f', 1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(pt.Y, 'f', 1, 64))
}
