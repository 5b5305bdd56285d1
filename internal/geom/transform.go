package geom

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// Transform maps one coordinate space onto another:
// x' = m[0]*x + m[2]*y + m[4], y' = m[1]*x + m[3]*y + m[5].
type Transform = matrix.Matrix

// Identity leaves points unchanged.
var Identity = matrix.Identity

// ScaleTranslate builds a transform that scales first and then translates.
func ScaleTranslate(sx, sy, tx, ty float64) Transform {
	return Transform{sx, 0, 0, sy, tx, ty}
}

// Apply transforms a single point.
func Apply(m Transform, p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyLine transforms both ends of a segment.
func ApplyLine(m Transform, l Line) Line {
	return Line{A: Apply(m, l.A), B: Apply(m, l.B)}
}

// StrokePath turns pts into one connected open path in the target space.
// It returns nil when there is nothing to stroke.
func StrokePath(m Transform, pts []Point) *path.Data {
	if len(pts) == 0 {
		return nil
	}
	p := (&path.Data{}).MoveTo(Apply(m, pts[0]))
	for _, pt := range pts[1:] {
		p = p.LineTo(Apply(m, pt))
	}
	return p
}

// SegmentPath is a path made of independent two point subpaths.
func SegmentPath(m Transform, lines ...Line) *path.Data {
	if len(lines) == 0 {
		return nil
	}
	p := &path.Data{}
	for _, l := range lines {
		p = p.MoveTo(Apply(m, l.A)).LineTo(Apply(m, l.B))
	}
	return p
}

// RectPath outlines r as a closed path.
func RectPath(r Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(Pt(r.Left, r.Top)).
		LineTo(Pt(r.Right(), r.Top)).
		LineTo(Pt(r.Right(), r.Bottom())).
		LineTo(Pt(r.Left, r.Bottom())).
		Close()
}

// Walk calls fn for every straight segment of p, closing subpaths
// that end with a close command. Curves are not produced by this package
// and are treated as a straight line to their end point.
func Walk(p *path.Data, fn func(a, b Point)) {
	if p == nil {
		return
	}
	var cur, start Point
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[i]
			start = cur
			i++
		case path.CmdLineTo:
			fn(cur, p.Coords[i])
			cur = p.Coords[i]
			i++
		case path.CmdQuadTo:
			fn(cur, p.Coords[i+1])
			cur = p.Coords[i+1]
			i += 2
		case path.CmdCubeTo:
			fn(cur, p.Coords[i+2])
			cur = p.Coords[i+2]
			i += 3
		case path.CmdClose:
			if cur != start {
				fn(cur, start)
			}
			cur = start
		}
	}
}
