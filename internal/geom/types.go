package geom

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a position in pixel space. Left is X, top is Y.
type Point = vec.Vec2

// Pt is shorthand for a Point literal.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis aligned rectangle in y-down pixel space.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewRect returns a rectangle with negative sizes flipped so that
// Left <= Right and Top <= Bottom always hold.
func NewRect(left, top, width, height float64) Rect {
	if width < 0 {
		left, width = left+width, -width
	}
	if height < 0 {
		top, height = top+height, -height
	}
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// RectFromSpan builds a rectangle from two corners in any order.
func RectFromSpan(x0, y0, x1, y1 float64) Rect {
	return NewRect(x0, y0, x1-x0, y1-y0)
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// MinOx and MaxOx are the horizontal extent used for culling.
func (r Rect) MinOx() float64 { return r.Left }
func (r Rect) MaxOx() float64 { return r.Left + r.Width }

func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Inset shrinks r by d on every side. The result never has a negative size.
func (r Rect) Inset(d float64) Rect {
	out := Rect{Left: r.Left + d, Top: r.Top + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return RectFromSpan(
		min(r.Left, o.Left), min(r.Top, o.Top),
		max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom()),
	)
}

// Clip converts r into the clip rectangle form used by path consumers.
func (r Rect) Clip() rect.Rect {
	return rect.Rect{LLx: r.Left, LLy: r.Top, URx: r.Right(), URy: r.Bottom()}
}

// Line is a single segment.
type Line struct {
	A Point
	B Point
}

func (l Line) Bounds() Rect { return RectFromSpan(l.A.X, l.A.Y, l.B.X, l.B.Y) }

// Polyline is an ordered run of points joined by segments.
type Polyline struct {
	Points []Point
}

// Bounds walks the points once. An empty polyline has a zero Rect.
func (p Polyline) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return RectFromSpan(minX, minY, maxX, maxY)
}

func (p Polyline) Len() int { return len(p.Points) }

// Label is a piece of text anchored at a point.
type Label struct {
	At   Point
	Text string
}

// Range is a horizontal span on the time axis, From <= To.
type Range struct {
	From float64
	To   float64
}

// NewRange orders its ends.
func NewRange(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

func (r Range) Len() float64 { return r.To - r.From }

// Within reports whether r lies completely inside [lo, hi].
func (r Range) Within(lo, hi float64) bool { return r.From >= lo && r.To <= hi }

// Contains reports whether x is inside r, ends included.
func (r Range) Contains(x float64) bool { return x >= r.From && x <= r.To }

// Bounds returns the points' bounding box.
func Bounds(pts ...Point) Rect {
	return Polyline{Points: pts}.Bounds()
}
