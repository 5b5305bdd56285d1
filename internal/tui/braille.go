package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"ecgview/internal/drawing"
	"ecgview/internal/geom"
)

// brailleCell is one terminal cell: a 2x4 dot mask, the colour of the last
// dot set, a background and an optional text rune that hides the dots.
type brailleCell struct {
	mask uint8
	fg   string
	bg   string
	text rune
}

// brailleBuf is a drawing.Surface on a grid of braille cells. Device pixels
// are braille dots, so a w x h cell buffer is 2w x 4h pixels.
type brailleBuf struct {
	w, h  int // in cells
	cells [][]brailleCell
	bg    string
	clip  rect.Rect
}

var _ drawing.Surface = (*brailleBuf)(nil)

func newBrailleBuf(w, h int, bg string) *brailleBuf {
	w, h = max(w, 0), max(h, 0)
	m := make([][]brailleCell, h)
	for i := range m {
		m[i] = make([]brailleCell, w)
	}
	b := &brailleBuf{w: w, h: h, cells: m, bg: bg}
	b.clip = b.bounds()
	return b
}

func (b *brailleBuf) bounds() rect.Rect {
	return rect.Rect{URx: float64(b.w * 2), URy: float64(b.h * 4)}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, fg string) {
	if mx < 0 || my < 0 {
		return
	}
	if !b.inClip(float64(mx), float64(my)) {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	c := &b.cells[cy][cx]
	c.mask |= dotBits[rx][ry]
	if fg != "" {
		c.fg = fg
	}
}

func (b *brailleBuf) inClip(x, y float64) bool {
	return x >= b.clip.LLx && x < b.clip.URx && y >= b.clip.LLy && y < b.clip.URy
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, fg string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, fg)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Clip limits drawing to r, intersected with the buffer.
func (b *brailleBuf) Clip(r rect.Rect) {
	full := b.bounds()
	b.clip = rect.Rect{
		LLx: math.Max(r.LLx, full.LLx), LLy: math.Max(r.LLy, full.LLy),
		URx: math.Min(r.URx, full.URx), URy: math.Min(r.URy, full.URy),
	}
}

func (b *brailleBuf) Stroke(p *path.Data, st drawing.Style) {
	fg := b.ink(st.Stroke, st)
	geom.Walk(p, func(a, c geom.Point) {
		if b.outside(a, c) {
			return
		}
		b.drawLineMicro(round(a.X), round(a.Y), round(c.X), round(c.Y), fg)
	})
}

// outside reports a segment lying entirely on one side of the clip.
func (b *brailleBuf) outside(a, c geom.Point) bool {
	cl := b.clip
	return (a.X < cl.LLx && c.X < cl.LLx) || (a.X >= cl.URx && c.X >= cl.URx) ||
		(a.Y < cl.LLy && c.Y < cl.LLy) || (a.Y >= cl.URy && c.Y >= cl.URy)
}

// Fill tints the background of every cell whose centre lies in r.
func (b *brailleBuf) Fill(r geom.Rect, st drawing.Style) {
	if st.Fill == "" {
		return
	}
	x0, x1 := max(int(r.Left)/2, 0), min(int(math.Ceil(r.Right()))/2, b.w-1)
	y0, y1 := max(int(r.Top)/4, 0), min(int(math.Ceil(r.Bottom()))/4, b.h-1)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			center := geom.Pt(float64(cx*2)+1, float64(cy*4)+2)
			if !r.Contains(center) || !b.inClip(center.X, center.Y) {
				continue
			}
			c := &b.cells[cy][cx]
			under := c.bg
			if under == "" {
				under = b.bg
			}
			c.bg = blend(under, st.Fill, opacity(st))
		}
	}
}

// Marker sets a square of dots of the style's radius around at.
func (b *brailleBuf) Marker(at geom.Point, st drawing.Style) {
	col := st.Fill
	if col == "" {
		col = st.Stroke
	}
	fg := b.ink(col, st)
	r := int(math.Max(math.Round(st.Radius), 0))
	x, y := round(at.X), round(at.Y)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			b.setPixel(x+dx, y+dy, fg)
		}
	}
}

// Text writes s starting in the cell holding at. Text hides the dots of
// the cells it covers.
func (b *brailleBuf) Text(at geom.Point, s string, st drawing.Style) {
	fg := b.ink(st.Stroke, st)
	cx, cy := int(math.Floor(at.X/2)), int(math.Floor(at.Y/4))
	if cy < 0 || cy >= b.h {
		return
	}
	for _, r := range s {
		if cx >= b.w {
			return
		}
		if cx >= 0 && b.inClip(float64(cx*2)+1, float64(cy*4)+2) {
			c := &b.cells[cy][cx]
			c.text = r
			c.fg = fg
		}
		cx++
	}
}

// ink is the colour a style draws with once its opacity is applied.
func (b *brailleBuf) ink(col string, st drawing.Style) string {
	if col == "" {
		return ""
	}
	if o := opacity(st); o < 1 {
		return blend(b.bg, col, o)
	}
	return col
}

func opacity(st drawing.Style) float64 {
	if st.Opacity <= 0 || st.Opacity > 1 {
		return 1
	}
	return st.Opacity
}

// blend mixes over into under; t=1 gives over. Unparsable colours fall
// back to over.
func blend(under, over string, t float64) string {
	a, err := colorful.Hex(under)
	if err != nil {
		return over
	}
	c, err := colorful.Hex(over)
	if err != nil {
		return over
	}
	return a.BlendLab(c, t).Clamped().Hex()
}

func (c brailleCell) glyph() rune {
	switch {
	case c.text != 0:
		return c.text
	case c.mask == 0:
		return ' '
	default:
		return rune(0x2800 + int(c.mask))
	}
}

// toLines renders the buffer, one styled string per row. Runs of cells
// with the same colours share one style.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	var sb, run strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		run.Reset()
		var fg, bg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if fg != "" {
				st = st.Foreground(lipgloss.Color(fg))
			}
			if bg != "" {
				st = st.Background(lipgloss.Color(bg))
			}
			sb.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < b.w; x++ {
			c := b.cells[y][x]
			if c.fg != fg || c.bg != bg {
				flush()
				fg, bg = c.fg, c.bg
			}
			run.WriteRune(c.glyph())
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }
