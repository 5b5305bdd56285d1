package drawing

import (
	"math"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// GridClient draws the millimetre-paper style grid of every lead cell.
// Grid objects are HUD objects: they always cover the container and only
// their vertical lines follow the window.
type GridClient struct {
	Style Style
	Axis  Style
	// MajorMicrovolts is the amplitude between horizontal lines.
	MajorMicrovolts float64
	// MajorSeconds is the time between vertical lines.
	MajorSeconds float64
	// MinSpacing keeps vertical lines at least this many pixels apart.
	MinSpacing float64
}

func NewGridClient() *GridClient {
	return &GridClient{
		Style:           Style{Stroke: "#3F1D1D", Opacity: 0.6, Width: 1},
		Axis:            Style{Stroke: "#7F1D1D", Opacity: 1, Width: 1},
		MajorMicrovolts: 500,
		MajorSeconds:    0.2,
		MinSpacing:      4,
	}
}

func (c *GridClient) Name() string { return "grid" }

// Spacing is the distance between vertical lines in pixels.
func (c *GridClient) Spacing(s *State) float64 {
	rate := s.SampleRate
	if rate <= 0 {
		rate = ecg.DefaultSampleRate
	}
	sp := c.MajorSeconds * rate * s.pxPerSample()
	minSp := max(c.MinSpacing, 1)
	if sp <= 0 || math.IsNaN(sp) {
		sp = minSp
	}
	for sp < minSp {
		sp *= 2
	}
	return sp
}

// Produce lays out one Grid per cell. It needs the layout only.
func (c *GridClient) Produce(_ *ecg.Record, s *State) []Object {
	if !s.Ready() {
		return nil
	}
	cont := s.Container
	spacing := c.Spacing(s)
	out := make([]Object, 0, len(s.GridCells))
	for i, cell := range s.GridCells {
		g := &Grid{Spacing: spacing}
		g.Base = newBase(c, cell.Rect, i, true)
		r := cell.Rect
		if c.MajorMicrovolts > 0 && cell.Scale > 0 {
			step := c.MajorMicrovolts * cell.Scale
			for k := 1; ; k++ {
				up := cell.CenterY - float64(k)*step
				down := cell.CenterY + float64(k)*step
				if up < r.Top && down > r.Bottom() {
					break
				}
				if up >= r.Top {
					g.HLines = append(g.HLines, geom.Line{A: geom.Pt(cont.Left, up), B: geom.Pt(cont.Right(), up)})
				}
				if down <= r.Bottom() {
					g.HLines = append(g.HLines, geom.Line{A: geom.Pt(cont.Left, down), B: geom.Pt(cont.Right(), down)})
				}
			}
		}
		// one extra line so the shifted set still reaches the right edge
		n := int(math.Ceil(cont.Width/spacing)) + 1
		for k := 0; k <= n; k++ {
			x := cont.Left + float64(k)*spacing
			g.VLines = append(g.VLines, geom.Line{A: geom.Pt(x, r.Top), B: geom.Pt(x, r.Bottom())})
		}
		g.Axes = []geom.Line{
			{A: geom.Pt(cont.Left, cell.CenterY), B: geom.Pt(cont.Right(), cell.CenterY)},
			{A: geom.Pt(cont.Left, r.Top), B: geom.Pt(cont.Left, r.Bottom())},
		}
		out = append(out, g)
	}
	return out
}

// phase is how far the vertical lines move left for the current window.
func phase(minPx int, spacing float64) float64 {
	p := math.Mod(float64(minPx), spacing)
	if p < 0 {
		p += spacing
	}
	return p
}

func (c *GridClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	right := s.Container.Right()
	for _, o := range objs {
		g, ok := o.(*Grid)
		if !ok {
			continue
		}
		if _, ok := visibleCell(s, g.Lead); !ok {
			continue
		}
		if len(g.HLines) > 0 {
			surf.Stroke(geom.SegmentPath(geom.Identity, g.HLines...), c.Style)
		}
		shift := phase(s.MinPx, g.Spacing)
		vlines := make([]geom.Line, 0, len(g.VLines))
		for _, l := range g.VLines {
			x := l.A.X - shift
			if x > right {
				break
			}
			if x < s.Container.Left {
				continue
			}
			vlines = append(vlines, geom.Line{A: geom.Pt(x, l.A.Y), B: geom.Pt(x, l.B.Y)})
		}
		if len(vlines) > 0 {
			surf.Stroke(geom.SegmentPath(geom.Identity, vlines...), c.Style)
		}
		if len(g.Axes) > 0 {
			surf.Stroke(geom.SegmentPath(geom.Identity, g.Axes...), c.Axis)
		}
	}
}
