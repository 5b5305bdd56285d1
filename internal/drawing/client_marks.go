package drawing

import (
	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// AnnotationClient draws labelled intervals along the bottom edge.
type AnnotationClient struct {
	Style Style
}

func NewAnnotationClient() *AnnotationClient {
	return &AnnotationClient{Style: Style{Stroke: "#A78BFA", Opacity: 1, Labels: true}}
}

func (c *AnnotationClient) Name() string { return "annotation" }

func (c *AnnotationClient) Produce(rec *ecg.Record, s *State) []Object {
	if rec == nil || len(rec.Annotations) == 0 {
		return nil
	}
	out := make([]Object, 0, len(rec.Annotations))
	for _, a := range rec.Annotations {
		r := geom.NewRange(s.SampleToPx(a.Start), s.SampleToPx(a.End))
		obj := &Annotation{Range: r, Code: a.Code, Text: a.Text}
		obj.Base = newBase(c, geom.RectFromSpan(r.From, 0, r.To, 0), -1, false)
		out = append(out, obj)
	}
	return out
}

func (c *AnnotationClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	y := s.Container.Bottom() - 1
	for _, o := range objs {
		a, ok := o.(*Annotation)
		if !ok {
			continue
		}
		x0 := max(s.DeviceX(a.Range.From), s.Container.Left)
		x1 := min(s.DeviceX(a.Range.To), s.Container.Right())
		if x1 < x0 {
			continue
		}
		surf.Stroke(geom.SegmentPath(geom.Identity,
			geom.Line{A: geom.Pt(x0, y), B: geom.Pt(x1, y)},
			geom.Line{A: geom.Pt(x0, y-2), B: geom.Pt(x0, y)},
			geom.Line{A: geom.Pt(x1, y-2), B: geom.Pt(x1, y)},
		), c.Style)
		if c.Style.Labels {
			text := a.Code
			if a.Text != "" {
				text += " " + a.Text
			}
			surf.Text(geom.Pt(x0+1, y-4), text, c.Style)
		}
	}
}

// WavePointClient draws fiducial points: ticks for boundaries, markers for
// peaks.
type WavePointClient struct {
	Tick  Style
	Peaks Style
}

func NewWavePointClient() *WavePointClient {
	return &WavePointClient{
		Tick:  Style{Stroke: "#38BDF8", Opacity: 1},
		Peaks: Style{Stroke: "#F472B6", Fill: "#F472B6", Opacity: 1, Radius: 1},
	}
}

func (c *WavePointClient) Name() string { return "wavepoint" }

func (c *WavePointClient) Produce(rec *ecg.Record, s *State) []Object {
	if rec == nil || len(rec.WavePoints) == 0 {
		return nil
	}
	var out []Object
	for _, wp := range rec.WavePoints {
		px := s.SampleToPx(wp.Sample)
		for _, li := range leadsOfRecord(wp.Lead, rec) {
			v, _ := rec.Value(li, wp.Sample)
			at := geom.Pt(px, v)
			if wp.Type.IsPeak() {
				out = append(out, &Peak{Base: pointBase(c, at, 0, li), Type: wp.Type, At: at})
				continue
			}
			out = append(out, &WavePoint{Base: pointBase(c, at, 0, li), Type: wp.Type, At: at})
		}
	}
	return out
}

func (c *WavePointClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	for _, o := range objs {
		switch w := o.(type) {
		case *WavePoint:
			cell, ok := visibleCell(s, w.Lead)
			if !ok {
				continue
			}
			at := geom.Apply(s.LeadTransform(cell), w.At)
			surf.Stroke(geom.SegmentPath(geom.Identity, geom.Line{A: geom.Pt(at.X, at.Y-2), B: geom.Pt(at.X, at.Y+2)}), c.Tick)
		case *Peak:
			cell, ok := visibleCell(s, w.Lead)
			if !ok {
				continue
			}
			surf.Marker(geom.Apply(s.LeadTransform(cell), w.At), c.Peaks)
		}
	}
}

// leadsOfRecord expands a wave point lead, -1 meaning all leads.
func leadsOfRecord(lead int, rec *ecg.Record) []int {
	n := len(rec.Samples)
	if lead >= 0 {
		if lead < n {
			return []int{lead}
		}
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ClickablePointClient exposes beat peaks as hit targets and outlines them.
type ClickablePointClient struct {
	Style Style
}

func NewClickablePointClient() *ClickablePointClient {
	return &ClickablePointClient{Style: Style{Stroke: "#FACC15", Opacity: 0.8, Radius: 3}}
}

func (c *ClickablePointClient) Name() string { return "clickable" }

func (c *ClickablePointClient) Produce(rec *ecg.Record, s *State) []Object {
	if rec == nil || len(rec.Beats) == 0 {
		return nil
	}
	r := max(c.Style.Radius, 0)
	out := make([]Object, 0, len(rec.Beats)*len(rec.Samples))
	for k, b := range rec.Beats {
		px := s.SampleToPx(b.Peak)
		for li := range rec.Samples {
			v, _ := rec.Value(li, b.Peak)
			at := geom.Pt(px, v)
			out = append(out, &ClickablePoint{Base: pointBase(c, at, r, li), At: at, Radius: r, Beat: k})
		}
	}
	return out
}

// Render draws only the target closest to the pointer, if it is in reach.
func (c *ClickablePointClient) Render(objs []Object, s *State, surf Surface) {
	hit, ok := HitClickable(objs, s)
	if !ok {
		return
	}
	cell, ok := visibleCell(s, hit.Lead)
	if !ok {
		return
	}
	surf.Clip(s.Container.Clip())
	at := geom.Apply(s.LeadTransform(cell), hit.At)
	r := hit.Radius
	surf.Stroke(geom.RectPath(geom.RectFromSpan(at.X-r, at.Y-r, at.X+r, at.Y+r)), c.Style)
}

// HitClickable finds the clickable point under the pointer among objs.
func HitClickable(objs []Object, s *State) (*ClickablePoint, bool) {
	p, ok := s.Pointer()
	if !ok {
		return nil, false
	}
	dev := geom.Pt(s.Container.Left+p.X, s.Container.Top+p.Y)
	var best *ClickablePoint
	bestD := 0.0
	for _, o := range objs {
		cp, ok := o.(*ClickablePoint)
		if !ok {
			continue
		}
		cell, ok := visibleCell(s, cp.Lead)
		if !ok {
			continue
		}
		at := geom.Apply(s.LeadTransform(cell), cp.At)
		dx, dy := at.X-dev.X, at.Y-dev.Y
		d := dx*dx + dy*dy
		if d > cp.Radius*cp.Radius {
			continue
		}
		if best == nil || d < bestD {
			best, bestD = cp, d
		}
	}
	return best, best != nil
}

// CellClient draws the caption of every lead cell.
type CellClient struct {
	Style  Style
	Hidden Style
}

func NewCellClient() *CellClient {
	return &CellClient{
		Style:  Style{Stroke: "#E6E6E6", Opacity: 1, Labels: true},
		Hidden: Style{Stroke: "#6B7280", Opacity: 1, Labels: true},
	}
}

func (c *CellClient) Name() string { return "cell" }

func (c *CellClient) Produce(_ *ecg.Record, s *State) []Object {
	if !s.Ready() {
		return nil
	}
	out := make([]Object, 0, len(s.GridCells))
	for i, cell := range s.GridCells {
		out = append(out, &Cell{Base: newBase(c, cell.Rect, i, true), Label: cell.Label})
	}
	return out
}

func (c *CellClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	for _, o := range objs {
		cell, ok := o.(*Cell)
		if !ok {
			continue
		}
		layout, ok := s.Cell(cell.Lead)
		if !ok {
			continue
		}
		at := geom.Pt(layout.Rect.Left+1, layout.Rect.Top+1)
		if layout.Hidden {
			surf.Text(at, cell.Label+" off", c.Hidden)
			continue
		}
		surf.Text(at, cell.Label, c.Style)
	}
}
