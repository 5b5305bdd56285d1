package drawing

import (
	"fmt"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// BeatsClient draws beat bands, peak markers and onset..offset labels.
type BeatsClient struct {
	Marker  Style
	BandOdd string
	Band    Style
}

func NewBeatsClient() *BeatsClient {
	return &BeatsClient{
		Marker:  Style{Stroke: "#F59E0B", Fill: "#F59E0B", Opacity: 1, Radius: 1, Labels: true},
		Band:    Style{Fill: "#1E3A8A", Opacity: 0.15},
		BandOdd: "#155E75",
	}
}

func (c *BeatsClient) Name() string { return "beats" }

func (c *BeatsClient) Produce(rec *ecg.Record, s *State) []Object {
	if rec == nil || len(rec.Beats) == 0 {
		return nil
	}
	out := make([]Object, 0, len(rec.Beats))
	for k, b := range rec.Beats {
		obj := &BeatsRange{
			Index: k,
			Beat:  b,
			Range: geom.NewRange(s.SampleToPx(b.Onset), s.SampleToPx(b.Offset)),
			Text:  beatText(b, rec.SampleRate),
		}
		px := s.SampleToPx(b.Peak)
		for li := range rec.Samples {
			v, _ := rec.Value(li, b.Peak)
			obj.Markers = append(obj.Markers, geom.Pt(px, v))
		}
		box := geom.RectFromSpan(obj.Range.From, 0, obj.Range.To, 0)
		if len(obj.Markers) > 0 {
			box = box.Union(geom.Bounds(obj.Markers...))
		}
		obj.Base = newBase(c, box, -1, false)
		out = append(out, obj)
	}
	return out
}

func beatText(b ecg.Beat, rate float64) string {
	label := b.Label
	if label == "" {
		label = "?"
	}
	if rate <= 0 {
		return label
	}
	ms := float64(b.Offset-b.Onset) / rate * 1000
	return fmt.Sprintf("%s %.0fms", label, ms)
}

// Render runs two passes: bands for beats fully inside the window, then
// markers and labels for beats whose peak is inside it.
func (c *BeatsClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	lo, hi := float64(s.MinPx), float64(s.MaxPx)
	for _, o := range objs {
		b, ok := o.(*BeatsRange)
		if !ok || !b.Range.Within(lo, hi) {
			continue
		}
		band := c.Band
		if b.Index%2 == 1 {
			band = band.WithFill(c.BandOdd, band.Opacity)
		}
		x0, x1 := s.DeviceX(b.Range.From), s.DeviceX(b.Range.To)
		for i := range s.GridCells {
			cell, ok := visibleCell(s, i)
			if !ok {
				continue
			}
			surf.Fill(geom.RectFromSpan(x0, cell.Rect.Top, x1, cell.Rect.Bottom()), band)
		}
	}
	for _, o := range objs {
		b, ok := o.(*BeatsRange)
		if !ok || !inWindow(s, b.MarkerX()) {
			continue
		}
		labelled := !c.Marker.Labels
		for i, m := range b.Markers {
			cell, ok := visibleCell(s, i)
			if !ok {
				continue
			}
			surf.Marker(geom.Apply(s.LeadTransform(cell), m), c.Marker)
			if labelled {
				continue
			}
			// the range label goes on the topmost drawn lead only
			labelled = true
			y := cell.Rect.Top + 1
			x0, x1 := s.DeviceX(b.Range.From), s.DeviceX(b.Range.To)
			surf.Stroke(geom.SegmentPath(geom.Identity, geom.Line{A: geom.Pt(x0, y), B: geom.Pt(x1, y)}), c.Marker)
			surf.Text(geom.Pt(x0, y), b.Text, c.Marker)
		}
	}
}
