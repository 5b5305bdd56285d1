package drawing

import (
	"fmt"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// CursorClient draws the vertical cursor and a marker per lead at the
// sample column under the pointer. Its object is HUD and is refreshed by
// the proxy on every pointer move.
type CursorClient struct {
	Style Style
}

func NewCursorClient() *CursorClient {
	return &CursorClient{Style: Style{Stroke: "#E5E7EB", Fill: "#FFA500", Opacity: 1, Radius: 1, Labels: true}}
}

func (c *CursorClient) Name() string { return "cursor" }

func (c *CursorClient) Produce(rec *ecg.Record, s *State) []Object {
	if !s.Ready() {
		return nil
	}
	cur := &Cursor{}
	cur.Base = newBase(c, s.Container, -1, true)
	cur.refresh(rec, s)
	return []Object{cur}
}

func (c *CursorClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	for _, o := range objs {
		cur, ok := o.(*Cursor)
		if !ok || !cur.Active {
			continue
		}
		surf.Stroke(geom.SegmentPath(geom.Identity, cur.Line), c.Style)
		for i, m := range cur.Markers {
			cell, ok := visibleCell(s, i)
			if !ok {
				continue
			}
			at := geom.Apply(s.LeadTransform(cell), m)
			surf.Marker(at, c.Style)
			if c.Style.Labels {
				surf.Text(geom.Pt(at.X+2, cell.Rect.Top+1), fmt.Sprintf("%.0fµV", m.Y), c.Style)
			}
		}
		if c.Style.Labels && s.SampleRate > 0 {
			sec := float64(cur.Sample) / s.SampleRate
			surf.Text(geom.Pt(cur.Line.A.X+2, s.Container.Bottom()-4), fmt.Sprintf("%.3fs", sec), c.Style)
		}
	}
}
