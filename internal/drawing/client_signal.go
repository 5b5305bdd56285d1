package drawing

import (
	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// SignalClient draws the traces, one connected path per lead.
type SignalClient struct {
	Style Style
}

func NewSignalClient() *SignalClient {
	return &SignalClient{Style: Style{Stroke: "#22C55E", Opacity: 1, Width: 1, Join: JoinRound}}
}

func (c *SignalClient) Name() string { return "signal" }

// Produce returns a single Signal spanning the whole record.
func (c *SignalClient) Produce(rec *ecg.Record, s *State) []Object {
	if rec == nil || len(rec.Samples) == 0 {
		return nil
	}
	obj := &Signal{Polylines: make([]geom.Polyline, len(rec.Samples))}
	var bounds geom.Rect
	first := true
	for li, samples := range rec.Samples {
		pts := make([]geom.Point, len(samples))
		for i, v := range samples {
			pts[i] = geom.Pt(s.SampleToPx(i), v)
		}
		pl := geom.Polyline{Points: pts}
		obj.Polylines[li] = pl
		if len(pts) == 0 {
			continue
		}
		if first {
			bounds, first = pl.Bounds(), false
		} else {
			bounds = bounds.Union(pl.Bounds())
		}
	}
	if first {
		return nil
	}
	obj.Base = newBase(c, bounds, -1, false)
	return []Object{obj}
}

// Render walks only the samples under the window.
func (c *SignalClient) Render(objs []Object, s *State, surf Surface) {
	surf.Clip(s.Container.Clip())
	for _, o := range objs {
		sig, ok := o.(*Signal)
		if !ok {
			continue
		}
		for li, pl := range sig.Polylines {
			cell, ok := visibleCell(s, li)
			if !ok {
				continue
			}
			lo, hi := visibleSpan(s, pl.Len())
			if hi-lo < 1 {
				continue
			}
			surf.Stroke(geom.StrokePath(s.LeadTransform(cell), pl.Points[lo:hi]), c.Style)
		}
	}
}

// visibleSpan is the sample index range [lo, hi) under the window, one
// sample past each edge so the path reaches the container border.
func visibleSpan(s *State, n int) (lo, hi int) {
	lo = s.PxToSample(float64(s.MinPx)) - 1
	hi = s.PxToSample(float64(s.MaxPx)) + 1
	lo = min(max(lo, 0), n)
	hi = min(max(hi, lo), n)
	return lo, hi
}
