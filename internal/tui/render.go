package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"ecgview/internal/drawing"
)

// cursor returns the live cursor, if the pointer is over the plot.
func (m Model) cursor() (*drawing.Cursor, bool) {
	for _, o := range m.proxy.HUD() {
		if c, ok := o.(*drawing.Cursor); ok && c.Active {
			return c, true
		}
	}
	return nil, false
}

// readout is the footer text for the sample under the pointer.
func (m Model) readout() string {
	c, ok := m.cursor()
	rec := m.proxy.Record()
	if !ok || rec == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("t=%.3fs", float64(c.Sample)/rec.SampleRate)}
	st := m.proxy.State()
	for i, v := range c.Values {
		if i >= len(st.GridCells) || st.GridCells[i].Hidden {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.0f", st.GridCells[i].Label, v))
	}
	return strings.Join(parts, " ")
}

// inspect describes the record and the beat under the pointer, or the
// beat nearest the cursor when no hit target is under it.
func (m Model) inspect() (string, bool) {
	rec := m.proxy.Record()
	if rec == nil {
		return "", false
	}
	st := m.proxy.State()
	name := rec.Name
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("leads: %s", strings.Join(leadLabels(st), " ")),
		fmt.Sprintf("rate: %gHz  duration: %.2fs", rec.SampleRate, rec.Duration()),
		fmt.Sprintf("window: %.2fs..%.2fs", float64(st.PxToSample(float64(st.MinPx)))/rec.SampleRate,
			float64(st.PxToSample(float64(st.MaxPx)))/rec.SampleRate),
		fmt.Sprintf("scale: %.1f px/mV", st.SignalScale),
		fmt.Sprintf("beats: %d  annotations: %d", len(rec.Beats), len(rec.Annotations)),
	}
	beat, ok := -1, false
	if cp, hit := m.proxy.ClickableAt(); hit {
		beat, ok = cp.Beat, true
	} else if c, active := m.cursor(); active {
		beat, ok = rec.BeatAt(c.Sample)
	}
	if !ok {
		return strings.Join(meta, "\n"), true
	}
	b := rec.Beats[beat]
	meta = append(meta,
		"",
		fmt.Sprintf("beat %d: %s", beat+1, b.Label),
		fmt.Sprintf("onset %d  peak %d  offset %d", b.Onset, b.Peak, b.Offset),
		fmt.Sprintf("QRS %.0fms", float64(b.Offset-b.Onset)/rec.SampleRate*1000),
	)
	if beat > 0 {
		rr := float64(b.Peak-rec.Beats[beat-1].Peak) / rec.SampleRate
		meta = append(meta, fmt.Sprintf("RR %.0fms  HR %.0f bpm", rr*1000, 60/rr))
	}
	return strings.Join(meta, "\n"), true
}

func leadLabels(st drawing.State) []string {
	out := make([]string, len(st.GridCells))
	for i, c := range st.GridCells {
		out[i] = c.Label
		if c.Hidden {
			out[i] += "(off)"
		}
	}
	return out
}
