package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshBeats rebuilds the beats table from the loaded record.
func (m *Model) refreshBeats() {
	rec := m.proxy.Record()
	if rec == nil || len(rec.Beats) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showBeats = false
		m.status = "no beats in current record"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "label", Width: 6},
		{Title: "onset", Width: 9},
		{Title: "peak", Width: 9},
		{Title: "offset", Width: 9},
		{Title: "ms", Width: 6},
		{Title: "RR ms", Width: 7},
	}
	ms := func(samples int) string {
		return fmt.Sprintf("%.0f", float64(samples)/rec.SampleRate*1000)
	}
	rows := make([]table.Row, 0, len(rec.Beats))
	for i, b := range rec.Beats {
		rr := ""
		if i > 0 {
			rr = ms(b.Peak - rec.Beats[i-1].Peak)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			b.Label,
			strconv.Itoa(b.Onset),
			strconv.Itoa(b.Peak),
			strconv.Itoa(b.Offset),
			ms(b.Offset - b.Onset),
			rr,
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// jumpToBeat centres the window on beat i.
func (m *Model) jumpToBeat(i int) {
	rec := m.proxy.Record()
	if rec == nil || i < 0 || i >= len(rec.Beats) {
		return
	}
	st := m.proxy.State()
	px := int(st.SampleToPx(rec.Beats[i].Peak))
	m.proxy.ScrollTo(px - st.LimitPx/2)
	m.status = fmt.Sprintf("beat %d at %.3fs", i+1, float64(rec.Beats[i].Peak)/rec.SampleRate)
}
