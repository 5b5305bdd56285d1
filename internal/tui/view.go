package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Header
	title := " ecgview ─ terminal ECG viewer "
	if rec := m.proxy.Record(); rec != nil {
		title += "─ " + rec.Name + " "
	}
	header := lipgloss.NewStyle().Width(l.contentW).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(l.contentH).Render(m.l.View())
	}

	var plotView string
	switch {
	case m.showBeats:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(l.plotW, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(max(1, min(l.plotH-4, 20)))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		plotView = lipgloss.Place(l.plotW, l.plotH, lipgloss.Center, lipgloss.Center, box)
	case m.help.ShowAll:
		box := boxStyle.Render(m.help.View(m.keys))
		plotView = lipgloss.Place(l.plotW, l.plotH, lipgloss.Center, lipgloss.Center, box)
	case m.inspectPopup != "":
		maxPopupW := max(20, min(48, l.plotW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		plotView = lipgloss.Place(l.plotW, l.plotH, lipgloss.Left, lipgloss.Center, box)
	default:
		plotView = m.plot.render(l.plotW, l.plotH)
	}
	plotView = lipgloss.NewStyle().Width(l.plotW).Height(l.plotH).Render(plotView)

	// Body row
	body := plotView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", plotView)
	}

	// Footer: status and pointer readout, then the short help
	st := dimStyle
	if m.errStatus {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	readout := dimStyle.Render(m.readout() + " ")
	window := dimStyle.Render(m.windowText() + " ")
	spacerW := max(0, l.contentW-lipgloss.Width(status)-lipgloss.Width(readout)-lipgloss.Width(window))
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.NewStyle().Width(spacerW).Render(""), readout, window)
	help := ""
	if !m.help.ShowAll {
		help = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(l.contentW).Render(line),
		lipgloss.NewStyle().MaxWidth(l.contentW).Render(" "+help),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

// windowText shows the visible time span.
func (m Model) windowText() string {
	rec := m.proxy.Record()
	if rec == nil || rec.SampleRate <= 0 {
		return ""
	}
	st := m.proxy.State()
	from := float64(st.PxToSample(float64(st.MinPx))) / rec.SampleRate
	to := float64(st.PxToSample(float64(st.MaxPx))) / rec.SampleRate
	return fmt.Sprintf("[%.2fs–%.2fs of %.2fs]", from, to, rec.Duration())
}
