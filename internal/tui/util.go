package tui

import "ecgview/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is where the plot sits on the terminal, in cells. Update and View
// must agree on it so mouse cells map onto the drawn plot.
type layout struct {
	contentW, contentH int
	plotX, plotY       int
	plotW, plotH       int
}

func (m Model) layout() layout {
	var l layout
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	l.contentW = max(10, m.width)
	side := 0
	if m.showSidebar {
		side = sidebarWidth + 1
	}
	l.plotX = side
	l.plotY = headerHeight
	l.plotW = max(10, l.contentW-side)
	l.plotH = l.contentH
	return l
}

// screen is the plot area in mouse cell coordinates.
func (l layout) screen() geom.Rect {
	return geom.NewRect(float64(l.plotX), float64(l.plotY), float64(l.plotW), float64(l.plotH))
}

// inPlot reports whether the mouse cell is on the plot.
func (l layout) inPlot(x, y int) bool {
	return x >= l.plotX && x < l.plotX+l.plotW && y >= l.plotY && y < l.plotY+l.plotH
}
