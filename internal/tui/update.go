package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ecgview/internal/geom"
)

// hoverFlushMsg ends a hover throttle window.
type hoverFlushMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var mouseCmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
	case recordChangedMsg:
		if msg.path != "" && m.selPath != "" {
			m.reload()
			m.status = "reloaded: " + m.status
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.showBeats {
			switch {
			case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Beats):
				m.showBeats = false
				return m, nil
			case key.Matches(msg, m.keys.Open):
				m.jumpToBeat(m.tbl.Cursor())
				m.showBeats = false
				return m, nil
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	case hoverFlushMsg:
		m.flushQueued = false
		m.proxy.FlushHover()
		return m, nil
	case tea.MouseMsg:
		mouseCmd = m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, tea.Batch(mouseCmd, cmd)
	}
	return m, mouseCmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := max(m.cfg.Display.ScrollStep, 1)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.inspectPopup = ""
	case key.Matches(msg, m.keys.Left):
		m.proxy.Scroll(-step)
	case key.Matches(msg, m.keys.Right):
		m.proxy.Scroll(step)
	case key.Matches(msg, m.keys.Home):
		m.proxy.ScrollTo(0)
	case key.Matches(msg, m.keys.End):
		m.proxy.ScrollTo(m.proxy.DataWidthPx())
	case key.Matches(msg, m.keys.ZoomIn):
		m.proxy.Wheel(1)
		m.status = fmt.Sprintf("scale: %.1f px/mV", m.proxy.State().SignalScale)
	case key.Matches(msg, m.keys.ZoomOut):
		m.proxy.Wheel(-1)
		m.status = fmt.Sprintf("scale: %.1f px/mV", m.proxy.State().SignalScale)
	case key.Matches(msg, m.keys.Lead):
		i := int(msg.String()[0] - '1')
		if m.proxy.ToggleLead(i) {
			c := m.proxy.State().GridCells[i]
			m.status = fmt.Sprintf("lead %s: %v", c.Label, !c.Hidden)
		}
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resize()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Beats):
		m.showBeats = true
		m.refreshBeats()
	case key.Matches(msg, m.keys.Inspect):
		if s, ok := m.inspect(); ok {
			m.inspectPopup = s
			m.status = "inspect popup"
		} else {
			m.inspectPopup = ""
			m.status = "nothing to inspect"
		}
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMouse feeds the plot's pointer protocol. Positions are cell
// centres in terminal coordinates. The returned command flushes a hover
// the throttle held back.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.layout()
	inside := l.inPlot(msg.X, msg.Y)
	at := geom.Pt(float64(msg.X)+0.5, float64(msg.Y)+0.5)
	dragging := m.proxy.Dragging()
	if !inside && !dragging {
		if m.inPlot {
			m.proxy.PointerLeave()
			m.inPlot = false
		}
		return nil
	}
	m.inPlot = inside
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.proxy.Wheel(1)
		case tea.MouseButtonWheelDown:
			m.proxy.Wheel(-1)
		case tea.MouseButtonWheelLeft:
			m.proxy.Scroll(-max(m.cfg.Display.ScrollStep, 1))
		case tea.MouseButtonWheelRight:
			m.proxy.Scroll(max(m.cfg.Display.ScrollStep, 1))
		case tea.MouseButtonLeft:
			m.proxy.PointerMove(at)
			if cp, ok := m.proxy.ClickableAt(); ok {
				m.status = fmt.Sprintf("beat %d", cp.Beat+1)
			}
			m.proxy.PointerDown(at)
		}
	case tea.MouseActionMotion:
		m.proxy.PointerMove(at)
	case tea.MouseActionRelease:
		m.proxy.PointerUp()
	}
	if !m.proxy.HoverPending() || m.flushQueued {
		return nil
	}
	m.flushQueued = true
	return tea.Tick(max(m.cfg.Display.HoverThrottle(), time.Millisecond), func(time.Time) tea.Msg {
		return hoverFlushMsg{}
	})
}

// resize sizes the proxy to the plot area when the layout changed.
func (m *Model) resize() {
	l := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}
	if l.plotW == m.plotW && l.plotH == m.plotH && l.plotX == m.plotX && l.plotY == m.plotY {
		return
	}
	m.plotW, m.plotH, m.plotX, m.plotY = l.plotW, l.plotH, l.plotX, l.plotY
	m.proxy.Resize(float64(l.plotW*2), float64(l.plotH*4), l.screen())
}
