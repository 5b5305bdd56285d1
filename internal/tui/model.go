package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"ecgview/internal/config"
	"ecgview/internal/drawing"
	"ecgview/internal/ecg"
)

// plotCache holds the latest prepared frame and the text it rendered to.
// The proxy pushes frames in; View pulls and re-renders only when dirty.
type plotCache struct {
	frame drawing.Frame
	has   bool
	dirty bool
	w, h  int
	out   string
	last  drawing.Event
}

func (c *plotCache) render(w, h int) string {
	if !c.dirty && c.w == w && c.h == h {
		return c.out
	}
	buf := newBrailleBuf(w, h, plotBg)
	if c.has {
		c.frame.Draw(buf)
	}
	c.out = strings.Join(buf.toLines(), "\n")
	c.w, c.h, c.dirty = w, h, false
	return c.out
}

type Model struct {
	width  int
	height int

	showSidebar bool
	status      string
	errStatus   bool

	keys keyMap
	help help.Model

	cfg    config.Config
	proxy  *drawing.Proxy
	plot   *plotCache
	cancel []func()

	// layout the proxy was last sized for
	plotW, plotH int
	plotX, plotY int
	inPlot       bool
	flushQueued  bool

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string
	watcher *Watcher

	// inspect popup
	inspectPopup string

	// beats table
	showBeats bool
	tbl       table.Model
}

// New builds the viewer with every renderer registered and styled from cfg.
func New(cfg config.Config) Model {
	m := Model{
		status: "ecgview ready",
		keys:   defaultKeys(),
		help:   help.New(),
		cfg:    cfg,
		plot:   &plotCache{dirty: true},
	}
	m.proxy = drawing.NewProxy(cfg.ProxyOptions()...)
	clients := drawing.DefaultClients()
	cfg.Apply(clients)
	m.proxy.PushClients(clients...)
	plot := m.plot
	m.cancel = append(m.cancel,
		m.proxy.Prepared().Subscribe(func(f drawing.Frame) {
			plot.frame, plot.has, plot.dirty = f, true, true
		}),
		m.proxy.Changes().Subscribe(func(e drawing.Event) {
			plot.last = e
		}),
	)
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Records"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a record file at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

// NewWithRecord shows rec, which has no file behind it.
func NewWithRecord(cfg config.Config, rec *ecg.Record) Model {
	m := New(cfg)
	m.setRecord(rec, "")
	return m
}

// AttachWatcher makes the model follow changes of the open record file.
func (m *Model) AttachWatcher(w *Watcher) {
	m.watcher = w
	if m.selPath != "" {
		m.watch(m.selPath)
	}
}

// Proxy exposes the drawing proxy, mostly for tests.
func (m Model) Proxy() *drawing.Proxy { return m.proxy }

// Close drops the feed subscriptions.
func (m Model) Close() {
	for _, c := range m.cancel {
		c()
	}
}

func (m Model) Init() tea.Cmd { return nil }
