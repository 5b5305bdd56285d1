package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"ecgview/internal/ecg"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.setError("read dir error: " + err.Error())
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".csv" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no record files in current directory"
	}
}

// loadPath loads a record file into the viewer.
func (m *Model) loadPath(p string) {
	rec, err := ecg.Load(p)
	if err != nil {
		m.setError("load error: " + err.Error())
		return
	}
	m.setRecord(rec, p)
	m.watch(p)
}

func (m *Model) setRecord(rec *ecg.Record, p string) {
	if err := m.proxy.Load(rec); err != nil {
		m.setError("load error: " + err.Error())
		return
	}
	m.selPath = p
	m.inspectPopup = ""
	m.errStatus = false
	m.status = fmt.Sprintf("loaded: %s  leads=%d  %.1fs @ %gHz  beats=%d",
		rec.Name, len(rec.Leads), rec.Duration(), rec.SampleRate, len(rec.Beats))
	if m.showBeats {
		m.refreshBeats()
	}
}

func (m *Model) watch(p string) {
	if m.watcher == nil || p == "" {
		return
	}
	if err := m.watcher.Watch(p); err != nil {
		slog.Warn("watch record", "path", p, "err", err)
	}
}

// reload re-reads the open file keeping the window position.
func (m *Model) reload() {
	if m.selPath == "" {
		m.status = "nothing to reload"
		return
	}
	at := m.proxy.State().MinPx
	m.loadPath(m.selPath)
	m.proxy.ScrollTo(at)
}

func (m *Model) setError(s string) {
	m.status = s
	m.errStatus = true
}
