package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polymap/internal/geom"
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
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.IsSupported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a supported file and refits the map to it.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		m.log.Error("load", "path", p, "err", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.log.Info("load", "path", p, "features", d.Len(), "skipped", d.Skipped)
	m.setDataset(filepath.Base(p), d)
	if m.mv.err == nil {
		m.status = "loaded: " + filepath.Base(p) + countsLabel(d)
	}
	m.syncAttrs()
}

// loadWKT renders pasted WKT.
func (m *Model) loadWKT(s string) bool {
	d, err := geom.ParseWKT("pasted", s)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return false
	}
	m.selPath = ""
	m.setDataset("pasted", d)
	if m.mv.err == nil {
		m.status = "rendered WKT" + countsLabel(d)
	}
	m.syncAttrs()
	return true
}

// syncAttrs rebuilds the attributes table if it is shown.
func (m *Model) syncAttrs() {
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

func countsLabel(d geom.Dataset) string {
	s := fmt.Sprintf("  features=%d vertices=%d", d.Len(), d.VertexCount())
	if d.Skipped > 0 {
		s += fmt.Sprintf(" skipped=%d", d.Skipped)
	}
	return s
}
