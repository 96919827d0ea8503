package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/mapview"
	"polymap/internal/raster"
)

// Keyboard pan steps in dots: one cell each way.
const (
	panStepX = 2
	panStepY = 4
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	mv := m.mv
	switch msg := msg.(type) {
	case frameMsg:
		mv.sched.fire(msg.id)
		return m, mv.sched.drain()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncLayout()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				if m.loadWKT(w) {
					m.pasteMode = false
					m.ta.Blur()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if mv.engine != nil {
				mv.engine.Cleanup()
			}
			return m, tea.Quit
		case "esc":
			m.inspectPopup = ""
		case "+", "=":
			m.zoomCentre(-1)
		case "-", "_":
			m.zoomCentre(1)
		case "up":
			m.pan(0, -panStepY)
		case "down":
			m.pan(0, panStepY)
		case "left":
			m.pan(-panStepX, 0)
		case "right":
			m.pan(panStepX, 0)
		case "r":
			if mv.engine != nil {
				m.initMap()
				if mv.err == nil {
					m.status = "refit"
				}
			}
		case "x":
			m.exportPNG()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.syncLayout()
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
			} else {
				m.inspectPopup = m.inspect()
				m.status = "inspect popup"
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		if !m.showAttrs && !m.pasteMode {
			mv.canvas.dispatch(msg)
			mv.hover(msg.X, msg.Y)
		}
	}
	cmds := []tea.Cmd{mv.sched.drain()}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// layout returns the map area's cell origin and size. View draws to the same
// geometry.
func (m Model) layout() (left, top, cols, rows int) {
	headerHeight := 1
	footerHeight := 2
	rows = max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		left = sidebarWidth + 1
	}
	cols = max(10, contentWidth-sw-1)
	return left, headerHeight, cols, rows
}

// syncLayout resizes the list and the map area, refitting the map when its size
// changed.
func (m *Model) syncLayout() {
	left, top, cols, rows := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, rows-2)
	}
	if m.mv.canvas.resize(cols, rows, left, top) {
		m.initMap()
	}
}

func (m *Model) pan(dx, dy float64) {
	e := m.mv.engine
	if e == nil || !e.Ready() {
		return
	}
	e.PanBy(dx, dy)
}

func (m *Model) zoomCentre(deltaY float64) {
	e := m.mv.engine
	if e == nil || !e.Ready() {
		return
	}
	w, h := m.mv.canvas.Size()
	e.ZoomAt(w/2, h/2, deltaY)
	m.status = fmt.Sprintf("scale: %.4g", e.Transform().Scale)
}

func (m Model) inspect() string {
	mv := m.mv
	if mv.engine == nil {
		return "no dataset loaded"
	}
	b := mv.engine.Bounds()
	t := mv.engine.Transform()
	path := m.selPath
	if path == "" {
		path = "<pasted>"
	}
	meta := []string{
		fmt.Sprintf("name: %s", mv.name),
		fmt.Sprintf("path: %s", path),
		fmt.Sprintf("bounds: [%.5f, %.5f, %.5f, %.5f]", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat),
		"counts:" + countsLabel(mv.dataset),
		fmt.Sprintf("scale: %.6g  offset: %.1f, %.1f", t.Scale, t.OffsetX, t.OffsetY),
	}
	if mv.hovered != "" {
		meta = append(meta, "feature: "+mv.hovered)
	}
	if mv.hoverHasGeo {
		meta = append(meta, fmt.Sprintf("cursor: lon=%.6f lat=%.6f", mv.hoverLon, mv.hoverLat))
	}
	return strings.Join(meta, "\n")
}

// exportPNG renders the dataset to <name>.png in the working directory.
func (m *Model) exportPNG() {
	mv := m.mv
	if mv.engine == nil {
		m.status = "nothing to export"
		return
	}
	out := filepath.Join(m.cwd, strings.TrimSuffix(mv.name, filepath.Ext(mv.name))+".png")
	img, err := raster.Render(mv.engine.Dataset(), m.cfg.PNGWidth, m.cfg.PNGHeight, mapview.Options{
		Style:                m.cfg.Style,
		Logger:               m.log,
		FallbackOnDegenerate: m.cfg.FallbackOnDegenerate,
	})
	if err == nil {
		err = raster.WritePNG(out, img)
	}
	if err != nil {
		m.log.Error("export", "path", out, "err", err)
		m.status = "export error: " + err.Error()
		return
	}
	m.log.Info("export", "path", out, "width", m.cfg.PNGWidth, "height", m.cfg.PNGHeight)
	m.status = "exported " + filepath.Base(out)
}
