package tui

import (
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/config"
	"polymap/internal/geom"
	"polymap/internal/mapview"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// attributes table
	showAttrs bool
	tbl       table.Model

	cfg config.Config
	log *slog.Logger

	// shared with engine callbacks; Model is copied on every Update
	mv *mapState
}

// mapState is the map session: the loaded dataset and the engine drawing it.
type mapState struct {
	dataset geom.Dataset
	name    string
	canvas  *termCanvas
	sched   *frameScheduler
	engine  *mapview.Engine
	err     error

	// hover state
	hovered     string
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
}

func New(cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "polymap ready",
		cfg:         cfg,
		log:         log,
		mv: &mapState{
			canvas: newTermCanvas(),
			sched:  newFrameScheduler(cfg.FrameInterval),
		},
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON, MULTIPOLYGON). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, log *slog.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setDataset replaces the map session's dataset and starts a new engine on it.
func (m *Model) setDataset(name string, d geom.Dataset) {
	mv := m.mv
	if mv.engine != nil {
		mv.engine.Cleanup()
	}
	mv.dataset = d
	mv.name = name
	mv.hovered = ""
	style := m.cfg.Style
	if m.cfg.TUIPadding > 0 {
		style.Padding = m.cfg.TUIPadding
	}
	mv.engine = mapview.New(d, mv.canvas, mapview.Options{
		Style:                style,
		Scheduler:            mv.sched,
		Logger:               m.log,
		StyleFunc:            mv.styleFeature,
		FallbackOnDegenerate: m.cfg.FallbackOnDegenerate,
	})
	m.initMap()
}

// initMap fits the dataset to the current map area. It is a no-op until the
// terminal size is known.
func (m *Model) initMap() {
	mv := m.mv
	if mv.engine == nil || mv.canvas.surface == nil {
		return
	}
	mv.err = mv.engine.Initialize()
	if mv.err != nil {
		m.status = "map error: " + mv.err.Error()
	}
}

// styleFeature fills the hovered feature with the hover colour.
func (mv *mapState) styleFeature(s mapview.Surface, name string) {
	st := mv.engine.Style()
	fill := st.DefaultFill
	if name != "" && name == mv.hovered {
		fill = st.HoverFill
	}
	s.SetFillStyle(fill)
	s.SetStrokeStyle(st.StrokeColor)
	s.SetLineWidth(st.StrokeWidth)
}

// hover updates the footer position and the highlighted feature for the screen
// cell (x, y).
func (mv *mapState) hover(x, y int) {
	e := mv.engine
	if e == nil || !e.Ready() || !mv.canvas.contains(x, y) {
		mv.hoverHasGeo = false
		mv.setHovered("")
		return
	}
	cx, cy := client(x, y)
	left, top := mv.canvas.Origin()
	sx, sy := cx-left, cy-top
	mv.hoverLon, mv.hoverLat = e.Unproject(sx, sy)
	mv.hoverHasGeo = true
	name := ""
	if f, ok := e.FeatureAt(sx, sy); ok {
		name = f.Name
	}
	mv.setHovered(name)
}

func (mv *mapState) setHovered(name string) {
	if name == mv.hovered {
		return
	}
	mv.hovered = name
	if mv.engine != nil && mv.engine.State() == mapview.Idle {
		mv.engine.Redraw(mv.styleFeature)
	}
}
