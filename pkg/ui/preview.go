package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/compassviz/pkg/export"
	"github.com/vanderheijden86/compassviz/pkg/render"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// Tab is one preview page.
type Tab int

const (
	TabClusters Tab = iota
	TabConstructs
	TabMatrix
	TabHeatmap
	TabReport
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabClusters:
		return "Clusters"
	case TabConstructs:
		return "Constructs"
	case TabMatrix:
		return "Matrix"
	case TabHeatmap:
		return "Heatmap"
	case TabReport:
		return "Report"
	default:
		return "?"
	}
}

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// ReloadMsg replaces the previewed profile, e.g. after the score file changed.
type ReloadMsg struct {
	Profile render.Profile
	Bundle  render.Bundle
}

// ErrMsg reports a background failure in the status line.
type ErrMsg struct{ Err error }

// PreviewModel is the bubbletea model behind `cviz preview`.
type PreviewModel struct {
	theme    Theme
	profile  render.Profile
	bundle   render.Bundle
	tab      Tab
	viewport viewport.Model
	width    int
	height   int
	status   string
	err      error
	copyFn   func(string) error
}

// NewPreview creates a preview of an already built bundle.
func NewPreview(p render.Profile, b render.Bundle, theme Theme) PreviewModel {
	m := PreviewModel{
		theme:    theme,
		profile:  p,
		bundle:   b,
		viewport: viewport.New(defaultWidth, defaultHeight-2),
		width:    defaultWidth,
		height:   defaultHeight,
		copyFn:   CopyToClipboard,
	}
	m.refresh()
	return m
}

// Tab returns the active tab.
func (m PreviewModel) Tab() Tab {
	return m.tab
}

// Status returns the status line text.
func (m PreviewModel) Status() string {
	return m.status
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.refresh()
		return m, nil

	case ReloadMsg:
		m.profile, m.bundle = msg.Profile, msg.Bundle
		m.err = nil
		m.status = "reloaded"
		m.refresh()
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.setTab((m.tab + 1) % tabCount)
			return m, nil
		case "shift+tab", "left", "h":
			m.setTab((m.tab + tabCount - 1) % tabCount)
			return m, nil
		case "1", "2", "3", "4", "5":
			m.setTab(Tab(msg.String()[0] - '1'))
			return m, nil
		case "c":
			m.copySVG()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *PreviewModel) setTab(t Tab) {
	if t == m.tab {
		return
	}
	m.tab = t
	m.status = ""
	m.refresh()
	m.viewport.GotoTop()
}

func (m *PreviewModel) currentScene() *scene.Scene {
	switch m.tab {
	case TabClusters:
		return &m.bundle.ClusterRadar.Scene
	case TabConstructs:
		return &m.bundle.ConstructRadar.Scene
	case TabMatrix:
		return &m.bundle.Matrix.Scene
	case TabHeatmap:
		return &m.bundle.Heatmap.Scene
	default:
		return nil
	}
}

func (m *PreviewModel) copySVG() {
	s := m.currentScene()
	if s == nil {
		m.status = "nothing to copy on this tab"
		return
	}
	var buf bytes.Buffer
	if err := export.RenderSVG(&buf, s); err != nil {
		m.err = err
		return
	}
	if err := m.copyFn(buf.String()); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("copied %s SVG (%d bytes)", m.tab, buf.Len())
}

func (m *PreviewModel) refresh() {
	m.viewport.SetContent(m.content())
}

func (m *PreviewModel) content() string {
	switch m.tab {
	case TabClusters:
		return RadarBars(m.bundle.ClusterRadar.Chart, m.theme, m.width)
	case TabConstructs:
		return RadarBars(m.bundle.ConstructRadar.Chart, m.theme, m.width)
	case TabMatrix:
		return MatrixGrid(m.bundle.Matrix.Chart, m.theme)
	case TabHeatmap:
		return HeatmapGrid(m.bundle.Heatmap.Chart, m.theme)
	case TabReport:
		opts := m.bundle.ReportOptions(m.profile, "")
		opts.Charts = nil
		md := export.GenerateReportMarkdown(opts, nil)
		out, err := RenderMarkdown(md, m.width-2)
		if err != nil {
			return md
		}
		return out
	default:
		return ""
	}
}

func (m PreviewModel) View() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, t)
		if t == m.tab {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}
	title := "Strengths Compass"
	if m.profile.Subject != "" {
		title += " · " + m.profile.Subject
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, m.theme.Header.Render(title), " ", strings.Join(tabs, ""))

	status := m.theme.Status.Render("tab/←→ switch · 1-5 jump · c copy SVG · q quit")
	switch {
	case m.err != nil:
		status = m.theme.ErrorText.Render("error: " + m.err.Error())
	case m.status != "":
		status = m.theme.Status.Render(m.status)
	}

	return header + "\n" + m.viewport.View() + "\n" + status
}
