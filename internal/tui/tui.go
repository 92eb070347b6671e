// Package tui provides a Bubble Tea viewer for the insights report.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/pathwise/internal/insights"
	"github.com/fakeyudi/pathwise/internal/render"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabTime
	tabPatterns
	tabGit
	tabTools
	tabCount
)

var tabNames = [tabCount]string{
	"Summary", "Time", "Patterns", "Git", "Tools",
}

// Snapshot is what the viewer displays.
type Snapshot struct {
	Report *insights.Report
	Across []insights.DirectoryTools
}

// Loader reads a fresh snapshot from disk.
type Loader func() (Snapshot, error)

// reloadMsg asks the model to call its Loader again.
type reloadMsg struct{}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the viewer.
type Model struct {
	load      Loader
	snap      Snapshot
	err       error
	loadedAt  time.Time
	now       func() time.Time
	changes   <-chan struct{}
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates a viewer. When changes is non-nil, every value received on it
// reloads the snapshot.
func New(load Loader, changes <-chan struct{}) Model {
	m := Model{load: load, changes: changes, now: time.Now}
	m.reload()
	return m
}

func (m *Model) reload() {
	snap, err := m.load()
	m.err = err
	if err == nil {
		m.snap = snap
	}
	m.loadedAt = m.now()
}

// waitForChange blocks until the data directory changes.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return waitForChange(m.changes) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4", "5":
			m.activeTab = tabID(msg.String()[0] - '1')
		case "r":
			m.reload()
			m.refreshViewports()
			return m, nil
		}
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case reloadMsg:
		m.reload()
		m.refreshViewports()
		return m, waitForChange(m.changes)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  pathwise  insights")

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-5 jump  r reload  q quit"
	right := "updated " + m.loadedAt.Format("15:04:05")
	if m.changes != nil {
		right = "live · " + right
	}
	pad := m.width - lipgloss.Width(hint) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + right)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := max(m.height-3, 1)
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) refreshViewports() {
	if !m.ready {
		return
	}
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i].SetContent(m.renderTab(i))
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	if m.err != nil {
		return "\n  " + errStyle.Render("failed to load data: "+m.err.Error()) + "\n"
	}
	r := m.snap.Report
	if r == nil || r.Empty() {
		return "\n" + dimStyle.Render("  (no activity recorded today)") + "\n"
	}
	var body string
	switch t {
	case tabSummary:
		body = render.Summary(r)
	case tabTime:
		body = render.TimeDistribution(r)
	case tabPatterns:
		body = render.Patterns(r)
	case tabGit:
		body = render.Git(r)
	case tabTools:
		body = render.DirectoryTools(r.Tools)
		if len(m.snap.Across) > 0 {
			body += "\n" + render.ToolsAcross(m.snap.Across)
		}
	}
	if body == "" {
		return "\n" + dimStyle.Render("  (none)") + "\n"
	}
	return "\n" + indent(body, "  ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the viewer. When ctx is cancelled the program exits.
func Run(ctx context.Context, load Loader, changes <-chan struct{}) error {
	p := tea.NewProgram(New(load, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
