// Package tui provides a Bubble Tea viewer for episode summary records.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/janindragoonetilleke-oss/codeassist/internal/summary"
)

var (
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

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

type tabID int

const (
	tabSummary tabID = iota
	tabActions
	tabOutcome
	tabLatency
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Actions", "Outcome", "Latency"}

// Model is the root Bubble Tea model for the summary viewer.
type Model struct {
	rec       *summary.Session
	source    string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates a viewer model for the given record and its source filename.
func New(rec *summary.Session, source string) Model {
	return Model{rec: rec, source: source}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4":
			m.activeTab = tabID(msg.String()[0] - '1')
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

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

	title := titleStyle.Width(m.width).Render("  codeassist  " + m.source)

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

	hint := "  ←/→ tab  ↑/↓ scroll  1-4 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabSummary:
		return m.renderSummary()
	case tabActions:
		return m.renderActions()
	case tabOutcome:
		return m.renderOutcome()
	case tabLatency:
		return m.renderLatency()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func row(sb *strings.Builder, label, value string) {
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-22s", label)) + "  " + value + "\n")
}

func (m *Model) renderSummary() string {
	r := m.rec
	var sb strings.Builder
	sb.WriteString(heading("Episode Summary"))
	row(&sb, "Episode:", r.EpisodeID)
	row(&sb, "Reported:", r.Timestamp)
	row(&sb, "Duration:", fmt.Sprintf("%d ms", r.DurationMS))
	row(&sb, "Turns:", fmt.Sprintf("%d", r.TotalTurns))
	row(&sb, "User:", r.UserID)
	if r.QuestionID != nil {
		row(&sb, "Question:", fmt.Sprintf("%d", *r.QuestionID))
	} else {
		row(&sb, "Question:", dimStyle.Render("(unresolved)"))
	}
	if r.IPAddr != nil {
		row(&sb, "Public IP:", *r.IPAddr)
	} else {
		row(&sb, "Public IP:", dimStyle.Render("(unresolved)"))
	}
	row(&sb, "Version:", r.Version)
	return sb.String()
}

func (m *Model) renderActions() string {
	r := m.rec
	var sb strings.Builder
	sb.WriteString(heading("Action Counts"))

	rows := []struct {
		name             string
		assistant, human int
	}{
		{"no_op", r.AssistantNoopCount, r.HumanNoopCount},
		{"fill_partial_line", r.AssistantFillPartialCount, r.HumanFillPartialCount},
		{"replace_and_append_single_line", r.AssistantWriteSingleCount, r.HumanWriteSingleCount},
		{"replace_and_append_multi_line", r.AssistantWriteMultiCount, r.HumanWriteMultiCount},
		{"edit_existing_lines", r.AssistantEditExistingCount, r.HumanEditExistingCount},
		{"explain_single_lines", r.AssistantExplainSingleCount, r.HumanExplainSingleCount},
		{"explain_multi_line", r.AssistantExplainMultiCount, r.HumanExplainMultiCount},
	}

	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-32s", "kind")) +
		labelStyle.Render(fmt.Sprintf("%10s", "assistant")) +
		labelStyle.Render(fmt.Sprintf("%8s", "human")) + "\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-32s%10d%8d\n", r.name, r.assistant, r.human))
	}

	sb.WriteString(heading("Cursor Distance (mean lines)"))
	row(&sb, "edit_existing_lines:", fmt.Sprintf("%.1f", r.EditExistingDistanceMean))
	row(&sb, "explain_single_lines:", fmt.Sprintf("%.1f", r.ExplainSingleDistanceMean))
	row(&sb, "explain_multi_line:", fmt.Sprintf("%.1f", r.ExplainMultiDistanceMean))
	return sb.String()
}

func (m *Model) renderOutcome() string {
	r := m.rec
	var sb strings.Builder
	sb.WriteString(heading("Outcome"))

	status := failStyle.Render("FAIL")
	if r.Success {
		status = passStyle.Render("PASS")
	}
	row(&sb, "Final state:", status)
	if r.TimeToPassMS != nil {
		row(&sb, "Time to pass:", fmt.Sprintf("%d ms", *r.TimeToPassMS))
	} else {
		row(&sb, "Time to pass:", dimStyle.Render("never passed"))
	}
	if r.TurnsToPass != nil {
		row(&sb, "Turns to pass:", fmt.Sprintf("%d", *r.TurnsToPass))
	} else {
		row(&sb, "Turns to pass:", dimStyle.Render("never passed"))
	}

	sb.WriteString(heading("Transition Rates"))
	row(&sb, "Compile progression:", rateBar(r.CompileProgressionRate))
	row(&sb, "Compile regression:", rateBar(r.CompileRegressionRate))
	row(&sb, "Test progression:", rateBar(r.TestProgressionRate))
	row(&sb, "Test regression:", rateBar(r.TestRegressionRate))
	return sb.String()
}

func (m *Model) renderLatency() string {
	r := m.rec
	var sb strings.Builder
	sb.WriteString(heading("Inter-state Latency"))
	row(&sb, "p50:", fmt.Sprintf("%d ms", r.P50LatencyMS))
	row(&sb, "p90:", fmt.Sprintf("%d ms", r.P90LatencyMS))
	row(&sb, "p99:", fmt.Sprintf("%d ms", r.P99LatencyMS))
	return sb.String()
}

// rateBar renders a rate in [0,1] as a 20-cell bar with the numeric value.
func rateBar(rate float64) string {
	const cells = 20
	filled := int(rate * cells)
	if filled > cells {
		filled = cells
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", cells-filled))
	return fmt.Sprintf("%s  %.3f", bar, rate)
}

// Run starts the viewer for the given record.
func Run(rec *summary.Session, source string) error {
	p := tea.NewProgram(New(rec, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
