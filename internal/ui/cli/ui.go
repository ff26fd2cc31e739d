package cli

import (
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/ui/report"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	problemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	target      sourceTarget
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type panelMode int

const (
	panelDiagnostics panelMode = iota
	panelFiles
)

type model struct {
	diagList    list.Model
	fileList    list.Model
	mode        panelMode
	trendReport *history.TrendReport
	showTrend   bool
	result      ports.CheckResult
	lastErr     string
	lastUpdate  time.Time
	runs        int

	sourceJumpStatus string
}

// updateMsg carries one completed watch-mode run.
type updateMsg struct {
	result ports.CheckResult
	err    error
}

type sourceJumpResultMsg struct {
	target string
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.diagList.SetSize(width, height)
		m.fileList.SetSize(width, height)
	case updateMsg:
		m.runs++
		m.lastUpdate = time.Now()
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.result = msg.result

		items := make([]list.Item, 0, len(m.result.Diagnostics))
		for _, d := range m.result.Diagnostics {
			items = append(items, item{
				title:  string(d.Kind),
				desc:   d.String(),
				target: sourceTarget{file: d.File, line: max(d.Line, 1)},
			})
		}
		m.diagList.SetItems(items)

		counts := make(map[string]int, len(m.result.Files))
		for _, d := range m.result.Diagnostics {
			counts[d.File]++
		}
		fileItems := make([]list.Item, 0, len(m.result.Files))
		for _, f := range m.result.Files {
			fileItems = append(fileItems, item{
				title:  f.Path,
				desc:   fmt.Sprintf("diagnostics=%d cached=%t", counts[f.Path], f.Cached),
				target: sourceTarget{file: f.Path, line: 1},
			})
		}
		m.fileList.SetItems(fileItems)
	case sourceJumpResultMsg:
		if msg.err != nil {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Source jump failed: %v", msg.err))
		} else {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Opened source: %s", msg.target))
		}
	}

	var cmd tea.Cmd
	if m.mode == panelDiagnostics {
		m.diagList, cmd = m.diagList.Update(msg)
	} else {
		m.fileList, cmd = m.fileList.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | run %d",
		m.lastUpdate.Format("15:04:05"), len(m.result.Files), m.runs))

	var summary string
	switch {
	case m.lastErr != "":
		summary = problemStyle.Render("Check failed: " + m.lastErr)
	case m.result.Clean():
		summary = successStyle.Render(report.CleanMessage)
	default:
		summary = problemStyle.Render(fmt.Sprintf("%d problems", len(m.result.Diagnostics)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Fixture Type Monitor"), status, summary)
	help := renderHelp(m)

	body := m.diagList.View()
	if m.mode == panelFiles {
		body = renderFilePanel(m)
	}
	if m.showTrend {
		body += "\n\n" + renderTrendOverlay(m.trendReport)
	}
	if m.sourceJumpStatus != "" {
		body += "\n\n" + m.sourceJumpStatus
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func initialModel(trendReport *history.TrendReport) model {
	diagList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	diagList.Title = "Diagnostics"
	diagList.SetShowStatusBar(false)
	diagList.SetFilteringEnabled(true)

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Checked Files"
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(true)

	return model{
		diagList:    diagList,
		fileList:    fileList,
		mode:        panelDiagnostics,
		trendReport: trendReport,
		lastUpdate:  time.Now(),
	}
}

// selectedTarget returns the source location of the highlighted item.
func selectedTarget(l list.Model) (sourceTarget, bool) {
	it, ok := l.SelectedItem().(item)
	if !ok || it.target.file == "" {
		return sourceTarget{}, false
	}
	return it.target, true
}
