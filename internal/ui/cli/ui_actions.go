package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	active := &m.diagList
	if m.mode == panelFiles {
		active = &m.fileList
	}

	var cmd tea.Cmd
	if active.FilterState() == list.Filtering {
		*active, cmd = active.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelDiagnostics {
			m.mode = panelFiles
		} else {
			m.mode = panelDiagnostics
		}
		return m, nil
	case "t":
		m.showTrend = !m.showTrend
		return m, nil
	}

	if msg.String() == "o" {
		target, ok := selectedTarget(*active)
		if !ok {
			m.sourceJumpStatus = statusStyle.Render("No source target available.")
			return m, nil
		}
		return m, jumpToSourceCmd(target)
	}

	*active, cmd = active.Update(msg)
	return m, cmd
}

type sourceTarget struct {
	file string
	line int
}

func editorCommand(target sourceTarget) *exec.Cmd {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	args := []string{target.file}
	if strings.Contains(editor, "vim") || strings.Contains(editor, "nvim") || editor == "vi" || strings.HasSuffix(editor, "/vi") {
		args = []string{fmt.Sprintf("+%d", target.line), target.file}
	}
	return exec.Command(editor, args...)
}

func jumpToSourceCmd(target sourceTarget) tea.Cmd {
	label := fmt.Sprintf("%s:%d", target.file, target.line)
	return tea.ExecProcess(editorCommand(target), func(err error) tea.Msg {
		return sourceJumpResultMsg{target: label, err: err}
	})
}
