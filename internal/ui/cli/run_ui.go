package cli

import (
	"context"
	stderrors "errors"
	"fixturecheck/internal/core/app"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"

	tea "github.com/charmbracelet/bubbletea"
)

// runUI drives the terminal UI from a watch loop until the user quits or ctx
// is canceled.
func runUI(ctx context.Context, a *app.App, req ports.CheckRequest, health *healthState, trend *history.TrendReport) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := initialModel(trend)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- a.Watch(ctx, req, func(result ports.CheckResult, err error) {
			health.Record(result, err)
			p.Send(updateMsg{result: result, err: err})
		})
	}()

	_, err := p.Run()
	cancel()
	if werr := <-watchErr; werr != nil {
		return werr
	}
	if stderrors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
