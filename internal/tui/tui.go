package tui

import (
	"horizon-cli/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(eng *app.App, workspace string) error {
	m := newAppModel(eng, workspace)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
