package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogeja/blueprint/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive day view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the day view needs an interactive terminal")
			}
			model := tui.New(app.Store, app.Log, dateOrToday(date))
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Initial date (YYYY-MM-DD, default today)")
	return cmd
}
