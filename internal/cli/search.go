package cli

import (
	"horizon-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries and notes (archived entries are excluded)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, notes := eng.SearchAll(args[0])
			return writeOut(cmd, a, struct {
				Entries []model.Entry `json:"entries"`
				Notes   []model.Note  `json:"notes"`
			}{Entries: entries, Notes: notes})
		},
	}
	return cmd
}
