package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty workspace with demo content",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			seeded := eng.EnsureDemoContent()
			boot := eng.Bootstrap()
			return writeOut(cmd, a, map[string]any{
				"seeded":  seeded,
				"entries": len(boot.Entries),
				"notes":   len(boot.Notes),
			})
		},
	}
	return cmd
}
