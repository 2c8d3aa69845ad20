package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"horizon-cli/internal/app"
	"horizon-cli/internal/format"
	"horizon-cli/internal/store"
	"horizon-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "horizon",
		Short:        "Horizon (local-first) planner CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  horizon

  # Scriptable commands
  horizon entries list

  # Full-text search across entries and notes
  horizon search "gantt"

  # Serve the JSON API + live websocket stream
  horizon serve --addr :8787
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.Dir, "dir", envOr("HORIZON_DIR", ""), "Path to state dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&a.Workspace, "workspace", envOr("HORIZON_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&a.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&a.Format, "format", envOr("HORIZON_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newEntriesCmd(a))
	cmd.AddCommand(newNotesCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newWorkspaceCmd(a))

	return cmd
}

func runTUI(a *App) error {
	eng, err := loadEngine(a)
	if err != nil {
		return err
	}
	return tui.Run(eng, a.Workspace)
}

// loadEngine resolves the state directory, loads the persisted snapshot, and
// wires it into a command processor that snapshots back to the same dir.
func loadEngine(a *App) (*app.App, error) {
	st, err := resolveStore(a)
	if err != nil {
		return nil, err
	}
	db, err := st.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return app.New(app.Config{DB: db, Persist: st}), nil
}

// resolveStore picks the state directory:
// 1) --dir
// 2) --workspace
// 3) ~/.horizon/config.json currentWorkspace
// 4) the implicit default workspace
func resolveStore(a *App) (*store.Store, error) {
	dir := a.Dir
	if dir == "" {
		if a.Workspace != "" {
			d, err := store.WorkspaceDir(a.Workspace)
			if err != nil {
				return nil, err
			}
			dir = d
		} else if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
			if err != nil {
				return nil, err
			}
			a.Workspace = cfg.CurrentWorkspace
			dir = d
		} else {
			a.Workspace = "default"
			d, err := store.WorkspaceDir(a.Workspace)
			if err != nil {
				return nil, err
			}
			dir = d
		}
		a.Dir = dir
	}
	return &store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, a *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, a.Format, a.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
