package cli

import (
	"horizon-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management (the default workspace is used unless told otherwise)",
	}
	cmd.AddCommand(newWorkspaceListCmd(a))
	cmd.AddCommand(newWorkspaceCurrentCmd(a))
	cmd.AddCommand(newWorkspaceUseCmd(a))
	return cmd
}

func newWorkspaceListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{"workspaces": names})
		},
	}
	return cmd
}

func newWorkspaceCurrentCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.Workspace
			if name == "" {
				if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
					name = cfg.CurrentWorkspace
				} else {
					name = "default"
				}
			}
			dir, err := store.WorkspaceDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]string{"workspace": name, "dir": dir})
		},
	}
	return cmd
}

func newWorkspaceUseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			// Create the workspace dir eagerly so `use` then `list` agree.
			dir, err := store.WorkspaceDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := (store.Store{Dir: dir}).Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				cfg = &store.GlobalConfig{}
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]string{"workspace": name, "dir": dir})
		},
	}
	return cmd
}
