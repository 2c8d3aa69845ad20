package cli

import (
	"strconv"

	"horizon-cli/internal/model"

	"github.com/spf13/cobra"
)

func newEntriesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Entry commands",
	}
	cmd.AddCommand(newEntriesCreateCmd(a))
	cmd.AddCommand(newEntriesUpdateCmd(a))
	cmd.AddCommand(newEntriesListCmd(a))
	cmd.AddCommand(newEntriesShowCmd(a))
	cmd.AddCommand(newEntriesCompleteCmd(a))
	cmd.AddCommand(newEntriesDeleteCmd(a))
	return cmd
}

type entryFlags struct {
	title       string
	summary     string
	description string
	project     string
	status      string
	priority    string
	due         string
	noteIDs     []uint
	assignees   []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Entry title")
	cmd.Flags().StringVar(&f.summary, "summary", "", "Short summary (derived from description when empty)")
	cmd.Flags().StringVar(&f.description, "description", "", "Full description")
	cmd.Flags().StringVar(&f.project, "project", "", "Project name")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (Backlog|UpNext|InProgress|Blocked|Review|Done|Archived)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().UintSliceVar(&f.noteIDs, "note", nil, "Linked note id (repeatable)")
	cmd.Flags().StringSliceVar(&f.assignees, "assignee", nil, "Assignee (repeatable)")
}

func (f *entryFlags) draft() (model.EntryDraft, error) {
	d := model.EntryDraft{
		Title:       f.title,
		Summary:     f.summary,
		Description: f.description,
		NoteIDs:     toIDs(f.noteIDs),
		Assignees:   f.assignees,
	}
	if f.project != "" {
		d.Project = &f.project
	}
	if f.status != "" {
		d.Status = model.EntryStatus(f.status)
	}
	if f.priority != "" {
		d.Priority = model.EntryPriority(f.priority)
	}
	if f.due != "" {
		ts, err := parseDueTS(f.due)
		if err != nil {
			return model.EntryDraft{}, err
		}
		d.DueTS = &ts
	}
	return d, nil
}

func newEntriesCreateCmd(a *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft, err := flags.draft()
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, err := eng.SaveEntry(draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, entry)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newEntriesUpdateCmd(a *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "update <entry-id>",
		Short: "Update an entry (full replacement of the provided fields)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft, err := flags.draft()
			if err != nil {
				return writeErr(cmd, err)
			}
			draft.ID = &id
			entry, err := eng.SaveEntry(draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, entry)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newEntriesListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, eng.Bootstrap().Entries)
		},
	}
	return cmd
}

func newEntriesShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, e := range eng.Bootstrap().Entries {
				if e.ID == id {
					return writeOut(cmd, a, e)
				}
			}
			return writeErr(cmd, errNotFound("entry", id))
		},
	}
	return cmd
}

func newEntriesCompleteCmd(a *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete <entry-id>",
		Short: "Mark an entry completed (or un-complete with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, err := eng.ToggleEntryCompletion(id, !undo)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, entry)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the completion mark")
	return cmd
}

func newEntriesDeleteCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry (linked notes drop their references)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := eng.DeleteEntry(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{"deleted": id})
		},
	}
	return cmd
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errInvalidID(s)
	}
	return id, nil
}

func toIDs(in []uint) []uint64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]uint64, len(in))
	for i, v := range in {
		out[i] = uint64(v)
	}
	return out
}
