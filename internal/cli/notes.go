package cli

import (
	"horizon-cli/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesCreateCmd(a))
	cmd.AddCommand(newNotesUpdateCmd(a))
	cmd.AddCommand(newNotesListCmd(a))
	cmd.AddCommand(newNotesShowCmd(a))
	cmd.AddCommand(newNotesDeleteCmd(a))
	return cmd
}

type noteFlags struct {
	title    string
	content  string
	pinned   bool
	tags     []string
	entryIDs []uint
	accent   string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Note title")
	cmd.Flags().StringVar(&f.content, "content", "", "Markdown content")
	cmd.Flags().BoolVar(&f.pinned, "pin", false, "Pin the note")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().UintSliceVar(&f.entryIDs, "entry", nil, "Linked entry id (repeatable)")
	cmd.Flags().StringVar(&f.accent, "accent", "", "Accent color (default derives from tags)")
}

func (f *noteFlags) draft() model.NoteDraft {
	d := model.NoteDraft{
		Title:          f.title,
		Content:        f.content,
		Pinned:         f.pinned,
		Tags:           f.tags,
		LinkedEntryIDs: toIDs(f.entryIDs),
	}
	if f.accent != "" {
		d.Accent = &f.accent
	}
	return d
}

func newNotesCreateCmd(a *App) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := eng.SaveNote(flags.draft())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, note)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesUpdateCmd(a *App) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Update a note (full replacement of the provided fields)",
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
			draft := flags.draft()
			draft.ID = &id
			note, err := eng.SaveNote(draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, note)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, eng.Bootstrap().Notes)
		},
	}
	return cmd
}

func newNotesShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show one note",
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
			for _, n := range eng.Bootstrap().Notes {
				if n.ID == id {
					return writeOut(cmd, a, n)
				}
			}
			return writeErr(cmd, errNotFound("note", id))
		},
	}
	return cmd
}

func newNotesDeleteCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note (linked entries drop their references)",
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
			if err := eng.DeleteNote(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{"deleted": id})
		},
	}
	return cmd
}
