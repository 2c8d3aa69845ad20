package mutate

import (
	"strings"
	"time"

	"horizon-cli/internal/model"
	"horizon-cli/internal/store"
)

type SaveNoteResult struct {
	Note model.Note
	// TouchedEntries are the entries whose link sets changed, in store order.
	TouchedEntries []model.Entry
}

// SaveNote creates or updates a note from a draft. The note summary is always
// derived from the content (first line, 120-rune cap), regardless of any
// caller-supplied value. A missing accent falls back to the tag lookup.
func SaveNote(db *store.DB, draft model.NoteDraft, now time.Time) (SaveNoteResult, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return SaveNoteResult{}, ValidationError{Reason: "notes require a title"}
	}

	draft.LinkedEntryIDs = ExistingEntryIDs(db, draft.LinkedEntryIDs)

	accent := AccentForTags(draft.Tags)
	if draft.Accent != nil && strings.TrimSpace(*draft.Accent) != "" {
		accent = *draft.Accent
	}

	var note model.Note
	if draft.ID != nil {
		n, ok := db.FindNote(*draft.ID)
		if !ok {
			return SaveNoteResult{}, NotFoundError{Kind: "note", ID: *draft.ID}
		}
		n.Title = draft.Title
		n.Content = draft.Content
		n.Pinned = draft.Pinned
		n.Tags = draft.Tags
		n.LinkedEntryIDs = draft.LinkedEntryIDs
		n.Summary = SummarizeText(n.Content)
		n.Accent = accent
		n.LastEditedTS = now.UnixMilli()
		note = n.Clone()
	} else {
		fresh := model.Note{
			Title:          draft.Title,
			Content:        draft.Content,
			Pinned:         draft.Pinned,
			Tags:           draft.Tags,
			LinkedEntryIDs: draft.LinkedEntryIDs,
			Summary:        SummarizeText(draft.Content),
			Accent:         accent,
			LastEditedTS:   now.UnixMilli(),
		}
		note = db.CreateNote(fresh)
	}

	touched := SyncNoteLinks(db, note.ID, note.LinkedEntryIDs)
	return SaveNoteResult{Note: note, TouchedEntries: touched}, nil
}

type DeleteNoteResult struct {
	NoteID         uint64
	TouchedEntries []model.Entry
}

func DeleteNote(db *store.DB, noteID uint64) (DeleteNoteResult, error) {
	removed, ok := db.RemoveNote(noteID)
	if !ok {
		return DeleteNoteResult{}, NotFoundError{Kind: "note", ID: noteID}
	}
	touched := SyncNoteLinks(db, removed.ID, nil)
	return DeleteNoteResult{NoteID: removed.ID, TouchedEntries: touched}, nil
}
