package mutate

import (
	"strings"
	"time"

	"horizon-cli/internal/model"
	"horizon-cli/internal/store"
	"horizon-cli/internal/timescale"
)

// Every mutation here follows the same shape: validate, mutate the store,
// synchronize links, recompute derived fields, and report what changed.
// Results carry clones only. Broadcasting (and its ordering) is the caller's
// job: touched linked records go out before the primary record on saves, the
// primary removal goes out before touched records on deletes.

type SaveEntryResult struct {
	Entry model.Entry
	// TouchedNotes are the notes whose link sets changed, in store order.
	TouchedNotes []model.Note
}

// SaveEntry creates or updates an entry from a draft. A draft with an id
// updates the existing entry in place; without one it allocates a new entry.
// Validation failures short-circuit before any mutation.
func SaveEntry(db *store.DB, draft model.EntryDraft, now time.Time) (SaveEntryResult, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return SaveEntryResult{}, ValidationError{Reason: "entries require a title"}
	}
	if strings.TrimSpace(draft.Summary) == "" {
		draft.Summary = SummarizeText(draft.Description)
	}
	if draft.Status == "" {
		draft.Status = model.StatusBacklog
	}
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	}
	draft.NoteIDs = ExistingNoteIDs(db, draft.NoteIDs)

	var entry model.Entry
	if draft.ID != nil {
		e, ok := db.FindEntry(*draft.ID)
		if !ok {
			return SaveEntryResult{}, NotFoundError{Kind: "entry", ID: *draft.ID}
		}
		e.Title = draft.Title
		e.Summary = draft.Summary
		e.Description = draft.Description
		e.Project = draft.Project
		e.Status = draft.Status
		e.Priority = draft.Priority
		e.DueTS = draft.DueTS
		e.StartTS = draft.StartTS
		e.Dependencies = draft.Dependencies
		e.NoteIDs = draft.NoteIDs
		e.Assignees = draft.Assignees
		timescale.Refresh(e, now)
		entry = e.Clone()
	} else {
		fresh := model.Entry{
			Title:        draft.Title,
			Summary:      draft.Summary,
			Description:  draft.Description,
			Project:      draft.Project,
			Status:       draft.Status,
			Timescale:    model.TimescaleSomeday,
			Priority:     draft.Priority,
			DueTS:        draft.DueTS,
			StartTS:      draft.StartTS,
			Dependencies: draft.Dependencies,
			NoteIDs:      draft.NoteIDs,
			Assignees:    draft.Assignees,
		}
		timescale.Refresh(&fresh, now)
		entry = db.CreateEntry(fresh)
	}

	touched := SyncEntryLinks(db, entry.ID, entry.NoteIDs)
	return SaveEntryResult{Entry: entry, TouchedNotes: touched}, nil
}

// ToggleEntryCompletion flips the completion flag. Completing also forces
// status to Done and stamps CompletedAtTS; un-completing clears the stamp but
// leaves the status wherever completion put it.
func ToggleEntryCompletion(db *store.DB, entryID uint64, completed bool, now time.Time) (model.Entry, error) {
	e, ok := db.FindEntry(entryID)
	if !ok {
		return model.Entry{}, NotFoundError{Kind: "entry", ID: entryID}
	}

	e.IsCompleted = completed
	if completed {
		e.Status = model.StatusDone
		ts := now.UnixMilli()
		e.CompletedAtTS = &ts
	} else {
		e.CompletedAtTS = nil
	}
	timescale.Refresh(e, now)
	return e.Clone(), nil
}

type DeleteEntryResult struct {
	EntryID      uint64
	TouchedNotes []model.Note
}

// DeleteEntry removes the entry and cascades: every note referencing it is
// cleaned up before the caller emits any notification, so no note ever holds
// a dangling reference.
func DeleteEntry(db *store.DB, entryID uint64) (DeleteEntryResult, error) {
	removed, ok := db.RemoveEntry(entryID)
	if !ok {
		return DeleteEntryResult{}, NotFoundError{Kind: "entry", ID: entryID}
	}
	touched := SyncEntryLinks(db, removed.ID, nil)
	return DeleteEntryResult{EntryID: removed.ID, TouchedNotes: touched}, nil
}
