package mutate

import (
	"errors"
	"testing"
	"time"

	"horizon-cli/internal/model"
	"horizon-cli/internal/store"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func u64(v uint64) *uint64 { return &v }

func TestSaveEntryRejectsWhitespaceTitle(t *testing.T) {
	db := store.NewDB()

	_, err := SaveEntry(db, model.EntryDraft{Title: "   "}, testNow)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(db.Entries) != 0 {
		t.Fatalf("validation failure must not mutate the store")
	}
	if db.NextEntryID != 1 {
		t.Fatalf("validation failure must not burn an id")
	}
}

func TestSaveEntryDerivesSummaryFromDescription(t *testing.T) {
	db := store.NewDB()

	res, err := SaveEntry(db, model.EntryDraft{
		Title:       "Plan sprint",
		Description: "First line wins.\nSecond line is ignored.",
	}, testNow)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Entry.Summary != "First line wins." {
		t.Fatalf("summary: %q", res.Entry.Summary)
	}

	res2, err := SaveEntry(db, model.EntryDraft{Title: "No body"}, testNow)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res2.Entry.Summary != "No description yet." {
		t.Fatalf("empty description summary: %q", res2.Entry.Summary)
	}

	// Caller-supplied summaries are kept as-is.
	res3, err := SaveEntry(db, model.EntryDraft{Title: "Custom", Summary: "mine", Description: "ignored"}, testNow)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res3.Entry.Summary != "mine" {
		t.Fatalf("summary overridden: %q", res3.Entry.Summary)
	}
}

func TestSaveEntryUpdateRequiresExistingID(t *testing.T) {
	db := store.NewDB()

	_, err := SaveEntry(db, model.EntryDraft{ID: u64(7), Title: "ghost"}, testNow)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "entry" || nf.ID != 7 {
		t.Fatalf("error detail: %+v", nf)
	}
}

func TestSaveEntryRecomputesTimescale(t *testing.T) {
	db := store.NewDB()
	due := testNow.Add(time.Hour).UnixMilli()

	res, err := SaveEntry(db, model.EntryDraft{Title: "due today", DueTS: &due}, testNow)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Entry.Timescale != model.TimescaleToday {
		t.Fatalf("timescale: %s", res.Entry.Timescale)
	}

	// Dropping the due date on update flips the cached bucket.
	res2, err := SaveEntry(db, model.EntryDraft{ID: u64(res.Entry.ID), Title: "due today"}, testNow)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res2.Entry.Timescale != model.TimescaleSomeday {
		t.Fatalf("timescale after update: %s", res2.Entry.Timescale)
	}
}

func TestSaveEntrySyncsLinksAndReportsTouchedNotes(t *testing.T) {
	db := store.NewDB()
	db.CreateNote(model.Note{Title: "n1"})
	db.CreateNote(model.Note{Title: "n2"})

	res, err := SaveEntry(db, model.EntryDraft{Title: "linked", NoteIDs: []uint64{1, 2, 99}}, testNow)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(res.TouchedNotes) != 2 {
		t.Fatalf("touched notes: %d", len(res.TouchedNotes))
	}
	// Dangling id 99 is dropped from the stored entry.
	stored, _ := db.FindEntry(res.Entry.ID)
	if len(stored.NoteIDs) != 2 {
		t.Fatalf("dangling note id preserved: %v", stored.NoteIDs)
	}
	checkLinkSymmetry(t, db)
}

func TestToggleEntryCompletion(t *testing.T) {
	db := store.NewDB()
	due := testNow.Add(time.Hour).UnixMilli()
	res, _ := SaveEntry(db, model.EntryDraft{Title: "t", Status: model.StatusInProgress, DueTS: &due}, testNow)

	done, err := ToggleEntryCompletion(db, res.Entry.ID, true, testNow)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done.IsCompleted || done.Status != model.StatusDone {
		t.Fatalf("completing must set Done: %+v", done)
	}
	if done.CompletedAtTS == nil || *done.CompletedAtTS != testNow.UnixMilli() {
		t.Fatalf("completed_at not stamped")
	}
	if done.Timescale != model.TimescaleCompleted {
		t.Fatalf("timescale: %s", done.Timescale)
	}

	// Un-completing clears the stamp but leaves status at Done.
	undone, err := ToggleEntryCompletion(db, res.Entry.ID, false, testNow)
	if err != nil {
		t.Fatalf("untoggle: %v", err)
	}
	if undone.IsCompleted || undone.CompletedAtTS != nil {
		t.Fatalf("un-completion state: %+v", undone)
	}
	if undone.Status != model.StatusDone {
		t.Fatalf("status must stay Done on un-completion, got %s", undone.Status)
	}
	if undone.Timescale != model.TimescaleToday {
		t.Fatalf("timescale after un-completion: %s", undone.Timescale)
	}

	if _, err := ToggleEntryCompletion(db, 999, true, testNow); err == nil {
		t.Fatalf("expected NotFound for missing entry")
	}
}

func TestDeleteEntryCascadesLinks(t *testing.T) {
	db := store.NewDB()
	db.CreateNote(model.Note{Title: "n1"})
	db.CreateNote(model.Note{Title: "n2"})
	res, _ := SaveEntry(db, model.EntryDraft{Title: "doomed", NoteIDs: []uint64{1, 2}}, testNow)

	del, err := DeleteEntry(db, res.Entry.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(del.TouchedNotes) != 2 {
		t.Fatalf("cascade should touch both notes, got %d", len(del.TouchedNotes))
	}
	for _, n := range db.Notes {
		if containsID(n.LinkedEntryIDs, res.Entry.ID) {
			t.Fatalf("note %d retains dangling reference", n.ID)
		}
	}

	_, err = DeleteEntry(db, res.Entry.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on re-delete, got %v", err)
	}
}
