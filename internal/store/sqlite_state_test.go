package store

import (
	"context"
	"testing"

	"horizon-cli/internal/model"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	db := NewDB()
	due := int64(1718000000000)
	db.CreateEntry(model.Entry{Title: "first", Status: model.StatusBacklog, Priority: model.PriorityHigh, Timescale: model.TimescaleSomeday, DueTS: &due, NoteIDs: []uint64{1}})
	db.CreateEntry(model.Entry{Title: "second", Status: model.StatusDone, Priority: model.PriorityLow, Timescale: model.TimescaleCompleted, IsCompleted: true})
	db.CreateNote(model.Note{Title: "scratch", Content: "body", Tags: []string{"Focus"}, LinkedEntryIDs: []uint64{1}, Accent: "#c7d2fe"})
	db.RemoveEntry(2)

	if err := s.Save(ctx, db); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got.Entries) != 1 || got.Entries[0].Title != "first" {
		t.Fatalf("entries mismatch: %+v", got.Entries)
	}
	if got.Entries[0].DueTS == nil || *got.Entries[0].DueTS != due {
		t.Fatalf("due_ts lost in round trip")
	}
	if len(got.Notes) != 1 || got.Notes[0].Accent != "#c7d2fe" {
		t.Fatalf("notes mismatch: %+v", got.Notes)
	}

	// Counters survive even though entry 2 was deleted.
	if got.NextEntryID != 3 {
		t.Fatalf("next entry id: got %d, want 3", got.NextEntryID)
	}
	if got.NextNoteID != 2 {
		t.Fatalf("next note id: got %d, want 2", got.NextNoteID)
	}
}

func TestLoadMissingFileYieldsFreshDB(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	db, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(db.Entries) != 0 || len(db.Notes) != 0 {
		t.Fatalf("expected empty db")
	}
	if db.NextEntryID != 1 || db.NextNoteID != 1 {
		t.Fatalf("counters must start at 1")
	}
}
