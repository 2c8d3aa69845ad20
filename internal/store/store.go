package store

import (
	"horizon-cli/internal/model"
)

// DB is the single authoritative in-memory copy of all entries and notes,
// plus the two monotonic id counters. It is owned exclusively by the command
// processor; every record handed to other components is a clone.
//
// Iteration order over each collection is insertion order and is preserved
// across all operations (removal does not reorder).
type DB struct {
	Version     int           `json:"version"`
	Entries     []model.Entry `json:"entries"`
	Notes       []model.Note  `json:"notes"`
	NextEntryID uint64        `json:"next_entry_id"`
	NextNoteID  uint64        `json:"next_note_id"`
}

func NewDB() *DB {
	return &DB{
		Version:     1,
		Entries:     []model.Entry{},
		Notes:       []model.Note{},
		NextEntryID: 1,
		NextNoteID:  1,
	}
}

// CreateEntry allocates the next entry id, inserts the record, and returns a
// clone of the stored entry. Ids start at 1 and are never reused, even after
// deletion.
func (db *DB) CreateEntry(e model.Entry) model.Entry {
	e.ID = db.NextEntryID
	db.NextEntryID++
	db.Entries = append(db.Entries, e)
	return e.Clone()
}

func (db *DB) CreateNote(n model.Note) model.Note {
	n.ID = db.NextNoteID
	db.NextNoteID++
	db.Notes = append(db.Notes, n)
	return n.Clone()
}

// FindEntry returns a pointer into the canonical collection. Only the mutate
// package may use the pointer to write; everyone else clones.
func (db *DB) FindEntry(id uint64) (*model.Entry, bool) {
	for i := range db.Entries {
		if db.Entries[i].ID == id {
			return &db.Entries[i], true
		}
	}
	return nil, false
}

func (db *DB) FindNote(id uint64) (*model.Note, bool) {
	for i := range db.Notes {
		if db.Notes[i].ID == id {
			return &db.Notes[i], true
		}
	}
	return nil, false
}

// RemoveEntry deletes the entry by id, returning the removed record so the
// caller can cascade link removal. The second return is false if absent.
func (db *DB) RemoveEntry(id uint64) (model.Entry, bool) {
	for i := range db.Entries {
		if db.Entries[i].ID == id {
			removed := db.Entries[i]
			db.Entries = append(db.Entries[:i], db.Entries[i+1:]...)
			return removed, true
		}
	}
	return model.Entry{}, false
}

func (db *DB) RemoveNote(id uint64) (model.Note, bool) {
	for i := range db.Notes {
		if db.Notes[i].ID == id {
			removed := db.Notes[i]
			db.Notes = append(db.Notes[:i], db.Notes[i+1:]...)
			return removed, true
		}
	}
	return model.Note{}, false
}

// SnapshotEntries returns clones of all entries in insertion order.
func (db *DB) SnapshotEntries() []model.Entry {
	out := make([]model.Entry, 0, len(db.Entries))
	for _, e := range db.Entries {
		out = append(out, e.Clone())
	}
	return out
}

func (db *DB) SnapshotNotes() []model.Note {
	out := make([]model.Note, 0, len(db.Notes))
	for _, n := range db.Notes {
		out = append(out, n.Clone())
	}
	return out
}
