package mutate

import (
	"horizon-cli/internal/model"
	"horizon-cli/internal/store"
)

// Link synchronization keeps the entry<->note relation symmetric: for every
// entry E and note N, N.id ∈ E.NoteIDs iff E.id ∈ N.LinkedEntryIDs. Each call
// reconciles one side of the relation against a desired set for the other
// side and returns clones of exactly the records whose stored state changed
// (the touched set), so callers can broadcast a minimal diff.
//
// Both functions are full scans: O(n) in the opposite collection per call.
// That is a deliberate tradeoff at the hundreds scale this store targets; an
// inverse index could replace the scan without changing the touched-set
// semantics.

// SyncEntryLinks makes every note in desiredNoteIDs reference entryID and
// removes the reference from every other note. Desired ids that no longer
// exist in the store are dropped, not preserved. Calling twice with the same
// desired set returns an empty touched set the second time.
func SyncEntryLinks(db *store.DB, entryID uint64, desiredNoteIDs []uint64) []model.Note {
	desired := idSet(desiredNoteIDs)
	var touched []model.Note
	for i := range db.Notes {
		n := &db.Notes[i]
		dirty := false
		if _, want := desired[n.ID]; want {
			if !containsID(n.LinkedEntryIDs, entryID) {
				n.LinkedEntryIDs = append(n.LinkedEntryIDs, entryID)
				dirty = true
			}
		} else if containsID(n.LinkedEntryIDs, entryID) {
			n.LinkedEntryIDs = removeID(n.LinkedEntryIDs, entryID)
			dirty = true
		}
		if dirty {
			touched = append(touched, n.Clone())
		}
	}
	return touched
}

// SyncNoteLinks is the symmetric operation over entries.
func SyncNoteLinks(db *store.DB, noteID uint64, desiredEntryIDs []uint64) []model.Entry {
	desired := idSet(desiredEntryIDs)
	var touched []model.Entry
	for i := range db.Entries {
		e := &db.Entries[i]
		dirty := false
		if _, want := desired[e.ID]; want {
			if !containsID(e.NoteIDs, noteID) {
				e.NoteIDs = append(e.NoteIDs, noteID)
				dirty = true
			}
		} else if containsID(e.NoteIDs, noteID) {
			e.NoteIDs = removeID(e.NoteIDs, noteID)
			dirty = true
		}
		if dirty {
			touched = append(touched, e.Clone())
		}
	}
	return touched
}

// ExistingNoteIDs drops ids that do not resolve to a stored note, preserving
// order. Saves run drafts through this so an entry never records a reference
// the other side cannot mirror.
func ExistingNoteIDs(db *store.DB, ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := db.FindNote(id); ok {
			out = append(out, id)
		}
	}
	return out
}

func ExistingEntryIDs(db *store.DB, ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := db.FindEntry(id); ok {
			out = append(out, id)
		}
	}
	return out
}

func idSet(ids []uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func containsID(ids []uint64, id uint64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
