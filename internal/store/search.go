package store

import (
	"strings"

	"horizon-cli/internal/model"
)

// SearchAll returns clones of every entry and note matching the query via
// case-insensitive substring containment. An empty or wildcard ("*") query
// matches everything. Archived entries are always excluded from entry
// results, even on an exact title match.
//
// This is a synchronous full scan, not an index; fine at the hundreds scale
// this store is built for.
func (db *DB) SearchAll(query string) ([]model.Entry, []model.Note) {
	q := strings.ToLower(strings.TrimSpace(query))
	matchAll := q == "" || q == "*"

	entries := []model.Entry{}
	for _, e := range db.Entries {
		if e.Status == model.StatusArchived {
			continue
		}
		if matchAll || entryMatches(e, q) {
			entries = append(entries, e.Clone())
		}
	}

	notes := []model.Note{}
	for _, n := range db.Notes {
		if matchAll || noteMatches(n, q) {
			notes = append(notes, n.Clone())
		}
	}

	return entries, notes
}

func entryMatches(e model.Entry, q string) bool {
	if containsFold(e.Title, q) || containsFold(e.Summary, q) || containsFold(e.Description, q) {
		return true
	}
	if e.Project != nil && containsFold(*e.Project, q) {
		return true
	}
	for _, a := range e.Assignees {
		if containsFold(a, q) {
			return true
		}
	}
	return false
}

func noteMatches(n model.Note, q string) bool {
	if containsFold(n.Title, q) || containsFold(n.Content, q) || containsFold(n.Summary, q) {
		return true
	}
	for _, tag := range n.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
