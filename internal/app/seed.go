package app

import (
	"time"

	"horizon-cli/internal/model"
	"horizon-cli/internal/mutate"
	"horizon-cli/internal/timescale"
)

// EnsureDemoContent seeds a small showcase workspace the first time around.
// It is a no-op whenever any entry or note already exists, so running it
// repeatedly (or on every serve startup) is safe.
func (a *App) EnsureDemoContent() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.db.Entries) > 0 || len(a.db.Notes) > 0 {
		return false
	}

	now := a.now()
	project := "Unified Planner OS"
	notesProject := "Notes revamp"

	seedEntry := func(title, summary, description string, project *string, status model.EntryStatus, priority model.EntryPriority, dueOffsetHours int, assignees ...string) model.Entry {
		var due *int64
		if dueOffsetHours > 0 {
			ts := now.Add(time.Duration(dueOffsetHours) * time.Hour).UnixMilli()
			due = &ts
		}
		e := model.Entry{
			Title:       title,
			Summary:     summary,
			Description: description,
			Project:     project,
			Status:      status,
			Timescale:   model.TimescaleSomeday,
			Priority:    priority,
			DueTS:       due,
			Assignees:   assignees,
		}
		timescale.Refresh(&e, now)
		return a.db.CreateEntry(e)
	}

	first := seedEntry("Stand-up sync", "Sync with AI-planning pod",
		"Quick hitlist review plus assign AI backlog deliverables.",
		&project, model.StatusInProgress, model.PriorityMedium, 1, "Alex")
	seedEntry("Draft kanban automation", "Spec AI moves between boards",
		"Add heuristics so GPT suggestions nudge blocked items across Kanban + Gantt.",
		&project, model.StatusUpNext, model.PriorityHigh, 4, "Drew", "Ivy")
	third := seedEntry("Prep Gantt milestones", "Plot October release windows",
		"Translate backlog dependencies into Gantt view.",
		&project, model.StatusInProgress, model.PriorityMedium, 8, "Nico")
	fourth := seedEntry("Ship Notes markdown preview", "Preview w/ AI linking",
		"Live markdown preview + entry autocomplete (! references).",
		&notesProject, model.StatusReview, model.PriorityHigh, 48, "Geo")

	nowMs := now.UnixMilli()
	a.db.CreateNote(model.Note{
		Title:          "Focus rituals",
		Content:        "### Ritual stack\n- Pomodoro 40/10\n- Archive animation only after >6 items\n- `!rtm` to surface real-time metrics",
		Pinned:         true,
		Tags:           []string{"Focus", "AI"},
		LinkedEntryIDs: []uint64{first.ID},
		Summary:        "Ritual stack for flow and animation rules",
		Accent:         "#c7d2fe",
		LastEditedTS:   nowMs,
	})
	a.db.CreateNote(model.Note{
		Title:          "Sprint kickoff",
		Content:        "Outline blockers, dependencies, and CPM-critical milestones for the unified planner launch.",
		Pinned:         false,
		Tags:           []string{"Sprint", "Planning"},
		LinkedEntryIDs: []uint64{third.ID, fourth.ID},
		Summary:        "Kickoff outline for planner launch.",
		Accent:         "#fee2e2",
		LastEditedTS:   nowMs,
	})

	// Mirror the note links onto the entries so the invariant holds before
	// anyone can observe the seeded state.
	for _, n := range a.db.SnapshotNotes() {
		mutate.SyncNoteLinks(a.db, n.ID, n.LinkedEntryIDs)
	}

	a.persistLocked()
	return true
}
