package model

type EntryStatus string

const (
	StatusBacklog    EntryStatus = "Backlog"
	StatusUpNext     EntryStatus = "UpNext"
	StatusInProgress EntryStatus = "InProgress"
	StatusBlocked    EntryStatus = "Blocked"
	StatusReview     EntryStatus = "Review"
	StatusDone       EntryStatus = "Done"
	StatusArchived   EntryStatus = "Archived"
)

type EntryPriority string

const (
	PriorityLow    EntryPriority = "Low"
	PriorityMedium EntryPriority = "Medium"
	PriorityHigh   EntryPriority = "High"
)

// Timescale is a derived bucket classifying an entry's urgency relative to
// the current date. It is recomputed on every mutation that can affect it
// (due date, completion) and stored on the entry, never computed on read.
type Timescale string

const (
	TimescaleOverdue   Timescale = "Overdue"
	TimescaleToday     Timescale = "Today"
	TimescaleThisWeek  Timescale = "ThisWeek"
	TimescaleThisMonth Timescale = "ThisMonth"
	TimescaleLater     Timescale = "Later"
	TimescaleSomeday   Timescale = "Someday"
	TimescaleCompleted Timescale = "Completed"
)

type Entry struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Project     *string       `json:"project,omitempty"`
	Status      EntryStatus   `json:"status"`
	Timescale   Timescale     `json:"timescale"`
	Priority    EntryPriority `json:"priority"`
	DueTS       *int64        `json:"due_ts,omitempty"`
	StartTS     *int64        `json:"start_ts,omitempty"`

	// Dependencies are informational only; no acyclicity is enforced.
	Dependencies []uint64 `json:"dependencies"`

	NoteIDs   []uint64 `json:"note_ids"`
	Assignees []string `json:"assignees"`

	IsCompleted   bool   `json:"is_completed"`
	CompletedAtTS *int64 `json:"completed_at_ts,omitempty"`
}

// Clone returns a deep copy. Everything handed out of the store is a clone;
// no caller holds a mutable reference into the canonical collections.
func (e Entry) Clone() Entry {
	out := e
	out.Project = clonePtr(e.Project)
	out.DueTS = clonePtr(e.DueTS)
	out.StartTS = clonePtr(e.StartTS)
	out.CompletedAtTS = clonePtr(e.CompletedAtTS)
	out.Dependencies = cloneSlice(e.Dependencies)
	out.NoteIDs = cloneSlice(e.NoteIDs)
	out.Assignees = cloneSlice(e.Assignees)
	return out
}

type EntryDraft struct {
	ID           *uint64       `json:"id,omitempty"`
	Title        string        `json:"title"`
	Summary      string        `json:"summary"`
	Description  string        `json:"description"`
	Project      *string       `json:"project,omitempty"`
	Status       EntryStatus   `json:"status"`
	Priority     EntryPriority `json:"priority"`
	DueTS        *int64        `json:"due_ts,omitempty"`
	StartTS      *int64        `json:"start_ts,omitempty"`
	Dependencies []uint64      `json:"dependencies"`
	NoteIDs      []uint64      `json:"note_ids"`
	Assignees    []string      `json:"assignees"`
}

type Note struct {
	ID             uint64   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Pinned         bool     `json:"pinned"`
	Tags           []string `json:"tags"`
	LinkedEntryIDs []uint64 `json:"linked_entry_ids"`
	Summary        string   `json:"summary"`
	Accent         string   `json:"accent"`
	LastEditedTS   int64    `json:"last_edited_ts"`
}

func (n Note) Clone() Note {
	out := n
	out.Tags = cloneSlice(n.Tags)
	out.LinkedEntryIDs = cloneSlice(n.LinkedEntryIDs)
	return out
}

type NoteDraft struct {
	ID             *uint64  `json:"id,omitempty"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Pinned         bool     `json:"pinned"`
	Tags           []string `json:"tags"`
	LinkedEntryIDs []uint64 `json:"linked_entry_ids"`
	Accent         *string  `json:"accent,omitempty"`
}

// Bootstrap is the single-payload view of all current state, returned to a
// client before it subscribes to live updates.
type Bootstrap struct {
	Entries []Entry `json:"entries"`
	Notes   []Note  `json:"notes"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](xs []T) []T {
	if xs == nil {
		return nil
	}
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}
