package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"horizon-cli/internal/model"
)

// runCLI executes one command against a fresh root, the way a shell would.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", s, err)
	}
	return v
}

func TestEntriesCreateListComplete(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "entries", "create", "--title", "Write launch plan", "--due", "2030-01-15", "--assignee", "Alex")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	entry := mustJSON[model.Entry](t, out)
	if entry.ID != 1 || entry.Title != "Write launch plan" || entry.DueTS == nil {
		t.Fatalf("created: %+v", entry)
	}
	if entry.Timescale != model.TimescaleLater {
		t.Fatalf("timescale = %s", entry.Timescale)
	}

	out, err = runCLI(t, dir, "entries", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	entries := mustJSON[[]model.Entry](t, out)
	if len(entries) != 1 {
		t.Fatalf("list: %+v", entries)
	}

	out, err = runCLI(t, dir, "entries", "complete", "1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	entry = mustJSON[model.Entry](t, out)
	if !entry.IsCompleted || entry.Status != model.StatusDone || entry.Timescale != model.TimescaleCompleted {
		t.Fatalf("completed: %+v", entry)
	}
}

func TestBlankTitleFailsWithoutBurningAnID(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "entries", "create", "--title", "   "); err == nil {
		t.Fatalf("expected validation error")
	}

	out, err := runCLI(t, dir, "entries", "create", "--title", "real")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e := mustJSON[model.Entry](t, out); e.ID != 1 {
		t.Fatalf("id = %d, want 1", e.ID)
	}
}

func TestNoteEntryLinkingAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "entries", "create", "--title", "target")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	entry := mustJSON[model.Entry](t, out)

	out, err = runCLI(t, dir, "notes", "create", "--title", "linked", "--entry", "1", "--tag", "Focus")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	note := mustJSON[model.Note](t, out)
	if len(note.LinkedEntryIDs) != 1 || note.LinkedEntryIDs[0] != entry.ID {
		t.Fatalf("note links: %+v", note)
	}
	if note.Accent != "#c7d2fe" {
		t.Fatalf("accent = %s", note.Accent)
	}

	// The back-reference survives the process boundary (SQLite round trip).
	out, err = runCLI(t, dir, "entries", "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	entry = mustJSON[model.Entry](t, out)
	if len(entry.NoteIDs) != 1 || entry.NoteIDs[0] != note.ID {
		t.Fatalf("entry links: %+v", entry)
	}

	// Deleting the entry drops the note's reference.
	if _, err := runCLI(t, dir, "entries", "delete", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err = runCLI(t, dir, "notes", "show", "1")
	if err != nil {
		t.Fatalf("show note: %v", err)
	}
	note = mustJSON[model.Note](t, out)
	if len(note.LinkedEntryIDs) != 0 {
		t.Fatalf("stale link survived delete: %+v", note)
	}
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "entries", "create", "--title", "Gantt milestones"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := runCLI(t, dir, "entries", "create", "--title", "archived thing", "--status", "Archived"); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := runCLI(t, dir, "search", "gantt")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	res := mustJSON[struct {
		Entries []model.Entry `json:"entries"`
		Notes   []model.Note  `json:"notes"`
	}](t, out)
	if len(res.Entries) != 1 {
		t.Fatalf("search: %+v", res)
	}

	out, err = runCLI(t, dir, "search", "archived")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	res = mustJSON[struct {
		Entries []model.Entry `json:"entries"`
		Notes   []model.Note  `json:"notes"`
	}](t, out)
	if len(res.Entries) != 0 {
		t.Fatalf("archived entry leaked into search: %+v", res)
	}
}

func TestSeedCommandIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	res := mustJSON[map[string]any](t, out)
	if res["seeded"] != true {
		t.Fatalf("first seed: %+v", res)
	}

	out, err = runCLI(t, dir, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	res = mustJSON[map[string]any](t, out)
	if res["seeded"] != false {
		t.Fatalf("second seed: %+v", res)
	}
}

func TestUnknownIDErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "entries", "show", "9"); err == nil {
		t.Fatalf("expected not-found error")
	}
	if _, err := runCLI(t, dir, "entries", "complete", "abc"); err == nil {
		t.Fatalf("expected invalid-id error")
	}
}

func TestParseDueTS(t *testing.T) {
	if _, err := parseDueTS("2030-01-15"); err != nil {
		t.Fatalf("date-only: %v", err)
	}
	if _, err := parseDueTS("2030-01-15 09:30"); err != nil {
		t.Fatalf("date+time: %v", err)
	}
	if _, err := parseDueTS("2030-01-15T09:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := parseDueTS("next tuesday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
