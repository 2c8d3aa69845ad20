package format

import (
	"strings"
	"testing"
	"time"

	"horizon-cli/internal/model"
)

func TestWriteJSONCompactAndPretty(t *testing.T) {
	var compact, pretty strings.Builder
	v := map[string]int{"a": 1}

	if err := Write(&compact, v, "json", false); err != nil {
		t.Fatalf("compact: %v", err)
	}
	if got := compact.String(); got != "{\"a\":1}\n" {
		t.Fatalf("compact output: %q", got)
	}

	if err := Write(&pretty, v, "", true); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(pretty.String(), "\n  \"a\": 1\n") {
		t.Fatalf("pretty output: %q", pretty.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&strings.Builder{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestEntryLine(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC).UnixMilli()
	e := model.Entry{
		ID:        3,
		Title:     "Prep Gantt milestones",
		Status:    model.StatusInProgress,
		DueTS:     &due,
		Assignees: []string{"Nico"},
	}
	got := EntryLine(e)
	want := "#3 [InProgress] Prep Gantt milestones (due " + time.UnixMilli(due).Format("2006-01-02") + ") @Nico"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestWriteTextGroupsEntriesByTimescale(t *testing.T) {
	entries := []model.Entry{
		{ID: 1, Title: "later", Status: model.StatusBacklog, Timescale: model.TimescaleLater},
		{ID: 2, Title: "today", Status: model.StatusUpNext, Timescale: model.TimescaleToday},
	}
	var out strings.Builder
	if err := Write(&out, entries, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := out.String()
	todayAt := strings.Index(s, "Today")
	laterAt := strings.Index(s, "Later")
	if todayAt < 0 || laterAt < 0 || todayAt > laterAt {
		t.Fatalf("group order wrong:\n%s", s)
	}
}

func TestNoteLine(t *testing.T) {
	n := model.Note{
		ID:             2,
		Title:          "Sprint kickoff",
		Tags:           []string{"Sprint"},
		LinkedEntryIDs: []uint64{3, 4},
	}
	got := NoteLine(n)
	if got != "#2 Sprint kickoff +Sprint (2 linked)" {
		t.Fatalf("line = %q", got)
	}
}
