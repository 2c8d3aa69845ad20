package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"horizon-cli/internal/model"
)

// timescaleOrder is the display order for grouped entry listings, nearest
// deadline bucket first.
var timescaleOrder = []model.Timescale{
	model.TimescaleOverdue,
	model.TimescaleToday,
	model.TimescaleThisWeek,
	model.TimescaleThisMonth,
	model.TimescaleLater,
	model.TimescaleSomeday,
	model.TimescaleCompleted,
}

// WriteText renders the well-known CLI payloads as human-readable lines.
// Anything it does not recognize falls back to pretty JSON.
func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case model.Entry:
		_, err := fmt.Fprintln(w, EntryLine(t))
		return err
	case []model.Entry:
		return writeEntriesGrouped(w, t)
	case model.Note:
		_, err := fmt.Fprintln(w, NoteLine(t))
		return err
	case []model.Note:
		for _, n := range t {
			if _, err := fmt.Fprintln(w, NoteLine(n)); err != nil {
				return err
			}
		}
		return nil
	default:
		return WriteJSON(w, v, true)
	}
}

func writeEntriesGrouped(w io.Writer, entries []model.Entry) error {
	byScale := map[model.Timescale][]model.Entry{}
	for _, e := range entries {
		byScale[e.Timescale] = append(byScale[e.Timescale], e)
	}
	for _, ts := range timescaleOrder {
		group := byScale[ts]
		if len(group) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", ts); err != nil {
			return err
		}
		for _, e := range group {
			if _, err := fmt.Fprintf(w, "  %s\n", EntryLine(e)); err != nil {
				return err
			}
		}
	}
	return nil
}

// EntryLine renders one entry as a single scannable line:
//
//	#3 [InProgress] Prep Gantt milestones (due 2024-06-10) @Nico
func EntryLine(e model.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d [%s] %s", e.ID, e.Status, e.Title)
	if e.DueTS != nil {
		fmt.Fprintf(&b, " (due %s)", time.UnixMilli(*e.DueTS).Format("2006-01-02"))
	}
	for _, a := range e.Assignees {
		fmt.Fprintf(&b, " @%s", a)
	}
	if e.IsCompleted {
		b.WriteString(" [done]")
	}
	return b.String()
}

// NoteLine renders one note as a single line with its tags and link count.
func NoteLine(n model.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", n.ID, n.Title)
	if n.Pinned {
		b.WriteString(" [pinned]")
	}
	for _, tag := range n.Tags {
		fmt.Fprintf(&b, " +%s", tag)
	}
	if len(n.LinkedEntryIDs) > 0 {
		fmt.Fprintf(&b, " (%d linked)", len(n.LinkedEntryIDs))
	}
	return b.String()
}
