package tui

import (
	"fmt"
	"strings"
	"time"

	"horizon-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

type entryItem struct {
	entry model.Entry
}

func (i entryItem) Title() string {
	var b strings.Builder
	b.WriteString(timescaleBadge(i.entry.Timescale))
	b.WriteString(" ")
	if i.entry.IsCompleted {
		b.WriteString(doneStyle.Render(i.entry.Title))
	} else {
		b.WriteString(i.entry.Title)
	}
	if i.entry.DueTS != nil {
		b.WriteString(dimStyle.Render(" · due " + time.UnixMilli(*i.entry.DueTS).Format("Jan 2")))
	}
	return b.String()
}

func (i entryItem) FilterValue() string {
	parts := []string{i.entry.Title, i.entry.Summary}
	if i.entry.Project != nil {
		parts = append(parts, *i.entry.Project)
	}
	return strings.Join(parts, " ")
}

type noteItem struct {
	note model.Note
}

func (i noteItem) Title() string {
	var b strings.Builder
	b.WriteString(accentDot(i.note.Accent))
	b.WriteString(" ")
	b.WriteString(i.note.Title)
	if i.note.Pinned {
		b.WriteString(dimStyle.Render(" ⦿"))
	}
	if n := len(i.note.LinkedEntryIDs); n > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" · %d linked", n)))
	}
	return b.String()
}

func (i noteItem) FilterValue() string {
	return i.note.Title + " " + strings.Join(i.note.Tags, " ")
}

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	badgeStyles = map[model.Timescale]lipgloss.Style{
		model.TimescaleOverdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		model.TimescaleToday:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		model.TimescaleThisWeek:  lipgloss.NewStyle().Foreground(lipgloss.Color("112")),
		model.TimescaleThisMonth: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		model.TimescaleLater:     lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		model.TimescaleSomeday:   lipgloss.NewStyle().Faint(true),
		model.TimescaleCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
	}
)

func timescaleBadge(ts model.Timescale) string {
	style, ok := badgeStyles[ts]
	if !ok {
		style = dimStyle
	}
	return style.Render("[" + string(ts) + "]")
}

func accentDot(accent string) string {
	if accent == "" {
		return "•"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Render("●")
}
