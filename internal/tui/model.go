package tui

import (
	"fmt"
	"strings"
	"time"

	"horizon-cli/internal/app"
	"horizon-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tuiChannelID is the hub channel the TUI subscribes on. The TUI runs at most
// once per process, so a fixed id is fine.
const tuiChannelID uint32 = 0xFFFF

type pane int

const (
	paneEntries pane = iota
	paneNotes
)

// stateMsg carries a fresh full snapshot; the TUI re-renders from scratch on
// every hub event rather than patching incrementally.
type stateMsg model.Bootstrap

type appModel struct {
	eng       *app.App
	workspace string

	pane    pane
	entries list.Model
	notes   list.Model

	updates <-chan []byte

	// status holds the last failed command's error, shown in place of the
	// help line until the next successful command.
	status string

	width  int
	height int
}

func newAppModel(eng *app.App, workspace string) appModel {
	mk := func(title string) list.Model {
		l := list.New(nil, newCompactDelegate(), 0, 0)
		l.Title = title
		l.SetShowStatusBar(false)
		l.SetShowHelp(false)
		l.DisableQuitKeybindings()
		return l
	}

	m := appModel{
		eng:       eng,
		workspace: workspace,
		entries:   mk("Entries"),
		notes:     mk("Notes"),
		updates:   eng.Subscribe(tuiChannelID),
	}
	m.applyState(eng.Bootstrap())
	return m
}

func (m *appModel) applyState(boot model.Bootstrap) {
	entryItems := make([]list.Item, 0, len(boot.Entries))
	for _, e := range boot.Entries {
		entryItems = append(entryItems, entryItem{entry: e})
	}
	noteItems := make([]list.Item, 0, len(boot.Notes))
	for _, n := range boot.Notes {
		noteItems = append(noteItems, noteItem{note: n})
	}
	m.entries.SetItems(entryItems)
	m.notes.SetItems(noteItems)
}

func (m appModel) Init() tea.Cmd {
	return waitForUpdate(m.eng, m.updates)
}

// waitForUpdate blocks on the hub outbox and reloads the full state whenever
// anything changes. Diff payloads are ignored on purpose: reloading keeps the
// TUI trivially consistent with the engine.
func waitForUpdate(eng *app.App, ch <-chan []byte) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateMsg(eng.Bootstrap())
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := msg.Width / 2
		listH := msg.Height - 3
		if listH < 3 {
			listH = 3
		}
		m.entries.SetSize(listW, listH)
		m.notes.SetSize(listW, listH)
		return m, nil

	case stateMsg:
		m.applyState(model.Bootstrap(msg))
		return m, waitForUpdate(m.eng, m.updates)

	case tea.KeyMsg:
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.eng.Unsubscribe(tuiChannelID)
			return m, tea.Quit
		case "tab":
			if m.pane == paneEntries {
				m.pane = paneNotes
			} else {
				m.pane = paneEntries
			}
			return m, nil
		case "enter", " ":
			if m.pane == paneEntries {
				if it, ok := m.entries.SelectedItem().(entryItem); ok {
					_, err := m.eng.ToggleEntryCompletion(it.entry.ID, !it.entry.IsCompleted)
					m.setStatus(err)
				}
			}
			return m, nil
		case "x":
			if m.pane == paneEntries {
				if it, ok := m.entries.SelectedItem().(entryItem); ok {
					m.setStatus(m.eng.DeleteEntry(it.entry.ID))
				}
			} else {
				if it, ok := m.notes.SelectedItem().(noteItem); ok {
					m.setStatus(m.eng.DeleteNote(it.note.ID))
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.pane == paneEntries {
		m.entries, cmd = m.entries.Update(msg)
	} else {
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m *appModel) setStatus(err error) {
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
}

func (m *appModel) activeList() *list.Model {
	if m.pane == paneEntries {
		return &m.entries
	}
	return &m.notes
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1)
)

func (m appModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("horizon · %s", m.workspace))

	left := paneStyle.Render(m.activeList().View())
	right := paneStyle.Render(m.detailView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	foot := helpStyle.Render("tab panes · / filter · enter toggle done · x delete · q quit")
	if m.status != "" {
		foot = errorStyle.Render("error: " + m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, foot)
}

func (m appModel) detailView() string {
	w := m.width/2 - 4
	if w < 10 {
		w = 10
	}

	if m.pane == paneNotes {
		it, ok := m.notes.SelectedItem().(noteItem)
		if !ok {
			return dimStyle.Render("no note selected")
		}
		var b strings.Builder
		b.WriteString(headerStyle.Render(it.note.Title))
		if len(it.note.Tags) > 0 {
			b.WriteString("\n" + dimStyle.Render("+"+strings.Join(it.note.Tags, " +")))
		}
		b.WriteString("\n\n")
		b.WriteString(renderMarkdown(it.note.Content, w))
		return b.String()
	}

	it, ok := m.entries.SelectedItem().(entryItem)
	if !ok {
		return dimStyle.Render("no entry selected")
	}
	e := it.entry
	var b strings.Builder
	b.WriteString(headerStyle.Render(e.Title))
	b.WriteString("\n" + timescaleBadge(e.Timescale) + dimStyle.Render(fmt.Sprintf(" %s · %s", e.Status, e.Priority)))
	if e.Project != nil {
		b.WriteString(dimStyle.Render(" · " + *e.Project))
	}
	if e.DueTS != nil {
		b.WriteString("\n" + dimStyle.Render("due "+time.UnixMilli(*e.DueTS).Format("2006-01-02 15:04")))
	}
	if len(e.Assignees) > 0 {
		b.WriteString("\n" + dimStyle.Render("@"+strings.Join(e.Assignees, " @")))
	}
	if e.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(renderMarkdown(e.Description, w))
	}
	return b.String()
}
