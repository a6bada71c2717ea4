package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Entry is one contact as the browser shows it: a list label and the
// full card for the detail pane.
type Entry struct {
	Name    string
	Summary string
	Card    string
}

// Browser is the Bubble Tea model for read-only browsing of the book.
// The list pane holds names; the detail pane scrolls the selected card.
type Browser struct {
	entries  []Entry
	cursor   int
	width    int
	height   int
	keys     browserKeys
	viewport viewport.Model
	help     help.Model
}

// NewBrowser creates a Browser over entries with the first one selected.
func NewBrowser(entries []Entry) Browser {
	b := Browser{
		entries:  append([]Entry(nil), entries...),
		keys:     BrowserKeyMap(),
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
	b.syncDetail()
	return b
}

// Init returns the initial command.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		_, detailWidth := PaneWidths(msg.Width)
		b.viewport.Width = max(detailWidth-borderChrome, 0)
		b.viewport.Height = b.contentHeight()
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit

	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
		return b, nil

	case key.Matches(msg, b.keys.Up):
		if len(b.entries) > 0 {
			b.cursor--
			if b.cursor < 0 {
				b.cursor = len(b.entries) - 1
			}
			b.syncDetail()
		}
		return b, nil

	case key.Matches(msg, b.keys.Down):
		if len(b.entries) > 0 {
			b.cursor++
			if b.cursor >= len(b.entries) {
				b.cursor = 0
			}
			b.syncDetail()
		}
		return b, nil

	case key.Matches(msg, b.keys.Top):
		b.cursor = 0
		b.syncDetail()
		return b, nil

	case key.Matches(msg, b.keys.Bottom):
		b.cursor = max(len(b.entries)-1, 0)
		b.syncDetail()
		return b, nil

	case key.Matches(msg, b.keys.ScrollUp):
		b.viewport.HalfViewUp()
		return b, nil

	case key.Matches(msg, b.keys.ScrollDn):
		b.viewport.HalfViewDown()
		return b, nil
	}
	return b, nil
}

// syncDetail loads the selected card into the detail viewport.
func (b *Browser) syncDetail() {
	if e, ok := b.Selected(); ok {
		b.viewport.SetContent(e.Card)
	} else {
		b.viewport.SetContent("")
	}
	b.viewport.GotoTop()
}

// Selected returns the entry under the cursor.
func (b Browser) Selected() (Entry, bool) {
	if b.cursor < 0 || b.cursor >= len(b.entries) {
		return Entry{}, false
	}
	return b.entries[b.cursor], true
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (b Browser) contentHeight() int {
	return max(b.height-borderChrome-helpBarHeight, 1)
}

// View renders the list and detail panes with a help bar.
func (b Browser) View() string {
	if b.width == 0 || b.height == 0 {
		return "Initializing..."
	}

	listWidth, detailWidth := PaneWidths(b.width)
	height := b.contentHeight()

	listPane := FocusedBorder().
		Width(listWidth - borderChrome).
		Height(height).
		Render(b.viewList(height))
	detailPane := UnfocusedBorder().
		Width(detailWidth - borderChrome).
		Height(height).
		Render(b.viewport.View())

	panes := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	return lipgloss.JoinVertical(lipgloss.Left, panes, b.help.View(b.keys))
}

// viewList renders the contact names, scrolled so the cursor stays visible.
func (b Browser) viewList(height int) string {
	if len(b.entries) == 0 {
		return mutedText.Render("Address book is empty")
	}

	rows := height - 1 // title line
	start := 0
	if b.cursor >= rows {
		start = b.cursor - rows + 1
	}
	end := min(start+rows, len(b.entries))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Contacts (%d)", len(b.entries))))
	for i := start; i < end; i++ {
		sb.WriteByte('\n')
		e := b.entries[i]
		if i == b.cursor {
			sb.WriteString(CursorMarker)
			sb.WriteString(selectedStyle.Render(e.Name))
		} else {
			sb.WriteString("  ")
			sb.WriteString(e.Name)
		}
		if e.Summary != "" {
			sb.WriteString(" ")
			sb.WriteString(mutedText.Render(e.Summary))
		}
	}
	return sb.String()
}

// Browse runs the browser full-screen until the user quits.
func Browse(entries []Entry, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewBrowser(entries), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
