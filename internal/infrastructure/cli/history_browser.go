package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/smartai-go/internal/domain"
)

type historyItem struct {
	entry domain.HistoryEntry
}

func (i historyItem) Title() string { return i.entry.Question }

func (i historyItem) Description() string {
	return humanize.Time(i.entry.Timestamp) + " - " + firstLine(i.entry.Answer)
}

func (i historyItem) FilterValue() string { return i.entry.Question }

type browserModel struct {
	list     list.Model
	selected *domain.HistoryEntry
}

func (m browserModel) Init() tea.Cmd { return nil }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list's filter input consume keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(historyItem); ok {
				entry := item.entry
				m.selected = &entry
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string { return m.list.View() }

// BrowseHistory runs the full-screen history browser and returns the entry
// the user selected, or nil when they just quit.
func BrowseHistory(entries []domain.HistoryEntry) (*domain.HistoryEntry, error) {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = historyItem{entry: entry}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Question History"

	program := tea.NewProgram(browserModel{list: l}, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("history browser: %w", err)
	}
	model, ok := final.(browserModel)
	if !ok {
		return nil, nil
	}
	return model.selected, nil
}
