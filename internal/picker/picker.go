// Package picker provides the interactive project list behind the pick
// command: located projects in a filterable list, one of which the user
// selects.
package picker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

var appStyle = lipgloss.NewStyle().Padding(1, 2)

// Item is one selectable project in the picker.
type Item struct {
	Kind string
	Dir  locator.DirInfo
}

// Title returns the project's display name.
func (i Item) Title() string { return i.Dir.Name }

// Description returns the compacted path with the kind.
func (i Item) Description() string {
	return fmt.Sprintf("%s (%s)", pathutil.Compact(i.Dir.FullPath), i.Kind)
}

// FilterValue makes filtering match on the project name.
func (i Item) FilterValue() string { return i.Dir.Name }

// Model drives the pick-one list.
type Model struct {
	list   list.Model
	choice *Item
}

// New builds a picker over the given items.
func New(items []Item) Model {
	entries := make([]list.Item, len(items))
	for idx, it := range items {
		entries[idx] = it
	}

	l := list.New(entries, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(output.ColorPrimary)

	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and resize messages. Enter selects the highlighted
// project and quits; q or ctrl+c quits without a selection.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		// While the user is typing a filter, every key belongs to the list.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(Item); ok {
				m.choice = &it
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return appStyle.Render(m.list.View())
}

// Choice returns the selected item, if any.
func (m Model) Choice() (Item, bool) {
	if m.choice == nil {
		return Item{}, false
	}
	return *m.choice, true
}

// Run shows the picker full-screen and returns the selected project, or
// ok=false when the user quit without choosing. The UI renders to stderr so
// callers can print the chosen path to a clean stdout, which is what makes
// shell wrappers like cd "$(projscout pick)" work.
func Run(items []Item) (Item, bool, error) {
	p := tea.NewProgram(New(items), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return Item{}, false, err
	}
	m, ok := final.(Model)
	if !ok {
		return Item{}, false, fmt.Errorf("unexpected model type %T", final)
	}
	it, chosen := m.Choice()
	return it, chosen, nil
}
