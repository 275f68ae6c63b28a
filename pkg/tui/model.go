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

// Tab represents a single tab in the TUI
type Tab struct {
	Title   string
	Content string
}

// Model is the report viewer state: a tab bar over one scrolling viewport
type Model struct {
	title     string
	tabs      []Tab
	activeTab int
	viewport  viewport.Model
	help      help.Model
	keys      KeyMap
	ready     bool
	width     int
}

// KeyMap defines the viewer's bindings. It satisfies help.KeyMap.
type KeyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	JumpTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev tab")),
		JumpTab:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to tab")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b", "u"), key.WithHelp("pgup/b", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f", "d", " "), key.WithHelp("pgdn/f", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Down, k.Help, k.Quit}
}

// FullHelp is shown after pressing ?
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Help, k.Quit},
	}
}

// NewModel creates a viewer with the given title and tabs
func NewModel(title string, tabs []Tab) Model {
	return Model{
		title: title,
		tabs:  tabs,
		help:  help.New(),
		keys:  DefaultKeyMap(),
	}
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(1), nil
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(-1), nil
		case key.Matches(msg, m.keys.JumpTab):
			return m.selectTab(int(msg.Runes[0] - '1')), nil
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			if !m.ready {
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
			height := m.viewport.Height + m.chromeHeight()
			m.help.ShowAll = !m.help.ShowAll
			return m.resize(m.width, height), nil
		}

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize fits the viewport between header and footer, creating it on first use
func (m Model) resize(width, height int) Model {
	m.width = width
	m.help.Width = width
	bodyHeight := max(height-m.chromeHeight(), 1)

	if !m.ready {
		m.viewport = viewport.New(width, bodyHeight)
		m.viewport.KeyMap.Up = m.keys.Up
		m.viewport.KeyMap.Down = m.keys.Down
		m.viewport.KeyMap.PageUp = m.keys.PageUp
		m.viewport.KeyMap.PageDown = m.keys.PageDown
		if len(m.tabs) > 0 {
			m.viewport.SetContent(m.tabs[m.activeTab].Content)
		}
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	}
	m.viewport.YPosition = lipgloss.Height(m.headerView())
	return m
}

func (m Model) chromeHeight() int {
	return lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
}

// switchTab moves the active tab by delta, wrapping around
func (m Model) switchTab(delta int) Model {
	if len(m.tabs) == 0 {
		return m
	}
	return m.selectTab((m.activeTab + delta + len(m.tabs)) % len(m.tabs))
}

// selectTab activates tab i; out of range indexes are ignored
func (m Model) selectTab(i int) Model {
	if i < 0 || i >= len(m.tabs) {
		return m
	}
	m.activeTab = i
	m.viewport.SetContent(m.tabs[i].Content)
	m.viewport.GotoTop()
	return m
}

// ActiveTab returns the index of the selected tab
func (m Model) ActiveTab() int {
	return m.activeTab
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading report..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("cyan")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("63")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Background(lipgloss.Color("235")).
				Padding(0, 2)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// headerView renders the report title and the numbered tab bar
func (m Model) headerView() string {
	tabs := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title)
		if i == m.activeTab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		strings.Repeat("─", max(m.width, 1)),
	)
}

// footerView renders key help and the scroll position
func (m Model) footerView() string {
	position := dimStyle.Render(fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100))
	keys := m.help.View(m.keys)

	gap := max(0, m.width-lipgloss.Width(keys)-lipgloss.Width(position))
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, keys, strings.Repeat(" ", gap)+position)
	}
	return keys + strings.Repeat(" ", gap) + position
}
