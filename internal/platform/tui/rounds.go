package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Rounds browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the variant sidebar
	sidebarWidth       = 22  // Width of the variant sidebar
	maxRounds          = 200 // Max rounds to load
	allVariants        = ""  // Filter value that shows every variant
)

// RoundSource lists journaled rounds. storage.Store implements it.
type RoundSource interface {
	RecentRecords(limit int) ([]snake.Record, error)
	CauseCounts(variant string) (map[snake.Cause]int, error)
}

// RoundsKeyMap defines the key bindings for the rounds browser.
type RoundsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RoundsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RoundsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultRoundsKeyMap returns default key bindings.
func DefaultRoundsKeyMap() RoundsKeyMap {
	return RoundsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// filter is one entry of the variant sidebar.
type filter struct {
	variant string
	title   string
}

// RoundsModel is the Bubble Tea model for browsing journaled rounds.
type RoundsModel struct {
	source      RoundSource
	filters     []filter
	cursor      int            // Selected filter
	all         []snake.Record // Everything loaded from the source
	rounds      []snake.Record // Rounds shown for the current filter
	causes      map[snake.Cause]int
	err         error
	table       table.Model
	help        help.Model
	keys        RoundsKeyMap
	width       int
	height      int
	quitting    bool
	selected    string // ID of the round picked with Enter
	showSidebar bool
}

// NewRoundsModel creates a rounds browser over source. source may be nil.
func NewRoundsModel(source RoundSource, width, height int) RoundsModel {
	filters := []filter{{variant: allVariants, title: "All variants"}}
	for _, v := range registry.Variants() {
		filters = append(filters, filter{variant: v.ID, title: v.Title})
	}

	m := RoundsModel{
		source:      source,
		filters:     filters,
		keys:        DefaultRoundsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the rounds table sized to the window.
func (m *RoundsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Round", Width: 8},
		{Title: "Variant", Width: 8},
		{Title: "Grid", Width: 7},
		{Title: "Ticks", Width: 6},
		{Title: "Cause", Width: 7},
		{Title: "Started", Width: 12},
	}

	height := m.height - 10 // Title, tabs, footer, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the journal once; filters are applied in memory.
func (m *RoundsModel) load() {
	if m.source == nil {
		m.all = nil
		m.applyFilter()
		return
	}

	m.all, m.err = m.source.RecentRecords(maxRounds)
	m.applyFilter()
}

// applyFilter narrows the loaded rounds to the selected variant.
func (m *RoundsModel) applyFilter() {
	variant := m.filters[m.cursor].variant

	m.rounds = make([]snake.Record, 0, len(m.all))
	for _, r := range m.all {
		if variant == allVariants || r.Variant == variant {
			m.rounds = append(m.rounds, r)
		}
	}

	m.causes = nil
	if m.source != nil && m.err == nil {
		m.causes, m.err = m.source.CauseCounts(variant)
	}
	m.updateTableRows()
}

// updateTableRows fills the table with the filtered rounds.
func (m *RoundsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			shortID(r.ID),
			r.Variant,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Ticks),
			string(r.Cause),
			r.StartedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shortID returns the prefix RecordByID accepts for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the rounds browser.
func (m RoundsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rounds browser.
func (m RoundsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.rounds) {
				m.selected = m.rounds[i].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.filters) - 1) % len(m.filters)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the rounds browser.
func (m RoundsModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := fmt.Sprintf("ROUNDS - %s", m.filters[m.cursor].title)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the variant sidebar next to the table.
func (m RoundsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Variants\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, f := range m.filters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + f.title))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		m.tableBox().Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders variant tabs above the table.
func (m RoundsModel) renderNarrowLayout() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(f.title)
		} else {
			tabs[i] = tabStyle.Render(" " + f.title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.filters[m.cursor].title)
	}

	var b strings.Builder
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tableBox().Render(m.renderTableContent()), m.width))
	return b.String()
}

func (m RoundsModel) tableBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

// renderTableContent renders the table or an empty message.
func (m RoundsModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds journaled yet.\nFinish a round to see it here.")
	}
	return m.table.View()
}

// renderFooter shows how rounds of the current filter ended.
func (m RoundsModel) renderFooter() string {
	if m.err != nil {
		return menuErrorStyle.Render("journal: " + m.err.Error())
	}

	parts := make([]string, 0, 3)
	for _, c := range []snake.Cause{snake.CauseWall, snake.CauseSelf, snake.CauseHazard} {
		parts = append(parts, fmt.Sprintf("%s %d", c, m.causes[c]))
	}
	return menuHintStyle.Render(strings.Join(parts, "  |  "))
}

// Selected returns the ID of the round picked with Enter, or "".
func (m RoundsModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user left the browser without picking a round.
func (m RoundsModel) IsQuitting() bool {
	return m.quitting
}

// RunRounds runs the rounds browser and returns the ID of the picked round,
// or "" if the user left without picking one.
func RunRounds(source RoundSource, width, height int) (string, error) {
	p := tea.NewProgram(
		NewRoundsModel(source, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(RoundsModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
