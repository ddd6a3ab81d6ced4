package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// menuItem is one line of the mode menu. An empty mode opens the scoreboard.
type menuItem struct {
	mode  snake.Mode
	label string
}

func defaultMenuItems() []menuItem {
	items := make([]menuItem, 0, len(snake.Modes())+1)
	for _, mode := range snake.Modes() {
		items = append(items, menuItem{
			mode:  mode,
			label: fmt.Sprintf("%-14s %2d pts / food", mode.Title(), snake.FoodPoints(mode)),
		})
	}
	return append(items, menuItem{label: "High Scores"})
}

// MenuModel lets users pick a game mode or open the scoreboard.
type MenuModel struct {
	items          []menuItem
	cursor         int
	width          int
	height         int
	player         string
	keyMapper      *KeyMapper
	selected       *snake.Mode
	openScoreboard bool
	quitting       bool
}

// NewMenuModel creates a menu with the cursor on the given mode.
func NewMenuModel(width, height int, player string, initial snake.Mode) MenuModel {
	m := MenuModel{
		items:     defaultMenuItems(),
		width:     width,
		height:    height,
		player:    player,
		keyMapper: NewKeyMapper(),
	}
	for i, it := range m.items {
		if it.mode == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.mode == "" {
			m.openScoreboard = true
			return m, tea.Quit
		}
		mode := item.mode
		m.selected = &mode
		return m, tea.Quit
	}
	return m, nil
}

// View renders the mode selection.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	if m.player != "" {
		b.WriteString(centerText("Welcome, "+m.player, m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+it.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen mode, or nil if none was chosen.
func (m MenuModel) Selected() *snake.Mode {
	return m.selected
}

// WantsScoreboard returns true if the user asked for high scores.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// IsQuitting returns true if user wants to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Mode            snake.Mode
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the mode menu in the local terminal.
func RunMenu(width, height int, player string, initial snake.Mode) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height, player, initial),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() {
		return MenuResult{Quit: true}, nil
	}
	if m.WantsScoreboard() {
		return MenuResult{WantsScoreboard: true}, nil
	}
	if m.Selected() == nil {
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{Mode: *m.Selected()}, nil
}
