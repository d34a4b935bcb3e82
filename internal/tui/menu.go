// Package tui holds the interactive pieces of the Airborne CLI: the main menu
// shown when `airborne` runs with no arguments in a TTY, the release browser,
// the release wizard and the huh prompts used by destructive commands.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juspay/airborne-cli/internal/style"
)

// ─── Menu item ───────────────────────────────────────────────────────────────

// menuItem represents a single entry in the main interactive menu.
type menuItem struct {
	title       string
	description string
	command     string // cobra command path, e.g. "release list"
}

var menuEntries = []menuItem{
	{title: "Login", description: "Exchange client credentials for a token", command: "auth login"},
	{title: "Auth Status", description: "Show the saved server, organisation and application", command: "auth status"},
	{title: "Browse Releases", description: "Page through releases interactively", command: "release browse"},
	{title: "Create Release", description: "Walk through a new release", command: "release create"},
	{title: "List Dimensions", description: "Show targeting dimensions by priority", command: "dimension list"},
	{title: "List Packages", description: "Show package versions", command: "package list"},
	{title: "List Files", description: "Show uploaded files", command: "file list"},
	{title: "List Organisations", description: "Show organisations and applications you can access", command: "organisation list"},
	{title: "Current User", description: "Show the authenticated user", command: "user get"},
	{title: "Version", description: "Print CLI version information", command: "version"},
	{title: "Upgrade", description: "Upgrade the CLI to the latest release", command: "upgrade"},
	{title: "Logout", description: "Remove saved credentials", command: "auth logout"},
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.title }

// MenuCommands returns the command paths the menu can dispatch to.
func MenuCommands() []string {
	out := make([]string, 0, len(menuEntries))
	for _, e := range menuEntries {
		out = append(out, e.command)
	}
	return out
}

// ─── Key map ─────────────────────────────────────────────────────────────────

type menuKeyMap struct {
	Quit   key.Binding
	Enter  key.Binding
	Filter key.Binding
}

var menuKeys = menuKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
}

// ─── Model ───────────────────────────────────────────────────────────────────

// MenuModel is the top-level Bubble Tea model for the interactive main menu.
type MenuModel struct {
	list     list.Model
	choice   string // selected command path
	quitting bool
}

// SelectedCommand returns the cobra command path the user picked,
// or "" if they quit without choosing.
func (m MenuModel) SelectedCommand() string { return m.choice }

// NewMenuModel builds the interactive main menu with all available commands.
func NewMenuModel() MenuModel {
	items := make([]list.Item, 0, len(menuEntries))
	for _, e := range menuEntries {
		items = append(items, e)
	}

	// Delegate for styled rendering
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(style.Cyan).
		BorderLeftForeground(style.Cyan)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(style.Dim).
		BorderLeftForeground(style.Cyan)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(style.White)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(style.Dim)

	l := list.New(items, delegate, 60, 20)
	l.Title = "Airborne: what would you like to do?"
	l.Styles.Title = style.MenuTitle
	l.SetFilteringEnabled(true)
	l.SetShowStatusBar(true)
	l.SetShowHelp(true)

	return MenuModel{list: l}
}

// ─── Bubble Tea interface ────────────────────────────────────────────────────

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, menuKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Enter):
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				m.choice = item.command
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	if m.quitting {
		return style.DimText.Render("Goodbye!") + "\n"
	}
	if m.choice != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(style.StatusBar.Render("↑/↓ navigate • / filter • enter select • q quit"))
	return b.String()
}

// ─── Runner ──────────────────────────────────────────────────────────────────

// RunMenu starts the interactive main menu and returns the selected command
// path (e.g. "release list") or "" if the user quit.
func RunMenu() (string, error) {
	m := NewMenuModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("TUI error: %w", err)
	}

	result := finalModel.(MenuModel)
	return result.SelectedCommand(), nil
}
