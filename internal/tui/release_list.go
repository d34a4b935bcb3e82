package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
)

// ReleasePager loads one 1-based page of releases.
type ReleasePager func(ctx context.Context, page int) (*airborne.ReleaseList, error)

type releasesLoadedMsg struct {
	page int
	list *airborne.ReleaseList
}

type releaseErrorMsg struct{ err error }

// ReleaseListModel pages through releases in a table.
type ReleaseListModel struct {
	load     ReleasePager
	table    table.Model
	spinner  spinner.Model
	loading  bool
	err      error
	page     int
	pages    int64
	total    int64
	selected string
	quitting bool
}

var releaseKeys = struct {
	Quit, Next, Prev, Open key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	Next: key.NewBinding(key.WithKeys("n", "right")),
	Prev: key.NewBinding(key.WithKeys("p", "left")),
	Open: key.NewBinding(key.WithKeys("enter")),
}

// NewReleaseListModel creates the release browser.
func NewReleaseListModel(load ReleasePager) ReleaseListModel {
	columns := []table.Column{
		{Title: "Release", Width: 38},
		{Title: "Package", Width: 8},
		{Title: "Config", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Traffic", Width: 8},
		{Title: "Created", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(style.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(style.Cyan)
	s.Selected = s.Selected.
		Foreground(style.White).
		Background(style.Subtle).
		Bold(true)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(style.SpinnerColor)

	return ReleaseListModel{
		load:    load,
		table:   t,
		spinner: sp,
		loading: true,
		page:    1,
	}
}

// Selected returns the release id chosen with enter, or "".
func (m ReleaseListModel) Selected() string { return m.selected }

func (m ReleaseListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.page))
}

func (m ReleaseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, releaseKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, releaseKeys.Open):
			if row := m.table.SelectedRow(); len(row) > 0 && !m.loading {
				m.selected = row[0]
				return m, tea.Quit
			}
		case key.Matches(msg, releaseKeys.Next):
			if !m.loading && int64(m.page) < m.pages {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.fetch(m.page+1))
			}
		case key.Matches(msg, releaseKeys.Prev):
			if !m.loading && m.page > 1 {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.fetch(m.page-1))
			}
		}

	case releasesLoadedMsg:
		m.loading = false
		m.err = nil
		m.page = msg.page
		m.pages = msg.list.TotalPages
		m.total = msg.list.TotalItems
		m.table.SetRows(ReleaseRows(msg.list.Data, time.Now()))
		return m, nil

	case releaseErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m ReleaseListModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(style.Title.Render("Releases") + "\n\n")

	if m.err != nil {
		b.WriteString(style.Error.Render("Error: "+m.err.Error()) + "\n")
		b.WriteString(style.Hint("Press q to go back"))
		return b.String()
	}
	if m.loading {
		b.WriteString(m.spinner.View() + " Loading releases...\n")
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(style.DimText.Render(fmt.Sprintf("Page %d of %d (Total: %d)", m.page, m.pages, m.total)))
	b.WriteString("\n")
	b.WriteString(style.StatusBar.Render("↑/↓ navigate • enter details • n next page • p prev page • q quit"))
	return b.String()
}

func (m ReleaseListModel) fetch(page int) tea.Cmd {
	return func() tea.Msg {
		list, err := m.load(context.Background(), page)
		if err != nil {
			return releaseErrorMsg{err: err}
		}
		if list == nil {
			return releaseErrorMsg{err: fmt.Errorf("empty release list response")}
		}
		return releasesLoadedMsg{page: page, list: list}
	}
}

// ReleaseRows renders releases as table rows relative to now.
func ReleaseRows(releases []airborne.Release, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(releases))
	for _, r := range releases {
		status, traffic := "-", "-"
		if r.Experiment != nil {
			status = r.Experiment.Status
			traffic = fmt.Sprintf("%d%%", r.Experiment.TrafficPercentage)
		}
		rows = append(rows, table.Row{
			r.ID,
			orDash(r.Package.Version),
			orDash(r.Config.Version),
			status,
			traffic,
			RelativeTime(r.CreatedAt, now),
		})
	}
	return rows
}

// RelativeTime renders an RFC 3339 timestamp as "3 hours ago". Unparseable
// values are returned as is.
func RelativeTime(ts string, now time.Time) string {
	if ts == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RunReleaseList starts the release browser and returns the release id the
// user opened, or "" when they quit.
func RunReleaseList(load ReleasePager) (string, error) {
	final, err := tea.NewProgram(NewReleaseListModel(load), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("TUI error: %w", err)
	}
	return final.(ReleaseListModel).Selected(), nil
}
