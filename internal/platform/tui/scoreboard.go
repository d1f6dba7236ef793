package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mazechase/internal/game"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

const (
	scoreboardRows = 50 // finished games loaded per variant
	sessionChars   = 8  // session ids are shown by prefix
	dateLayout     = "Jan 02 15:04"
)

var (
	sbTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	sbTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	sbRecord = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 2)
	sbDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev variant")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right/tab", "next variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the record and the finished games of one variant
// at a time.
type ScoreboardModel struct {
	variants []registry.GameInfo
	cursor   int
	store    *storage.Store

	record game.Score
	stats  *storage.VariantStats
	games  int
	table  table.Model

	keys      scoreboardKeys
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel lists every playable variant in the registry.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var variants []registry.GameInfo
	for _, g := range registry.List() {
		if !g.Demo {
			variants = append(variants, g)
		}
	}
	return newScoreboard(store, variants, width, height)
}

func newScoreboard(store *storage.Store, variants []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: variants,
		store:    store,
		keys:     newScoreboardKeys(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Points", Width: 8},
			{Title: "Level", Width: 5},
			{Title: "Session", Width: sessionChars},
			{Title: "Played", Width: len(dateLayout)},
		}),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("11"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	m.table.SetStyles(styles)
	m.fitTable()
	m.load()
	return m
}

// Variant returns the game id shown, or "" when nothing is registered.
func (m ScoreboardModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

// fitTable leaves room for the title, tabs, record box and help.
func (m *ScoreboardModel) fitTable() {
	m.table.SetHeight(max(m.height-12, 3))
}

func (m *ScoreboardModel) load() {
	m.record, m.stats, m.games = game.Score{}, nil, 0
	m.table.SetRows(nil)
	id := m.Variant()
	if m.store == nil || id == "" {
		return
	}

	if hs, err := m.store.LoadHighScore(m.variants[m.cursor].Variant); err == nil {
		m.record = hs
	}
	if st, err := m.store.Stats(id); err == nil {
		m.stats = st
	}
	entries, err := m.store.TopScores(id, scoreboardRows)
	if err != nil {
		return
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		session := e.SessionID
		if len(session) > sessionChars {
			session = session[:sessionChars]
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(e.Points),
			fmt.Sprint(e.Level),
			session,
			e.CreatedAt.Local().Format(dateLayout),
		}
	}
	m.games = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.variants); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.fitTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	sections := []string{sbTitle.Render("H I G H   S C O R E S"), m.tabs(), sbRecord.Render(m.recordText())}
	if m.games == 0 {
		sections = append(sections, sbDim.Italic(true).Render("No finished games yet."))
	} else {
		sections = append(sections, sbFrame.Render(m.table.View()))
	}
	sections = append(sections, sbDim.Render(m.help.View(m.keys)))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
}

func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return sbDim.Render("no variants registered")
	}
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = sbActive.Render(v.Title)
		} else {
			tabs[i] = sbTab.Render(v.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		return sbActive.Render("< " + m.variants[m.cursor].Title + " >")
	}
	return line
}

func (m ScoreboardModel) recordText() string {
	if m.record.Points == 0 {
		return "no record yet"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "RECORD %d  level %d", m.record.Points, m.record.LevelNumber)
	if !m.record.Date.IsZero() {
		fmt.Fprintf(&b, "  %s", m.record.Date.Local().Format(dateLayout))
	}
	if st := m.stats; st != nil && st.GamesCount > 0 {
		fmt.Fprintf(&b, "\n%d games  avg %.0f  best level %d", st.GamesCount, st.AvgScore, st.BestLevel)
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard and reports whether the user went
// back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
