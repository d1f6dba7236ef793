package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/game"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// scriptedGame ends after a fixed number of ticks with a fixed score.
type scriptedGame struct {
	endAfter  int
	score     int
	level     int
	ticks     int
	resets    int
	lastInput []core.Action
	store     game.HighScoreStore
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	g.lastInput = g.lastInput[:0]
	for a := range in.Actions {
		g.lastInput = append(g.lastInput, a)
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.score, Level: g.level, GameOver: g.ticks >= g.endAfter}
}

func (g *scriptedGame) SetHighScoreStore(s game.HighScoreStore) { g.store = s }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"s", core.ActionDown, false},
		{"d", core.ActionRight, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestKeyMapperMenuActions(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":   MenuActionUp,
		"j":   MenuActionDown,
		" ":   MenuActionSelect,
		"b":   MenuActionBack,
		"q":   MenuActionQuit,
		"zzz": MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", k, got, want)
		}
	}
}

func TestModelForwardsKeysAsOneFrame(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := NewModel(g, nil, core.DefaultConfig(), "s1")
	m.Init()

	next, _ := m.Update(keyMsg("a"))
	next, _ = next.Update(TickMsg{})
	if len(g.lastInput) != 1 || g.lastInput[0] != core.ActionLeft {
		t.Fatalf("input after a = %v, want [Left]", g.lastInput)
	}

	next.Update(TickMsg{})
	if len(g.lastInput) != 0 {
		t.Errorf("input frame not cleared, got %v", g.lastInput)
	}
}

func TestModelSavesScoreOnceOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{endAfter: 3, score: 700, level: 2}
	var model tea.Model = NewModel(g, store, core.DefaultConfig(), "session-x")
	if g.store == nil {
		t.Fatal("high score store not handed to the game")
	}
	model.Init()

	for i := 0; i < 10; i++ {
		model, _ = model.Update(TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Points != 700 || scores[0].Level != 2 || scores[0].SessionID != "session-x" {
		t.Errorf("Saved score = %+v", scores[0])
	}
}

func TestModelNilStoreIsNotHandedOver(t *testing.T) {
	g := &scriptedGame{endAfter: 1}
	NewModel(g, nil, core.DefaultConfig(), "")
	if g.store != nil {
		t.Error("nil store should not be passed to the game")
	}
}

func TestModelQuit(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	var model tea.Model = NewModel(g, nil, core.DefaultConfig(), "")
	model, cmd := model.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if !model.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if model.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelBackOnlyWhenAllowedAndOver(t *testing.T) {
	g := &scriptedGame{endAfter: 1}
	m := NewModel(g, nil, core.DefaultConfig(), "")
	m.Init()

	var model tea.Model = m
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(keyMsg("b"))
	if model.(Model).BackToMenu() {
		t.Error("back should be ignored outside SSH sessions")
	}

	m2 := NewModel(g, nil, core.DefaultConfig(), "")
	m2.allowBack = true
	model = m2
	model.Init()
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(keyMsg("b"))
	if !model.(Model).BackToMenu() {
		t.Error("back should leave a finished game")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorYellow)
	s.DrawText(0, 1, "cd")
	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("RenderScreen produced %d line breaks, want 1", lines)
	}
}

func TestScoreboardShowsRecordAndSessions(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("pacman", 4200, 3, "abcdef1234567890"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHighScore("pacman", game.Score{Points: 4200, LevelNumber: 3}); err != nil {
		t.Fatal(err)
	}

	variants := []registry.GameInfo{
		{ID: "pacman", Title: "Pac-Man", Variant: "pacman"},
		{ID: "mspacman", Title: "Ms. Pac-Man", Variant: "mspacman"},
	}
	var model tea.Model = newScoreboard(store, variants, 100, 30)
	view := model.View()
	for _, want := range []string{"RECORD 4200  level 3", "abcdef12", "1 games"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "abcdef123") {
		t.Error("session id should be cut to its prefix")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb := model.(ScoreboardModel)
	if sb.Variant() != "mspacman" {
		t.Fatalf("Variant() = %q after tab", sb.Variant())
	}
	if view := sb.View(); !strings.Contains(view, "no record yet") || !strings.Contains(view, "No finished games") {
		t.Errorf("empty variant view:\n%s", view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if model.(ScoreboardModel).Variant() != "pacman" {
		t.Error("left should wrap back to pacman")
	}
	model, _ = model.Update(keyMsg("b"))
	if !model.(ScoreboardModel).IsGoingBack() || model.View() != "" {
		t.Error("b should leave the scoreboard")
	}
}
