package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuSelectMode(t *testing.T) {
	m := NewMenuModel(80, 24, "amy", snake.ModeWalls)

	view := m.View()
	for _, want := range []string{"S N A K E", "Welcome, amy", "Walls", "Pass-Through", "High Scores"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || *m.Selected() != snake.ModePassThrough {
		t.Errorf("Selected() = %v, expected pass-through", m.Selected())
	}
}

func TestMenuInitialCursor(t *testing.T) {
	m := NewMenuModel(80, 24, "", snake.ModePassThrough)
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || *m.Selected() != snake.ModePassThrough {
		t.Errorf("Selected() = %v, expected pass-through", m.Selected())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(80, 24, "", snake.ModeWalls)
	for range 5 {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("last item should open the scoreboard")
	}

	m = NewMenuModel(80, 24, "", snake.ModeWalls)
	m = updateMenu(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestScoreboardTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, rec := range []storage.GameRecord{
		{Player: "a", Mode: snake.ModeWalls, Score: 30},
		{Player: "b", Mode: snake.ModePassThrough, Score: 50},
		{Player: "c", Mode: snake.ModeWalls, Score: 0},
	} {
		if _, err := store.SaveGame(rec); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.Mode() != "" || len(m.Scores()) != 2 {
		t.Fatalf("all-modes tab: mode %q, %d scores", m.Mode(), len(m.Scores()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Mode() != snake.ModeWalls || len(m.Scores()) != 1 || m.Scores()[0].Player != "a" {
		t.Errorf("walls tab: mode %q, scores %+v", m.Mode(), m.Scores())
	}
	if !strings.Contains(m.View(), "HIGH SCORES - Walls") {
		t.Error("title should name the mode")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.Mode() != snake.ModePassThrough {
		t.Errorf("shift+tab should wrap to the last tab, got %q", m.Mode())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("expected empty message")
	}
}

func TestSessionModelFlow(t *testing.T) {
	scores := &fakeScores{}
	s := NewSessionModel(SessionOptions{
		Player: "sam",
		Mode:   snake.ModeWalls,
		Runtime: core.RuntimeConfig{
			ScreenW: 80, ScreenH: 30, GridSize: 10, TickInterval: 1, Seed: 1,
		},
		Scores: scores,
		Logger: quietLogger(),
	})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.current != screenGame {
		t.Fatalf("expected game screen, got %v", s.current)
	}
	if s.game.State().Phase != snake.PhasePlaying {
		t.Fatalf("game should auto-start, phase %v", s.game.State().Phase)
	}

	step(runeKey("p"))
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.current != screenMenu {
		t.Fatalf("expected menu after back, got %v", s.current)
	}

	// fakeScores is not a Leaderboard, so the board is empty
	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.current != screenScores {
		t.Fatalf("expected scoreboard, got %v", s.current)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.current != screenMenu {
		t.Fatalf("expected menu after leaving scores, got %v", s.current)
	}

	step(runeKey("q"))
	if !s.quitting || s.View() != "" {
		t.Error("q should end the session")
	}
}
