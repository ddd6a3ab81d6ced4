package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

type fakeScores struct {
	saved []snake.Summary
	best  map[snake.Mode]int
}

func (f *fakeScores) SaveResult(_ string, s snake.Summary) error {
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeScores) HighScore(mode snake.Mode) (int, error) {
	return f.best[mode], nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&strings.Builder{}, log.Options{})
}

func newTestGame(t *testing.T, opts GameOptions) GameModel {
	t.Helper()
	opts.Runtime = core.RuntimeConfig{
		ScreenW:      80,
		ScreenH:      30,
		GridSize:     10,
		TickInterval: time.Millisecond,
		Seed:         1,
	}
	opts.Logger = quietLogger()
	return NewGameModel(opts)
}

// send feeds one message through Update and returns the new model.
func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = send(t, m, TickMsg{At: time.Now(), Game: m.id})
	return m
}

func TestGameModelStartsOnEnter(t *testing.T) {
	m := newTestGame(t, GameOptions{Mode: snake.ModeWalls})

	if m.State().Phase != snake.PhaseNotStarted {
		t.Fatalf("phase = %v, expected not_started", m.State().Phase)
	}

	// Ticks before start do nothing
	m = tick(t, m)
	if m.State().Ticks != 0 {
		t.Error("ticked before start")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Phase != snake.PhasePlaying {
		t.Fatalf("phase = %v, expected playing", m.State().Phase)
	}

	head := m.State().Head()
	m = tick(t, m)
	if m.State().Head() != core.Advance(head, core.DirRight) {
		t.Errorf("head = %v, expected one step right of %v", m.State().Head(), head)
	}
}

func TestGameModelSwitchesModeBeforeStart(t *testing.T) {
	m := newTestGame(t, GameOptions{Mode: snake.ModeWalls})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Mode() != snake.ModePassThrough {
		t.Fatalf("mode = %q, expected pass-through", m.Mode())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Mode != snake.ModePassThrough {
		t.Errorf("started mode = %q", m.State().Mode)
	}

	// Tab is ignored mid-game
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Mode() != snake.ModePassThrough {
		t.Errorf("mode switched during play")
	}
}

func TestGameModelDirectionAndPause(t *testing.T) {
	m := newTestGame(t, GameOptions{Mode: snake.ModePassThrough, AutoStart: true})

	m, _ = send(t, m, runeKey("w"))
	m = tick(t, m)
	if m.State().Direction != core.DirUp {
		t.Fatalf("direction = %v, expected UP", m.State().Direction)
	}

	m, _ = send(t, m, runeKey("p"))
	if m.State().Phase != snake.PhasePaused {
		t.Fatalf("phase = %v, expected paused", m.State().Phase)
	}
	ticks := m.State().Ticks
	m = tick(t, m)
	m = tick(t, m)
	if m.State().Ticks != ticks {
		t.Error("ticked while paused")
	}

	m, _ = send(t, m, runeKey("p"))
	m = tick(t, m)
	if m.State().Ticks != ticks+1 {
		t.Errorf("ticks = %d, expected %d", m.State().Ticks, ticks+1)
	}
}

func TestGameModelSavesOnGameOver(t *testing.T) {
	scores := &fakeScores{best: map[snake.Mode]int{snake.ModeWalls: 1000}}
	m := newTestGame(t, GameOptions{Mode: snake.ModeWalls, AutoStart: true, Scores: scores, Player: "zed"})

	// The snake heads right from the centre of a 10x10 board
	for i := 0; i < 20 && m.State().Phase == snake.PhasePlaying; i++ {
		m = tick(t, m)
	}
	if m.State().Phase != snake.PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", m.State().Phase)
	}
	m = tick(t, m)

	if len(scores.saved) != 1 {
		t.Fatalf("saved %d games, expected 1", len(scores.saved))
	}
	if scores.saved[0].Reason != snake.ReasonWallCollision {
		t.Errorf("reason = %q", scores.saved[0].Reason)
	}
	if !strings.Contains(m.View(), "Best: 1000") {
		t.Error("view should show the stored best score")
	}

	// Restart
	m, _ = send(t, m, runeKey("r"))
	if m.State().Phase != snake.PhasePlaying || m.State().Score != 0 {
		t.Errorf("restart failed: %+v", m.State())
	}
}

func TestGameModelHUDFitsNarrowWindow(t *testing.T) {
	scores := &fakeScores{best: map[snake.Mode]int{snake.ModePassThrough: 1000}}
	m := newTestGame(t, GameOptions{Mode: snake.ModePassThrough, AutoStart: true, Scores: scores})

	w, h := snake.BoardSize(10)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: w, Height: h})

	view := m.View()
	for _, want := range []string{"Snake (Pass-Through)", "Best: 1000", "Food: 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view at %dx%d missing %q:\n%s", w, h, want, view)
		}
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newTestGame(t, GameOptions{Mode: snake.ModeWalls, AutoStart: true})

	m, _ = send(t, m, TickMsg{At: time.Now(), Game: m.id + 1000})
	if m.State().Ticks != 0 {
		t.Error("tick from another game was applied")
	}
}

func TestGameModelBack(t *testing.T) {
	m := newTestGame(t, GameOptions{Mode: snake.ModeWalls, AutoStart: true})

	// Back is ignored while playing
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during play should be ignored")
	}

	m, _ = send(t, m, runeKey("p"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("expected back to menu while paused")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGame(t, GameOptions{})

	m, cmd := send(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestGameModelQuitOnBack(t *testing.T) {
	m := newTestGame(t, GameOptions{QuitOnBack: true})

	m, _ = send(t, m, runeKey("b"))
	if !m.IsQuitting() {
		t.Error("back should quit a standalone game")
	}
}
