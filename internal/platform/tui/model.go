package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/session"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// ScoreKeeper stores finished games and reports the best score.
// *storage.Store implements it.
type ScoreKeeper interface {
	session.ResultSaver
	HighScore(mode snake.Mode) (int, error)
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Player     string
	Mode       snake.Mode
	AutoStart  bool // Start playing immediately instead of showing the title
	QuitOnBack bool // Back exits the program instead of returning to a menu
	Runtime    core.RuntimeConfig
	Scores     ScoreKeeper // Optional
	Logger     *log.Logger // Optional
}

// GameModel is the Bubble Tea model that plays one snake session.
// The engine is driven from Update, so no other goroutine touches it.
type GameModel struct {
	id         uint64
	engine     *snake.Engine
	screen     *core.Screen
	scores     ScoreKeeper
	logger     *log.Logger
	keyMapper  *KeyMapper
	player     string
	mode       snake.Mode
	interval   time.Duration
	best       int
	quitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. With AutoStart the game is already
// in the Playing phase when the first tick arrives.
func NewGameModel(opts GameOptions) GameModel {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultConfig().TickInterval
	}
	if !opts.Mode.Valid() {
		opts.Mode = snake.ModeWalls
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := GameModel{
		id:         nextGameID(),
		engine:     snake.NewEngine(snake.Config{GridSize: cfg.GridSize, Seed: cfg.Seed}),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:     opts.Scores,
		logger:     opts.Logger,
		keyMapper:  NewKeyMapper(),
		player:     opts.Player,
		mode:       opts.Mode,
		interval:   cfg.TickInterval,
		quitOnBack: opts.QuitOnBack,
	}
	m.loadBest()
	if opts.AutoStart {
		m.start()
	}
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.interval, m.id)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if dir, ok := action.Direction(); ok {
		m.engine.RequestDirectionChange(dir)
		return m, nil
	}

	phase := m.engine.State().Phase
	switch action {
	case core.ActionConfirm:
		if phase == snake.PhaseNotStarted {
			m.start()
		}
	case core.ActionPause:
		m.engine.PauseToggle()
	case core.ActionSwitchMode:
		if phase == snake.PhaseNotStarted {
			m.mode = nextMode(m.mode)
			m.loadBest()
		}
	case core.ActionRestart:
		if phase == snake.PhaseGameOver {
			m.engine.Reset()
			m.start()
		}
	case core.ActionBack:
		if phase == snake.PhasePlaying {
			return m, nil
		}
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleTick advances the engine one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	res := m.engine.Tick()
	if summary, ok := res.GameOver(); ok {
		m.finish(summary)
	}
	return m, tickCmd(m.interval, m.id)
}

func (m *GameModel) start() {
	if err := m.engine.Start(m.mode); err != nil {
		m.logger.Warn("cannot start game", "mode", m.mode, "err", err)
		return
	}
	m.logger.Debug("game started", "player", m.player, "mode", m.mode, "grid", m.engine.GridSize())
}

// finish records a finished game. Saving is best effort.
func (m *GameModel) finish(summary snake.Summary) {
	m.logger.Info("game over",
		"player", m.player,
		"mode", summary.Mode,
		"score", summary.Score,
		"reason", summary.Reason,
	)
	if summary.Score > m.best {
		m.best = summary.Score
	}
	if m.scores == nil {
		return
	}
	if err := m.scores.SaveResult(m.player, summary); err != nil {
		m.logger.Error("cannot save game", "err", err)
	}
}

func (m *GameModel) loadBest() {
	m.best = 0
	if m.scores == nil {
		return
	}
	best, err := m.scores.HighScore(m.mode)
	if err != nil {
		m.logger.Warn("cannot load high score", "err", err)
		return
	}
	m.best = best
}

// saveScreenshot writes the current screen to ~/.snake/screenshots.
func (m *GameModel) saveScreenshot() {
	m.renderTo(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

func (m GameModel) renderTo(scr *core.Screen) {
	st := m.engine.State()
	if st.Phase == snake.PhaseNotStarted {
		// Show the mode that Enter would start
		st.Mode = m.mode
	}
	snake.Render(st, scr)

	best := fmt.Sprintf("Best: %d ", m.best)
	scr.DrawText(scr.Width()-len(best), 0, best)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.renderTo(m.screen)
	return RenderScreen(m.screen)
}

// State returns a snapshot of the game.
func (m GameModel) State() snake.GameState {
	return m.engine.State()
}

// Mode returns the mode the next game will use.
func (m GameModel) Mode() snake.Mode {
	return m.mode
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

func nextMode(cur snake.Mode) snake.Mode {
	modes := snake.Modes()
	for i, mode := range modes {
		if mode == cur {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Run starts a local game in the terminal.
func Run(opts GameOptions) error {
	opts.QuitOnBack = true

	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
