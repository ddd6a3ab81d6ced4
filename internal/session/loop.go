// Package session runs a snake game on a timer and streams its progress
// to a transport-neutral Sink. It is used by the network front ends.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// ResultSaver persists finished games.
// It keeps this package independent of the storage layer.
type ResultSaver interface {
	SaveResult(player string, s snake.Summary) error
}

// Config configures a Loop.
type Config struct {
	ID            string        // Session ID; a random UUID if empty
	Player        string        // Name stored with results
	TickInterval  time.Duration // Time between ticks
	CommandBuffer int           // Queued commands before new ones are dropped
	Saver         ResultSaver   // Optional
	Logger        *log.Logger   // Optional
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdDirection
	cmdPause
	cmdReset
	cmdRename
)

type command struct {
	kind   commandKind
	mode   snake.Mode
	dir    core.Direction
	player string
}

// Loop owns one Engine and is the only thing that ticks it.
type Loop struct {
	id       string
	player   string
	engine   *snake.Engine
	sink     Sink
	saver    ResultSaver
	logger   *log.Logger
	interval time.Duration

	cmds     chan command
	done     chan struct{}
	doneOnce sync.Once

	ticker  *time.Ticker
	running bool
}

// NewLoop creates a loop for engine that publishes to sink.
func NewLoop(engine *snake.Engine, sink Sink, cfg Config) *Loop {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 150 * time.Millisecond
	}
	if cfg.CommandBuffer < 1 {
		cfg.CommandBuffer = 32
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Loop{
		id:       cfg.ID,
		player:   cfg.Player,
		engine:   engine,
		sink:     sink,
		saver:    cfg.Saver,
		logger:   cfg.Logger.With("session", cfg.ID),
		interval: cfg.TickInterval,
		cmds:     make(chan command, cfg.CommandBuffer),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier.
func (l *Loop) ID() string {
	return l.id
}

// Start queues a request to start a game in mode.
func (l *Loop) Start(mode snake.Mode) {
	l.send(command{kind: cmdStart, mode: mode})
}

// Turn queues a direction change.
func (l *Loop) Turn(d core.Direction) {
	l.send(command{kind: cmdDirection, dir: d})
}

// TogglePause queues a pause/resume.
func (l *Loop) TogglePause() {
	l.send(command{kind: cmdPause})
}

// Reset queues a return to the NotStarted phase.
func (l *Loop) Reset() {
	l.send(command{kind: cmdReset})
}

// SetPlayer queues a change of the name stored with later results.
func (l *Loop) SetPlayer(name string) {
	l.send(command{kind: cmdRename, player: name})
}

// send never blocks; a full queue drops the command.
func (l *Loop) send(c command) {
	select {
	case l.cmds <- c:
	default:
		l.logger.Debug("command dropped", "kind", c.kind)
	}
}

// Run processes commands and ticks until ctx is cancelled, Stop is called,
// or the sink goes away. It returns ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.ticker = time.NewTicker(l.interval)
	l.ticker.Stop()
	defer l.ticker.Stop()

	l.logger.Debug("session started", "player", l.player)
	l.publishState()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-l.done:
			return nil

		case <-l.sink.Done():
			l.logger.Debug("sink closed")
			return nil

		case c := <-l.cmds:
			l.apply(c)
			l.syncTicker()

		case <-l.ticker.C:
			l.drainCommands()
			l.tick()
			l.syncTicker()
		}
	}
}

// Stop ends Run. Safe to call multiple times.
func (l *Loop) Stop() {
	l.doneOnce.Do(func() {
		close(l.done)
	})
}

func (l *Loop) drainCommands() {
	for {
		select {
		case c := <-l.cmds:
			l.apply(c)
		default:
			return
		}
	}
}

func (l *Loop) apply(c command) {
	switch c.kind {
	case cmdStart:
		// A finished game is restarted in place.
		if l.engine.State().Phase == snake.PhaseGameOver {
			l.engine.Reset()
		}
		if err := l.engine.Start(c.mode); err != nil {
			l.sink.Send(ErrorEvent{Message: err.Error()})
			return
		}
		l.logger.Info("game started", "player", l.player, "mode", c.mode)
	case cmdDirection:
		// Rejected turns are not reported.
		l.engine.RequestDirectionChange(c.dir)
		return
	case cmdPause:
		l.engine.PauseToggle()
	case cmdReset:
		l.engine.Reset()
	case cmdRename:
		l.player = c.player
		return
	}
	l.publishState()
}

func (l *Loop) tick() {
	res := l.engine.Tick()
	l.sink.Send(StateEvent{State: res.State})

	if ate, ok := res.FoodEaten(); ok {
		l.sink.Send(FoodEvent{Score: ate.Score, Points: ate.Points})
	}

	if summary, ok := res.GameOver(); ok {
		l.logger.Info("game over",
			"player", l.player,
			"mode", summary.Mode,
			"score", summary.Score,
			"length", summary.SnakeLength,
			"reason", summary.Reason,
		)
		l.save(summary)
		l.sink.Send(GameOverEvent{Player: l.player, Summary: summary})
	}
}

func (l *Loop) save(summary snake.Summary) {
	if l.saver == nil {
		return
	}
	if err := l.saver.SaveResult(l.player, summary); err != nil {
		l.logger.Error("cannot save result", "err", err)
	}
}

func (l *Loop) publishState() {
	l.sink.Send(StateEvent{State: l.engine.State()})
}

// syncTicker runs the ticker only while playing. Resuming starts a fresh
// interval so paused time is never caught up.
func (l *Loop) syncTicker() {
	playing := l.engine.State().Phase == snake.PhasePlaying
	switch {
	case playing && !l.running:
		l.ticker.Reset(l.interval)
		l.running = true
	case !playing && l.running:
		l.ticker.Stop()
		l.running = false
	}
}
