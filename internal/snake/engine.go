package snake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// DefaultGridSize is the side of the board when none is configured.
const DefaultGridSize = 20

// noFood parks the food off the board when every cell is taken.
var noFood = core.Position{X: -1, Y: -1}

// Config configures an Engine.
type Config struct {
	GridSize int              // Board side in cells; DefaultGridSize if <= 0
	Seed     int64            // RNG seed for food placement
	Clock    func() time.Time // Used to time games; time.Now if nil
}

// Engine owns one GameState and advances it. All methods are safe for
// concurrent use; each one is applied atomically.
type Engine struct {
	mu       sync.Mutex
	gridSize int
	rng      *rand.Rand
	clock    func() time.Time

	state GameState

	// Latest valid direction request, applied at the start of the next tick.
	pending    core.Direction
	hasPending bool

	startedAt time.Time
}

// NewEngine creates an engine in the NotStarted phase.
func NewEngine(cfg Config) *Engine {
	if cfg.GridSize <= 0 {
		cfg.GridSize = DefaultGridSize
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	e := &Engine{
		gridSize: cfg.GridSize,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		clock:    cfg.Clock,
	}
	e.resetLocked(ModeWalls)
	return e
}

// GridSize returns the board side in cells.
func (e *Engine) GridSize() int {
	return e.gridSize
}

// State returns a copy of the current state.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Start begins a new game in the given mode.
// The engine must be in the NotStarted phase.
func (e *Engine) Start(mode Mode) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}

	center := e.gridSize / 2
	e.state = GameState{
		Snake:     []core.Position{{X: center, Y: center}},
		Direction: core.DirRight,
		Mode:      mode,
		Alive:     true,
		Phase:     PhasePlaying,
		GridSize:  e.gridSize,
	}
	e.state.Food = e.spawnFood()
	e.hasPending = false
	e.startedAt = e.clock()
	return nil
}

// Reset discards the current game and returns to NotStarted.
// The last mode is kept so front ends can offer "play again".
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked(e.state.Mode)
}

func (e *Engine) resetLocked(mode Mode) {
	e.state = GameState{
		Direction: core.DirRight,
		Mode:      mode,
		Phase:     PhaseNotStarted,
		Food:      noFood,
		GridSize:  e.gridSize,
	}
	e.hasPending = false
}

// PauseToggle switches between Playing and Paused. It does nothing in other
// phases. Returns true if the game is paused afterwards.
func (e *Engine) PauseToggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state.Phase {
	case PhasePlaying:
		e.state.Phase = PhasePaused
		e.state.Paused = true
	case PhasePaused:
		e.state.Phase = PhasePlaying
		e.state.Paused = false
	}
	return e.state.Paused
}

// RequestDirectionChange buffers a turn for the next tick. Requests that
// would reverse the snake, or arrive outside the Playing phase, are dropped.
// A later valid request replaces an earlier one.
func (e *Engine) RequestDirectionChange(d core.Direction) bool {
	if !d.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhasePlaying {
		return false
	}
	if !IsValidDirectionChange(e.state.Direction, d) {
		return false
	}
	e.pending = d
	e.hasPending = true
	return true
}

// Tick advances the game by one cell. Outside the Playing phase it returns
// the unchanged state and no events.
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhasePlaying || len(e.state.Snake) == 0 {
		return TickResult{State: e.state.Clone()}
	}

	s := &e.state
	s.Ticks++

	// Apply buffered direction
	if e.hasPending {
		if e.pending != s.Direction {
			s.Direction = e.pending
			s.Moves++
		}
		e.hasPending = false
	}

	newHead := core.Advance(s.Snake[0], s.Direction)
	switch s.Mode {
	case ModeWalls:
		if core.IsOutOfBounds(newHead, e.gridSize) {
			return e.endGame(ReasonWallCollision)
		}
	case ModePassThrough:
		newHead = core.Wrap(newHead, e.gridSize)
	}

	// The tail has not moved yet, so it still counts.
	if SelfCollision(newHead, s.Snake) {
		return e.endGame(ReasonSelfCollision)
	}

	var events []Event
	if FoodCollision(newHead, s.Food) {
		grown := make([]core.Position, len(s.Snake)+1)
		grown[0] = newHead
		copy(grown[1:], s.Snake)
		s.Snake = grown

		points := FoodPoints(s.Mode)
		s.Score += points
		s.FoodEaten++
		s.Food = e.spawnFood()
		events = append(events, FoodEatenEvent{Score: s.Score, Points: points, Position: newHead})
	} else {
		copy(s.Snake[1:], s.Snake[:len(s.Snake)-1])
		s.Snake[0] = newHead
	}

	return TickResult{State: s.Clone(), Events: events}
}

// endGame moves to GameOver without touching the board.
func (e *Engine) endGame(reason Reason) TickResult {
	s := &e.state
	s.Phase = PhaseGameOver
	s.Alive = false
	s.Reason = reason

	summary := Summary{
		Mode:        s.Mode,
		Score:       s.Score,
		SnakeLength: len(s.Snake),
		Moves:       s.Moves,
		FoodEaten:   s.FoodEaten,
		Duration:    e.clock().Sub(e.startedAt),
		Reason:      reason,
	}
	return TickResult{
		State:  s.Clone(),
		Events: []Event{GameOverEvent{Summary: summary}},
	}
}

// spawnFood picks a uniformly random cell not covered by the snake.
func (e *Engine) spawnFood() core.Position {
	occupied := make(map[core.Position]bool, len(e.state.Snake))
	for _, seg := range e.state.Snake {
		occupied[seg] = true
	}

	free := make([]core.Position, 0, e.gridSize*e.gridSize-len(occupied))
	for y := 0; y < e.gridSize; y++ {
		for x := 0; x < e.gridSize; x++ {
			p := core.Position{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return noFood
	}
	return free[e.rng.Intn(len(free))]
}
