// Package snake implements the Snake simulation engine: the rules that advance
// the board by one tick and the state machine around them. It performs no I/O;
// front ends feed it commands and consume its snapshots and events.
package snake

import (
	"errors"
	"strings"

	"github.com/vovakirdan/snake-arena/internal/core"
)

var (
	// ErrInvalidMode is returned for any mode other than walls or pass-through.
	ErrInvalidMode = errors.New("snake: invalid game mode")

	// ErrAlreadyStarted is returned by Start when a game is already in progress.
	ErrAlreadyStarted = errors.New("snake: game already started")
)

// Mode selects boundary handling and food value.
type Mode string

const (
	ModeWalls       Mode = "walls"
	ModePassThrough Mode = "pass-through"
)

// Modes returns all playable modes in menu order.
func Modes() []Mode {
	return []Mode{ModeWalls, ModePassThrough}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeWalls || m == ModePassThrough
}

// Title returns the display name.
func (m Mode) Title() string {
	switch m {
	case ModeWalls:
		return "Walls"
	case ModePassThrough:
		return "Pass-Through"
	default:
		return "Unknown"
	}
}

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Reason tags why a game ended.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonWallCollision Reason = "wall_collision"
	ReasonSelfCollision Reason = "self_collision"
)

// GameState is the complete, self-consistent state of one game.
// Values returned by the engine are copies and safe to keep.
type GameState struct {
	Snake     []core.Position `json:"snake"` // Head at index 0
	Food      core.Position   `json:"food"`
	Direction core.Direction  `json:"direction"`
	Mode      Mode            `json:"mode"`
	Score     int             `json:"score"`
	Alive     bool            `json:"alive"`
	Paused    bool            `json:"paused"`
	Phase     Phase           `json:"phase"`
	Reason    Reason          `json:"reason,omitempty"`
	FoodEaten int             `json:"food_eaten"`
	Moves     int             `json:"moves"`
	Ticks     uint64          `json:"ticks"`
	GridSize  int             `json:"grid_size"`
}

// Head returns the head segment, or (-1, -1) if there is no snake.
func (s GameState) Head() core.Position {
	if len(s.Snake) == 0 {
		return noFood
	}
	return s.Snake[0]
}

// HasFood reports whether food is on the board.
func (s GameState) HasFood() bool {
	return s.Food != noFood
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	c := s
	if s.Snake != nil {
		c.Snake = make([]core.Position, len(s.Snake))
		copy(c.Snake, s.Snake)
	}
	return c
}
