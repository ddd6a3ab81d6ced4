package snake

import (
	"encoding/json"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Event is something noteworthy that happened during a tick.
type Event interface {
	snakeEvent()
}

// FoodEatenEvent is emitted when the snake eats. Score is the new total.
type FoodEatenEvent struct {
	Score    int
	Points   int
	Position core.Position
}

func (FoodEatenEvent) snakeEvent() {}

// GameOverEvent is emitted once, on the tick that ends the game.
type GameOverEvent struct {
	Summary Summary
}

func (GameOverEvent) snakeEvent() {}

// Summary holds the final figures of a finished game for persistence.
type Summary struct {
	Mode        Mode          `json:"mode"`
	Score       int           `json:"score"`
	SnakeLength int           `json:"snake_length"`
	Moves       int           `json:"moves"`
	FoodEaten   int           `json:"food_eaten"`
	Duration    time.Duration `json:"-"`
	Reason      Reason        `json:"reason"`
}

// DurationSeconds returns the game length rounded down to whole seconds.
func (s Summary) DurationSeconds() int {
	return int(s.Duration / time.Second)
}

// MarshalJSON adds duration_seconds to the encoded summary.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		DurationSeconds int `json:"duration_seconds"`
	}{plain(s), s.DurationSeconds()})
}

// TickResult is returned by Engine.Tick.
type TickResult struct {
	State  GameState
	Events []Event
}

// GameOver returns the summary if this tick ended the game.
func (r TickResult) GameOver() (Summary, bool) {
	for _, evt := range r.Events {
		if over, ok := evt.(GameOverEvent); ok {
			return over.Summary, true
		}
	}
	return Summary{}, false
}

// FoodEaten returns the food event if the snake ate this tick.
func (r TickResult) FoodEaten() (FoodEatenEvent, bool) {
	for _, evt := range r.Events {
		if ate, ok := evt.(FoodEatenEvent); ok {
			return ate, true
		}
	}
	return FoodEatenEvent{}, false
}
