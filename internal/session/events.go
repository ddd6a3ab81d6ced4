package session

import "github.com/vovakirdan/snake-arena/internal/snake"

// Event is published by a Loop to its Sink.
type Event interface {
	sessionEvent()
}

// StateEvent carries the state after a command or tick.
type StateEvent struct {
	State snake.GameState
}

func (StateEvent) sessionEvent() {}

// FoodEvent is sent when the snake eats. Score is the new total.
type FoodEvent struct {
	Score  int
	Points int
}

func (FoodEvent) sessionEvent() {}

// GameOverEvent is sent once per finished game.
type GameOverEvent struct {
	Player  string
	Summary snake.Summary
}

func (GameOverEvent) sessionEvent() {}

// ErrorEvent reports a rejected command, e.g. an unknown mode.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) sessionEvent() {}
