package web

import (
	"github.com/vovakirdan/snake-arena/internal/session"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Client actions.
const (
	ActionStart     = "start"
	ActionDirection = "direction"
	ActionPause     = "pause"
	ActionReset     = "reset"
)

// Server message types.
const (
	TypeHello    = "hello"
	TypeState    = "state"
	TypeFood     = "food"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Action    string `json:"action"`
	Mode      string `json:"mode,omitempty"`
	Direction string `json:"direction,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	State   *snake.GameState `json:"state,omitempty"`
	Score   int              `json:"score,omitempty"`
	Points  int              `json:"points,omitempty"`
	Player  string           `json:"player,omitempty"`
	Summary *snake.Summary   `json:"summary,omitempty"`
	Message string           `json:"message,omitempty"`
}

// toMessage converts a session event into its wire form.
func toMessage(evt session.Event) (ServerMessage, bool) {
	switch e := evt.(type) {
	case session.StateEvent:
		st := e.State
		return ServerMessage{Type: TypeState, State: &st}, true
	case session.FoodEvent:
		return ServerMessage{Type: TypeFood, Score: e.Score, Points: e.Points}, true
	case session.GameOverEvent:
		sum := e.Summary
		return ServerMessage{Type: TypeGameOver, Player: e.Player, Summary: &sum}, true
	case session.ErrorEvent:
		return ServerMessage{Type: TypeError, Message: e.Message}, true
	}
	return ServerMessage{}, false
}
