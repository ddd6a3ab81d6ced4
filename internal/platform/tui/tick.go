// Package tui provides the Bubble Tea front end for the snake game.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game tick. Game identifies the model that
// scheduled it, so ticks left over from an abandoned game are ignored.
type TickMsg struct {
	At   time.Time
	Game uint64
}

var gameCounter atomic.Uint64

func nextGameID() uint64 {
	return gameCounter.Add(1)
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration, game uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Game: game}
	})
}
