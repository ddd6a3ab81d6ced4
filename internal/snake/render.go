package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/core"
)

const (
	hudHeight = 3  // Title, stats, separator
	hudWidth  = 42 // Fits the stats line of a full 100x100 board
)

// BoardSize returns the screen size needed to draw a board of the given side
// together with its HUD.
func BoardSize(gridSize int) (w, h int) {
	boxW, boxH := boxSize(gridSize)
	return max(boxW, hudWidth), boxH + hudHeight
}

// boxSize is the framed board alone. Each cell is two columns wide so the
// board looks square in a terminal.
func boxSize(gridSize int) (w, h int) {
	return gridSize*2 + 2, gridSize + 2
}

// Render draws the state into dst. The screen is cleared first.
func Render(state GameState, dst *core.Screen) {
	dst.Clear()

	renderHUD(state, dst)

	needW, needH := BoardSize(state.GridSize)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	boxW, boxH := boxSize(state.GridSize)
	offX := (dst.Width() - boxW) / 2
	offY := hudHeight
	dst.DrawBox(core.NewRect(offX, offY, boxW, boxH), core.ColorGray)

	cell := func(p core.Position, r rune, c core.Color) {
		dst.SetColor(offX+1+p.X*2, offY+1+p.Y, r, c)
	}

	if state.HasFood() {
		cell(state.Food, '*', core.ColorBrightRed)
	}
	for i := len(state.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			headColor := core.ColorBrightGreen
			if state.Phase == PhaseGameOver {
				headColor = core.ColorRed
			}
			cell(state.Snake[i], 'O', headColor)
		} else {
			cell(state.Snake[i], 'o', core.ColorGreen)
		}
	}

	switch state.Phase {
	case PhaseNotStarted:
		renderOverlay(dst, "S N A K E", "Enter: start  Tab: mode")
	case PhasePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case PhaseGameOver:
		renderOverlay(dst, fmt.Sprintf("Game Over - %s", reasonText(state.Reason)),
			fmt.Sprintf("Score %d  R: again  B: back", state.Score))
	}
}

func reasonText(r Reason) string {
	switch r {
	case ReasonWallCollision:
		return "hit the wall"
	case ReasonSelfCollision:
		return "bit yourself"
	default:
		return "ended"
	}
}

// renderHUD draws the title row, the stats row and a separator.
// The right end of the title row is left free for the caller.
func renderHUD(state GameState, dst *core.Screen) {
	dst.DrawText(0, 0, fmt.Sprintf(" Snake (%s)", state.Mode.Title()))
	dst.DrawText(0, 1, fmt.Sprintf(" Score: %d  Length: %d  Food: %d",
		state.Score, len(state.Snake), state.FoodEaten))

	for x := range dst.Width() {
		dst.SetColor(x, hudHeight-1, '─', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorYellow)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
