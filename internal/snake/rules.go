package snake

import "github.com/vovakirdan/snake-arena/internal/core"

// Points awarded per food. Walls mode is harder, so it pays more.
const (
	wallsFoodPoints       = 15
	passThroughFoodPoints = 10
)

// SelfCollision reports whether head lands on any segment of body.
func SelfCollision(head core.Position, body []core.Position) bool {
	for _, seg := range body {
		if seg == head {
			return true
		}
	}
	return false
}

// FoodCollision reports whether head is on the food cell.
func FoodCollision(head, food core.Position) bool {
	return head == food
}

// IsValidDirectionChange forbids reversing straight into the neck.
// Keeping the current direction is always valid.
func IsValidDirectionChange(current, requested core.Direction) bool {
	return requested != current.Opposite()
}

// FoodPoints returns the score for eating one food in the given mode.
// Unknown modes score nothing.
func FoodPoints(mode Mode) int {
	switch mode {
	case ModeWalls:
		return wallsFoodPoints
	case ModePassThrough:
		return passThroughFoodPoints
	default:
		return 0
	}
}
