// Package core provides fundamental types and utilities for the snake engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"strings"
)

// ErrUnknownDirection is returned when a direction token cannot be parsed.
var ErrUnknownDirection = errors.New("core: unknown direction")

// Position is a cell on the grid, 0-indexed from the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four movement directions.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the direction as its token (UP, DOWN, LEFT, RIGHT).
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrUnknownDirection
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction token.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection converts a token like "UP" or "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return DirUp, nil
	case "DOWN":
		return DirDown, nil
	case "LEFT":
		return DirLeft, nil
	case "RIGHT":
		return DirRight, nil
	}
	return DirRight, ErrUnknownDirection
}

// Advance returns the position one cell away from p in direction d.
func Advance(p Position, d Direction) Position {
	switch d {
	case DirUp:
		return Position{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Position{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Position{X: p.X - 1, Y: p.Y}
	case DirRight:
		return Position{X: p.X + 1, Y: p.Y}
	}
	return p
}

// IsOutOfBounds returns true if either coordinate lies outside [0, gridSize).
func IsOutOfBounds(p Position, gridSize int) bool {
	return p.X < 0 || p.X >= gridSize || p.Y < 0 || p.Y >= gridSize
}

// Wrap moves a position that stepped one cell off the grid to the opposite edge.
// Positions further out are not supported.
func Wrap(p Position, gridSize int) Position {
	switch {
	case p.X < 0:
		p.X = gridSize - 1
	case p.X >= gridSize:
		p.X = 0
	}
	switch {
	case p.Y < 0:
		p.Y = gridSize - 1
	case p.Y >= gridSize:
		p.Y = 0
	}
	return p
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
