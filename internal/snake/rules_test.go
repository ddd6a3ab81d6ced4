package snake

import (
	"errors"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

var allDirections = []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

func TestSelfCollision(t *testing.T) {
	body := []core.Position{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}

	tests := []struct {
		name     string
		head     core.Position
		body     []core.Position
		expected bool
	}{
		{"empty body", core.Position{X: 5, Y: 5}, nil, false},
		{"hits first segment", core.Position{X: 5, Y: 5}, body, true},
		{"hits last segment", core.Position{X: 5, Y: 7}, body, true},
		{"adjacent but clear", core.Position{X: 6, Y: 6}, body, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelfCollision(tc.head, tc.body); got != tc.expected {
				t.Errorf("SelfCollision(%v) = %v, expected %v", tc.head, got, tc.expected)
			}
		})
	}
}

func TestFoodCollision(t *testing.T) {
	food := core.Position{X: 3, Y: 4}
	if !FoodCollision(core.Position{X: 3, Y: 4}, food) {
		t.Error("expected collision on exact match")
	}
	if FoodCollision(core.Position{X: 4, Y: 3}, food) {
		t.Error("swapped coordinates must not collide")
	}
}

func TestIsValidDirectionChange(t *testing.T) {
	for _, d := range allDirections {
		if IsValidDirectionChange(d, d.Opposite()) {
			t.Errorf("reversing %v -> %v should be invalid", d, d.Opposite())
		}
		if !IsValidDirectionChange(d, d) {
			t.Errorf("keeping %v should be valid", d)
		}
		for _, other := range allDirections {
			if other == d || other == d.Opposite() {
				continue
			}
			if !IsValidDirectionChange(d, other) {
				t.Errorf("turning %v -> %v should be valid", d, other)
			}
		}
	}
}

func TestFoodPoints(t *testing.T) {
	if got := FoodPoints(ModeWalls); got != 15 {
		t.Errorf("FoodPoints(walls) = %d, expected 15", got)
	}
	if got := FoodPoints(ModePassThrough); got != 10 {
		t.Errorf("FoodPoints(pass-through) = %d, expected 10", got)
	}
	if got := FoodPoints(Mode("zen")); got != 0 {
		t.Errorf("FoodPoints(zen) = %d, expected 0", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"walls", ModeWalls, false},
		{"WALLS", ModeWalls, false},
		{"pass-through", ModePassThrough, false},
		{"passthrough", "", true},
		{"zen", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidMode) {
				t.Errorf("ParseMode(%q) error = %v, expected ErrInvalidMode", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseMode(%q) = %q, %v", tc.in, got, err)
		}
	}
}
