package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(12, 2)
	scr.DrawText(0, 0, "Score: 15")
	scr.SetColor(3, 1, 'O', core.ColorBrightGreen)
	scr.SetColor(4, 1, 'o', core.ColorGreen)

	out := RenderScreen(scr)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Score: 15") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "O") || !strings.Contains(lines[1], "o") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
