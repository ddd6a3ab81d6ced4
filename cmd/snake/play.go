package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

var (
	flagMode   string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game in the current terminal.

Without --mode a menu lets you pick the mode or view the high scores.

Controls:
  Arrows/WASD/HJKL  - Turn
  Enter             - Start
  Tab               - Switch mode (before start)
  P/Space           - Pause
  R                 - Restart (after game over)
  Esc/B             - Back
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot to ~/.snake/screenshots

Examples:
  snake play
  snake play --mode walls
  snake play --mode pass-through --player ada --speed fast`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: walls, pass-through (skips the menu)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with scores (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	logger, closeLog := playLogger()
	defer closeLog()

	// Continue without storage - game still works
	var scores tui.ScoreKeeper
	var board tui.Leaderboard
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		scores, board = store, store
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.GameOptions{
		Player:  player,
		Runtime: runtimeConfig(width, height),
		Scores:  scores,
		Logger:  logger,
	}

	if flagMode != "" {
		mode, err := snake.ParseMode(flagMode)
		if err != nil {
			return fmt.Errorf("unknown mode %q (want walls or pass-through)", flagMode)
		}
		opts.Mode = mode
		return tui.Run(opts)
	}

	mode := appConfig.Mode()
	for {
		result, err := tui.RunMenu(width, height, player, mode)
		if err != nil {
			return err
		}
		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(board, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		mode = result.Mode
		opts.Mode = mode
		opts.AutoStart = true
		if err := tui.Run(opts); err != nil {
			return err
		}
	}
}

// playLogger writes to ~/.snake/snake.log; stderr belongs to the TUI.
func playLogger() (*log.Logger, func()) {
	discard := func() {}

	dir, err := config.DataDir()
	if err != nil {
		return log.NewWithOptions(io.Discard, log.Options{}), discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.NewWithOptions(io.Discard, log.Options{}), discard
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           appConfig.LogLevel(),
	})
	return logger, func() { f.Close() }
}
