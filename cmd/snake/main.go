// snake is a terminal Snake game with SSH and browser front ends.
//
// Usage:
//
//	snake play              - Play in this terminal
//	snake serve             - Start SSH server for remote play
//	snake web               - Start WebSocket server for browsers
//	snake scores            - Show the leaderboard
//	snake stats [player]    - Show player or per-mode statistics
//	snake show <game-id>    - Show one recorded game
//	snake config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.snake, ./configs)
//	--db <path>         - Scores database (default: ~/.snake/scores.db)
//	--seed <value>      - RNG seed for reproducible food placement
//	--speed <preset>    - slow, normal, fast or custom
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagSpeed    string
	flagLogLevel string

	// Loaded in PersistentPreRunE
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal, over SSH and in the browser",
	Long: `Snake is the classic grid game. Eat food, grow, and avoid hitting
yourself. In walls mode the border kills; in pass-through mode the board
wraps around and food is worth less.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browsers
  scores   - View the leaderboard
  stats    - View player or mode statistics

Examples:
  snake play
  snake play --mode pass-through --speed fast
  snake serve --ssh :2222
  snake web --addr :8080
  snake scores --mode walls`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, custom")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagSpeed != "" {
		preset := config.SpeedPreset(strings.ToLower(flagSpeed))
		if !preset.Valid() {
			return fmt.Errorf("unknown speed %q (want slow, normal, fast or custom)", flagSpeed)
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("unknown log level %q", flagLogLevel)
		}
		cfg.Log.Level = flagLogLevel
	}

	appConfig = cfg
	return nil
}

// newLogger creates the logger for a server command.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           appConfig.LogLevel(),
	})
}

// runtimeConfig builds the engine settings for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		GridSize:     appConfig.Board.GridSize,
		TickInterval: appConfig.TickInterval(),
		Seed:         flagSeed,
	}
}

func openStore() (*storage.Store, error) {
	return storage.Open(config.ExpandHome(appConfig.Storage.DBPath))
}
