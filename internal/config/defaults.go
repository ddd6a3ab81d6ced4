package config

import (
	_ "embed"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			GridSize: snake.DefaultGridSize,
		},
		Timing: TimingConfig{
			Speed:          SpeedNormal,
			TickIntervalMS: 150,
		},
		Game: GameConfig{
			DefaultMode: string(snake.ModeWalls),
		},
		Storage: StorageConfig{
			DBPath: "~/.snake/scores.db",
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			WebAddr:            ":8080",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
