// Package config provides YAML-based configuration loading and speed
// presets for the snake game and its servers.
package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	GridSize int `yaml:"grid_size"`
}

// TimingConfig defines how fast the game runs.
type TimingConfig struct {
	Speed          SpeedPreset `yaml:"speed"`
	TickIntervalMS int         `yaml:"tick_interval_ms"` // Used when speed is "custom"
}

// GameConfig holds gameplay defaults.
type GameConfig struct {
	DefaultMode string `yaml:"default_mode"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures the SSH and WebSocket servers.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HostKey            string `yaml:"host_key"` // Empty means <data dir>/ssh_host_key
	WebAddr            string `yaml:"web_addr"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// TickInterval returns the effective time between ticks.
func (c Config) TickInterval() time.Duration {
	if ms, ok := speedIntervals[c.Timing.Speed]; ok {
		return time.Duration(ms) * time.Millisecond
	}
	return time.Duration(c.Timing.TickIntervalMS) * time.Millisecond
}

// Mode returns the configured default mode, falling back to walls.
func (c Config) Mode() snake.Mode {
	m, err := snake.ParseMode(c.Game.DefaultMode)
	if err != nil {
		return snake.ModeWalls
	}
	return m
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMinutes) * time.Minute
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
