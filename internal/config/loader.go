package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

const (
	minGridSize = 5
	maxGridSize = 100
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load loads the configuration.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml -> embedded default
//
// Files are decoded over Default(), so missing keys keep their defaults.
// Only a bad custom path is an error; broken files elsewhere are skipped.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", "snake.yaml")); ok {
		return cfg, nil
	}

	cfg, err := parse(defaultSnakeYAML)
	if err != nil || cfg.Validate() != nil {
		return Default(), nil
	}
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return Config{}, false
	}
	return cfg, true
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", filename)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Board.GridSize < minGridSize || c.Board.GridSize > maxGridSize {
		return fmt.Errorf("config: grid_size %d outside [%d, %d]: %w",
			c.Board.GridSize, minGridSize, maxGridSize, ErrInvalid)
	}
	if !c.Timing.Speed.Valid() {
		return fmt.Errorf("config: unknown speed %q: %w", c.Timing.Speed, ErrInvalid)
	}
	if c.TickInterval() <= 0 {
		return fmt.Errorf("config: tick_interval_ms must be positive: %w", ErrInvalid)
	}
	if _, err := snake.ParseMode(c.Game.DefaultMode); err != nil {
		return fmt.Errorf("config: default_mode %q: %w", c.Game.DefaultMode, ErrInvalid)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: idle_timeout_minutes must not be negative: %w", ErrInvalid)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DataDir returns ~/.snake, creating it if needed.
func DataDir() (string, error) {
	dir := ExpandHome("~/.snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create data dir: %w", err)
	}
	return dir, nil
}
