package config

// SpeedPreset represents a named game speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedCustom SpeedPreset = "custom"
)

// speedIntervals maps presets to tick intervals in milliseconds.
// SpeedCustom is absent: it uses tick_interval_ms.
var speedIntervals = map[SpeedPreset]int{
	SpeedSlow:   200,
	SpeedNormal: 150,
	SpeedFast:   100,
}

// SpeedPresets returns the presets in menu order.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedCustom}
}

// Valid reports whether p is a known preset.
func (p SpeedPreset) Valid() bool {
	switch p {
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedCustom:
		return true
	}
	return false
}

// IntervalMS returns the preset's tick interval, or 0 for custom and
// unknown presets.
func (p SpeedPreset) IntervalMS() int {
	return speedIntervals[p]
}

// ApplySpeedPreset switches cfg to the given preset. Named presets also
// update tick_interval_ms so the file written back stays consistent.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	cfg.Timing.Speed = preset
	if ms := preset.IntervalMS(); ms > 0 {
		cfg.Timing.TickIntervalMS = ms
	}
}
