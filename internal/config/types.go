package config

import (
	"time"
)

// DefaultFile is read when no --config flag is given and the file exists.
const DefaultFile = ".tokenhex.yaml"

// Config holds every setting of a report run.
type Config struct {
	Input         string        `yaml:"input" validate:"required"`
	Output        string        `yaml:"output" validate:"required_unless=NoWrite true"`
	NoWrite       bool          `yaml:"no_write,omitempty"`
	Format        string        `yaml:"format,omitempty" validate:"omitempty,oneof=auto json yaml"`
	HexCase       string        `yaml:"hex_case,omitempty" validate:"omitempty,oneof=lower preserve"`
	Rev           string        `yaml:"rev,omitempty" validate:"omitempty,git_rev"`
	MetricsFile   string        `yaml:"metrics_file,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	WatchDebounce time.Duration `yaml:"watch_debounce,omitempty" validate:"debounce"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:         "tokens.json",
		Output:        "reports/color-report.json",
		Format:        "auto",
		HexCase:       "lower",
		LogLevel:      "info",
		WatchDebounce: 200 * time.Millisecond,
	}
}
