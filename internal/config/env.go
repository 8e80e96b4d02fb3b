package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// Environment variables understood by Load.
const (
	EnvInput         = "TOKENHEX_INPUT"
	EnvOutput        = "TOKENHEX_OUTPUT"
	EnvFormat        = "TOKENHEX_FORMAT"
	EnvHexCase       = "TOKENHEX_HEX_CASE"
	EnvMetricsFile   = "TOKENHEX_METRICS_FILE"
	EnvLogLevel      = "TOKENHEX_LOG_LEVEL"
	EnvWatchDebounce = "TOKENHEX_WATCH_DEBOUNCE"
)

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, tokenerrors.NewParseError(path, 0, err)
	}
	return values, nil
}

// layeredLookup prefers real environment variables over .env values.
func layeredLookup(lookup func(string) (string, bool), dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvInput, &cfg.Input)
	str(EnvOutput, &cfg.Output)
	str(EnvFormat, &cfg.Format)
	str(EnvHexCase, &cfg.HexCase)
	str(EnvMetricsFile, &cfg.MetricsFile)
	str(EnvLogLevel, &cfg.LogLevel)

	if v, ok := lookup(EnvWatchDebounce); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return tokenerrors.NewValidationError(EnvWatchDebounce, "must be a duration such as 250ms", err)
		}
		cfg.WatchDebounce = d
	}

	return nil
}
