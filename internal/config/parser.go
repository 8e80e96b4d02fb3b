package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is an explicit config path. It must exist when set.
	File string
	// DotEnv is an optional .env file; a missing file is ignored.
	DotEnv string
	// Lookup reads process environment variables, usually os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load layers defaults, the config file, the .env file and the environment.
// The result is not validated; callers apply flag overrides first and then
// call ValidateConfig.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.File
	required := path != ""
	if !required {
		path = DefaultFile
	}

	if err := parseFile(path, &cfg); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	dotenv, err := readDotEnv(opts.DotEnv)
	if err != nil {
		return nil, err
	}

	if err := applyEnv(&cfg, layeredLookup(opts.Lookup, dotenv)); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func parseFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return tokenerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return tokenerrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
