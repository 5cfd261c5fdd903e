package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned with needsSave set so the caller eventually writes
// the file out. A file that exists but does not parse as a key-value
// document is fatal — running a backup against a half-read config risks
// writing to the wrong place.
//
// Unknown keys are ignored deliberately: users share one dotfile across tool
// versions and a stray key must not brick the backup.
func Load(path string) (cfg *Config, needsSave bool, err error) {
	cfg = Default()

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return cfg, true, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, false, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, false, nil
}
