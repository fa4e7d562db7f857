// Package config loads the optional sturgeon.toml file consulted by
// cmd/sturgeon, mirroring the teacher's toml.Unmarshal-based config
// loading in internal/tqw.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds cmd/sturgeon's CLI defaults.
type Config struct {
	// Flavor is the default item-set flavor ("slr" or "lr1") used when
	// --flavor is not given on the command line.
	Flavor string `toml:"flavor"`

	// Trace, if true, makes "sturgeon parse" print the derivation trace
	// by default.
	Trace bool `toml:"trace"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{Flavor: "lr1", Trace: false}
}

// Load reads and unmarshals the toml file at path. A missing file is not
// an error; Default() is returned instead.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
