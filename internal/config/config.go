// Package config loads persisted CLI defaults for the minilangc driver
// from an optional .minilangrc.toml, overridable by explicit flags.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the subset of driver behavior a user can pin in a
// .minilangrc.toml instead of repeating on every invocation.
type Config struct {
	Verbose   bool     `toml:"verbose"`
	TACStdout bool     `toml:"tac_stdout"`
	OutDir    string   `toml:"out_dir"`
	Files     []string `toml:"files"`
}

// Load reads path and decodes it into a Config. A missing file is not an
// error — it yields the zero Config, letting every setting fall back to
// its flag default.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
