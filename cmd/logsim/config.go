package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"logsim"
)

const defaultConfigFile = "logsim.yaml"

// fileConfig is the YAML shape of the optional engine config file.
type fileConfig struct {
	SettleLimit    int            `yaml:"settle_limit"`
	Workers        int            `yaml:"workers"`
	SetClearPolicy string         `yaml:"set_clear_policy"` // clear-wins (default) or set-wins
	Switches       map[string]int `yaml:"switches"`         // initial switch overrides
}

// loadConfig reads the config file named by --config, or the default
// file if it exists. A missing default file is not an error.
func loadConfig() (*fileConfig, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return &fileConfig{}, nil
		}
		path = defaultConfigFile
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	fc := &fileConfig{}
	if err := yaml.Unmarshal(b, fc); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return fc, nil
}

// engineConfig maps the file values onto the engine options.
func (fc *fileConfig) engineConfig() (logsim.Config, error) {
	cfg := logsim.Config{
		SettleLimit: fc.SettleLimit,
		Workers:     fc.Workers,
	}
	switch fc.SetClearPolicy {
	case "", "clear-wins":
		cfg.Policy = logsim.ClearWins
	case "set-wins":
		cfg.Policy = logsim.SetWins
	default:
		return cfg, errors.Errorf("unknown set_clear_policy %q", fc.SetClearPolicy)
	}
	return cfg, nil
}
