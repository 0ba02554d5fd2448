package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTree = "tree"
)

// config mirrors the command line flags. Flags given explicitly override
// values loaded from the config file.
type config struct {
	WithPlaylists bool   `yaml:"with_playlists"`
	Format        string `yaml:"format"`
	SQLite        string `yaml:"sqlite"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes"`
	Lenient       bool   `yaml:"lenient"`
	Trace         bool   `yaml:"trace"`
	Verbose       bool   `yaml:"verbose"`
}

func defaultConfig() config { return config{Format: formatText} }

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) override(fs *flag.FlagSet, f config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "with-playlists":
			c.WithPlaylists = f.WithPlaylists
		case "format":
			c.Format = f.Format
		case "sqlite":
			c.SQLite = f.SQLite
		case "max-depth":
			c.MaxDepth = f.MaxDepth
		case "max-bytes":
			c.MaxBytes = f.MaxBytes
		case "lenient":
			c.Lenient = f.Lenient
		case "trace":
			c.Trace = f.Trace
		case "v":
			c.Verbose = f.Verbose
		}
	})
}

func (c config) validate() error {
	switch c.Format {
	case formatText, formatJSON, formatYAML, formatTree:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}
