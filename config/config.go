// Package config loads the agent server configuration from a YAML file.
//
// Every field has a default, so an empty file (or no file at all) yields
// a working server. Command-line flags are applied on top by main.
package config

import (
	"errors"
	"fmt"
	"os"

	"capture/agent"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Team   TeamConfig   `yaml:"team"`
	// Tuning overrides the forager's heuristic constants.
	Tuning agent.Tuning `yaml:"tuning"`
	Trace  TraceConfig  `yaml:"trace"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `yaml:"level"`
	// Pretty switches from JSON lines to human-readable console output.
	Pretty bool `yaml:"pretty"`
}

// TeamConfig sets the roster used when a team request names no agents.
type TeamConfig struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

type TraceConfig struct {
	// Dir receives one decisions.csv per finished match. Empty disables
	// tracing.
	Dir string `yaml:"dir"`
	// Compress writes decisions.csv.zst instead of plain CSV.
	Compress bool `yaml:"compress"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
		Team:   TeamConfig{First: agent.DefaultFirst, Second: agent.DefaultSecond},
		Tuning: agent.DefaultTuning(),
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for _, name := range []string{c.Team.First, c.Team.Second} {
		if !agent.Known(name) {
			return fmt.Errorf("team: %w %q (known: %v)", agent.ErrUnknownAgent, name, agent.Names())
		}
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}
