// Package config loads branchkit's tool-level configuration.
//
// Configuration is optional: a repository without a .branchkit.yaml behaves
// with built-in defaults. Environment variables override file values, and
// .env/.env.local files are loaded first so local overrides work without
// touching the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up at the repository root.
const DefaultFileName = ".branchkit.yaml"

// StateFileName is the alternate config file kept in the state directory,
// for repositories that must not carry a dotfile in the working tree.
const StateFileName = "branchkit.yaml"

// Config is the tool-level configuration.
type Config struct {
	// MainBranch overrides main-branch detection.
	MainBranch string `yaml:"main_branch,omitempty"`

	Aliases  AliasConfig    `yaml:"aliases,omitempty"`
	Hooks    HookConfig     `yaml:"hooks,omitempty"`
	EventLog EventLogConfig `yaml:"event_log,omitempty"`
}

// AliasConfig tunes the installed alias set.
type AliasConfig struct {
	// Extra aliases installed in addition to the defaults; values are
	// branchkit subcommands.
	Extra map[string]string `yaml:"extra,omitempty"`
	// Disable suppresses default aliases by name.
	Disable []string `yaml:"disable,omitempty"`
}

// HookConfig tunes the installed hook set.
type HookConfig struct {
	// Disable suppresses hooks by git hook type.
	Disable []string `yaml:"disable,omitempty"`
}

// EventLogConfig tunes event log retention.
type EventLogConfig struct {
	// RetentionDays bounds how long events are kept; 0 keeps forever.
	RetentionDays int `yaml:"retention_days,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Load reads the config file at path, returning defaults when the file does
// not exist. Environment variables are applied last.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, uerr)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.EventLog.RetentionDays < 0 {
		return nil, fmt.Errorf("event_log.retention_days must not be negative: %d", cfg.EventLog.RetentionDays)
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	example := Config{
		MainBranch: "main",
		Aliases: AliasConfig{
			Extra:   map[string]string{"rs": "restack"},
			Disable: []string{"co"},
		},
		EventLog: EventLogConfig{RetentionDays: 365},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// loadEnvFiles loads .env/.env.local if present; existing environment
// variables are never overwritten.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BRANCHKIT_MAIN_BRANCH"); v != "" {
		cfg.MainBranch = v
	}
	if v := os.Getenv("BRANCHKIT_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.EventLog.RetentionDays = days
		}
	}
}
