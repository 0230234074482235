// Package config loads the studylog config file, creating it with
// defaults on first run.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kaandel/studylog/internal/store"
)

type Config struct {
	DataDir             string `toml:"data_dir"`
	ReminderPollSeconds int    `toml:"reminder_poll_seconds"`
}

func DefaultConfig() *Config {
	dir, _ := store.DefaultDataDir()
	return &Config{
		DataDir:             dir,
		ReminderPollSeconds: 5,
	}
}

// StudylogDir returns the per-OS config directory for studylog,
// e.g. ~/.config/studylog.
func StudylogDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studylog"), nil
}

func ConfigPath() (string, error) {
	dir, err := StudylogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, writing one with defaults if it does not
// exist yet.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.ReminderPollSeconds <= 0 {
		cfg.ReminderPollSeconds = 5
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
