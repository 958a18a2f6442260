// Package config loads settings from the TOML config file and environment
// variables. Environment variables win over file values, matching how the
// tool is usually launched from a shell with GROQ_API_KEY exported.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTranscribeModel = "whisper-large-v3-turbo"
	DefaultCleanupModel    = "llama-3.3-70b-versatile"
)

type Config struct {
	GroqAPIKey      string
	TranscribeModel string
	CleanupModel    string
	Beep            bool
}

type fileConfig struct {
	GroqAPIKey      string `toml:"groq_api_key"`
	TranscribeModel string `toml:"transcribe_model"`
	CleanupModel    string `toml:"cleanup_model"`
	Beep            *bool  `toml:"beep"`
}

// Load reads ~/.config/murmur/config.toml if present, then applies
// environment overrides, then fills defaults. The returned config has not
// been validated; call Validate before using it against the API.
func Load() *Config {
	cfg := &Config{Beep: true}

	if path := FilePath(); path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err == nil {
			cfg.GroqAPIKey = fc.GroqAPIKey
			cfg.TranscribeModel = fc.TranscribeModel
			cfg.CleanupModel = fc.CleanupModel
			if fc.Beep != nil {
				cfg.Beep = *fc.Beep
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = DefaultTranscribeModel
	}
	if cfg.CleanupModel == "" {
		cfg.CleanupModel = DefaultCleanupModel
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.GroqAPIKey = v
	}
	if v := os.Getenv("WHISPER_MODEL_GROQ"); v != "" {
		cfg.TranscribeModel = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.CleanupModel = v
	}
}

// Validate reports whether the config is usable against the Groq API.
func (c *Config) Validate() error {
	if c.GroqAPIKey == "" {
		return errors.New("GROQ_API_KEY is not set; export it or add groq_api_key to " + FilePath())
	}
	return nil
}

// FilePath returns the config file location, whether or not it exists.
func FilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "murmur")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "murmur")
	} else {
		return ""
	}
	return filepath.Join(configDir, "config.toml")
}
