package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// configRelPath is resolved against the XDG config directories.
const configRelPath = "docdraft/config.toml"

// Config holds user preferences read from config.toml and the environment.
type Config struct {
	CatalogDir    string `toml:"catalog_dir"`    // DOCDRAFT_CATALOG
	Escape        string `toml:"escape"`         // DOCDRAFT_ESCAPE (default "none")
	DefaultFormat string `toml:"default_format"` // default "html"
	LogLevel      string `toml:"log_level"`      // DOCDRAFT_LOG_LEVEL (default "info")
	OutputDir     string `toml:"output_dir"`     // default "."
	ShellDir      string `toml:"shell_dir"`      // DOCDRAFT_SHELL_DIR
}

func defaultConfig() Config {
	return Config{
		Escape:        "none",
		DefaultFormat: "html",
		LogLevel:      "info",
		OutputDir:     ".",
	}
}

// loadConfig reads the config file at path, or the XDG location when path is
// empty. A missing XDG file is not an error; a missing explicit path is.
func loadConfig(path string) (Config, string, error) {
	cfg := defaultConfig()

	location := strings.TrimSpace(path)
	if location == "" {
		found, err := xdg.SearchConfigFile(configRelPath)
		if err == nil {
			location = found
		}
	}

	if location != "" {
		if _, err := toml.DecodeFile(location, &cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == "" {
				location = ""
			} else {
				return Config{}, location, fmt.Errorf("config %s: %w", location, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, location, nil
}

func (c *Config) applyEnv() {
	c.CatalogDir = envOrDefault("DOCDRAFT_CATALOG", c.CatalogDir)
	c.Escape = envOrDefault("DOCDRAFT_ESCAPE", c.Escape)
	c.LogLevel = envOrDefault("DOCDRAFT_LOG_LEVEL", c.LogLevel)
	c.ShellDir = envOrDefault("DOCDRAFT_SHELL_DIR", c.ShellDir)
}

func (c *Config) fillDefaults() {
	defaults := defaultConfig()
	if strings.TrimSpace(c.Escape) == "" {
		c.Escape = defaults.Escape
	}
	if strings.TrimSpace(c.DefaultFormat) == "" {
		c.DefaultFormat = defaults.DefaultFormat
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaults.LogLevel
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = defaults.OutputDir
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
