// Package config loads the optional TOML configuration file. Command-line
// flags take precedence over everything configured here.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sorenlind/preservationist/internal/library"
)

type Config struct {
	InputFolder string `koanf:"input_folder"` // library root to diagnose
	OutputFile  string `koanf:"output_file"`  // CSV destination; empty means console
	Verbose     bool   `koanf:"verbose"`      // also show healthy albums
	Workers     int    `koanf:"workers"`      // album workers (default 8)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Config files in order of priority (last wins).
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.InputFolder = expandPath(cfg.InputFolder)
	cfg.OutputFile = expandPath(cfg.OutputFile)

	if cfg.Workers <= 0 || cfg.Workers > 64 {
		cfg.Workers = library.DefaultWorkers
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "preservationist", "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
