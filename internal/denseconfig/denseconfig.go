// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package denseconfig loads the optional luadense.jsonc configuration file:
// HuJSON (JSON with comments and trailing commas) resolved from the XDG
// config directory, the same file format and resolution strategy
// cmd/zb/config.go uses for zb's own global configuration.
package denseconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
	"go4.org/xdgdir"

	"github.com/luadense/luadense/generator"
)

// FileName is the configuration file name resolved relative to the XDG
// config directory.
const FileName = "luadense.jsonc"

// Config holds the on-disk defaults for the luadense CLI and server. CLI
// flags always take precedence over a loaded Config's fields.
type Config struct {
	// ColumnBudget is the default column budget passed to generator.New
	// when the --width flag is not given.
	ColumnBudget int `json:"columnBudget"`
	// OutputDir, if non-empty, is the directory "luadense format" writes
	// its output file into when it is given exactly one input file and no
	// --output flag. Stdin input and batches of several files still go to
	// stdout.
	OutputDir string `json:"outputDir"`
	// CacheDB is the path to the densecache SQLite database.
	CacheDB string `json:"cacheDB"`
}

// Default returns the configuration used when no file is found: the
// spec's default column budget and a cache database under the XDG cache
// directory, mirroring zb's defaultGlobalConfig.
func Default() *Config {
	return &Config{
		ColumnBudget: generator.DefaultColumnBudget,
		CacheDB:      filepath.Join(xdgdir.Cache.Path(), "luadense", "cache.db"),
	}
}

// Path returns the configuration file path under the XDG config
// directory.
func Path() string {
	return filepath.Join(xdgdir.Config.Path(), "luadense", FileName)
}

// Load reads and merges the configuration file at Path into a copy of
// Default, returning Default unchanged if the file does not exist.
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(Path()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile reads the HuJSON file at path and unmarshals its fields over
// cfg, leaving cfg untouched if the file is absent.
func (cfg *Config) mergeFile(path string) error {
	huJSONData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load luadense config: %w", err)
	}
	jsonData, err := hujson.Standardize(huJSONData)
	if err != nil {
		return fmt.Errorf("load luadense config: %s: %w", path, err)
	}
	if err := jsonv2.Unmarshal(jsonData, cfg); err != nil {
		return fmt.Errorf("load luadense config: %s: %w", path, err)
	}
	return nil
}
