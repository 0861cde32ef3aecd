// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package cfg loads the server and engine settings.
//
// A config file may be YAML (.yaml, .yml) or JSON with comments
// (.json, .jsonc). Every field has a default, a missing file is not an
// error unless the path was given explicitly.
package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the ipdiff server and tools.
type Config struct {
	// Addr is the HTTP listen address of the serve command.
	Addr string `json:"addr" yaml:"addr"`

	// CORSOrigin is the value of the Access-Control-Allow-Origin
	// header, the browser front end is usually served from elsewhere.
	CORSOrigin string `json:"corsOrigin" yaml:"corsOrigin"`

	// MaxBodyBytes bounds the size of one request body.
	MaxBodyBytes int64 `json:"maxBodyBytes" yaml:"maxBodyBytes"`

	// MemoSize is the number of recent computations kept in the LRU
	// memo cache, 0 disables memoization.
	MemoSize int `json:"memoSize" yaml:"memoSize"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:         ":8080",
		CORSOrigin:   "*",
		MaxBodyBytes: 1 << 20,
		MemoSize:     128,
	}
}

// Load reads the config file at path on top of the defaults.
//
// An empty path means "defaults only". A non-empty path must exist and
// parse, a serve command pointed at a broken config should fail loudly,
// not fall back silently.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".json", ".jsonc":
		// jsonc strips comments and trailing commas first
		if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
			return c, fmt.Errorf("parse json config %s: %w", path, err)
		}
	default:
		return c, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	if err := c.validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("maxBodyBytes must be positive")
	}
	if c.MemoSize < 0 {
		return fmt.Errorf("memoSize must not be negative")
	}
	return nil
}
