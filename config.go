// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shaderfx/internal/effect"
)

// Config is the YAML form of the Manager options.
//
//	root: Data/Shaders
//	extension: .glsl
//	global_defines: GlobalDefines.glsl
//	line_numbering: section
//	strict: false
//	backend: naga
//	defines:
//	  MAX_LIGHTS: "8"
//	  LIGHTING_MODEL: '"Phong.glsl"'
//	watch:
//	  debounce: 250ms
type Config struct {
	Root          string            `yaml:"root"`
	Extension     string            `yaml:"extension"`
	GlobalDefines string            `yaml:"global_defines"`
	LineNumbering string            `yaml:"line_numbering"`
	Strict        bool              `yaml:"strict"`
	Backend       string            `yaml:"backend"`
	Defines       map[string]string `yaml:"defines"`
	Watch         WatchConfig       `yaml:"watch"`
}

// WatchConfig configures the index watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the configuration matching the default options.
func DefaultConfig() *Config {
	return &Config{
		Root:          ".",
		Extension:     DefaultExtension,
		GlobalDefines: DefaultGlobalDefinesFile,
		LineNumbering: SectionLines.String(),
		Defines:       make(map[string]string),
		Watch:         WatchConfig{Debounce: DefaultWatchDebounce.String()},
	}
}

// LoadConfig reads a YAML configuration file from fsys. A missing file
// yields the defaults. SHADERFX_ROOT overrides the root directory.
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := afero.ReadFile(fsys, path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if cfg.Defines == nil {
		cfg.Defines = make(map[string]string)
	}

	if root := os.Getenv("SHADERFX_ROOT"); root != "" {
		cfg.Root = root
	}
	return cfg, nil
}

// Options converts the configuration to Manager options.
func (c *Config) Options() ([]Option, error) {
	numbering, err := effect.ParseNumbering(c.LineNumbering)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithRoot(c.Root),
		WithGlobalDefinesFile(c.GlobalDefines),
		WithLineNumbering(numbering),
		WithDefines(c.Defines),
	}
	if c.Extension != "" {
		opts = append(opts, WithExtension(c.Extension))
	}
	if c.Strict {
		opts = append(opts, WithCollisionPolicy(CollisionFail))
	}
	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("watch debounce: %w", err)
		}
		opts = append(opts, WithWatchDebounce(d))
	}
	return opts, nil
}
