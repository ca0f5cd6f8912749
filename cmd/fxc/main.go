// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command fxc resolves and compiles shaders stored in effect files.
//
// Usage:
//
//	fxc --root Data/Shaders resolve Blur.Fragment
//	fxc files
//	fxc sections Blur
//	fxc locate Blur.Fragment 12
//	fxc compile --backend naga Blur.Vertex Blur.Fragment
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gogpu/shaderfx"
	_ "github.com/gogpu/shaderfx/backend/naga"
)

// Global flags.
var (
	rootDir    string
	configPath string
	defineArgs []string
	numbering  string
	strict     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fxc",
	Short: "Resolve and compile effect-file shaders",
	Long: `fxc indexes a shader directory, resolves composite identifiers
("<file>.<section>") to ready-to-compile text and compiles them.

Settings are read from --config (YAML) and overridden by flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			shaderfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "shader root directory (default from config, then \".\")")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shaderfx.yaml", "YAML configuration file")
	rootCmd.PersistentFlags().StringArrayVarP(&defineArgs, "define", "D", nil, "define KEY=VALUE (repeatable)")
	rootCmd.PersistentFlags().StringVar(&numbering, "numbering", "", "line numbering: section or file")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on duplicate shader file names")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	compileCmd.Flags().StringVarP(&backend, "backend", "b", "", "compiler backend (default: best registered)")
	compileCmd.Flags().BoolVar(&dump, "dump", false, "print each stage before compiling")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(compileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the configuration file with the global flags.
func loadConfig() (*shaderfx.Config, error) {
	cfg, err := shaderfx.LoadConfig(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if numbering != "" {
		cfg.LineNumbering = numbering
	}
	if strict {
		cfg.Strict = true
	}
	for _, arg := range defineArgs {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("bad define %q, want KEY=VALUE", arg)
		}
		cfg.Defines[key] = value
	}
	return cfg, nil
}

// newManager builds a Manager from the configuration and flags.
func newManager(extra ...shaderfx.Option) (*shaderfx.Manager, *shaderfx.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}
	m, err := shaderfx.New(append(opts, extra...)...)
	if err != nil {
		return nil, nil, err
	}
	return m, cfg, nil
}
