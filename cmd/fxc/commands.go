// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/shaderfx"
)

// compile flags
var (
	backend string
	dump    bool
)

// resolveCmd prints the assembled text of one section.
var resolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Print the assembled text of a section",
	Long: `Prints the ready-to-compile text of a section. Include failures are
reported on stderr after the text and make the command exit non-zero.

Example:
  fxc resolve Blur.Fragment`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// filesCmd lists the index.
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed shader files",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

// sectionsCmd lists the sections of one file.
var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "List the sections defined by a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

// locateCmd maps an assembled line back to its source.
var locateCmd = &cobra.Command{
	Use:   "locate <id> <line>",
	Short: "Show where a line of the assembled text came from",
	Long: `Maps a 1-based line of the assembled text (as reported by a
compiler) to the file and line it was copied from.

Example:
  fxc locate Blur.Fragment 42`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

// compileCmd compiles sections into a program.
var compileCmd = &cobra.Command{
	Use:   "compile <id>...",
	Short: "Compile sections with a compiler backend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func runResolve(cmd *cobra.Command, args []string) error {
	m, _, err := newManager()
	if err != nil {
		return err
	}
	src, err := m.Lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), src.Text)
	for _, d := range src.Diagnostics {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", d)
	}
	return src.Err()
}

func runFiles(cmd *cobra.Command, _ []string) error {
	m, _, err := newManager()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range m.Files() {
		path, _ := m.Path(name)
		fmt.Fprintf(w, "%s\t%s\n", name, path)
	}
	return w.Flush()
}

func runSections(cmd *cobra.Command, args []string) error {
	m, _, err := newManager()
	if err != nil {
		return err
	}
	ids, err := m.Sections(args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runLocate(cmd *cobra.Command, args []string) error {
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad line %q: %w", args[1], err)
	}
	m, _, err := newManager()
	if err != nil {
		return err
	}
	o, err := m.Locate(args[0], line)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), o)
	return nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	var extra []shaderfx.Option
	if dump {
		extra = append(extra, shaderfx.WithDump(cmd.OutOrStdout()))
	}
	m, cfg, err := newManager(extra...)
	if err != nil {
		return err
	}

	name := backend
	if name == "" {
		name = cfg.Backend
	}
	c, err := shaderfx.NewCompiler(name)
	if err != nil {
		return fmt.Errorf("%w (registered: %v)", err, shaderfx.Compilers())
	}

	p, err := m.BuildProgram(c, args...)
	if err != nil {
		return err
	}
	defer p.Destroy()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, mod := range p.Modules {
		fmt.Fprintf(w, "%s\t%s\t%d bytes\n", mod.ID, mod.Stage, len(mod.Binary))
	}
	return w.Flush()
}
