// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package cli implements the cobra commands of the ipdiff tool.
//
// Each subcommand (diff, free, serve) lives in its own file. The
// engine does all the work, the commands only move text in and out.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// set at build time via ldflags
var (
	Version = "dev"
	Commit  = "none"
)

var (
	jsonOutput bool
	verbose    bool
)

// NewRootCommand builds the root command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ipdiff",
		Short: "IP address set algebra: subtract, aggregate, find free space",
		Long: `ipdiff computes the set difference of two collections of IP address
specifications (single addresses, CIDR blocks, ranges) and re-expresses
the result as a minimal or fixed-size list of CIDR blocks.

Input is one entry per line, IPv4 and IPv6 may be mixed freely.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit %s)", Version, Commit),
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newDiffCommand())
	root.AddCommand(newFreeCommand())
	root.AddCommand(newServeCommand())

	return root
}

// Execute runs the root command, prints the error and returns the
// process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// readInput reads one set text from a file, or from stdin for "-".
// An empty path is an empty set.
func readInput(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// printLineErrors reports per-line input errors on stderr, they never
// abort the computation.
func printLineErrors(errs []string) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", e)
	}
}

// inlineOrFile treats arguments containing newlines or address
// characters as literal set text, everything else as a file path.
// The heuristic keeps `ipdiff diff -a 10.0.0.0/8 -b alloc.txt` handy.
func inlineOrFile(arg string) (string, error) {
	if arg == "" || arg == "-" {
		return readInput(arg)
	}
	if strings.ContainsAny(arg, "\n:/") && !isFile(arg) {
		return arg, nil
	}
	if isFile(arg) {
		return readInput(arg)
	}
	return arg, nil
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
