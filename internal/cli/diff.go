// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/netzlab/ipdiff"
)

func newDiffCommand() *cobra.Command {
	var (
		setA  string
		setB  string
		align int
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Subtract set B from set A and print the result as CIDR blocks",
		Example: `  ipdiff diff -a pools.txt -b allocated.txt
  ipdiff diff -a 10.0.0.0/8 -b 10.1.0.0/16 --align 24
  cat allocated.txt | ipdiff diff -a 192.168.0.0/16 -b -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			textA, err := inlineOrFile(setA)
			if err != nil {
				return fmt.Errorf("set A: %w", err)
			}
			textB, err := inlineOrFile(setB)
			if err != nil {
				return fmt.Errorf("set B: %w", err)
			}

			mode := ipdiff.Minimal
			if align >= 0 {
				mode = ipdiff.Constrained(align)
			}

			log.Debug("computing difference", "align", align)
			res := ipdiff.ComputeDifference(textA, textB, mode)
			printLineErrors(res.Errors)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if err := res.Fprint(cmd.OutOrStdout()); err != nil {
				return err
			}
			if stats {
				printStats(res.Stats)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&setA, "set-a", "a", "-", "set A: file, inline text, or - for stdin")
	cmd.Flags().StringVarP(&setB, "set-b", "b", "", "set B: file, inline text, or - for stdin")
	cmd.Flags().IntVar(&align, "align", -1, "emit only blocks of this prefix length (-1: minimal)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print summary statistics on stderr")

	return cmd
}

func printStats(s ipdiff.Stats) {
	fmt.Fprintf(os.Stderr, "input A:    %6d intervals, %s addresses\n", s.InputA.Count, s.InputA.Addresses)
	fmt.Fprintf(os.Stderr, "input B:    %6d intervals, %s addresses\n", s.InputB.Count, s.InputB.Addresses)
	fmt.Fprintf(os.Stderr, "removed:    %6d intervals, %s addresses\n", s.Removed.Count, s.Removed.Addresses)
	fmt.Fprintf(os.Stderr, "output:     %6d blocks,    %s addresses\n", s.Output.Count, s.Output.Addresses)
	fmt.Fprintf(os.Stderr, "efficiency: %5d%%\n", s.Efficiency)
}
