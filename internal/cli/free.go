// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/netzlab/ipdiff"
)

func newFreeCommand() *cobra.Command {
	var (
		pools  string
		allocs string
		target int
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Find unallocated address space within pools",
		Long: `free subtracts the allocations from the pools and prints the
remaining blocks. With --target only blocks large enough to hold a
network of that prefix length are listed.`,
		Example: `  ipdiff free --pools pools.txt --allocations used.txt --target 24`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			poolText, err := inlineOrFile(pools)
			if err != nil {
				return fmt.Errorf("pools: %w", err)
			}
			allocText, err := inlineOrFile(allocs)
			if err != nil {
				return fmt.Errorf("allocations: %w", err)
			}

			log.Debug("finding free space", "target", target)
			res := ipdiff.FindFreeSpace(poolText, allocText, target)
			printLineErrors(res.Errors)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			for _, b := range res.AvailableBlocks {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pools, "pools", "-", "pool set: file, inline text, or - for stdin")
	cmd.Flags().StringVar(&allocs, "allocations", "", "allocated set: file, inline text, or - for stdin")
	cmd.Flags().IntVar(&target, "target", -1, "minimum usable network size as prefix length (-1: any)")

	return cmd
}
