// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"fmt"
	"math/big"
)

// MaxBlocks bounds the number of CIDR blocks a single computation may
// emit. Minimal aggregation can never exceed it, but constrained
// alignment over a huge interval easily could; the guard rejects such
// a computation up front instead of materializing it.
const MaxBlocks = 1 << 20

// DiffResult is the externally visible output of one computation,
// owned exclusively by the caller and never mutated after construction.
//
// IPv4 and IPv6 hold the resulting blocks as canonical base/prefix
// strings. Errors holds one message per rejected input line; an empty
// result with empty Errors is a valid "no results", not a failure.
type DiffResult struct {
	IPv4   []string `json:"ipv4"`
	IPv6   []string `json:"ipv6"`
	Stats  Stats    `json:"stats"`
	Viz    Viz      `json:"viz"`
	Errors []string `json:"errors"`

	blocks4 []Block
	blocks6 []Block
}

// Blocks returns the resulting blocks of one address family, for
// callers that compose further computations on top of the result.
func (r *DiffResult) Blocks(version Version) []Block {
	if version == V4 {
		return r.blocks4
	}
	return r.blocks6
}

// ComputeDifference parses both set texts, one entry per line, computes
// A \ B per address family and re-expresses the outcome as CIDR blocks
// according to mode.
//
// Malformed lines never abort the computation, they are collected into
// the result's Errors with their line number while all remaining lines
// are processed.
func ComputeDifference(setAText, setBText string, mode Mode) *DiffResult {
	a4, a6, errsA := parseSet(setAText, "set A")
	b4, b6, errsB := parseSet(setBText, "set B")

	res := &DiffResult{
		IPv4:   []string{},
		IPv6:   []string{},
		Errors: append(errsA, errsB...),
	}

	na4, na6 := Normalize(a4), Normalize(a6)
	nb4, nb6 := Normalize(b4), Normalize(b6)

	r4 := Difference(na4, nb4)
	r6 := Difference(na6, nb6)

	var ok bool
	if res.blocks4, ok = aggregateGuarded(r4, mode); !ok {
		res.Errors = append(res.Errors, tooManyBlocksMsg(V4, mode))
		r4 = nil
	}
	if res.blocks6, ok = aggregateGuarded(r6, mode); !ok {
		res.Errors = append(res.Errors, tooManyBlocksMsg(V6, mode))
		r6 = nil
	}

	res.IPv4 = blockStrings(res.blocks4)
	res.IPv6 = blockStrings(res.blocks6)
	res.Stats, res.Viz = summarize(na4, na6, nb4, nb6, r4, r6, res.blocks4, res.blocks6)

	return res
}

// aggregateGuarded aggregates the set, but refuses constrained modes
// whose block count would exceed MaxBlocks.
func aggregateGuarded(s IntervalSet, mode Mode) ([]Block, bool) {
	if prefix, ok := mode.IsConstrained(); ok && len(s) > 0 {
		bits := s[0].version.bits()
		if prefix >= 0 && prefix <= bits {
			// upper bound: total addresses / block size, +1 per interval
			blockSize := new(big.Int).Lsh(bigOne, uint(bits-prefix))
			bound := new(big.Int).Quo(s.Count(), blockSize)
			bound.Add(bound, big.NewInt(int64(len(s))))
			if bound.Cmp(big.NewInt(MaxBlocks)) > 0 {
				return nil, false
			}
		}
	}
	return aggregateSet(s, mode), true
}

func tooManyBlocksMsg(version Version, mode Mode) string {
	return fmt.Sprintf("%s: %s alignment would emit more than %d blocks", version, mode, MaxBlocks)
}

// FreeSpaceResult is the output of the free address space finder.
type FreeSpaceResult struct {
	AvailableBlocks []string `json:"availableBlocks"`
	TotalBlocks     int      `json:"totalBlocks"`

	// TotalAddresses is an exact decimal string, the sum over all
	// available blocks.
	TotalAddresses string `json:"totalAddresses"`

	Errors []string `json:"errors"`
}

// FindFreeSpace discovers free address space: pools minus allocations,
// minimally aggregated, then filtered to the blocks large enough to be
// subdivided to targetPrefix, i.e. blocks whose prefix length is
// <= targetPrefix. A negative targetPrefix disables the filter.
func FindFreeSpace(poolsText, allocationsText string, targetPrefix int) *FreeSpaceResult {
	diff := ComputeDifference(poolsText, allocationsText, Minimal)

	res := &FreeSpaceResult{
		AvailableBlocks: []string{},
		Errors:          diff.Errors,
	}

	total := new(big.Int)
	for _, blocks := range [][]Block{diff.blocks4, diff.blocks6} {
		for _, b := range blocks {
			if targetPrefix >= 0 && b.prefix > targetPrefix {
				continue
			}
			res.AvailableBlocks = append(res.AvailableBlocks, b.String())
			total.Add(total, b.Count())
		}
	}

	res.TotalBlocks = len(res.AvailableBlocks)
	res.TotalAddresses = total.String()
	return res
}
