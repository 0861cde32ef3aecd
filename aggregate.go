// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/netzlab/ipdiff/internal/u128"
)

// Block is one CIDR block: a power-of-two aligned run of addresses
// described by base address and prefix length. The base is always
// aligned, the low (bits - prefix) bits are zero.
type Block struct {
	version Version
	base    u128.Uint128
	prefix  int
}

// Version returns the address family of the block.
func (b Block) Version() Version { return b.version }

// PrefixLen returns the prefix length of the block.
func (b Block) PrefixLen() int { return b.prefix }

// Prefix returns the block as netip.Prefix.
func (b Block) Prefix() netip.Prefix {
	return netip.PrefixFrom(u128ToAddr(b.base, b.version), b.prefix)
}

// Interval returns the exact address interval covered by the block.
func (b Block) Interval() Interval {
	bit := b.version.bitOffset() + b.prefix
	return Interval{
		version: b.version,
		start:   b.base,
		end:     b.base.BitsSetFrom(bit),
	}
}

// Count returns the exact number of addresses in the block.
func (b Block) Count() *big.Int {
	return b.Interval().Count()
}

// String returns the canonical base/prefix representation.
func (b Block) String() string {
	return b.Prefix().String()
}

// Mode selects how an interval is re-expressed as CIDR blocks, either
// as the fewest possible blocks or as blocks of one fixed prefix
// length. The zero value is Minimal.
type Mode struct {
	constrained bool
	prefix      int
}

// Minimal produces the fewest possible blocks that exactly cover an
// interval.
var Minimal = Mode{}

// Constrained produces only blocks of exactly the given prefix length.
func Constrained(prefix int) Mode {
	return Mode{constrained: true, prefix: prefix}
}

// IsConstrained reports whether the mode fixes the prefix length, and
// if so to what.
func (m Mode) IsConstrained() (prefix int, ok bool) {
	return m.prefix, m.constrained
}

func (m Mode) String() string {
	if m.constrained {
		return fmt.Sprintf("constrained(/%d)", m.prefix)
	}
	return "minimal"
}

// ToCIDR converts an arbitrary interval into CIDR blocks according to
// mode. The cost is O(log range) per emitted block, no stage of the
// pipeline ever walks single addresses.
func ToCIDR(iv Interval, mode Mode) []Block {
	if prefix, ok := mode.IsConstrained(); ok {
		return toCIDRConstrained(iv, prefix)
	}
	return toCIDRMinimal(iv)
}

// toCIDRMinimal is the classic greedy range-to-CIDR conversion: at each
// step emit the largest block that starts at the cursor, limited by the
// cursor alignment and by the remaining length. Both limits taken
// together make the result provably minimal.
func toCIDRMinimal(iv Interval) []Block {
	bits := iv.version.bits()
	var out []Block

	cursor := iv.start
	for {
		// largest size with cursor on a block boundary
		k := cursor.TrailingZeros()
		if k > bits {
			k = bits
		}

		// largest power of two <= remaining length;
		// end-cursor is all-ones only for a full address space
		diff := iv.end.Sub(cursor)
		if kLen := lenLog2(diff, bits); kLen < k {
			k = kLen
		}

		out = append(out, Block{
			version: iv.version,
			base:    cursor,
			prefix:  bits - k,
		})

		// Pow2(128).SubOne() wraps to Max, which is exactly right
		// for the single ::/0 block
		blockEnd := cursor.Add(u128.Pow2(k).SubOne())
		if blockEnd == iv.end {
			return out
		}
		cursor = blockEnd.AddOne()
	}
}

// lenLog2 returns floor(log2(diff+1)) capped at bits, the exponent of
// the largest power of two not exceeding a remaining length of diff+1.
func lenLog2(diff u128.Uint128, bits int) int {
	if diff == u128.Max {
		return bits
	}
	return diff.AddOne().BitLen() - 1
}

// toCIDRConstrained walks the interval in fixed steps of 2^(bits-p),
// starting at the smallest p-aligned address >= iv.start. Partial
// blocks at either edge are dropped, not truncated; this single
// function is the place to revisit that policy.
func toCIDRConstrained(iv Interval, prefix int) []Block {
	bits := iv.version.bits()
	if prefix < 0 || prefix > bits {
		return nil
	}

	hostMask := u128.Mask(iv.version.bitOffset() + prefix).Not()

	// align the cursor up to the next block boundary
	base := iv.start
	if !base.And(hostMask).IsZero() {
		base = base.Or(hostMask).AddOne()
		if base.IsZero() {
			// alignment wrapped past the end of the address space
			return nil
		}
	}

	var out []Block
	for {
		blockEnd := base.Or(hostMask)
		if iv.end.Less(blockEnd) {
			return out
		}
		out = append(out, Block{version: iv.version, base: base, prefix: prefix})

		if blockEnd == maxAddr(iv.version) {
			return out
		}
		base = blockEnd.AddOne()
	}
}

// aggregateSet converts every interval of the set, keeping the overall
// ascending block order.
func aggregateSet(s IntervalSet, mode Mode) []Block {
	var out []Block
	for _, iv := range s {
		out = append(out, ToCIDR(iv, mode)...)
	}
	return out
}

// blockStrings renders blocks in their canonical text form.
func blockStrings(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.String()
	}
	return out
}
