// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"fmt"
	"math/big"
	"net/netip"
	"slices"

	"github.com/netzlab/ipdiff/internal/u128"
)

// Version selects the address family and with it the bit width (32 or
// 128) used for all arithmetic in a computation.
type Version int

const (
	V4 Version = iota + 1
	V6
)

// bits returns the address width for the version.
// The zero Version is a programmer error, not an input error.
func (v Version) bits() int {
	switch v {
	case V4:
		return 32
	case V6:
		return 128
	}
	panic(fmt.Sprintf("ipdiff: invalid Version(%d)", int(v)))
}

// bitOffset is the position of the first address bit within the
// 128-bit word, 96 for IPv4, 0 for IPv6.
func (v Version) bitOffset() int {
	return 128 - v.bits()
}

func (v Version) String() string {
	switch v {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Interval is an inclusive contiguous run of addresses of one version,
// start <= end always holds.
type Interval struct {
	version Version
	start   u128.Uint128
	end     u128.Uint128
}

// addrToU128 widens an address to the 128-bit word, IPv4 in the low 32
// bits. Callers have already rejected zoned addresses.
func addrToU128(a netip.Addr) u128.Uint128 {
	if a.Is4() {
		b := a.As4()
		return u128.From64(uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3]))
	}
	return u128.FromBytes16(a.As16())
}

func u128ToAddr(u u128.Uint128, version Version) netip.Addr {
	if version == V4 {
		return netip.AddrFrom4([4]byte{
			byte(u.Lo >> 24), byte(u.Lo >> 16), byte(u.Lo >> 8), byte(u.Lo),
		})
	}
	return netip.AddrFrom16(u.Bytes16())
}

func versionOf(a netip.Addr) Version {
	if a.Is4() {
		return V4
	}
	return V6
}

// IntervalFromPrefix returns the interval covered by pfx.
// The prefix address does not have to be masked.
func IntervalFromPrefix(pfx netip.Prefix) Interval {
	if !pfx.IsValid() {
		panic("ipdiff: invalid prefix")
	}
	version := versionOf(pfx.Addr())

	// mask position within the 128-bit word
	bit := version.bitOffset() + pfx.Bits()
	u := addrToU128(pfx.Addr())

	return Interval{
		version: version,
		start:   u.BitsClearedFrom(bit),
		end:     u.BitsSetFrom(bit),
	}
}

// IntervalFromRange returns the inclusive interval [first, last].
// Mixed versions yield ErrVersionMismatch, first > last yields
// ErrRangeOrder, reversed ranges are never silently swapped.
func IntervalFromRange(first, last netip.Addr) (Interval, error) {
	if !first.IsValid() || !last.IsValid() {
		panic("ipdiff: invalid addr")
	}
	if first.Is4() != last.Is4() {
		return Interval{}, ErrVersionMismatch
	}
	lo, hi := addrToU128(first), addrToU128(last)
	if hi.Less(lo) {
		return Interval{}, ErrRangeOrder
	}
	return Interval{version: versionOf(first), start: lo, end: hi}, nil
}

// Version returns the address family of the interval.
func (iv Interval) Version() Version { return iv.version }

// First returns the lowest address of the interval.
func (iv Interval) First() netip.Addr { return u128ToAddr(iv.start, iv.version) }

// Last returns the highest address of the interval.
func (iv Interval) Last() netip.Addr { return u128ToAddr(iv.end, iv.version) }

// Count returns the exact number of addresses in the interval.
func (iv Interval) Count() *big.Int {
	// end-start does not overflow, +1 may (a full ::/0), so count in big.
	n := iv.end.Sub(iv.start).Big()
	return n.Add(n, bigOne)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", iv.First(), iv.Last())
}

var bigOne = big.NewInt(1)

// IntervalSet is an ordered sequence of intervals of one version:
// sorted ascending by start, mutually disjoint and non-adjacent. It is
// the canonical representation between all pipeline stages.
type IntervalSet []Interval

// Normalize sorts and merges intervals into the canonical IntervalSet.
// Adjacency counts as mergeable, address runs are integers without
// gaps. All intervals must share one version, the pipeline runs this
// once per family; mixed input is a programmer error and panics.
func Normalize(intervals []Interval) IntervalSet {
	if len(intervals) == 0 {
		return nil
	}

	version := intervals[0].version
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)

	// start ascending, ties by end descending so the widest run leads
	slices.SortFunc(sorted, func(a, b Interval) int {
		if c := a.start.Cmp(b.start); c != 0 {
			return c
		}
		return b.end.Cmp(a.end)
	})

	out := make(IntervalSet, 0, len(sorted))
	out = append(out, sorted[0])

	for _, cur := range sorted[1:] {
		if cur.version != version {
			panic("ipdiff: Normalize called with mixed address versions")
		}
		prev := &out[len(out)-1]

		// mergeable if cur.start <= prev.end+1, the +1 must not wrap
		if prev.end == maxAddr(version) || cur.start.Cmp(prev.end.AddOne()) <= 0 {
			if prev.end.Less(cur.end) {
				prev.end = cur.end
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// maxAddr returns the highest address of the family.
func maxAddr(version Version) u128.Uint128 {
	if version == V4 {
		return u128.MaxV4
	}
	return u128.Max
}

// Count returns the exact total number of addresses in the set.
func (s IntervalSet) Count() *big.Int {
	total := new(big.Int)
	for _, iv := range s {
		total.Add(total, iv.Count())
	}
	return total
}
