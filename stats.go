// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"math/big"
)

// SetStats is the summary of one side of a computation, the address
// total as an exact decimal string. IPv6 totals routinely exceed 64-bit
// integers and must never pass through floating point.
type SetStats struct {
	Count     int    `json:"count"`
	Addresses string `json:"addresses"`
}

// Stats summarizes a computation: interval/block counts, exact address
// totals and the efficiency ratio, output addresses per input set A
// addresses, rounded to whole percent and clamped to [0, 100].
type Stats struct {
	InputA     SetStats `json:"inputA"`
	InputB     SetStats `json:"inputB"`
	Output     SetStats `json:"output"`
	Removed    SetStats `json:"removed"`
	Efficiency int      `json:"efficiency"`
}

// Viz is render-ready geometry for a proportional bar visualization,
// one lane per address family.
type Viz struct {
	IPv4 *VizLane `json:"ipv4,omitempty"`
	IPv6 *VizLane `json:"ipv6,omitempty"`
}

// VizLane covers one address family: the shared bounding range of sets
// A, B and the result, and one segment list per set.
type VizLane struct {
	TotalRange VizRange     `json:"totalRange"`
	SetA       []VizSegment `json:"setA"`
	SetB       []VizSegment `json:"setB"`
	Result     []VizSegment `json:"result"`
}

// VizRange is the bounding box of one lane.
type VizRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// VizSegment is one interval positioned within the lane. Offset and
// width are in basis points (1/100 of a percent) of the total range,
// computed with integer scaling so a full ::/0 lane does not lose
// precision to floating point. CIDR is set when the segment is exactly
// one CIDR block.
type VizSegment struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	CIDR     string `json:"cidr,omitempty"`
	OffsetBp int    `json:"offsetBp"`
	WidthBp  int    `json:"widthBp"`
}

// summarize derives stats and visualization from the normalized inputs,
// the difference result and the aggregated blocks.
func summarize(a4, a6, b4, b6, r4, r6 IntervalSet, blocks4, blocks6 []Block) (Stats, Viz) {
	inA := new(big.Int).Add(a4.Count(), a6.Count())
	inB := new(big.Int).Add(b4.Count(), b6.Count())
	out := new(big.Int).Add(r4.Count(), r6.Count())

	// removed = A ∩ B, the part of A that the subtraction took away
	i4 := Intersect(a4, b4)
	i6 := Intersect(a6, b6)
	removed := new(big.Int).Add(i4.Count(), i6.Count())

	stats := Stats{
		InputA:     SetStats{Count: len(a4) + len(a6), Addresses: inA.String()},
		InputB:     SetStats{Count: len(b4) + len(b6), Addresses: inB.String()},
		Output:     SetStats{Count: len(blocks4) + len(blocks6), Addresses: out.String()},
		Removed:    SetStats{Count: len(i4) + len(i6), Addresses: removed.String()},
		Efficiency: efficiency(out, inA),
	}

	viz := Viz{
		IPv4: vizLane(a4, b4, r4, blocks4, V4),
		IPv6: vizLane(a6, b6, r6, blocks6, V6),
	}
	return stats, viz
}

// efficiency returns round(out/in * 100) clamped to [0, 100], with
// scaled integer division, never float.
func efficiency(out, in *big.Int) int {
	if in.Sign() == 0 {
		return 0
	}

	// round half up: (200*out + in) / (2*in)
	num := new(big.Int).Mul(out, big.NewInt(200))
	num.Add(num, in)
	den := new(big.Int).Lsh(in, 1)
	num.Quo(num, den)

	switch {
	case num.Sign() < 0:
		return 0
	case num.Cmp(big.NewInt(100)) > 0:
		return 100
	}
	return int(num.Int64())
}

// vizLane builds the geometry for one address family, nil if the
// family does not occur in any of the three sets.
func vizLane(a, b, r IntervalSet, blocks []Block, version Version) *VizLane {
	if len(a) == 0 && len(b) == 0 && len(r) == 0 {
		return nil
	}

	// union bounding box over all three sets
	var bounds Interval
	first := true
	for _, s := range []IntervalSet{a, b, r} {
		for _, iv := range s {
			if first {
				bounds = iv
				first = false
				continue
			}
			if iv.start.Less(bounds.start) {
				bounds.start = iv.start
			}
			if bounds.end.Less(iv.end) {
				bounds.end = iv.end
			}
		}
	}

	totalSize := bounds.Count()

	lane := &VizLane{
		TotalRange: VizRange{
			Start: u128ToAddr(bounds.start, version).String(),
			End:   u128ToAddr(bounds.end, version).String(),
		},
		SetA:   vizSegments(a, bounds, totalSize, nil),
		SetB:   vizSegments(b, bounds, totalSize, nil),
		Result: vizSegments(r, bounds, totalSize, blocks),
	}
	return lane
}

var bigBp = big.NewInt(10_000)

// vizSegments positions every interval of the set within the bounding
// range. blocks, when given, annotate result segments that collapse to
// a single CIDR block.
func vizSegments(s IntervalSet, bounds Interval, totalSize *big.Int, blocks []Block) []VizSegment {
	if len(s) == 0 {
		return nil
	}

	segs := make([]VizSegment, 0, len(s))
	for _, iv := range s {
		// offsetBp = (start - totalStart) * 10^4 / totalSize
		off := iv.start.Sub(bounds.start).Big()
		off.Mul(off, bigBp)
		off.Quo(off, totalSize)

		width := iv.Count()
		width.Mul(width, bigBp)
		width.Quo(width, totalSize)

		seg := VizSegment{
			Start:    iv.First().String(),
			End:      iv.Last().String(),
			OffsetBp: int(off.Int64()),
			WidthBp:  int(width.Int64()),
		}
		if b, ok := singleBlock(iv, blocks); ok {
			seg.CIDR = b.String()
		}
		segs = append(segs, seg)
	}
	return segs
}

// singleBlock reports whether exactly one of the aggregated blocks
// covers iv exactly.
func singleBlock(iv Interval, blocks []Block) (Block, bool) {
	for _, b := range blocks {
		bi := b.Interval()
		if bi.start == iv.start && bi.end == iv.end {
			return b, true
		}
	}
	return Block{}, false
}
