// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

// Difference computes a \ b for two canonical interval sets of the same
// version with a two-pointer sweep.
//
// Every interval of a is trimmed by the overlapping intervals of b in
// order: an interior b interval splits it into a left and a right
// remainder, an edge overlap trims that edge, full coverage removes it.
// Since the b intervals are themselves disjoint, trimming never leaves
// two adjacent remainders, so the output is canonical without a second
// merge pass.
func Difference(a, b IntervalSet) IntervalSet {
	if len(a) == 0 {
		return nil
	}
	if len(b) == 0 {
		out := make(IntervalSet, len(a))
		copy(out, a)
		return out
	}

	out := make(IntervalSet, 0, len(a))
	j := 0

	for _, iv := range a {
		cur := iv
		alive := true

		for j < len(b) && alive {
			sub := b[j]

			// sub entirely below cur, skip it for good
			if sub.end.Less(cur.start) {
				j++
				continue
			}

			// sub entirely above cur, done with this interval
			if cur.end.Less(sub.start) {
				break
			}

			// left remainder before the overlap
			if cur.start.Less(sub.start) {
				out = append(out, Interval{
					version: cur.version,
					start:   cur.start,
					end:     sub.start.SubOne(),
				})
			}

			if sub.end.Less(cur.end) {
				// right remainder continues, may overlap the next sub
				cur.start = sub.end.AddOne()
				j++
			} else {
				// sub covers the rest of cur
				alive = false
			}
		}

		if alive {
			out = append(out, cur)
		}
	}
	return out
}

// Intersect computes a ∩ b for two canonical interval sets of the same
// version. The result is again canonical.
func Intersect(a, b IntervalSet) IntervalSet {
	var out IntervalSet

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := a[i].start
		if lo.Less(b[j].start) {
			lo = b[j].start
		}
		hi := a[i].end
		if b[j].end.Less(hi) {
			hi = b[j].end
		}
		if lo.Cmp(hi) <= 0 {
			out = append(out, Interval{version: a[i].version, start: lo, end: hi})
		}

		// advance the interval that ends first
		if a[i].end.Less(b[j].end) {
			i++
		} else {
			j++
		}
	}
	return out
}
