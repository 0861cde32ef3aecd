// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"errors"
	"math/big"
	"net/netip"
)

// ErrTooManyAddrs is returned when a caller asks to materialize more
// single addresses than its stated bound allows.
var ErrTooManyAddrs = errors.New("address count exceeds enumeration limit")

// Addrs materializes every single address of the set, in ascending
// order, for consumers that need address literals (one PTR record per
// address, host lists).
//
// Enumerating an address space is the one operation of this package
// whose cost is proportional to the number of addresses, so callers
// must state an upper bound; if the exact count exceeds max, Addrs
// returns ErrTooManyAddrs before materializing anything.
func (s IntervalSet) Addrs(max int) ([]netip.Addr, error) {
	if max < 0 {
		max = 0
	}
	count := s.Count()
	if count.Cmp(big.NewInt(int64(max))) > 0 {
		return nil, ErrTooManyAddrs
	}

	out := make([]netip.Addr, 0, count.Int64())
	for _, iv := range s {
		for u := iv.start; ; u = u.AddOne() {
			out = append(out, u128ToAddr(u, iv.version))
			if u == iv.end {
				break
			}
		}
	}
	return out, nil
}
