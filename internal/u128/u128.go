// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package u128 implements fixed-size unsigned 128-bit integer arithmetic
// for IP address math.
//
// IPv6 addresses and interval sizes do not fit into native integers, so
// every address in the engine is carried as a Uint128 in network bit order,
// IPv4 occupying the low 32 bits. All operations wrap on overflow, like the
// builtin unsigned types.
//
// This is an internal package used by the ipdiff set-algebra engine.
package u128

import (
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer, hi carries the most
// significant 64 bits.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Zero is the zero value, ready to use.
var Zero = Uint128{}

// Max is 2^128 - 1.
var Max = Uint128{^uint64(0), ^uint64(0)}

// MaxV4 is 2^32 - 1, the highest IPv4 address.
var MaxV4 = Uint128{0, 0xffff_ffff}

// From64 returns v as Uint128.
func From64(v uint64) Uint128 {
	return Uint128{0, v}
}

// FromBytes16 interprets the 16 bytes as a big-endian unsigned integer.
func FromBytes16(b [16]byte) Uint128 {
	return Uint128{
		Hi: uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
			uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]),
		Lo: uint64(b[8])<<56 | uint64(b[9])<<48 | uint64(b[10])<<40 | uint64(b[11])<<32 |
			uint64(b[12])<<24 | uint64(b[13])<<16 | uint64(b[14])<<8 | uint64(b[15]),
	}
}

// Bytes16 returns u as 16 big-endian bytes.
func (u Uint128) Bytes16() (b [16]byte) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(u.Hi)
		u.Hi >>= 8
	}
	for i := 15; i >= 8; i-- {
		b[i] = byte(u.Lo)
		u.Lo >>= 8
	}
	return b
}

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool {
	return u.Hi|u.Lo == 0
}

// Cmp returns -1, 0 or 1 depending on whether u is less than, equal to
// or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// Less reports whether u < v.
func (u Uint128) Less(v Uint128) bool {
	return u.Hi < v.Hi || (u.Hi == v.Hi && u.Lo < v.Lo)
}

// Add returns u + v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{hi, lo}
}

// AddOne returns u + 1, wrapping on overflow.
func (u Uint128) AddOne() Uint128 {
	return u.Add(Uint128{0, 1})
}

// Sub returns u - v, wrapping on underflow.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{hi, lo}
}

// SubOne returns u - 1, wrapping on underflow.
func (u Uint128) SubOne() Uint128 {
	return u.Sub(Uint128{0, 1})
}

// And returns u & v.
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{u.Hi & v.Hi, u.Lo & v.Lo}
}

// Or returns u | v.
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{u.Hi | v.Hi, u.Lo | v.Lo}
}

// Xor returns u ^ v.
func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{u.Hi ^ v.Hi, u.Lo ^ v.Lo}
}

// Not returns ^u.
func (u Uint128) Not() Uint128 {
	return Uint128{^u.Hi, ^u.Lo}
}

// TrailingZeros returns the number of trailing zero bits in u,
// 128 for u == 0.
func (u Uint128) TrailingZeros() int {
	if u.Lo != 0 {
		return bits.TrailingZeros64(u.Lo)
	}
	return 64 + bits.TrailingZeros64(u.Hi)
}

// BitLen returns the minimum number of bits required to represent u,
// 0 for u == 0.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// Lsh returns u << n.
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Zero
	case n >= 64:
		return Uint128{u.Lo << (n - 64), 0}
	case n == 0:
		return u
	}
	return Uint128{u.Hi<<n | u.Lo>>(64-n), u.Lo << n}
}

// Rsh returns u >> n.
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Zero
	case n >= 64:
		return Uint128{0, u.Hi >> (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{u.Hi >> n, u.Lo>>n | u.Hi<<(64-n)}
}

// Pow2 returns 2^k for k in [0, 127].
func Pow2(k int) Uint128 {
	return Uint128{0, 1}.Lsh(uint(k))
}

// Mask returns an integer with the top n of 128 bits set,
// the netmask of a /n prefix in the 128-bit address space.
func Mask(n int) Uint128 {
	if n <= 0 {
		return Zero
	}
	if n >= 128 {
		return Max
	}
	return Max.Lsh(uint(128 - n))
}

// BitsClearedFrom returns u with all bits at position >= bit cleared,
// counting from the most significant bit. It is the network address of
// u under a /bit mask.
func (u Uint128) BitsClearedFrom(bit int) Uint128 {
	return u.And(Mask(bit))
}

// BitsSetFrom returns u with all bits at position >= bit set, counting
// from the most significant bit. It is the broadcast address of u under
// a /bit mask.
func (u Uint128) BitsSetFrom(bit int) Uint128 {
	return u.Or(Mask(bit).Not())
}

// Big returns u as a new big.Int.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

// String returns the decimal representation of u.
// Counts shown to users must never pass through floating point.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return new(big.Int).SetUint64(u.Lo).String()
	}
	return u.Big().String()
}
