// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package memo caches recent set-difference computations.
//
// The engine itself is a pure function, memoization is a purely
// additive optimization for the web API, where a browser debounce
// still replays identical input texts.
package memo

import (
	"crypto/sha256"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/netzlab/ipdiff"
)

// Cache memoizes DiffResults by input texts and mode. Results are
// never mutated after construction, so sharing one *DiffResult between
// callers is safe. The underlying LRU is safe for concurrent use.
type Cache struct {
	lru *lru.Cache[[32]byte, *ipdiff.DiffResult]
}

// New returns a cache holding up to size computations, nil if size is
// not positive; a nil *Cache is a valid no-op cache.
func New(size int) *Cache {
	if size <= 0 {
		return nil
	}

	// lru.New only fails for size <= 0
	l, err := lru.New[[32]byte, *ipdiff.DiffResult](size)
	if err != nil {
		panic(err)
	}
	return &Cache{lru: l}
}

// ComputeDifference returns the memoized result for the inputs or runs
// the engine and stores the outcome.
func (c *Cache) ComputeDifference(setAText, setBText string, mode ipdiff.Mode) *ipdiff.DiffResult {
	if c == nil {
		return ipdiff.ComputeDifference(setAText, setBText, mode)
	}

	k := key(setAText, setBText, mode)
	if res, ok := c.lru.Get(k); ok {
		return res
	}

	res := ipdiff.ComputeDifference(setAText, setBText, mode)
	c.lru.Add(k, res)
	return res
}

// Len returns the number of cached computations.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// key hashes both texts and the mode, length-prefixed so that moving
// a line from one set to the other changes the key.
func key(setAText, setBText string, mode ipdiff.Mode) [32]byte {
	h := sha256.New()

	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(setAText)))
	h.Write(n[:])
	h.Write([]byte(setAText))
	h.Write([]byte(setBText))

	prefix, constrained := mode.IsConstrained()
	if constrained {
		h.Write([]byte{1})
		binary.BigEndian.PutUint64(n[:], uint64(int64(prefix)))
	} else {
		h.Write([]byte{0})
		binary.BigEndian.PutUint64(n[:], 0)
	}
	h.Write(n[:])

	var k [32]byte
	h.Sum(k[:0])
	return k
}
