// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [DiffResult.Fprint].
func (r *DiffResult) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := r.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns the newline-joined block list as string, just a
// wrapper for [DiffResult.Fprint]. If Fprint returns an error, String
// panics.
func (r *DiffResult) String() string {
	w := new(strings.Builder)
	if err := r.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes the resulting CIDR blocks to w, one per line, the IPv4
// blocks first, then the IPv6 blocks, each list in ascending order.
// If w is nil, Fprint panics.
func (r *DiffResult) Fprint(w io.Writer) error {
	for _, blocks := range [][]string{r.IPv4, r.IPv6} {
		for _, cidr := range blocks {
			if _, err := fmt.Fprintln(w, cidr); err != nil {
				return err
			}
		}
	}

	return nil
}
