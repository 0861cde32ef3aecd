// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Error taxonomy for malformed input lines. Per-line errors are always
// recovered locally, the engine never panics on input text.
var (
	// ErrMalformed is a literal that is not an address, CIDR or range.
	ErrMalformed = errors.New("malformed address, CIDR or range")

	// ErrPrefixOutOfRange is a prefix length < 0 or > the bit width
	// of the address family.
	ErrPrefixOutOfRange = errors.New("prefix length out of range")

	// ErrRangeOrder is an explicit range whose start is after its end.
	// Reversed ranges are a hard error, never silently swapped.
	ErrRangeOrder = errors.New("range start is after range end")

	// ErrVersionMismatch is a range mixing IPv4 and IPv6 endpoints.
	ErrVersionMismatch = errors.New("range endpoints have different IP versions")
)

// ParseLine parses one line of input text into an interval.
//
// Accepted forms, the version is inferred from the address syntax:
//
//	192.168.1.1               single address
//	10.0.0.0/8                CIDR, the base does not have to be masked
//	10.0.0.1-10.0.0.9         inclusive range
//	2001:db8:: -> 2001:db8::f range separators -, ->, → or whitespace
//
// Blank and whitespace-only lines are skipped, reported as ok == false
// with a nil error. ParseLine is a pure function.
func ParseLine(line string) (iv Interval, ok bool, err error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Interval{}, false, nil
	}

	// fold the exotic range separators into the plain one
	s = strings.ReplaceAll(s, "->", "-")
	s = strings.ReplaceAll(s, "→", "-")

	switch {
	case strings.IndexByte(s, '/') >= 0:
		iv, err = parseCIDRLine(s)
	case strings.IndexByte(s, '-') >= 0:
		first, last, _ := strings.Cut(s, "-")
		iv, err = parseRangeLine(first, last)
	default:
		if fields := strings.Fields(s); len(fields) == 2 {
			iv, err = parseRangeLine(fields[0], fields[1])
		} else {
			iv, err = parseAddrLine(s)
		}
	}

	if err != nil {
		return Interval{}, false, err
	}
	return iv, true, nil
}

// parseAddr rejects everything netip accepts that has no place in set
// algebra: zoned addresses have no total order.
func parseAddr(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if a.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("%w: zoned address %q", ErrMalformed, s)
	}
	return a, nil
}

func parseAddrLine(s string) (Interval, error) {
	a, err := parseAddr(s)
	if err != nil {
		return Interval{}, err
	}
	u := addrToU128(a)
	return Interval{version: versionOf(a), start: u, end: u}, nil
}

// parseCIDRLine parses A/p by hand instead of netip.ParsePrefix so an
// out-of-range prefix is distinguishable from a malformed literal.
func parseCIDRLine(s string) (Interval, error) {
	addrPart, prefixPart, _ := strings.Cut(s, "/")

	a, err := parseAddr(addrPart)
	if err != nil {
		return Interval{}, err
	}

	prefix, err := strconv.Atoi(strings.TrimSpace(prefixPart))
	if err != nil {
		return Interval{}, fmt.Errorf("%w: prefix %q", ErrMalformed, prefixPart)
	}

	version := versionOf(a)
	if prefix < 0 || prefix > version.bits() {
		return Interval{}, fmt.Errorf("%w: /%d for %s", ErrPrefixOutOfRange, prefix, version)
	}

	return IntervalFromPrefix(netip.PrefixFrom(a, prefix)), nil
}

func parseRangeLine(first, last string) (Interval, error) {
	a, err := parseAddr(first)
	if err != nil {
		return Interval{}, err
	}
	b, err := parseAddr(last)
	if err != nil {
		return Interval{}, err
	}

	iv, err := IntervalFromRange(a, b)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %s-%s", err, a, b)
	}
	return iv, nil
}

// parseSet parses multi-line set text into per-version interval lists.
// Parse errors are collected with their line number, every other valid
// line is still processed.
func parseSet(text, setName string) (v4, v6 []Interval, errs []string) {
	for i, line := range strings.Split(text, "\n") {
		iv, ok, err := ParseLine(line)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s line %d: %v", setName, i+1, err))
			continue
		}
		if !ok {
			continue
		}
		if iv.version == V4 {
			v4 = append(v4, iv)
		} else {
			v6 = append(v6, iv)
		}
	}
	return v4, v6, errs
}
