// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"errors"
	"net/netip"
	"testing"
)

var mpa = netip.MustParseAddr

// ivl parses one line, the test fails on error or blank.
func ivl(t *testing.T, line string) Interval {
	t.Helper()
	iv, ok, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine(%q) unexpected error: %v", line, err)
	}
	if !ok {
		t.Fatalf("ParseLine(%q) skipped as blank", line)
	}
	return iv
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line        string
		first, last string
		version     Version
	}{
		// single addresses
		{"192.168.1.1", "192.168.1.1", "192.168.1.1", V4},
		{"  10.0.0.1  ", "10.0.0.1", "10.0.0.1", V4},
		{"2001:db8::1", "2001:db8::1", "2001:db8::1", V6},
		{"::", "::", "::", V6},

		// CIDR, base need not be masked
		{"192.168.1.0/24", "192.168.1.0", "192.168.1.255", V4},
		{"192.168.1.77/24", "192.168.1.0", "192.168.1.255", V4},
		{"10.0.0.0/8", "10.0.0.0", "10.255.255.255", V4},
		{"0.0.0.0/0", "0.0.0.0", "255.255.255.255", V4},
		{"172.16.0.1/32", "172.16.0.1", "172.16.0.1", V4},
		{"2001:db8::/32", "2001:db8::", "2001:db8:ffff:ffff:ffff:ffff:ffff:ffff", V6},
		{"::/0", "::", "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", V6},
		{"2001:db8::1/128", "2001:db8::1", "2001:db8::1", V6},

		// explicit ranges, all separator spellings
		{"10.0.0.1-10.0.0.9", "10.0.0.1", "10.0.0.9", V4},
		{"10.0.0.1 - 10.0.0.9", "10.0.0.1", "10.0.0.9", V4},
		{"10.0.0.1->10.0.0.9", "10.0.0.1", "10.0.0.9", V4},
		{"10.0.0.1 → 10.0.0.9", "10.0.0.1", "10.0.0.9", V4},
		{"10.0.0.1 10.0.0.9", "10.0.0.1", "10.0.0.9", V4},
		{"2001:db8::1-2001:db8::ff", "2001:db8::1", "2001:db8::ff", V6},
		{"10.0.0.5-10.0.0.5", "10.0.0.5", "10.0.0.5", V4},
	}

	for _, tc := range tests {
		iv := ivl(t, tc.line)
		if iv.Version() != tc.version {
			t.Errorf("ParseLine(%q).Version() = %v, want %v", tc.line, iv.Version(), tc.version)
		}
		if got := iv.First(); got != mpa(tc.first) {
			t.Errorf("ParseLine(%q).First() = %s, want %s", tc.line, got, tc.first)
		}
		if got := iv.Last(); got != mpa(tc.last) {
			t.Errorf("ParseLine(%q).Last() = %s, want %s", tc.line, got, tc.last)
		}
	}
}

func TestParseLineBlank(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   ", "\t", "  \t  "} {
		_, ok, err := ParseLine(line)
		if err != nil {
			t.Errorf("ParseLine(%q) = error %v, blank lines are not errors", line, err)
		}
		if ok {
			t.Errorf("ParseLine(%q) = ok, want skipped", line)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want error
	}{
		{"not-an-ip", ErrMalformed},
		{"192.168.1", ErrMalformed},
		{"192.168.1.256", ErrMalformed},
		{"192.168.1.0/", ErrMalformed},
		{"192.168.1.0/x", ErrMalformed},
		{"fe80::1%eth0", ErrMalformed},

		{"192.168.1.0/33", ErrPrefixOutOfRange},
		{"192.168.1.0/-1", ErrPrefixOutOfRange},
		{"2001:db8::/129", ErrPrefixOutOfRange},

		{"10.0.0.9-10.0.0.1", ErrRangeOrder},
		{"2001:db8::ff->2001:db8::1", ErrRangeOrder},

		{"10.0.0.1-2001:db8::1", ErrVersionMismatch},
		{"2001:db8::1 10.0.0.1", ErrVersionMismatch},
	}

	for _, tc := range tests {
		_, ok, err := ParseLine(tc.line)
		if err == nil {
			t.Errorf("ParseLine(%q) = ok=%v, want error %v", tc.line, ok, tc.want)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("ParseLine(%q) = %v, want errors.Is(%v)", tc.line, err, tc.want)
		}
	}
}

func TestParseSetRecovery(t *testing.T) {
	t.Parallel()

	v4, v6, errs := parseSet("192.168.1.0/24\nnot-an-ip\n\n2001:db8::/64\n10.0.0.0/33", "set A")

	if len(v4) != 1 || len(v6) != 1 {
		t.Fatalf("parseSet kept %d v4 and %d v6 intervals, want 1 and 1", len(v4), len(v6))
	}
	if len(errs) != 2 {
		t.Fatalf("parseSet collected %d errors, want 2: %v", len(errs), errs)
	}
	// messages carry set name and 1-based line number
	if want := "set A line 2"; len(errs[0]) < len(want) || errs[0][:len(want)] != want {
		t.Errorf("first error = %q, want prefix %q", errs[0], want)
	}
	if want := "set A line 5"; errs[1][:len(want)] != want {
		t.Errorf("second error = %q, want prefix %q", errs[1], want)
	}
}
