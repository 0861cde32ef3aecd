// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and captures stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeSet(t *testing.T, name, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDiffInline(t *testing.T) {
	out, err := run(t, "diff", "-a", "192.168.1.0/24", "-b", "192.168.1.0/25")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.128/25\n", out)
}

func TestDiffFiles(t *testing.T) {
	a := writeSet(t, "a.txt", "10.0.0.0/16\n2001:db8::/64\n")
	b := writeSet(t, "b.txt", "10.0.128.0/17\n")

	out, err := run(t, "diff", "-a", a, "-b", b)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/17\n2001:db8::/64\n", out)
}

func TestDiffAlign(t *testing.T) {
	out, err := run(t, "diff", "-a", "10.0.0.0/22", "-b", "", "--align", "24")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24\n10.0.1.0/24\n10.0.2.0/24\n10.0.3.0/24\n", out)
}

func TestDiffJSON(t *testing.T) {
	out, err := run(t, "diff", "--json", "-a", "192.168.1.0/24", "-b", "192.168.1.0/25")
	require.NoError(t, err)

	var res struct {
		IPv4  []string `json:"ipv4"`
		IPv6  []string `json:"ipv6"`
		Stats struct {
			Efficiency int64 `json:"efficiency"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"192.168.1.128/25"}, res.IPv4)
	assert.Empty(t, res.IPv6)
	assert.Equal(t, int64(50), res.Stats.Efficiency)
}

func TestDiffMissingFile(t *testing.T) {
	_, err := run(t, "diff", "-a", filepath.Join(t.TempDir(), "nope.txt"), "-b", "")
	require.Error(t, err)
}

func TestFree(t *testing.T) {
	pools := writeSet(t, "pools.txt", "10.0.0.0/22\n")
	used := writeSet(t, "used.txt", "10.0.0.0/24\n")

	out, err := run(t, "free", "--pools", pools, "--allocations", used)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24\n10.0.2.0/23\n", out)
}

func TestFreeTargetJSON(t *testing.T) {
	out, err := run(t, "free", "--json",
		"--pools", "10.0.0.0/22", "--allocations", "10.0.0.0/24",
		"--target", "23")
	require.NoError(t, err)

	var res struct {
		AvailableBlocks []string `json:"availableBlocks"`
		TotalAddresses  string   `json:"totalAddresses"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"10.0.2.0/23"}, res.AvailableBlocks)
	assert.Equal(t, "512", res.TotalAddresses)
}

func TestInlineOrFile(t *testing.T) {
	path := writeSet(t, "set.txt", "10.0.0.0/8\n")

	text, err := inlineOrFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8\n", text)

	text, err = inlineOrFile("2001:db8::/32")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::/32", text)

	text, err = inlineOrFile("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
