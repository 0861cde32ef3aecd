// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff

import (
	"encoding/json"
)

// MarshalJSON dumps the result into two lists, for ipv4 and ipv6, plus
// the stats. Per-line errors and visualization geometry are deliberately
// not part of the export format, callers that want the full result
// serialize the struct fields themselves.
func (r *DiffResult) MarshalJSON() ([]byte, error) {
	export := struct {
		IPv4  []string `json:"ipv4"`
		IPv6  []string `json:"ipv6"`
		Stats Stats    `json:"stats"`
	}{
		IPv4:  r.IPv4,
		IPv6:  r.IPv6,
		Stats: r.Stats,
	}

	return json.Marshal(export)
}
